package clock

import (
	"time"

	rclock "github.com/raulk/clock"
)

// Clock is the subset of raulk/clock used by the engine. Both the real clock and
// the mock satisfy it, so tickers driven by a mock only fire when the test advances it.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) *rclock.Ticker
}

func NewRealClock() Clock {
	return rclock.New()
}

type MockClock struct {
	*rclock.Mock
}

func NewMockClock(t time.Time) *MockClock {
	m := rclock.NewMock()
	m.Set(t)
	return &MockClock{Mock: m}
}
