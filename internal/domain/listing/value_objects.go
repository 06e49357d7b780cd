package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"auction-house/internal/pkg/errs"
)

var (
	ErrNonPositivePrice = errs.New("price must be positive")
	ErrEmptyGood        = errs.New("good must have a kind and a positive quantity")
	ErrInvalidGoodData  = errs.New("good data must be valid JSON")
)

// Money is an amount in minor currency units.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewPositiveMoney(cents int64) (Money, error) {
	if cents <= 0 {
		return Money{}, ErrNonPositivePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

const ppm = 1_000_000

// AfterTax is the amount left once the tax share, rounded half away from zero, is taken.
// The rate is applied in parts per million with integer arithmetic, so large
// amounts keep every cent.
func (m Money) AfterTax(rate float64) Money {
	return Money{cents: m.cents - taxShare(m.cents, int64(math.Round(rate*ppm)))}
}

func taxShare(cents, ratePPM int64) int64 {
	if cents < 0 {
		return -taxShare(-cents, ratePPM)
	}
	q, r := cents/ppm, cents%ppm
	return q*ratePPM + (r*ratePPM+ppm/2)/ppm
}

func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Good is an opaque snapshot of the item being sold. Data is copied on the way
// in and out so a listing never shares bytes with its callers.
type Good struct {
	kind     string
	quantity int
	data     json.RawMessage
}

func NewGood(kind string, quantity int, data []byte) (Good, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" || quantity <= 0 {
		return Good{}, ErrEmptyGood
	}
	if len(data) > 0 && !json.Valid(data) {
		return Good{}, ErrInvalidGoodData
	}
	return Good{kind: kind, quantity: quantity, data: bytes.Clone(data)}, nil
}

// ReconstructGood rebuilds a stored snapshot without validation.
func ReconstructGood(kind string, quantity int, data []byte) Good {
	return Good{kind: kind, quantity: quantity, data: bytes.Clone(data)}
}

func (g Good) Kind() string   { return g.kind }
func (g Good) Quantity() int  { return g.quantity }
func (g Good) IsZero() bool   { return g.kind == "" }
func (g Good) Data() []byte   { return bytes.Clone(g.data) }
func (g Good) String() string { return fmt.Sprintf("%dx %s", g.quantity, g.kind) }
