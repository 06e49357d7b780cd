//go:build unit

package listing_test

import (
	"testing"

	"auction-house/internal/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_AfterTax(t *testing.T) {
	testCases := []struct {
		name  string
		cents int64
		rate  float64
		want  int64
	}{
		{name: "five percent of 100.00", cents: 10_000, rate: 0.05, want: 9_500},
		{name: "no tax", cents: 123, rate: 0, want: 123},
		{name: "rounds half up", cents: 10, rate: 0.05, want: 9},
		{name: "rounds down below half", cents: 9, rate: 0.05, want: 9},
		{name: "one cent", cents: 1, rate: 0.05, want: 1},
		{name: "exact above float precision", cents: 1<<62 + 7, rate: 0.05, want: 4_381_101_717_506_018_515},
		{name: "negative amounts mirror positive", cents: -10, rate: 0.05, want: -9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := listing.NewMoney(tc.cents).AfterTax(tc.rate)
			assert.Equal(t, tc.want, got.Cents())
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.34", listing.NewMoney(1234).String())
	assert.Equal(t, "0.05", listing.NewMoney(5).String())
	assert.Equal(t, "-1.50", listing.NewMoney(-150).String())
	assert.Equal(t, "7.00", listing.NewMoney(300).Add(listing.NewMoney(400)).String())
	assert.Equal(t, "1.00", listing.NewMoney(300).Sub(listing.NewMoney(200)).String())
}

func TestGood_IsImmutable(t *testing.T) {
	data := []byte(`{"name":"Excalibur"}`)
	g, err := listing.NewGood("sword", 1, data)
	require.NoError(t, err)

	data[2] = 'X'
	assert.JSONEq(t, `{"name":"Excalibur"}`, string(g.Data()), "caller bytes leaked into the good")

	out := g.Data()
	out[2] = 'Y'
	assert.JSONEq(t, `{"name":"Excalibur"}`, string(g.Data()), "getter exposed internal bytes")

	assert.Equal(t, "1x sword", g.String())
}
