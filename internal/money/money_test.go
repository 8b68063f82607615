package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":             "₹0",
		"46":            "₹46",
		"5000":          "₹5,000",
		"123456":        "₹1,23,456",
		"12345678":      "₹1,23,45,678",
		"45.5":          "₹45.50",
		"-1500":         "-₹1,500",
		"1000000000000": "₹10,00,00,00,00,000",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Format(decimal.RequireFromString(in)))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("accepts decorated input", func(t *testing.T) {
		for _, in := range []string{"50", " 50 ", "₹50", "50/kg", "₹5,0", "Rs.50"} {
			d, err := Parse(in)
			require.NoError(t, err, in)
			assert.True(t, d.Equal(decimal.NewFromInt(50)), in)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "   ", "abc", "₹", "1.2.3", "-", "."} {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	})

	t.Run("rejects exponent notation", func(t *testing.T) {
		for _, in := range []string{"1e99999999", "1E2", "5e-3", "4.5e1"} {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	})

	t.Run("caps the magnitude", func(t *testing.T) {
		d, err := Parse("1,00,00,00,00,000")
		require.NoError(t, err)
		assert.True(t, d.Equal(MaxAmount))

		for _, in := range []string{"1000000000001", "-99999999999999"} {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	})

	t.Run("keeps sign and fraction", func(t *testing.T) {
		d, err := Parse("-4.75")
		require.NoError(t, err)
		assert.Equal(t, "-4.75", d.String())
	})
}

func TestTooLarge(t *testing.T) {
	assert.False(t, TooLarge(decimal.Zero))
	assert.False(t, TooLarge(MaxAmount))
	assert.False(t, TooLarge(decimal.New(1, -99999999)))
	assert.True(t, TooLarge(MaxAmount.Add(decimal.NewFromInt(1))))
	assert.True(t, TooLarge(decimal.New(-3, 12)))
	assert.True(t, TooLarge(decimal.New(1, 99999999)))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "131", Round(decimal.RequireFromString("130.5")).String())
	assert.Equal(t, "130", Round(decimal.RequireFromString("130.4")).String())
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 11.1, Percent(decimal.NewFromInt(50), decimal.NewFromInt(45)), 0.001)
	assert.Equal(t, 0.0, Percent(decimal.NewFromInt(50), decimal.Zero))
}

func TestPerUnit(t *testing.T) {
	assert.Equal(t, "₹46/kg", PerUnit(decimal.NewFromInt(46), ""))
	assert.Equal(t, "₹2,275/quintal", PerUnit(decimal.NewFromInt(2275), "quintal"))
}
