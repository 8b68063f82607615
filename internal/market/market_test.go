package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validListing() Listing {
	hb := dec("47")
	return Listing{
		ID:         "L001",
		Farmer:     Farmer{Name: "Rajesh Kumar", Phone: "+91-9876543210"},
		Crop:       Crop{Name: "Tomato", Variety: "Roma", Quantity: 500, Unit: "kg", Quality: QualityA},
		Pricing:    Pricing{PricePerUnit: dec("45"), MSP: dec("42"), MarketPrice: dec("48")},
		HighestBid: &hb,
		BidCount:   12,
		Urgency:    UrgencyHigh,
	}
}

func TestListingValidate(t *testing.T) {
	require.NoError(t, validListing().Validate())

	cases := []struct {
		name  string
		field string
		edit  func(*Listing)
	}{
		{"zero quantity", "crop.quantity", func(l *Listing) { l.Crop.Quantity = 0 }},
		{"zero price", "pricing.price_per_unit", func(l *Listing) { l.Pricing.PricePerUnit = decimal.Zero }},
		{"negative msp", "pricing.msp", func(l *Listing) { l.Pricing.MSP = dec("-1") }},
		{"zero highest bid", "highest_bid", func(l *Listing) { z := decimal.Zero; l.HighestBid = &z }},
		{"huge price", "pricing.price_per_unit", func(l *Listing) { l.Pricing.PricePerUnit = decimal.New(1, 99999999) }},
		{"huge highest bid", "highest_bid", func(l *Listing) { b := decimal.New(1, 20); l.HighestBid = &b }},
		{"missing id", "id", func(l *Listing) { l.ID = " " }},
		{"bad quality", "crop.quality", func(l *Listing) { l.Crop.Quality = "D" }},
		{"bad urgency", "urgency", func(l *Listing) { l.Urgency = "now" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.edit(&l)
			err := l.Validate()
			require.ErrorIs(t, err, ErrInvalidRecord)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

func TestListingHelpers(t *testing.T) {
	l := validListing()
	assert.Equal(t, "kg", Listing{}.Unit())
	assert.Equal(t, "Tomato (Roma)", l.Title())
	assert.True(t, l.HasBids())
	assert.True(t, l.MSPCompliant())

	l.Pricing.PricePerUnit = dec("40")
	assert.False(t, l.MSPCompliant())

	l.Farmer.WhatsApp = "+91-9000000000"
	assert.Equal(t, "+91-9000000000", l.Farmer.ContactNumber())
}

func TestListingPosted(t *testing.T) {
	cases := map[time.Duration]string{
		0:              "just now",
		time.Minute:    "1 minute ago",
		2 * time.Hour:  "2 hours ago",
		26 * time.Hour: "1 day ago",
		72 * time.Hour: "3 days ago",
	}
	for d, want := range cases {
		assert.Equal(t, want, Listing{PostedAgo: d}.Posted())
	}
}

func TestPool(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	p := Pool{
		ID: "POOL-001", TargetQuantity: 5000, CurrentQuantity: 3200,
		ClosesOn: time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC), PricePerUnit: dec("52"),
	}
	require.NoError(t, p.Validate())
	assert.InDelta(t, 0.64, p.Fill(), 1e-9)
	assert.Equal(t, 1800, p.Remaining())
	assert.Equal(t, 3, p.DaysLeft(now))
	assert.Equal(t, 0, p.DaysLeft(now.AddDate(0, 1, 0)))

	p.CurrentQuantity = 6000
	assert.Equal(t, 1.0, p.Fill())
	assert.Equal(t, 0, p.Remaining())

	p.TargetQuantity = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidRecord)
}

func TestForecastChange(t *testing.T) {
	f := Forecast{
		Crop: "wheat", CurrentPrice: dec("2290"), MSP: dec("2275"),
		Predicted7d: dec("2315"), Predicted30d: dec("2380"), Confidence: 87, Trend: TrendUp,
	}
	require.NoError(t, f.Validate())
	assert.True(t, f.AboveMSP())

	c := f.Change7d()
	assert.Equal(t, "25", c.Amount.String())
	assert.InDelta(t, 1.1, c.Percent, 1e-9)
	assert.InDelta(t, 3.9, f.Change30d().Percent, 1e-9)

	f.Trend = "sideways"
	assert.ErrorIs(t, f.Validate(), ErrInvalidRecord)
}
