// Package market defines the marketplace records shown to buyers: produce
// listings, collective pools, price forecasts and aggregate stats.
//
// Records are plain values. They are validated once, where they enter the
// program (see catalog), and treated as read-only afterwards.
package market

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is wrapped by every validation failure in this package.
var ErrInvalidRecord = errors.New("invalid record")

// FieldError names the record and field that failed validation.
type FieldError struct {
	Kind   string
	ID     string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s: %s %s", e.Kind, e.ID, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidRecord }

// Quality is the produce grade.
type Quality string

const (
	QualityA Quality = "A"
	QualityB Quality = "B"
	QualityC Quality = "C"
)

// Urgency signals how quickly the farmer needs to sell.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Farmer is the seller behind a listing.
type Farmer struct {
	Name       string  `yaml:"name"`
	Rating     float64 `yaml:"rating"`
	TotalSales int     `yaml:"total_sales"`
	Location   string  `yaml:"location"`
	Verified   bool    `yaml:"verified"`
	Phone      string  `yaml:"phone"`
	WhatsApp   string  `yaml:"whatsapp"`
}

// ContactNumber is the number used for WhatsApp, falling back to Phone.
func (f Farmer) ContactNumber() string {
	if f.WhatsApp != "" {
		return f.WhatsApp
	}
	return f.Phone
}

// Crop describes the produce on offer.
type Crop struct {
	Name        string  `yaml:"name"`
	Variety     string  `yaml:"variety"`
	Quantity    int     `yaml:"quantity"`
	Unit        string  `yaml:"unit"`
	Quality     Quality `yaml:"quality"`
	Organic     bool    `yaml:"organic"`
	HarvestDate string  `yaml:"harvest_date"`
}

// Pricing holds per-unit prices in rupees.
type Pricing struct {
	PricePerUnit decimal.Decimal `yaml:"price_per_unit"`
	MSP          decimal.Decimal `yaml:"msp"`
	MarketPrice  decimal.Decimal `yaml:"market_price"`
}

// Listing is a farmer's offer of produce.
type Listing struct {
	ID             string           `yaml:"id"`
	Farmer         Farmer           `yaml:"farmer"`
	Crop           Crop             `yaml:"crop"`
	Pricing        Pricing          `yaml:"pricing"`
	HighestBid     *decimal.Decimal `yaml:"highest_bid,omitempty"`
	BidCount       int              `yaml:"bid_count"`
	Location       string           `yaml:"location"`
	PostedAgo      time.Duration    `yaml:"posted_ago"`
	CollectivePool bool             `yaml:"collective_pool"`
	Urgency        Urgency          `yaml:"urgency"`
	Views          int              `yaml:"views"`
}

// Unit returns the crop unit, "kg" when unset.
func (l Listing) Unit() string {
	if l.Crop.Unit == "" {
		return "kg"
	}
	return l.Crop.Unit
}

// QuantityAvailable is the most a buyer can bid for.
func (l Listing) QuantityAvailable() int { return l.Crop.Quantity }

// HasBids reports whether a highest bid is on record.
func (l Listing) HasBids() bool { return l.HighestBid != nil }

// HasMSP reports whether a minimum support price is known for the crop.
func (l Listing) HasMSP() bool { return l.Pricing.MSP.IsPositive() }

// MSPCompliant reports whether the asking price is at or above MSP.
// Listings without an MSP are compliant.
func (l Listing) MSPCompliant() bool {
	return !l.HasMSP() || l.Pricing.PricePerUnit.GreaterThanOrEqual(l.Pricing.MSP)
}

// Title is "Crop (Variety)" or just the crop name.
func (l Listing) Title() string {
	if l.Crop.Variety == "" {
		return l.Crop.Name
	}
	return fmt.Sprintf("%s (%s)", l.Crop.Name, l.Crop.Variety)
}

// Posted renders the listing age the way the marketplace shows it.
func (l Listing) Posted() string {
	switch d := l.PostedAgo; {
	case d <= 0:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

// Validate checks the invariants a listing must satisfy before a bid can be
// placed against it.
func (l Listing) Validate() error {
	fail := func(field, reason string) error {
		return &FieldError{Kind: "listing", ID: l.ID, Field: field, Reason: reason}
	}
	switch {
	case strings.TrimSpace(l.ID) == "":
		return fail("id", "is required")
	case strings.TrimSpace(l.Farmer.Name) == "":
		return fail("farmer.name", "is required")
	case strings.TrimSpace(l.Crop.Name) == "":
		return fail("crop.name", "is required")
	case l.Crop.Quantity <= 0:
		return fail("crop.quantity", "must be positive")
	case !l.Pricing.PricePerUnit.IsPositive():
		return fail("pricing.price_per_unit", "must be positive")
	case money.TooLarge(l.Pricing.PricePerUnit):
		return fail("pricing.price_per_unit", "is too large")
	case l.Pricing.MSP.IsNegative():
		return fail("pricing.msp", "must be positive when present")
	case l.HighestBid != nil && !l.HighestBid.IsPositive():
		return fail("highest_bid", "must be positive when present")
	case l.HighestBid != nil && money.TooLarge(*l.HighestBid):
		return fail("highest_bid", "is too large")
	case l.BidCount < 0:
		return fail("bid_count", "must not be negative")
	}
	switch l.Crop.Quality {
	case "", QualityA, QualityB, QualityC:
	default:
		return fail("crop.quality", fmt.Sprintf("%q is not one of A, B, C", l.Crop.Quality))
	}
	switch l.Urgency {
	case "", UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		return fail("urgency", fmt.Sprintf("%q is not one of low, medium, high", l.Urgency))
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
