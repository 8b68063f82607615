package market

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PoolMember is a farmer's contribution to a collective pool.
type PoolMember struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

// Pool aggregates produce from several farmers into one larger lot.
type Pool struct {
	ID              string          `yaml:"id"`
	Crop            string          `yaml:"crop"`
	TargetQuantity  int             `yaml:"target_quantity"`
	CurrentQuantity int             `yaml:"current_quantity"`
	Members         []PoolMember    `yaml:"members"`
	ClosesOn        time.Time       `yaml:"closes_on"`
	PricePerUnit    decimal.Decimal `yaml:"price_per_unit"`
	Organic         bool            `yaml:"organic"`
}

// Fill is the completed fraction of the target, clamped to [0, 1].
func (p Pool) Fill() float64 {
	if p.TargetQuantity <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, float64(p.CurrentQuantity)/float64(p.TargetQuantity)))
}

// Remaining is the quantity still needed to reach the target.
func (p Pool) Remaining() int {
	return max(0, p.TargetQuantity-p.CurrentQuantity)
}

// DaysLeft counts whole days from now until the pool closes; never negative.
func (p Pool) DaysLeft(now time.Time) int {
	d := p.ClosesOn.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Validate checks pool invariants.
func (p Pool) Validate() error {
	fail := func(field, reason string) error {
		return &FieldError{Kind: "pool", ID: p.ID, Field: field, Reason: reason}
	}
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fail("id", "is required")
	case p.TargetQuantity <= 0:
		return fail("target_quantity", "must be positive")
	case p.CurrentQuantity < 0:
		return fail("current_quantity", "must not be negative")
	case !p.PricePerUnit.IsPositive():
		return fail("price_per_unit", "must be positive")
	}
	return nil
}
