// Package bidding implements the bid wizard: the draft a buyer edits, the
// pricing and validation rules applied to it, and the three-stage state
// machine (details, payment, confirmation) that carries it through a Placer.
//
// The wizard is owned by a single goroutine. Placer calls run elsewhere and
// report back with the Ticket they were issued; completions for a ticket the
// wizard no longer recognises are rejected with ErrStaleTicket.
package bidding

import (
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// Rules are the marketplace pricing parameters.
type Rules struct {
	// MinIncrement is added to the highest bid to obtain the minimum bid.
	MinIncrement decimal.Decimal
	// DefaultRaise seeds a new draft above the highest bid or asking price.
	DefaultRaise    decimal.Decimal
	DefaultQuantity int
	// Transport is round(quantity * TransportRate + TransportBase).
	TransportRate decimal.Decimal
	TransportBase decimal.Decimal
}

// DefaultRules returns the marketplace defaults.
func DefaultRules() Rules {
	return Rules{
		MinIncrement:    decimal.NewFromInt(1),
		DefaultRaise:    decimal.NewFromInt(5),
		DefaultQuantity: 100,
		TransportRate:   decimal.RequireFromString("0.8"),
		TransportBase:   decimal.NewFromInt(50),
	}
}

// MinimumBid is the lowest per-unit bid the listing accepts.
func (r Rules) MinimumBid(l market.Listing) decimal.Decimal {
	if l.HighestBid != nil {
		return l.HighestBid.Add(r.MinIncrement)
	}
	return l.Pricing.PricePerUnit
}

// DefaultBid is the per-unit amount a fresh draft starts with.
func (r Rules) DefaultBid(l market.Listing) decimal.Decimal {
	base := l.Pricing.PricePerUnit
	if l.HighestBid != nil {
		base = *l.HighestBid
	}
	return base.Add(r.DefaultRaise)
}

// DefaultQuantityFor clamps the default quantity to what the listing offers.
func (r Rules) DefaultQuantityFor(l market.Listing) int {
	q := max(r.DefaultQuantity, 1)
	return min(q, l.QuantityAvailable())
}

// TransportCost is the pickup charge for a quantity. Non-positive
// quantities cost nothing.
func (r Rules) TransportCost(quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	q := decimal.NewFromInt(int64(quantity))
	return money.Round(q.Mul(r.TransportRate).Add(r.TransportBase))
}

// Quote prices a draft. An unparsable or negative bid prices at zero, so the
// quote is always renderable while the buyer is still typing.
func (r Rules) Quote(d Draft) Quote {
	bid, ok := d.Bid()
	if !ok || bid.IsNegative() {
		bid = decimal.Zero
	}
	qty := max(d.Quantity, 0)

	q := Quote{
		BidPerUnit:       bid,
		Quantity:         qty,
		Subtotal:         money.Round(bid.Mul(decimal.NewFromInt(int64(qty)))),
		TransportCost:    r.TransportCost(qty),
		IncludeTransport: d.IncludeTransport,
	}
	q.Total = q.Subtotal
	if d.IncludeTransport {
		q.Total = q.Total.Add(q.TransportCost)
	}
	return q
}
