package bidding

import (
	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// Draft is the buyer's editable bid.
type Draft struct {
	// BidText is the raw per-unit amount as typed.
	BidText          string
	Quantity         int
	IncludeTransport bool
	Method           PaymentMethod
}

// Bid parses BidText. ok is false when the text is not a number.
func (d Draft) Bid() (amount decimal.Decimal, ok bool) {
	amount, err := money.Parse(d.BidText)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Quote is a priced draft. TransportCost is always computed so it can be
// shown next to the option; it only counts towards Total when included.
type Quote struct {
	BidPerUnit       decimal.Decimal
	Quantity         int
	Subtotal         decimal.Decimal
	TransportCost    decimal.Decimal
	IncludeTransport bool
	Total            decimal.Decimal
}

// Transport is the transport line actually charged.
func (q Quote) Transport() decimal.Decimal {
	if q.IncludeTransport {
		return q.TransportCost
	}
	return decimal.Zero
}
