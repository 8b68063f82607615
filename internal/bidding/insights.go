package bidding

import (
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// Insight compares a draft with the listing's reference prices.
type Insight struct {
	// AboveAsking is the bid's premium over the asking price, in percent.
	AboveAsking float64
	// VsMarket is (market price - bid) * quantity. Positive means the buyer
	// pays less than the prevailing market rate.
	VsMarket     decimal.Decimal
	MSPCompliant bool
}

// Insights computes market insights for a draft. ok is false when the bid
// does not parse.
func Insights(l market.Listing, d Draft) (Insight, bool) {
	bid, ok := d.Bid()
	if !ok || !bid.IsPositive() {
		return Insight{}, false
	}
	in := Insight{
		AboveAsking:  money.Percent(bid, l.Pricing.PricePerUnit),
		MSPCompliant: !l.HasMSP() || bid.GreaterThanOrEqual(l.Pricing.MSP),
	}
	if l.Pricing.MarketPrice.IsPositive() {
		in.VsMarket = money.Round(l.Pricing.MarketPrice.Sub(bid).Mul(decimal.NewFromInt(int64(max(d.Quantity, 0)))))
	}
	return in, true
}
