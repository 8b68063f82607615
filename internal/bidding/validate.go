package bidding

import (
	"fmt"

	"digitalmandi/internal/market"
	"digitalmandi/internal/money"
)

// Validate checks a draft against a listing. It returns nil when the draft
// can be submitted.
func Validate(l market.Listing, d Draft, r Rules) ValidationErrors {
	errs := ValidationErrors{}

	bid, ok := d.Bid()
	switch {
	case !ok || !bid.IsPositive():
		errs[FieldBidAmount] = "Please enter a valid bid amount"
	case bid.LessThan(r.MinimumBid(l)):
		errs[FieldBidAmount] = fmt.Sprintf("Minimum bid is %s", money.PerUnit(r.MinimumBid(l), l.Unit()))
	}

	if d.Quantity < 1 || d.Quantity > l.QuantityAvailable() {
		errs[FieldQuantity] = fmt.Sprintf("Quantity must be between 1 and %d %s", l.QuantityAvailable(), l.Unit())
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Warnings lists non-blocking concerns about a draft, such as a bid under
// the crop's minimum support price.
func Warnings(l market.Listing, d Draft) []string {
	bid, ok := d.Bid()
	if !ok || !l.HasMSP() {
		return nil
	}
	if bid.IsPositive() && bid.LessThan(l.Pricing.MSP) {
		return []string{fmt.Sprintf("Bid is below the MSP of %s", money.PerUnit(l.Pricing.MSP, l.Unit()))}
	}
	return nil
}
