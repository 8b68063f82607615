package bidding

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is what the wizard hands to a Placer: a validated, priced draft.
type Order struct {
	ListingID string
	Farmer    string
	Crop      string
	Unit      string
	Quote     Quote
	Method    PaymentMethod
}

// Confirmation is the receipt of a successful payment.
type Confirmation struct {
	BidID       string
	ListingID   string
	Amount      decimal.Decimal
	Quantity    int
	Transport   decimal.Decimal
	TotalAmount decimal.Decimal
	Method      PaymentMethod
	PaymentRef  string
	Timestamp   time.Time
}

// Placer registers bids and collects payment for them. Implementations
// return *PaymentError for failures the buyer can act on.
type Placer interface {
	Register(ctx context.Context, o Order) error
	Pay(ctx context.Context, o Order) (Confirmation, error)
}
