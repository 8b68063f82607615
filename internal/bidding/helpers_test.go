package bidding

import (
	"context"
	"sync"
	"time"

	"digitalmandi/internal/market"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// tomatoes is a listing without bids: price 45, 500 kg, MSP 42.
func tomatoes() market.Listing {
	return market.Listing{
		ID:      "L001",
		Farmer:  market.Farmer{Name: "Rajesh Kumar", Phone: "+91-9876543210"},
		Crop:    market.Crop{Name: "Tomato", Variety: "Roma", Quantity: 500, Unit: "kg", Quality: market.QualityA},
		Pricing: market.Pricing{PricePerUnit: dec("45"), MSP: dec("42"), MarketPrice: dec("48")},
	}
}

func withHighestBid(l market.Listing, amount string) market.Listing {
	hb := dec(amount)
	l.HighestBid = &hb
	l.BidCount = 3
	return l
}

func draft(bid string, qty int, transport bool) Draft {
	return Draft{BidText: bid, Quantity: qty, IncludeTransport: transport, Method: MethodUPI}
}

type fakePlacer struct {
	mu         sync.Mutex
	registered []Order
	paid       []Order
	registerFn func(Order) error
	payFn      func(Order) (Confirmation, error)
}

func (f *fakePlacer) Register(_ context.Context, o Order) error {
	f.mu.Lock()
	f.registered = append(f.registered, o)
	f.mu.Unlock()
	if f.registerFn != nil {
		return f.registerFn(o)
	}
	return nil
}

func (f *fakePlacer) Pay(_ context.Context, o Order) (Confirmation, error) {
	f.mu.Lock()
	f.paid = append(f.paid, o)
	f.mu.Unlock()
	if f.payFn != nil {
		return f.payFn(o)
	}
	return receiptFor(o), nil
}

func receiptFor(o Order) Confirmation {
	return Confirmation{
		BidID:       "BD123456",
		ListingID:   o.ListingID,
		Amount:      o.Quote.BidPerUnit,
		Quantity:    o.Quote.Quantity,
		Transport:   o.Quote.Transport(),
		TotalAmount: o.Quote.Total,
		Method:      o.Method,
		PaymentRef:  "pay_test",
		Timestamp:   time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC),
	}
}
