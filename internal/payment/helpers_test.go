package payment

import (
	"digitalmandi/internal/market"

	"github.com/shopspring/decimal"
)

func tomatoListing() market.Listing {
	return market.Listing{
		ID:     "L001",
		Farmer: market.Farmer{Name: "Rajesh Kumar"},
		Crop:   market.Crop{Name: "Tomato", Quantity: 500, Unit: "kg"},
		Pricing: market.Pricing{
			PricePerUnit: decimal.NewFromInt(45),
			MSP:          decimal.NewFromInt(42),
		},
	}
}
