package market

import "github.com/shopspring/decimal"

// Stats summarises the marketplace for the dashboard header.
type Stats struct {
	ActiveListings int
	Farmers        int
	VerifiedShare  float64
	TotalQuantity  int
	TotalBids      int
	// AvgPremiumOverMSP is the mean percentage by which asking prices exceed MSP.
	AvgPremiumOverMSP float64
	// MSPCompliance is the share of listings priced at or above MSP, in percent.
	MSPCompliance float64
	AveragePrice  decimal.Decimal
	OrganicCount  int
	PoolCount     int
}
