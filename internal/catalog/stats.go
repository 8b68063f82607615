package catalog

import (
	"context"
	"fmt"

	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ComputeStats aggregates a set of listings.
func ComputeStats(ls []market.Listing) market.Stats {
	s := market.Stats{ActiveListings: len(ls), AveragePrice: decimal.Zero}
	if len(ls) == 0 {
		return s
	}

	farmers := make(map[string]bool)
	verified := 0
	compliant := 0
	withMSP := 0
	var premium float64
	sum := decimal.Zero

	for _, l := range ls {
		farmers[l.Farmer.Name] = true
		if l.Farmer.Verified {
			verified++
		}
		s.TotalQuantity += l.QuantityAvailable()
		s.TotalBids += l.BidCount
		if l.Crop.Organic {
			s.OrganicCount++
		}
		if l.CollectivePool {
			s.PoolCount++
		}
		if l.MSPCompliant() {
			compliant++
		}
		if l.HasMSP() {
			withMSP++
			premium += money.Percent(l.Pricing.PricePerUnit, l.Pricing.MSP)
		}
		sum = sum.Add(l.Pricing.PricePerUnit)
	}

	n := float64(len(ls))
	s.Farmers = len(farmers)
	s.VerifiedShare = round1(float64(verified) / n * 100)
	s.MSPCompliance = round1(float64(compliant) / n * 100)
	if withMSP > 0 {
		s.AvgPremiumOverMSP = round1(premium / float64(withMSP))
	}
	s.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(ls)))).Round(2)
	return s
}

func round1(f float64) float64 {
	return decimal.NewFromFloat(f).Round(1).InexactFloat64()
}

// Dashboard is everything the market overview shows.
type Dashboard struct {
	Listings  []market.Listing
	Forecasts []market.Forecast
	Pools     []market.Pool
	Stats     market.Stats
}

// Load fetches listings, forecasts and pools concurrently and computes the
// stats. It fails if any of the three fails.
func Load(ctx context.Context, p Provider) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ls, err := p.Listings(ctx)
		if err != nil {
			return fmt.Errorf("load listings: %w", err)
		}
		d.Listings = ls
		return nil
	})
	g.Go(func() error {
		fs, err := p.Forecasts(ctx)
		if err != nil {
			return fmt.Errorf("load forecasts: %w", err)
		}
		d.Forecasts = fs
		return nil
	})
	g.Go(func() error {
		ps, err := p.Pools(ctx)
		if err != nil {
			return fmt.Errorf("load pools: %w", err)
		}
		d.Pools = ps
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	d.Stats = ComputeStats(d.Listings)
	return d, nil
}
