// Package catalog supplies marketplace data to the rest of the program.
//
// Provider is the only way listings, forecasts and pools reach the UI and the
// bid wizard. Fixtures serves the built-in demo data; FileProvider serves a
// YAML file and reloads it when it changes on disk. Every record is validated
// when a document is decoded, so consumers can rely on market invariants.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"digitalmandi/internal/market"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Listing for unknown ids.
var ErrNotFound = errors.New("listing not found")

// Provider serves marketplace data.
type Provider interface {
	Listings(ctx context.Context) ([]market.Listing, error)
	Listing(ctx context.Context, id string) (market.Listing, error)
	Forecasts(ctx context.Context) ([]market.Forecast, error)
	Pools(ctx context.Context) ([]market.Pool, error)
}

// Document is the on-disk catalog format.
type Document struct {
	Listings  []market.Listing  `yaml:"listings"`
	Forecasts []market.Forecast `yaml:"forecasts"`
	Pools     []market.Pool     `yaml:"pools"`
}

// Decode parses and validates a catalog document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every record and rejects empty catalogs and duplicate
// listing ids.
func (d *Document) Validate() error {
	if len(d.Listings) == 0 {
		return errors.New("catalog has no listings")
	}
	seen := make(map[string]bool, len(d.Listings))
	for i, l := range d.Listings {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("listings[%d]: %w", i, err)
		}
		if seen[l.ID] {
			return fmt.Errorf("listings[%d]: duplicate id %s", i, l.ID)
		}
		seen[l.ID] = true
	}
	for i, f := range d.Forecasts {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("forecasts[%d]: %w", i, err)
		}
	}
	for i, p := range d.Pools {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pools[%d]: %w", i, err)
		}
	}
	return nil
}

// Memory serves a decoded document held in memory. It is safe for
// concurrent use and its contents can be swapped with Replace.
type Memory struct {
	mu  sync.RWMutex
	doc Document
}

// NewMemory serves doc. The document should already be validated.
func NewMemory(doc Document) *Memory {
	return &Memory{doc: doc}
}

// Replace swaps the served document.
func (m *Memory) Replace(doc Document) {
	m.mu.Lock()
	m.doc = doc
	m.mu.Unlock()
}

func (m *Memory) Listings(ctx context.Context) ([]market.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]market.Listing(nil), m.doc.Listings...), nil
}

func (m *Memory) Listing(ctx context.Context, id string) (market.Listing, error) {
	if err := ctx.Err(); err != nil {
		return market.Listing{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.doc.Listings {
		if strings.EqualFold(l.ID, id) {
			return l, nil
		}
	}
	return market.Listing{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (m *Memory) Forecasts(ctx context.Context) ([]market.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]market.Forecast(nil), m.doc.Forecasts...), nil
}

func (m *Memory) Pools(ctx context.Context) ([]market.Pool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]market.Pool(nil), m.doc.Pools...), nil
}

//go:embed fixtures/marketplace.yaml
var fixtureYAML []byte

// Fixtures returns a provider serving the built-in demo marketplace.
func Fixtures() (*Memory, error) {
	doc, err := Decode(fixtureYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in fixtures: %w", err)
	}
	return NewMemory(*doc), nil
}

// FixtureYAML returns the built-in catalog, e.g. as a template for a file.
func FixtureYAML() []byte {
	return append([]byte(nil), fixtureYAML...)
}

// Filter narrows a listing slice.
type Filter struct {
	// Query matches crop, variety, farmer or location, case-insensitively.
	Query        string
	OrganicOnly  bool
	PoolOnly     bool
	VerifiedOnly bool
}

// Apply returns the listings matching f, preserving order.
func (f Filter) Apply(ls []market.Listing) []market.Listing {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []market.Listing
	for _, l := range ls {
		if f.OrganicOnly && !l.Crop.Organic {
			continue
		}
		if f.PoolOnly && !l.CollectivePool {
			continue
		}
		if f.VerifiedOnly && !l.Farmer.Verified {
			continue
		}
		if q != "" && !matches(l, q) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matches(l market.Listing, q string) bool {
	for _, s := range []string{l.Crop.Name, l.Crop.Variety, l.Farmer.Name, l.Location, l.ID} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// SortKey orders listings.
type SortKey string

const (
	SortPosted SortKey = "posted"
	SortPrice  SortKey = "price"
	SortBids   SortKey = "bids"
	SortViews  SortKey = "views"
)

// Sort orders listings in place: newest first, or highest value first for
// the other keys.
func Sort(ls []market.Listing, key SortKey) {
	sort.SliceStable(ls, func(i, j int) bool {
		a, b := ls[i], ls[j]
		switch key {
		case SortPrice:
			return a.Pricing.PricePerUnit.GreaterThan(b.Pricing.PricePerUnit)
		case SortBids:
			return a.BidCount > b.BidCount
		case SortViews:
			return a.Views > b.Views
		default:
			return a.PostedAgo < b.PostedAgo
		}
	})
}
