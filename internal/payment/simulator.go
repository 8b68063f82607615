// Package payment provides the demo bid placer: a simulated gateway that
// waits like a network call, optionally fails, and issues bid and payment
// references.
package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/logging"

	"github.com/google/uuid"
)

// Config tunes the simulator.
type Config struct {
	RegisterDelay time.Duration
	PayDelay      time.Duration
	// FailureRate is the probability in [0, 1] that Pay is declined.
	FailureRate float64
}

// DefaultConfig matches the timings of the hosted demo.
func DefaultConfig() Config {
	return Config{RegisterDelay: 2 * time.Second, PayDelay: 2500 * time.Millisecond}
}

// Simulator implements bidding.Placer without any real gateway.
type Simulator struct {
	cfg Config
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock replaces time.Now for receipts.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithRand replaces the failure-injection source.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

var _ bidding.Placer = (*Simulator)(nil)

// NewSimulator creates a simulator.
func NewSimulator(cfg Config, opts ...Option) *Simulator {
	s := &Simulator{
		cfg: cfg,
		now: time.Now,
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6d616e6469)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register accepts a bid after RegisterDelay.
func (s *Simulator) Register(ctx context.Context, o bidding.Order) error {
	if err := checkOrder(o); err != nil {
		return err
	}
	logging.Payment("register %s: %d %s at %s", o.ListingID, o.Quote.Quantity, o.Unit, o.Quote.BidPerUnit)
	return wait(ctx, s.cfg.RegisterDelay)
}

// Pay charges the order total after PayDelay and returns the receipt.
func (s *Simulator) Pay(ctx context.Context, o bidding.Order) (bidding.Confirmation, error) {
	if err := checkOrder(o); err != nil {
		return bidding.Confirmation{}, err
	}
	if err := wait(ctx, s.cfg.PayDelay); err != nil {
		return bidding.Confirmation{}, err
	}
	if s.declined() {
		logging.PaymentWarn("pay %s: declined (%s via %s)", o.ListingID, o.Quote.Total, o.Method)
		return bidding.Confirmation{}, &bidding.PaymentError{
			Code:      bidding.CodeDeclined,
			Message:   "Payment was declined by the bank. Please try again.",
			Retryable: true,
		}
	}

	now := s.now()
	c := bidding.Confirmation{
		BidID:       BidID(now),
		ListingID:   o.ListingID,
		Amount:      o.Quote.BidPerUnit,
		Quantity:    o.Quote.Quantity,
		Transport:   o.Quote.Transport(),
		TotalAmount: o.Quote.Total,
		Method:      o.Method,
		PaymentRef:  PaymentRef(),
		Timestamp:   now,
	}
	logging.Payment("pay %s: %s settled as %s", o.ListingID, c.TotalAmount, c.BidID)
	return c, nil
}

func (s *Simulator) declined() bool {
	if s.cfg.FailureRate <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.cfg.FailureRate
}

// BidID is "BD" followed by the last six digits of the Unix millisecond clock.
func BidID(t time.Time) string {
	return fmt.Sprintf("BD%06d", t.UnixMilli()%1_000_000)
}

// PaymentRef is a fresh gateway-style payment reference.
func PaymentRef() string {
	return "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

func checkOrder(o bidding.Order) error {
	if o.ListingID == "" || o.Quote.Quantity < 1 || !o.Quote.Total.IsPositive() {
		return &bidding.PaymentError{
			Code:    bidding.CodeInvalid,
			Message: fmt.Sprintf("order for %q has no payable amount", o.ListingID),
		}
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return bidding.AsPaymentError(err)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return bidding.AsPaymentError(ctx.Err())
	case <-timer.C:
		return nil
	}
}
