package payment

import (
	"context"
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"digitalmandi/internal/bidding"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func order() bidding.Order {
	return bidding.Order{
		ListingID: "L001",
		Farmer:    "Rajesh Kumar",
		Crop:      "Tomato",
		Unit:      "kg",
		Method:    bidding.MethodUPI,
		Quote: bidding.Quote{
			BidPerUnit:       decimal.NewFromInt(50),
			Quantity:         100,
			Subtotal:         decimal.NewFromInt(5000),
			TransportCost:    decimal.NewFromInt(130),
			IncludeTransport: true,
			Total:            decimal.NewFromInt(5130),
		},
	}
}

func TestPayIssuesReceipt(t *testing.T) {
	fixed := time.UnixMilli(1757923456789)
	s := NewSimulator(Config{}, WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Register(context.Background(), order()))
	c, err := s.Pay(context.Background(), order())
	require.NoError(t, err)

	assert.Equal(t, "BD456789", c.BidID)
	assert.Equal(t, "L001", c.ListingID)
	assert.Equal(t, "5130", c.TotalAmount.String())
	assert.Equal(t, "130", c.Transport.String())
	assert.Equal(t, bidding.MethodUPI, c.Method)
	assert.Equal(t, fixed, c.Timestamp)
	assert.Regexp(t, regexp.MustCompile(`^pay_[0-9a-f]{14}$`), c.PaymentRef)
}

func TestBidIDPadsShortSuffix(t *testing.T) {
	assert.Equal(t, "BD000042", BidID(time.UnixMilli(3_000_042)))
}

func TestPayAlwaysDeclines(t *testing.T) {
	s := NewSimulator(Config{FailureRate: 1}, WithRand(rand.New(rand.NewPCG(1, 2))))

	_, err := s.Pay(context.Background(), order())

	var pe *bidding.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bidding.CodeDeclined, pe.Code)
	assert.True(t, pe.Retryable)
}

func TestRejectsEmptyOrder(t *testing.T) {
	s := NewSimulator(Config{})
	o := order()
	o.Quote.Total = decimal.Zero

	err := s.Register(context.Background(), o)
	var pe *bidding.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bidding.CodeInvalid, pe.Code)
}

func TestHonoursCancellation(t *testing.T) {
	s := NewSimulator(Config{RegisterDelay: time.Hour, PayDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Register(ctx, order()) }()
	cancel()

	select {
	case err := <-done:
		var pe *bidding.PaymentError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, bidding.CodeCancelled, pe.Code)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Register did not return after cancel")
	}

	expired, stop := context.WithTimeout(context.Background(), 0)
	defer stop()
	_, err := s.Pay(expired, order())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDrivesWizardEndToEnd(t *testing.T) {
	l := tomatoListing()
	w, err := bidding.New(l, bidding.DefaultRules())
	require.NoError(t, err)

	conf, err := bidding.Run(context.Background(), w, NewSimulator(Config{RegisterDelay: time.Millisecond, PayDelay: time.Millisecond}), bidding.MethodNetBanking)
	require.NoError(t, err)
	assert.Equal(t, "5000", conf.TotalAmount.String())
	assert.Equal(t, bidding.StageConfirmation, w.Stage())
	assert.Equal(t, bidding.MethodNetBanking, conf.Method)
}

func TestUPIIntent(t *testing.T) {
	got := UPIIntent("digitalmandi@upi", "Digital Mandi", order())
	assert.Equal(t, "upi://pay?am=5130.00&cu=INR&pa=digitalmandi%40upi&pn=Digital+Mandi&tn=Bid+L001", got)
}
