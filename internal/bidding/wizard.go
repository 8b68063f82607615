package bidding

import (
	"fmt"

	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/shopspring/decimal"
)

// Stage is a wizard step.
type Stage int

const (
	StageDetails Stage = iota
	StagePayment
	StageConfirmation
)

func (s Stage) String() string {
	switch s {
	case StageDetails:
		return "details"
	case StagePayment:
		return "payment"
	case StageConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

type operation int

const (
	opNone operation = iota
	opRegister
	opPay
)

func (o operation) String() string {
	switch o {
	case opRegister:
		return "register"
	case opPay:
		return "pay"
	}
	return "none"
}

// Ticket identifies one in-flight Placer call. The zero Ticket is never
// current.
type Ticket struct {
	epoch uint64
	op    operation
}

// Wizard walks a buyer through bidding on one listing.
type Wizard struct {
	listing market.Listing
	rules   Rules

	epoch      uint64
	stage      Stage
	draft      Draft
	errs       ValidationErrors
	warnings   []string
	processing bool
	pending    Ticket
	banner     *PaymentError
	confirmed  *Confirmation
}

// New opens a wizard for a listing with a freshly seeded draft.
func New(l market.Listing, r Rules) (*Wizard, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("open bid wizard: %w", err)
	}
	w := &Wizard{listing: l, rules: r}
	w.reset()
	return w, nil
}

func (w *Wizard) Listing() market.Listing { return w.listing }
func (w *Wizard) Rules() Rules            { return w.rules }
func (w *Wizard) Stage() Stage            { return w.stage }
func (w *Wizard) Draft() Draft            { return w.draft }
func (w *Wizard) Processing() bool        { return w.processing }

// Quote prices the current draft.
func (w *Wizard) Quote() Quote { return w.rules.Quote(w.draft) }

// MinimumBid is the lowest bid the listing accepts.
func (w *Wizard) MinimumBid() decimal.Decimal { return w.rules.MinimumBid(w.listing) }

// Errors returns a copy of the current validation errors, nil when valid.
func (w *Wizard) Errors() ValidationErrors { return w.errs.clone() }

// Warnings returns non-blocking warnings for the current draft.
func (w *Wizard) Warnings() []string { return append([]string(nil), w.warnings...) }

// Insights compares the current draft with the listing's reference prices.
func (w *Wizard) Insights() (Insight, bool) { return Insights(w.listing, w.draft) }

// CanSubmit reports whether Submit would be accepted.
func (w *Wizard) CanSubmit() bool {
	return w.stage == StageDetails && !w.processing && len(w.errs) == 0
}

// Banner is the last payment failure, nil when there is none.
func (w *Wizard) Banner() *PaymentError { return w.banner }

// DismissBanner clears the payment failure banner.
func (w *Wizard) DismissBanner() { w.banner = nil }

// Confirmation is the payment receipt, set once the wizard reaches
// StageConfirmation.
func (w *Wizard) Confirmation() (Confirmation, bool) {
	if w.confirmed == nil {
		return Confirmation{}, false
	}
	return *w.confirmed, true
}

// SetBid replaces the bid text.
func (w *Wizard) SetBid(text string) error {
	if err := w.guard(StageDetails, "set bid"); err != nil {
		return err
	}
	w.draft.BidText = text
	w.revalidate()
	return nil
}

// SetQuantity replaces the quantity.
func (w *Wizard) SetQuantity(q int) error {
	if err := w.guard(StageDetails, "set quantity"); err != nil {
		return err
	}
	w.draft.Quantity = q
	w.revalidate()
	return nil
}

// SetIncludeTransport toggles the transport line.
func (w *Wizard) SetIncludeTransport(include bool) error {
	if err := w.guard(StageDetails, "set transport"); err != nil {
		return err
	}
	w.draft.IncludeTransport = include
	return nil
}

// SetPaymentMethod chooses how to pay.
func (w *Wizard) SetPaymentMethod(m PaymentMethod) error {
	if err := w.guard(StagePayment, "set payment method"); err != nil {
		return err
	}
	if !m.Valid() {
		return fmt.Errorf("set payment method: unknown method %q", m)
	}
	w.draft.Method = m
	return nil
}

// Submit starts registering the bid. The caller passes the returned order to
// Placer.Register and reports the outcome with SubmitDone.
func (w *Wizard) Submit() (Ticket, Order, error) {
	if err := w.guard(StageDetails, "submit"); err != nil {
		return Ticket{}, Order{}, err
	}
	w.revalidate()
	if len(w.errs) > 0 {
		return Ticket{}, Order{}, w.Errors()
	}
	return w.begin(opRegister), w.order(), nil
}

// SubmitDone applies the outcome of Placer.Register. On success the wizard
// moves to StagePayment; on failure it stays at StageDetails with a banner and
// the failure is returned as a *PaymentError.
func (w *Wizard) SubmitDone(t Ticket, err error) error {
	if serr := w.settle(t, opRegister); serr != nil {
		return serr
	}
	if err != nil {
		w.banner = AsPaymentError(err)
		return w.banner
	}
	w.stage = StagePayment
	return nil
}

// Back returns from StagePayment to StageDetails.
func (w *Wizard) Back() error {
	if err := w.guard(StagePayment, "back"); err != nil {
		return err
	}
	w.banner = nil
	w.stage = StageDetails
	return nil
}

// Pay starts the payment. The caller passes the returned order to
// Placer.Pay and reports the outcome with PayDone.
func (w *Wizard) Pay() (Ticket, Order, error) {
	if err := w.guard(StagePayment, "pay"); err != nil {
		return Ticket{}, Order{}, err
	}
	return w.begin(opPay), w.order(), nil
}

// PayDone applies the outcome of Placer.Pay. A failure keeps the wizard at
// StagePayment with a banner so the buyer can retry.
func (w *Wizard) PayDone(t Ticket, c Confirmation, err error) error {
	if serr := w.settle(t, opPay); serr != nil {
		return serr
	}
	if err != nil {
		w.banner = AsPaymentError(err)
		return w.banner
	}
	w.confirmed = &c
	w.stage = StageConfirmation
	return nil
}

// Close discards the draft and starts over. It is refused while processing.
func (w *Wizard) Close() error {
	if w.processing {
		return ErrProcessing
	}
	w.reset()
	return nil
}

// Abandon discards the draft even while processing. Any in-flight
// completion becomes stale.
func (w *Wizard) Abandon() {
	w.reset()
}

func (w *Wizard) guard(want Stage, action string) error {
	if w.processing {
		return ErrProcessing
	}
	if w.stage != want {
		return fmt.Errorf("%w: %s during %s", ErrWrongStage, action, w.stage)
	}
	return nil
}

func (w *Wizard) begin(op operation) Ticket {
	w.processing = true
	w.banner = nil
	w.pending = Ticket{epoch: w.epoch, op: op}
	return w.pending
}

func (w *Wizard) settle(t Ticket, op operation) error {
	if !w.processing || t != w.pending || t.op != op {
		return fmt.Errorf("%w: %s completion", ErrStaleTicket, op)
	}
	w.processing = false
	w.pending = Ticket{}
	return nil
}

func (w *Wizard) order() Order {
	return Order{
		ListingID: w.listing.ID,
		Farmer:    w.listing.Farmer.Name,
		Crop:      w.listing.Crop.Name,
		Unit:      w.listing.Unit(),
		Quote:     w.Quote(),
		Method:    w.draft.Method,
	}
}

func (w *Wizard) reset() {
	w.epoch++
	w.stage = StageDetails
	w.processing = false
	w.pending = Ticket{}
	w.banner = nil
	w.confirmed = nil
	w.draft = Draft{
		BidText:  money.Plain(w.rules.DefaultBid(w.listing)),
		Quantity: w.rules.DefaultQuantityFor(w.listing),
		Method:   MethodUPI,
	}
	w.revalidate()
}

func (w *Wizard) revalidate() {
	w.errs = Validate(w.listing, w.draft, w.rules)
	w.warnings = Warnings(w.listing, w.draft)
}
