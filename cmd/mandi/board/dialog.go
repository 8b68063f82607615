package board

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/bidding"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"
	"digitalmandi/internal/payment"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is the focused control on the details stage.
type field int

const (
	fieldBid field = iota
	fieldQuantity
	fieldTransport
	fieldCount
)

// BidDialog drives a bidding.Wizard from keyboard input. The wizard is only
// touched on the update loop; Placer calls run in tea.Cmds and come back as
// ticket-tagged messages.
type BidDialog struct {
	id     int
	ctx    context.Context
	cfg    Config
	wizard *bidding.Wizard
	keys   dialogKeyMap

	spinner spinner.Model
	bid     textinput.Model
	qty     textinput.Model
	focus   field
	method  int

	order     bidding.Order
	upiQR     string
	contactQR string
	receipt   string
	status    string
	width     int
}

// NewBidDialog opens the wizard for a listing, seeded with the default bid
// and quantity.
func NewBidDialog(ctx context.Context, cfg Config, l market.Listing) (*BidDialog, error) {
	w, err := bidding.New(l, cfg.Rules)
	if err != nil {
		return nil, err
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = cfg.Styles.Spinner

	d := &BidDialog{
		ctx:     ctx,
		cfg:     cfg,
		wizard:  w,
		keys:    defaultDialogKeyMap(),
		spinner: sp,
		bid:     newInput(cfg.Styles, "₹ per "+l.Unit(), 10),
		qty:     newInput(cfg.Styles, l.Unit(), 7),
		width:   64,
	}
	d.syncInputs()
	d.focusField(fieldBid)

	logging.Wizard("opened bid dialog for %s (%s)", l.ID, l.Title())
	return d, nil
}

func newInput(s ui.Styles, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 12
	ti.Prompt = ""
	ti.TextStyle = s.Body
	ti.Cursor.Style = s.Focused
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Wizard exposes the underlying state machine.
func (d *BidDialog) Wizard() *bidding.Wizard { return d.wizard }

// SetWidth sets the dialog width in cells.
func (d *BidDialog) SetWidth(w int) { d.width = max(w, 40) }

// Abandon discards the draft, making any in-flight Placer call stale.
func (d *BidDialog) Abandon() {
	d.wizard.Abandon()
	logging.Wizard("abandoned bid on %s", d.wizard.Listing().ID)
}

func (d *BidDialog) syncInputs() {
	draft := d.wizard.Draft()
	d.bid.SetValue(draft.BidText)
	d.qty.SetValue(strconv.Itoa(draft.Quantity))
	for i, m := range bidding.Methods() {
		if m == draft.Method {
			d.method = i
		}
	}
}

func (d *BidDialog) focusField(f field) {
	d.focus = f
	d.bid.Blur()
	d.qty.Blur()
	switch f {
	case fieldBid:
		d.bid.Focus()
	case fieldQuantity:
		d.qty.Focus()
	}
}

// Update handles one message and returns the follow-up command.
func (d *BidDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.wizard.Processing() {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case submitDoneMsg:
		if msg.dialog != d.id {
			logging.WizardDebug("dropped register completion from dialog %d", msg.dialog)
			return nil
		}
		return d.onSubmitDone(msg)

	case payDoneMsg:
		if msg.dialog != d.id {
			logging.WizardDebug("dropped payment completion from dialog %d", msg.dialog)
			return nil
		}
		return d.onPayDone(msg)

	case contactMsg:
		if msg.listingID != d.wizard.Listing().ID {
			return nil
		}
		d.status = "Opened WhatsApp chat with " + d.wizard.Listing().Farmer.Name
		if d.cfg.ShowQR {
			if qr, err := contact.QR(msg.link, d.cfg.Styles.Theme.IsDark); err == nil {
				d.contactQR = qr
			}
		}
		return nil

	case tea.KeyMsg:
		if d.wizard.Processing() {
			return nil
		}
		switch d.wizard.Stage() {
		case bidding.StageDetails:
			return d.detailsKey(msg)
		case bidding.StagePayment:
			return d.paymentKey(msg)
		case bidding.StageConfirmation:
			return d.confirmationKey(msg)
		}
	}
	return nil
}

func (d *BidDialog) detailsKey(msg tea.KeyMsg) tea.Cmd {
	l := d.wizard.Listing()
	switch {
	case key.Matches(msg, d.keys.Close):
		if err := d.wizard.Close(); err != nil {
			return nil
		}
		logging.Wizard("closed bid dialog for %s", l.ID)
		return closeDialog

	case key.Matches(msg, d.keys.Contact):
		d.contactQR = ""
		return sendContact(d.ctx, d.cfg.Contact, l, contact.InterestMessage(l, d.wizard.Draft()))

	case key.Matches(msg, d.keys.NextField):
		d.focusField((d.focus + 1) % fieldCount)
		return nil

	case key.Matches(msg, d.keys.PrevField):
		d.focusField((d.focus + fieldCount - 1) % fieldCount)
		return nil

	case key.Matches(msg, d.keys.Submit):
		t, o, err := d.wizard.Submit()
		if err != nil {
			logging.WizardDebug("submit %s refused: %v", l.ID, err)
			return nil
		}
		d.order = o
		d.status = ""
		logging.Wizard("registering bid on %s: %s x %d = %s", l.ID, o.Quote.BidPerUnit, o.Quote.Quantity, o.Quote.Total)
		return tea.Batch(d.spinner.Tick, register(d.ctx, d.cfg.Placer, d.id, t, o))
	}

	var cmd tea.Cmd
	switch d.focus {
	case fieldBid:
		d.bid, cmd = d.bid.Update(msg)
		_ = d.wizard.SetBid(d.bid.Value())
	case fieldQuantity:
		d.qty, cmd = d.qty.Update(msg)
		_ = d.wizard.SetQuantity(parseQuantity(d.qty.Value()))
	case fieldTransport:
		if key.Matches(msg, d.keys.Toggle) {
			_ = d.wizard.SetIncludeTransport(!d.wizard.Draft().IncludeTransport)
		}
	}
	return cmd
}

// parseQuantity reads the quantity field; anything unparsable is 0, which
// fails validation with the range message.
func parseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return 0
	}
	return q
}

func (d *BidDialog) paymentKey(msg tea.KeyMsg) tea.Cmd {
	l := d.wizard.Listing()
	methods := bidding.Methods()
	switch {
	case key.Matches(msg, d.keys.Back):
		if err := d.wizard.Back(); err == nil {
			d.focusField(fieldBid)
		}
		return nil

	case key.Matches(msg, d.keys.Contact):
		d.contactQR = ""
		return sendContact(d.ctx, d.cfg.Contact, l, contact.InterestMessage(l, d.wizard.Draft()))

	case key.Matches(msg, d.keys.Method):
		switch msg.String() {
		case "up", "k":
			d.method = (d.method + len(methods) - 1) % len(methods)
		default:
			d.method = (d.method + 1) % len(methods)
		}
		_ = d.wizard.SetPaymentMethod(methods[d.method])
		d.order.Method = methods[d.method]
		d.refreshUPI()
		return nil

	case key.Matches(msg, d.keys.Submit):
		t, o, err := d.wizard.Pay()
		if err != nil {
			logging.WizardDebug("pay %s refused: %v", l.ID, err)
			return nil
		}
		d.order = o
		logging.Wizard("paying %s for %s via %s", o.Quote.Total, l.ID, o.Method)
		return tea.Batch(d.spinner.Tick, pay(d.ctx, d.cfg.Placer, d.id, t, o))
	}
	return nil
}

func (d *BidDialog) confirmationKey(msg tea.KeyMsg) tea.Cmd {
	l := d.wizard.Listing()
	switch {
	case key.Matches(msg, d.keys.Contact), msg.String() == "w":
		c, ok := d.wizard.Confirmation()
		if !ok {
			return nil
		}
		d.contactQR = ""
		return sendContact(d.ctx, d.cfg.Contact, l, contact.BidPlacedMessage(l, c))

	case key.Matches(msg, d.keys.Submit), key.Matches(msg, d.keys.Close):
		if err := d.wizard.Close(); err != nil {
			return nil
		}
		return closeDialog
	}
	return nil
}

func (d *BidDialog) onSubmitDone(msg submitDoneMsg) tea.Cmd {
	id := d.wizard.Listing().ID
	err := d.wizard.SubmitDone(msg.ticket, msg.err)
	var pe *bidding.PaymentError
	switch {
	case errors.Is(err, bidding.ErrStaleTicket):
		logging.WizardDebug("dropped stale register completion for %s", id)
	case errors.As(err, &pe):
		logging.PaymentWarn("register %s failed: %v", id, pe)
	case err != nil:
		logging.Get(logging.CategoryWizard).Error("register %s: %v", id, err)
	default:
		logging.Wizard("bid on %s registered, awaiting payment", id)
		d.refreshUPI()
	}
	return nil
}

func (d *BidDialog) onPayDone(msg payDoneMsg) tea.Cmd {
	id := d.wizard.Listing().ID
	err := d.wizard.PayDone(msg.ticket, msg.conf, msg.err)
	var pe *bidding.PaymentError
	switch {
	case errors.Is(err, bidding.ErrStaleTicket):
		logging.WizardDebug("dropped stale payment completion for %s", id)
	case errors.As(err, &pe):
		logging.PaymentWarn("pay %s failed: %v", id, pe)
	case err != nil:
		logging.Get(logging.CategoryWizard).Error("pay %s: %v", id, err)
	default:
		c, _ := d.wizard.Confirmation()
		logging.Wizard("bid %s confirmed for %s (%s)", c.BidID, id, money.Format(c.TotalAmount))
		d.receipt = RenderReceipt(d.cfg.GlamourStyle, d.width-6, d.wizard.Listing(), c)
	}
	return nil
}

func (d *BidDialog) refreshUPI() {
	d.upiQR = ""
	if !d.cfg.ShowQR || d.cfg.Payee == "" || d.wizard.Draft().Method != bidding.MethodUPI {
		return
	}
	qr, err := contact.QR(payment.UPIIntent(d.cfg.Payee, d.cfg.PayeeName, d.order), d.cfg.Styles.Theme.IsDark)
	if err != nil {
		logging.UIDebug("upi qr: %v", err)
		return
	}
	d.upiQR = qr
}
