package board

import (
	"fmt"
	"strings"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/logistics"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the dialog for the current stage.
func (d *BidDialog) View() string {
	s := d.cfg.Styles
	l := d.wizard.Listing()

	var b strings.Builder
	b.WriteString(s.Title.Render("Place a bid") + "  " + s.Muted.Render(l.Title()+" · "+l.Farmer.Name) + "\n")
	b.WriteString(d.stepper() + "\n\n")

	switch d.wizard.Stage() {
	case bidding.StageDetails:
		d.viewDetails(&b)
	case bidding.StagePayment:
		d.viewPayment(&b)
	case bidding.StageConfirmation:
		d.viewConfirmation(&b)
	}

	if banner := d.wizard.Banner(); banner != nil {
		text := banner.Message
		if banner.Retryable {
			text += " Press enter to retry."
		}
		b.WriteString("\n" + s.Banner.Render(text) + "\n")
	}
	if d.status != "" {
		b.WriteString("\n" + s.Info.Render(d.status) + "\n")
	}
	if d.contactQR != "" {
		b.WriteString("\n" + s.Muted.Render("Scan to chat on WhatsApp") + "\n" + d.contactQR)
	}

	b.WriteString("\n")
	if d.wizard.Processing() {
		b.WriteString(d.spinner.View() + " " + s.Muted.Render(d.busyLabel()))
	} else {
		b.WriteString(s.Footer.UnsetPadding().Render(d.hints()))
	}

	return s.Dialog.Width(d.width).Render(b.String())
}

func (d *BidDialog) stepper() string {
	s := d.cfg.Styles
	steps := []struct {
		stage bidding.Stage
		label string
	}{
		{bidding.StageDetails, "1 Bid details"},
		{bidding.StagePayment, "2 Payment"},
		{bidding.StageConfirmation, "3 Confirmation"},
	}
	parts := make([]string, len(steps))
	for i, st := range steps {
		switch {
		case st.stage == d.wizard.Stage():
			parts[i] = s.TabOn.UnsetPadding().Render(st.label)
		case st.stage < d.wizard.Stage():
			parts[i] = s.Success.Render("✓ " + st.label)
		default:
			parts[i] = s.Muted.Render(st.label)
		}
	}
	return strings.Join(parts, s.Muted.Render("  →  "))
}

func (d *BidDialog) busyLabel() string {
	if d.wizard.Stage() == bidding.StageDetails {
		return "Registering your bid..."
	}
	return "Processing payment..."
}

func (d *BidDialog) hints() string {
	var keys []key.Binding
	switch d.wizard.Stage() {
	case bidding.StageDetails:
		keys = []key.Binding{d.keys.NextField, d.keys.Toggle, d.keys.Submit, d.keys.Contact, d.keys.Close}
	case bidding.StagePayment:
		keys = []key.Binding{d.keys.Method, d.keys.Submit, d.keys.Back, d.keys.Contact}
	default:
		keys = []key.Binding{d.keys.Contact, d.keys.Close}
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (d *BidDialog) viewDetails(b *strings.Builder) {
	s := d.cfg.Styles
	l := d.wizard.Listing()
	draft := d.wizard.Draft()
	errs := d.wizard.Errors()
	unit := l.Unit()

	ref := "Asking " + money.PerUnit(l.Pricing.PricePerUnit, unit)
	if l.HasBids() {
		ref += fmt.Sprintf(" · highest bid %s (%d bids)", money.PerUnit(*l.HighestBid, unit), l.BidCount)
	}
	ref += fmt.Sprintf(" · %d %s available", l.QuantityAvailable(), unit)
	b.WriteString(s.Muted.Render(ref) + "\n\n")

	label := func(f field, text string) string {
		if d.focus == f {
			return s.Focused.Width(s.Label.GetWidth()).Render("› " + text)
		}
		return s.Label.Render("  " + text)
	}

	b.WriteString(label(fieldBid, "Bid per "+unit) + "₹ " + d.bid.View() + "\n")
	if msg, ok := errs[bidding.FieldBidAmount]; ok {
		b.WriteString(s.FieldError.Render(msg) + "\n")
	} else {
		b.WriteString(s.Muted.PaddingLeft(s.Label.GetWidth()).Render("Minimum "+money.PerUnit(d.wizard.MinimumBid(), unit)) + "\n")
	}

	b.WriteString(label(fieldQuantity, "Quantity ("+unit+")") + d.qty.View() + "\n")
	if msg, ok := errs[bidding.FieldQuantity]; ok {
		b.WriteString(s.FieldError.Render(msg) + "\n")
	}

	box := "[ ]"
	if draft.IncludeTransport {
		box = "[x]"
	}
	q := d.wizard.Quote()
	b.WriteString(label(fieldTransport, "Transport") + box + " Include pickup (" + money.Format(d.wizard.Rules().TransportCost(draft.Quantity)) + ")\n")
	if draft.IncludeTransport && draft.Quantity > 0 {
		est := logistics.EstimateFor(l.Location, draft.Quantity)
		line := fmt.Sprintf("%s · %.1f km to %s mandi · about %.1f h", est.Vehicle, est.DistanceKm, logistics.TitleCase(est.Hub), est.Hours)
		b.WriteString(s.Muted.PaddingLeft(s.Label.GetWidth()).Render(line) + "\n")
	}

	if in, ok := d.wizard.Insights(); ok {
		b.WriteString("\n" + s.Subtitle.Render("Market insights") + "\n")
		b.WriteString(s.Body.Render(fmt.Sprintf("  %+.1f%% vs asking price", in.AboveAsking)) + "\n")
		if l.Pricing.MarketPrice.IsPositive() {
			if in.VsMarket.IsNegative() {
				b.WriteString(s.Body.Render("  "+money.Format(in.VsMarket.Neg())+" above market rate") + "\n")
			} else {
				b.WriteString(s.Body.Render("  saves "+money.Format(in.VsMarket)+" vs market rate") + "\n")
			}
		}
		if l.HasMSP() {
			if in.MSPCompliant {
				b.WriteString(s.Success.Render("  ✓ MSP compliant") + "\n")
			}
		}
	}
	for _, w := range d.wizard.Warnings() {
		b.WriteString(s.Warning.Render("  ⚠ "+w) + "\n")
	}

	b.WriteString("\n" + d.summary(q))
}

func (d *BidDialog) summary(q bidding.Quote) string {
	s := d.cfg.Styles
	row := func(label, value string, style lipgloss.Style) string {
		return s.Label.Render(label) + style.Render(value) + "\n"
	}
	unit := d.wizard.Listing().Unit()

	var b strings.Builder
	b.WriteString(row(fmt.Sprintf("Bid (%d %s)", q.Quantity, unit), money.Format(q.Subtotal), s.Body))
	if q.IncludeTransport {
		b.WriteString(row("Transport", money.Format(q.TransportCost), s.Body))
	}
	b.WriteString(d.cfg.Styles.RenderDivider(30) + "\n")
	b.WriteString(row("Total", money.Format(q.Total), s.Price))
	return b.String()
}

func (d *BidDialog) viewPayment(b *strings.Builder) {
	s := d.cfg.Styles
	b.WriteString(d.summary(d.order.Quote) + "\n")
	b.WriteString(s.Subtitle.Render("Payment method") + "\n")
	current := d.wizard.Draft().Method
	for _, m := range bidding.Methods() {
		if m == current {
			b.WriteString(s.Focused.Render("  ● "+m.Label()) + "\n")
		} else {
			b.WriteString(s.Muted.Render("  ○ "+m.Label()) + "\n")
		}
	}
	if d.upiQR != "" {
		b.WriteString("\n" + s.Muted.Render("Scan with any UPI app to pay "+money.Format(d.order.Quote.Total)) + "\n" + d.upiQR)
	}
	b.WriteString("\n" + s.Muted.Render("Payment is held in escrow until the farmer accepts your bid.") + "\n")
}

func (d *BidDialog) viewConfirmation(b *strings.Builder) {
	s := d.cfg.Styles
	b.WriteString(s.Success.Render("✓ Bid placed successfully") + "\n")
	b.WriteString(d.receipt)
	b.WriteString(s.Muted.Render("The farmer has been notified and will respond within 24 hours.") + "\n")
}
