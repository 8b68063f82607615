package board

import (
	"fmt"
	"strings"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/glamour"
)

// receiptMarkdown is the confirmation receipt as markdown.
func receiptMarkdown(l market.Listing, c bidding.Confirmation) string {
	unit := l.Unit()
	var b strings.Builder
	fmt.Fprintf(&b, "### Bid %s\n\n", c.BidID)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Crop | %s |\n", l.Title())
	fmt.Fprintf(&b, "| Farmer | %s |\n", l.Farmer.Name)
	fmt.Fprintf(&b, "| Bid | %s |\n", money.PerUnit(c.Amount, unit))
	fmt.Fprintf(&b, "| Quantity | %d %s |\n", c.Quantity, unit)
	if c.Transport.IsPositive() {
		fmt.Fprintf(&b, "| Transport | %s |\n", money.Format(c.Transport))
	}
	fmt.Fprintf(&b, "| **Total paid** | **%s** |\n", money.Format(c.TotalAmount))
	fmt.Fprintf(&b, "| Method | %s |\n", c.Method.Label())
	fmt.Fprintf(&b, "| Payment ref | `%s` |\n", c.PaymentRef)
	fmt.Fprintf(&b, "| Placed | %s |\n", c.Timestamp.Format("02 Jan 2006 15:04"))
	return b.String()
}

// RenderReceipt renders the receipt with glamour, falling back to the raw
// markdown if the renderer cannot be built.
func RenderReceipt(style string, width int, l market.Listing, c bidding.Confirmation) string {
	md := receiptMarkdown(l, c)
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 40)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
