package payment

import (
	"net/url"

	"digitalmandi/internal/bidding"
)

// UPIIntent builds a upi://pay deep link for an order, suitable for a QR code
// scanned by any UPI app.
func UPIIntent(payee, payeeName string, o bidding.Order) string {
	q := url.Values{}
	q.Set("pa", payee)
	q.Set("pn", payeeName)
	q.Set("am", o.Quote.Total.StringFixed(2))
	q.Set("cu", "INR")
	q.Set("tn", "Bid "+o.ListingID)
	return "upi://pay?" + q.Encode()
}
