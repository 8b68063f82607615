// Package contact builds the WhatsApp side channel between buyer and farmer:
// message templates, wa.me deep links, a platform URL opener and terminal
// QR codes for scanning a link with a phone.
package contact

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"
)

// Digits strips everything but digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LinkFor builds a wa.me link that opens a chat with message prefilled.
func LinkFor(phone, message string) string {
	link := "https://wa.me/" + Digits(phone)
	if message == "" {
		return link
	}
	return link + "?text=" + escape(message)
}

// escape percent-encodes like encodeURIComponent: spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// InterestMessage is sent before bidding, quoting the current draft.
func InterestMessage(l market.Listing, d bidding.Draft) string {
	bid := d.BidText
	if amount, ok := d.Bid(); ok {
		bid = money.Format(amount)
	}
	return fmt.Sprintf("Hi %s, I'm interested in your %s listing. Quantity: %d%s at %s/%s. Can we discuss?",
		l.Farmer.Name, l.Title(), d.Quantity, l.Unit(), bid, l.Unit())
}

// BidPlacedMessage tells the farmer about a confirmed bid.
func BidPlacedMessage(l market.Listing, c bidding.Confirmation) string {
	return fmt.Sprintf("Hi %s! I just placed a bid of %s for your %s (%d%s) on Digital Mandi. Looking forward to your response!",
		l.Farmer.Name, money.PerUnit(c.Amount, l.Unit()), l.Crop.Name, c.Quantity, l.Unit())
}

// Opener opens a URL outside the program, e.g. in a browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Channel sends prefilled messages to farmers through an Opener.
type Channel struct {
	opener Opener
}

// NewChannel creates a channel. A nil opener only builds links.
func NewChannel(o Opener) *Channel {
	return &Channel{opener: o}
}

// Send opens a chat with the listing's farmer and returns the link used.
// Opening is best effort: failures are logged, never returned.
func (c *Channel) Send(ctx context.Context, l market.Listing, message string) string {
	link := LinkFor(l.Farmer.ContactNumber(), message)
	if c.opener == nil {
		return link
	}
	if err := c.opener.Open(ctx, link); err != nil {
		logging.ContactWarn("open %s for %s: %v", link, l.ID, err)
		return link
	}
	logging.Contact("opened chat with %s for %s", l.Farmer.Name, l.ID)
	return link
}
