package main

import (
	"fmt"

	"digitalmandi/internal/contact"

	"github.com/spf13/cobra"
)

var (
	contactMessage string
	contactOpen    bool
	contactQR      bool
)

// contactCmd builds the WhatsApp link for a listing's farmer
var contactCmd = &cobra.Command{
	Use:   "contact [listing-id]",
	Short: "Message a farmer on WhatsApp",
	Long: `Prints a wa.me link with a prefilled message to the listing's farmer.
The message quotes the default bid unless --message, --bid or --qty are set.

Examples:
  mandi contact L001 --open
  mandi contact L003 --bid 70 --qty 300 --qr`,
	Args: cobra.ExactArgs(1),
	RunE: runContact,
}

func init() {
	contactCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "Message text (default: interest message for the draft)")
	contactCmd.Flags().StringVar(&bidAmount, "bid", "", "Bid per unit quoted in the message")
	contactCmd.Flags().IntVar(&bidQuantity, "qty", 0, "Quantity quoted in the message")
	contactCmd.Flags().BoolVar(&contactOpen, "open", false, "Open the link in the browser")
	contactCmd.Flags().BoolVar(&contactQR, "qr", false, "Print a QR code of the link")
}

func runContact(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := contextOf(cmd)
	l, err := a.listing(ctx, args[0])
	if err != nil {
		return err
	}

	msg := contactMessage
	if msg == "" {
		w, err := draftFromFlags(cmd, a, l)
		if err != nil {
			return err
		}
		msg = contact.InterestMessage(l, w.Draft())
	}

	var opener contact.Opener
	if contactOpen {
		opener = contact.NewBrowserOpener()
	}
	link := contact.NewChannel(opener).Send(ctx, l, msg)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, link)
	if contactQR {
		qr, err := contact.QR(link, a.styles().Theme.IsDark)
		if err != nil {
			return err
		}
		fmt.Fprint(out, qr)
	}
	return nil
}
