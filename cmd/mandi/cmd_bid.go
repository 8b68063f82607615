package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"digitalmandi/cmd/mandi/board"
	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/bidding"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logistics"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bidAmount    string
	bidQuantity  int
	bidTransport bool
	bidMethod    string
	bidYes       bool
)

// quoteCmd prices a bid without placing it
var quoteCmd = &cobra.Command{
	Use:   "quote [listing-id]",
	Short: "Price a bid without placing it",
	Long: `Validates a bid against a listing and prints the total.

Example:
  mandi quote L001 --bid 50 --qty 200 --transport`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

// bidCmd places a bid non-interactively
var bidCmd = &cobra.Command{
	Use:   "bid [listing-id]",
	Short: "Place a bid and pay for it",
	Long: `Places a bid on a listing: validates it, registers it, pays and
prints the receipt. Without --yes only the quote is shown.

Example:
  mandi bid L001 --bid 50 --qty 200 --method upi --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runBid,
}

func init() {
	for _, c := range []*cobra.Command{quoteCmd, bidCmd} {
		c.Flags().StringVar(&bidAmount, "bid", "", "Bid per unit in rupees (default: highest bid or asking price plus the default raise)")
		c.Flags().IntVar(&bidQuantity, "qty", 0, "Quantity (default: configured default, capped at stock)")
		c.Flags().BoolVar(&bidTransport, "transport", false, "Include transport pickup")
	}
	bidCmd.Flags().StringVar(&bidMethod, "method", string(bidding.MethodUPI), "Payment method: upi, card or netbanking")
	bidCmd.Flags().BoolVarP(&bidYes, "yes", "y", false, "Place the bid without asking")
}

// draftFromFlags opens a wizard for the listing and applies the bid flags.
// An explicit --qty, even 0, replaces the default quantity.
func draftFromFlags(cmd *cobra.Command, a *app, l market.Listing) (*bidding.Wizard, error) {
	w, err := bidding.New(l, rulesFromConfig(a.cfg))
	if err != nil {
		return nil, err
	}
	if bidAmount != "" {
		if err := w.SetBid(bidAmount); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("qty"); f != nil && f.Changed {
		if err := w.SetQuantity(bidQuantity); err != nil {
			return nil, err
		}
	}
	if err := w.SetIncludeTransport(bidTransport); err != nil {
		return nil, err
	}
	return w, nil
}

func printQuote(out io.Writer, s ui.Styles, w *bidding.Wizard) {
	l := w.Listing()
	q := w.Quote()
	unit := l.Unit()

	fmt.Fprintln(out, s.Title.Render(l.Title())+"  "+s.Muted.Render(l.ID+" · "+l.Farmer.Name+" · "+l.Location))
	t := ui.NewSimpleTable("", "Item", "Amount").AlignRight(1)
	t.AddRow(fmt.Sprintf("Bid %s x %d %s", money.PerUnit(q.BidPerUnit, unit), q.Quantity, unit), money.Format(q.Subtotal))
	if q.IncludeTransport {
		est := logistics.EstimateFor(l.Location, q.Quantity)
		t.AddRow(fmt.Sprintf("Transport (%s, %.1f km, ~%.1f h)", est.Vehicle, est.DistanceKm, est.Hours), money.Format(q.TransportCost))
	}
	t.AddRow("Total", money.Format(q.Total))
	fmt.Fprintln(out, t.View(s))

	fmt.Fprintf(out, "Minimum bid %s\n", money.PerUnit(w.MinimumBid(), unit))
	if in, ok := w.Insights(); ok {
		fmt.Fprintf(out, "%+.1f%% vs asking price", in.AboveAsking)
		if l.Pricing.MarketPrice.IsPositive() {
			fmt.Fprintf(out, ", %s vs market rate", money.Format(in.VsMarket))
		}
		fmt.Fprintln(out)
	}
	for _, warn := range w.Warnings() {
		fmt.Fprintln(out, s.Warning.Render("warning: "+warn))
	}
	for _, f := range []bidding.Field{bidding.FieldBidAmount, bidding.FieldQuantity} {
		if msg, ok := w.Errors()[f]; ok {
			fmt.Fprintln(out, s.Error.Render(string(f)+": "+msg))
		}
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	l, err := a.listing(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	w, err := draftFromFlags(cmd, a, l)
	if err != nil {
		return err
	}
	printQuote(cmd.OutOrStdout(), a.styles(), w)
	if errs := w.Errors(); len(errs) > 0 {
		return errs
	}
	return nil
}

func runBid(cmd *cobra.Command, args []string) error {
	method, err := bidding.ParsePaymentMethod(bidMethod)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	l, err := a.listing(ctx, args[0])
	if err != nil {
		return err
	}
	w, err := draftFromFlags(cmd, a, l)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := a.styles()
	printQuote(out, s, w)
	if errs := w.Errors(); len(errs) > 0 {
		return errs
	}
	if !bidYes {
		fmt.Fprintln(out, s.Muted.Render("Re-run with --yes to place this bid."))
		return nil
	}

	logger.Info("placing bid", zap.String("listing", l.ID), zap.String("total", w.Quote().Total.String()), zap.String("method", string(method)))
	conf, err := bidding.Run(ctx, w, a.simulator(), method)
	if err != nil {
		logger.Warn("bid failed", zap.String("listing", l.ID), zap.Error(err))
		return err
	}

	style := "notty"
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		style = "light"
		if s.Theme.IsDark {
			style = "dark"
		}
	}
	fmt.Fprintln(out, board.RenderReceipt(style, 72, l, conf))
	fmt.Fprintln(out, "Message the farmer: "+contact.LinkFor(l.Farmer.ContactNumber(), contact.BidPlacedMessage(l, conf)))
	return nil
}
