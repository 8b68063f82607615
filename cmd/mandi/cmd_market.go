package main

import (
	"fmt"
	"strings"
	"time"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/logistics"
	"digitalmandi/internal/money"

	"github.com/spf13/cobra"
)

var (
	listQuery    string
	listOrganic  bool
	listPool     bool
	listVerified bool
	listSort     string
)

// listingsCmd prints the marketplace listings
var listingsCmd = &cobra.Command{
	Use:     "listings",
	Aliases: []string{"ls"},
	Short:   "List produce on offer",
	Long: `Lists active produce listings with asking price and bid activity.

Examples:
  mandi listings --query tomato
  mandi listings --organic --sort price`,
	Args: cobra.NoArgs,
	RunE: runListings,
}

var showCmd = &cobra.Command{
	Use:   "show [listing-id]",
	Short: "Show one listing in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast [crop]",
	Short: "Show 7 and 30 day price forecasts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForecast,
}

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Show collective selling pools",
	Args:  cobra.NoArgs,
	RunE:  runPools,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show marketplace statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	listingsCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Match crop, variety, farmer or location")
	listingsCmd.Flags().BoolVar(&listOrganic, "organic", false, "Only organic produce")
	listingsCmd.Flags().BoolVar(&listPool, "pool", false, "Only collective pool listings")
	listingsCmd.Flags().BoolVar(&listVerified, "verified", false, "Only verified farmers")
	listingsCmd.Flags().StringVar(&listSort, "sort", string(catalog.SortPosted), "Sort by posted, price, bids or views")
}

func parseSortKey(s string) (catalog.SortKey, error) {
	key := catalog.SortKey(strings.ToLower(s))
	switch key {
	case catalog.SortPosted, catalog.SortPrice, catalog.SortBids, catalog.SortViews:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want posted, price, bids or views)", s)
}

func runListings(cmd *cobra.Command, args []string) error {
	key, err := parseSortKey(listSort)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ls, err := a.provider.Listings(contextOf(cmd))
	if err != nil {
		return err
	}
	ls = catalog.Filter{Query: listQuery, OrganicOnly: listOrganic, PoolOnly: listPool, VerifiedOnly: listVerified}.Apply(ls)
	catalog.Sort(ls, key)

	t := ui.NewSimpleTable(fmt.Sprintf("Listings (%d)", len(ls)), "ID", "Crop", "Farmer", "Location", "Qty", "Price", "Highest bid", "Bids", "Posted").AlignRight(4, 5, 6, 7)
	for _, l := range ls {
		highest := "-"
		if l.HasBids() {
			highest = money.Format(*l.HighestBid)
		}
		t.AddRow(
			l.ID,
			l.Title(),
			l.Farmer.Name,
			logistics.TitleCase(logistics.CityOf(l.Location)),
			fmt.Sprintf("%d %s", l.QuantityAvailable(), l.Unit()),
			money.PerUnit(l.Pricing.PricePerUnit, l.Unit()),
			highest,
			fmt.Sprintf("%d", l.BidCount),
			l.Posted(),
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.View(a.styles()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	l, err := a.listing(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.ListingCard(a.styles(), l, 90))
	return nil
}

func runForecast(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	fs, err := a.provider.Forecasts(contextOf(cmd))
	if err != nil {
		return err
	}
	shown := 0
	for _, f := range fs {
		if len(args) == 1 && !strings.EqualFold(f.Crop, args[0]) {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.ForecastCard(a.styles(), f))
		shown++
	}
	if shown == 0 && len(args) == 1 {
		return fmt.Errorf("no forecast for %q", args[0])
	}
	return nil
}

func runPools(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ps, err := a.provider.Pools(contextOf(cmd))
	if err != nil {
		return err
	}
	now := time.Now()
	for _, p := range ps {
		fmt.Fprintln(cmd.OutOrStdout(), ui.PoolCard(a.styles(), p, now, 72))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	dash, err := catalog.Load(contextOf(cmd), a.provider)
	if err != nil {
		return err
	}
	s := a.styles()
	st := dash.Stats
	fmt.Fprintln(cmd.OutOrStdout(), ui.StatsBar(s, st))
	fmt.Fprintf(cmd.OutOrStdout(), "%d forecasts, %d collective pools, %d organic listings, %.1f%% verified farmers\n",
		len(dash.Forecasts), len(dash.Pools), st.OrganicCount, st.VerifiedShare)
	return nil
}
