// Package board is the interactive marketplace: a listings table with
// forecast, pool and stats pages, and the bid dialog that walks a buyer
// from bid details through payment to confirmation.
package board

import (
	"context"
	"fmt"
	"time"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/bidding"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Config wires the board to its collaborators.
type Config struct {
	Provider catalog.Provider
	// Updates, when set, delivers file provider reloads.
	Updates <-chan catalog.Reload
	Placer  bidding.Placer
	Rules   bidding.Rules
	Contact *contact.Channel
	Styles  ui.Styles

	ShowQR    bool
	Payee     string
	PayeeName string
	// GlamourStyle names the receipt style: dark, light or notty.
	GlamourStyle string
	Now          func() time.Time
}

// Page is a top-level tab.
type Page int

const (
	ListingsPage Page = iota
	ForecastsPage
	PoolsPage
	StatsPage
	pageCount
)

func (p Page) String() string {
	switch p {
	case ListingsPage:
		return "Listings"
	case ForecastsPage:
		return "Price forecasts"
	case PoolsPage:
		return "Collective pools"
	case StatsPage:
		return "Market stats"
	}
	return fmt.Sprintf("page(%d)", int(p))
}

var sortOrder = []catalog.SortKey{catalog.SortPosted, catalog.SortPrice, catalog.SortBids, catalog.SortViews}

// Model is the bubbletea model for the marketplace.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    Config

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	table    table.Model
	viewport viewport.Model

	page    Page
	loading bool
	err     error
	status  string

	dash     catalog.Dashboard
	shown    []market.Listing
	filter   catalog.Filter
	sortIdx  int
	dialog   *BidDialog
	dialogs  int
	quitting bool

	width  int
	height int
}

// New builds the board. Cancelling ctx, or quitting, cancels in-flight
// Placer calls.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Contact == nil {
		cfg.Contact = contact.NewChannel(nil)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GlamourStyle == "" {
		cfg.GlamourStyle = "light"
		if cfg.Styles.Theme.IsDark {
			cfg.GlamourStyle = "dark"
		}
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = cfg.Styles.Spinner

	t := table.New(
		table.WithColumns(listingColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(cfg.Styles.Theme.Primary).Bold(true)
	ts.Selected = cfg.Styles.Selected
	t.SetStyles(ts)

	return Model{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		table:    t,
		viewport: viewport.New(80, 20),
		loading:  true,
		width:    80,
		height:   24,
	}
}

func listingColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Crop", Width: 22},
		{Title: "Farmer", Width: 16},
		{Title: "Location", Width: 12},
		{Title: "Qty", Width: 9},
		{Title: "Price", Width: 10},
		{Title: "Bids", Width: 5},
		{Title: "Flags", Width: 10},
	}
}

// Init starts the dashboard load and, when configured, the reload watch.
func (m Model) Init() tea.Cmd {
	logging.UI("board starting")
	return tea.Batch(m.spinner.Tick, loadDashboard(m.ctx, m.cfg.Provider), waitForReload(m.cfg.Updates))
}

// Dialog is the open bid dialog, nil when none is open.
func (m Model) Dialog() *BidDialog { return m.dialog }

// Page is the current tab.
func (m Model) Page() Page { return m.page }

// Shown is the filtered, sorted listing set in the table.
func (m Model) Shown() []market.Listing { return m.shown }

// shutdown abandons any open bid and cancels outstanding work.
func (m *Model) shutdown() {
	if m.dialog != nil {
		m.dialog.Abandon()
	}
	m.cancel()
	m.quitting = true
	logging.UI("board shutting down")
}

func (m *Model) applyListings() {
	ls := m.filter.Apply(m.dash.Listings)
	catalog.Sort(ls, sortOrder[m.sortIdx])
	m.shown = ls

	rows := make([]table.Row, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, listingRow(l))
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func listingRow(l market.Listing) table.Row {
	flags := string(l.Crop.Quality)
	if l.Crop.Organic {
		flags += " org"
	}
	if l.CollectivePool {
		flags += " pool"
	}
	if l.Farmer.Verified {
		flags += " ✓"
	}
	return table.Row{
		l.ID,
		l.Title(),
		l.Farmer.Name,
		cityOf(l.Location),
		fmt.Sprintf("%d %s", l.QuantityAvailable(), l.Unit()),
		money.PerUnit(l.Pricing.PricePerUnit, l.Unit()),
		fmt.Sprintf("%d", l.BidCount),
		flags,
	}
}

func (m Model) selected() (market.Listing, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.shown) {
		return market.Listing{}, false
	}
	return m.shown[c], true
}
