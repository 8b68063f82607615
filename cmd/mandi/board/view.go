package board

import (
	"fmt"
	"strings"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/logistics"
	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/lipgloss"
)

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.cfg.Styles

	var b strings.Builder
	b.WriteString(s.Header.Render("Digital Mandi") + " " + m.tabs() + "\n\n")

	switch {
	case m.dialog != nil:
		b.WriteString(m.dialog.View())
	case m.loading:
		b.WriteString(m.spinner.View() + " " + s.Muted.Render("Loading marketplace..."))
	case m.err != nil:
		b.WriteString(s.Error.Render("Could not load the catalog: " + m.err.Error()))
	case m.page == ListingsPage:
		b.WriteString(m.listingsView())
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(s.Info.Render(m.status) + "\n")
	}
	if m.dialog == nil {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) tabs() string {
	s := m.cfg.Styles
	parts := make([]string, 0, pageCount)
	for p := ListingsPage; p < pageCount; p++ {
		if p == m.page {
			parts = append(parts, s.TabOn.Render(p.String()))
		} else {
			parts = append(parts, s.Tab.Render(p.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func (m Model) listingsView() string {
	s := m.cfg.Styles
	var b strings.Builder

	st := m.dash.Stats
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d active listings · %d farmers · avg %s/kg · %.1f%% above MSP · sorted by %s%s",
		st.ActiveListings, st.Farmers, money.Format(st.AveragePrice), st.AvgPremiumOverMSP, sortOrder[m.sortIdx], m.filterLabel())) + "\n")

	if len(m.shown) == 0 {
		b.WriteString(s.Muted.Render("No listings match the current filters.") + "\n")
		return b.String()
	}
	b.WriteString(m.table.View() + "\n")
	if l, ok := m.selected(); ok {
		b.WriteString(ui.ListingCard(s, l, min(m.width-2, 96)) + "\n")
	}
	return b.String()
}

func (m Model) filterLabel() string {
	var on []string
	if m.filter.OrganicOnly {
		on = append(on, "organic")
	}
	if m.filter.PoolOnly {
		on = append(on, "pool")
	}
	if m.filter.VerifiedOnly {
		on = append(on, "verified")
	}
	if len(on) == 0 {
		return ""
	}
	return " · " + strings.Join(on, ", ") + " only"
}

// refreshPage renders the scrollable pages into the viewport.
func (m *Model) refreshPage() {
	s := m.cfg.Styles
	var content string
	switch m.page {
	case ForecastsPage:
		cards := make([]string, 0, len(m.dash.Forecasts))
		for _, f := range m.dash.Forecasts {
			cards = append(cards, ui.ForecastCard(s, f))
		}
		content = strings.Join(cards, "\n")
	case PoolsPage:
		cards := make([]string, 0, len(m.dash.Pools))
		for _, p := range m.dash.Pools {
			cards = append(cards, ui.PoolCard(s, p, m.cfg.Now(), min(m.width-4, 80)))
		}
		content = strings.Join(cards, "\n")
	case StatsPage:
		content = statsView(s, m.dash.Stats)
	default:
		return
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func statsView(s ui.Styles, st market.Stats) string {
	t := ui.NewSimpleTable("Marketplace", "Metric", "Value").AlignRight(1)
	t.AddRow("Active listings", fmt.Sprintf("%d", st.ActiveListings))
	t.AddRow("Farmers", fmt.Sprintf("%d", st.Farmers))
	t.AddRow("Verified farmers", fmt.Sprintf("%.1f%%", st.VerifiedShare))
	t.AddRow("Quantity on offer", fmt.Sprintf("%d kg", st.TotalQuantity))
	t.AddRow("Bids placed", fmt.Sprintf("%d", st.TotalBids))
	t.AddRow("Average price", money.Format(st.AveragePrice)+"/kg")
	t.AddRow("Average premium over MSP", fmt.Sprintf("%.1f%%", st.AvgPremiumOverMSP))
	t.AddRow("MSP compliance", fmt.Sprintf("%.0f%%", st.MSPCompliance))
	t.AddRow("Organic listings", fmt.Sprintf("%d", st.OrganicCount))
	t.AddRow("Collective pool listings", fmt.Sprintf("%d", st.PoolCount))
	return ui.StatsBar(s, st) + "\n\n" + t.View(s)
}

func cityOf(location string) string {
	return logistics.TitleCase(logistics.CityOf(location))
}
