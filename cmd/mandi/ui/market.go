package ui

import (
	"fmt"
	"strings"
	"time"

	"digitalmandi/internal/market"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// UrgencyColor maps listing urgency to a status color.
func UrgencyColor(u market.Urgency) lipgloss.Color {
	switch u {
	case market.UrgencyHigh:
		return Destructive
	case market.UrgencyMedium:
		return Warning
	default:
		return Success
	}
}

// ListingCard summarises a listing: farmer, crop and reference prices.
func ListingCard(s Styles, l market.Listing, width int) string {
	var b strings.Builder

	title := s.Title.Render(l.Title())
	badges := []string{s.RenderBadge(strings.ToUpper(string(l.Urgency)), UrgencyColor(l.Urgency))}
	if l.Crop.Organic {
		badges = append(badges, s.RenderBadge("ORGANIC", Success))
	}
	if l.CollectivePool {
		badges = append(badges, s.RenderBadge("POOL", Info))
	}
	b.WriteString(title + "  " + strings.Join(badges, " ") + "\n")

	farmer := l.Farmer.Name
	if l.Farmer.Verified {
		farmer += " ✓"
	}
	b.WriteString(s.Body.Render(fmt.Sprintf("%s  ★ %.1f  %d sales  %s", farmer, l.Farmer.Rating, l.Farmer.TotalSales, l.Location)) + "\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Grade %s · %d %s available · harvested %s · posted %s",
		l.Crop.Quality, l.QuantityAvailable(), l.Unit(), l.Crop.HarvestDate, l.Posted())) + "\n")

	prices := fmt.Sprintf("Asking %s", s.Price.Render(money.PerUnit(l.Pricing.PricePerUnit, l.Unit())))
	if l.HasMSP() {
		msp := s.Success
		if !l.MSPCompliant() {
			msp = s.Error
		}
		prices += "   MSP " + msp.Render(money.Format(l.Pricing.MSP))
	}
	if l.Pricing.MarketPrice.IsPositive() {
		prices += "   Market " + s.Body.Render(money.Format(l.Pricing.MarketPrice))
	}
	if l.HighestBid != nil {
		prices += fmt.Sprintf("   Highest bid %s (%d bids)", s.Bold.Render(money.Format(*l.HighestBid)), l.BidCount)
	}
	b.WriteString(prices)

	card := s.Card
	if width > 0 {
		card = card.Width(width)
	}
	return card.Render(b.String())
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws prices as a row of block characters scaled between their
// minimum and maximum. Predicted points are drawn in the accent color.
func Sparkline(s Styles, points []market.PricePoint) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Price, points[0].Price
	for _, p := range points {
		if p.Price.LessThan(lo) {
			lo = p.Price
		}
		if p.Price.GreaterThan(hi) {
			hi = p.Price
		}
	}
	span := hi.Sub(lo).InexactFloat64()

	var b strings.Builder
	for _, p := range points {
		idx := 0
		if span > 0 {
			idx = int(p.Price.Sub(lo).InexactFloat64() / span * float64(len(sparkBlocks)-1))
		}
		ch := string(sparkBlocks[idx])
		if p.Predicted {
			b.WriteString(s.Focused.Render(ch))
		} else {
			b.WriteString(s.Body.Render(ch))
		}
	}
	return b.String()
}

func signed(c market.Change) string {
	sign := "+"
	if c.Amount.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("%s%s (%s%.1f%%)", sign, money.Format(c.Amount), sign, c.Percent)
}

// ForecastCard renders a crop price forecast.
func ForecastCard(s Styles, f market.Forecast) string {
	trend := map[market.Trend]string{market.TrendUp: "▲ UP", market.TrendDown: "▼ DOWN", market.TrendStable: "► STABLE"}[f.Trend]
	trendStyle := s.Info
	switch f.Trend {
	case market.TrendUp:
		trendStyle = s.Success
	case market.TrendDown:
		trendStyle = s.Error
	}

	unit := f.Unit
	lines := []string{
		s.Title.Render(f.Crop) + "  " + trendStyle.Render(trend),
		fmt.Sprintf("Current %s   MSP %s", s.Price.Render(money.PerUnit(f.CurrentPrice, unit)), money.Format(f.MSP)),
		fmt.Sprintf("7 days   %s  %s", money.Format(f.Predicted7d), signed(f.Change7d())),
		fmt.Sprintf("30 days  %s  %s", money.Format(f.Predicted30d), signed(f.Change30d())),
		fmt.Sprintf("Confidence %d%%  %s", f.Confidence, Sparkline(s, f.History)),
	}
	if len(f.Factors) > 0 {
		lines = append(lines, s.Muted.Render("Factors: "+strings.Join(f.Factors, " · ")))
	}
	lines = append(lines, s.Subtitle.Render(f.Advice()))
	return s.Card.Render(strings.Join(lines, "\n"))
}

// PoolCard renders a collective pool with its fill progress.
func PoolCard(s Styles, p market.Pool, now time.Time, width int) string {
	barWidth := max(width-4, 20)
	bar := progress.New(progress.WithSolidFill(string(s.Theme.Primary)), progress.WithWidth(barWidth), progress.WithoutPercentage())

	header := s.Title.Render(p.Crop) + "  " + s.Muted.Render(p.ID)
	if p.Organic {
		header += "  " + s.RenderBadge("ORGANIC", Success)
	}
	members := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, fmt.Sprintf("%s (%s kg)", m.Name, groupInt(m.Quantity)))
	}

	lines := []string{
		header,
		fmt.Sprintf("%s/kg  ·  %s / %s kg  ·  %.0f%% filled  ·  closes in %d days",
			s.Price.Render(money.Format(p.PricePerUnit)),
			groupInt(p.CurrentQuantity), groupInt(p.TargetQuantity), p.Fill()*100, p.DaysLeft(now)),
		bar.ViewAs(p.Fill()),
	}
	if len(members) > 0 {
		lines = append(lines, s.Muted.Render(strings.Join(members, ", ")))
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}

// StatsBar renders the marketplace summary as a row of tiles.
func StatsBar(s Styles, st market.Stats) string {
	tile := func(label, value string) string {
		return s.Card.Render(s.Price.Render(value) + "\n" + s.Muted.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Active listings", fmt.Sprintf("%d", st.ActiveListings)),
		tile("Farmers", fmt.Sprintf("%d", st.Farmers)),
		tile("Avg price", money.Format(st.AveragePrice)+"/kg"),
		tile("Above MSP", fmt.Sprintf("+%.1f%%", st.AvgPremiumOverMSP)),
		tile("MSP compliant", fmt.Sprintf("%.0f%%", st.MSPCompliance)),
		tile("Bids", fmt.Sprintf("%d", st.TotalBids)),
	)
}
