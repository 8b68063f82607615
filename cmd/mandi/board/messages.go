package board

import (
	"context"
	"time"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/market"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	// dashboardMsg carries a (re)loaded catalog.
	dashboardMsg struct {
		dash catalog.Dashboard
		err  error
	}

	// reloadMsg is a file provider reload notification.
	reloadMsg catalog.Reload

	// contactMsg reports the wa.me link that was opened.
	contactMsg struct {
		listingID string
		link      string
	}

	// submitDoneMsg and payDoneMsg carry Placer outcomes back to the update
	// loop, tagged with the ticket the wizard issued for the call.
	submitDoneMsg struct {
		dialog int
		ticket bidding.Ticket
		err    error
	}
	payDoneMsg struct {
		dialog int
		ticket bidding.Ticket
		conf   bidding.Confirmation
		err    error
	}

	// dialogClosedMsg asks the board to drop the bid dialog.
	dialogClosedMsg struct{}
)

func loadDashboard(ctx context.Context, p catalog.Provider) tea.Cmd {
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryCatalog, "dashboard load")
		dash, err := catalog.Load(ctx, p)
		timer.StopWithThreshold(500 * time.Millisecond)
		return dashboardMsg{dash: dash, err: err}
	}
}

// waitForReload blocks on the provider's update channel. It is re-armed after
// every reloadMsg.
func waitForReload(updates <-chan catalog.Reload) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-updates
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

func sendContact(ctx context.Context, ch *contact.Channel, l market.Listing, message string) tea.Cmd {
	return func() tea.Msg {
		return contactMsg{listingID: l.ID, link: ch.Send(ctx, l, message)}
	}
}

func register(ctx context.Context, p bidding.Placer, dialog int, t bidding.Ticket, o bidding.Order) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{dialog: dialog, ticket: t, err: p.Register(ctx, o)}
	}
}

func pay(ctx context.Context, p bidding.Placer, dialog int, t bidding.Ticket, o bidding.Order) tea.Cmd {
	return func() tea.Msg {
		c, err := p.Pay(ctx, o)
		return payDoneMsg{dialog: dialog, ticket: t, conf: c, err: err}
	}
}

func closeDialog() tea.Msg { return dialogClosedMsg{} }
