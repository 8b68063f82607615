package board

import (
	"fmt"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/money"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages for the board and the open dialog.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			logging.Get(logging.CategoryUI).Error("dashboard load failed: %v", msg.err)
			return m, nil
		}
		m.err = nil
		m.dash = msg.dash
		m.applyListings()
		m.refreshPage()
		logging.UI("dashboard loaded: %d listings, %d forecasts, %d pools",
			len(msg.dash.Listings), len(msg.dash.Forecasts), len(msg.dash.Pools))
		return m, nil

	case reloadMsg:
		next := waitForReload(m.cfg.Updates)
		if msg.Err != nil {
			m.status = "Catalog reload failed, keeping previous data: " + msg.Err.Error()
			return m, next
		}
		m.status = "Catalog reloaded at " + msg.At.Format("15:04:05")
		return m, tea.Batch(next, loadDashboard(m.ctx, m.cfg.Provider))

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.dialog != nil {
			cmds = append(cmds, m.dialog.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case submitDoneMsg, payDoneMsg:
		if m.dialog == nil {
			logging.WizardDebug("completion arrived with no open dialog")
			return m, nil
		}
		return m, m.dialog.Update(msg)

	case contactMsg:
		m.status = "Opened WhatsApp: " + msg.link
		if m.dialog != nil {
			return m, m.dialog.Update(msg)
		}
		return m, nil

	case dialogClosedMsg:
		m.dialog = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.shutdown()
		return m, tea.Quit
	}
	if m.dialog != nil {
		return m, m.dialog.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.page = (m.page + 1) % pageCount
		m.refreshPage()
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.page = (m.page + pageCount - 1) % pageCount
		m.refreshPage()
		return m, nil
	}

	if m.loading || m.err != nil {
		return m, nil
	}
	if m.page != ListingsPage {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Bid):
		m.openDialog()
		return m, nil

	case key.Matches(msg, m.keys.Contact):
		l, ok := m.selected()
		if !ok {
			return m, nil
		}
		draft := bidding.Draft{
			BidText:  money.Plain(m.cfg.Rules.DefaultBid(l)),
			Quantity: m.cfg.Rules.DefaultQuantityFor(l),
		}
		return m, sendContact(m.ctx, m.cfg.Contact, l, contact.InterestMessage(l, draft))

	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(sortOrder)
		m.applyListings()
		m.status = fmt.Sprintf("Sorted by %s", sortOrder[m.sortIdx])
		return m, nil

	case key.Matches(msg, m.keys.Organic):
		m.filter.OrganicOnly = !m.filter.OrganicOnly
		m.applyListings()
		return m, nil

	case key.Matches(msg, m.keys.Pool):
		m.filter.PoolOnly = !m.filter.PoolOnly
		m.applyListings()
		return m, nil

	case key.Matches(msg, m.keys.Verified):
		m.filter.VerifiedOnly = !m.filter.VerifiedOnly
		m.applyListings()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) openDialog() {
	l, ok := m.selected()
	if !ok {
		return
	}
	d, err := NewBidDialog(m.ctx, m.cfg, l)
	if err != nil {
		m.status = fmt.Sprintf("Cannot bid on %s: %v", l.ID, err)
		logging.Get(logging.CategoryUI).Warn("open dialog for %s: %v", l.ID, err)
		return
	}
	m.dialogs++
	d.id = m.dialogs
	d.SetWidth(min(m.width-4, 72))
	m.dialog = d
	m.status = ""
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.table.SetHeight(max(h-16, 3))
	m.viewport.Width = w
	m.viewport.Height = max(h-6, 3)
	if m.dialog != nil {
		m.dialog.SetWidth(min(w-4, 72))
	}
	m.refreshPage()
}
