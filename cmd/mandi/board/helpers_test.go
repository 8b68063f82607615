package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/bidding"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/contact"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 18, 10, 30, 0, 0, time.UTC)

// fakePlacer succeeds unless an error is queued for the call.
type fakePlacer struct {
	mu          sync.Mutex
	registerErr []error
	payErr      []error
	registered  []bidding.Order
	paid        []bidding.Order
}

func (f *fakePlacer) Register(_ context.Context, o bidding.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, o)
	if len(f.registerErr) > 0 {
		err := f.registerErr[0]
		f.registerErr = f.registerErr[1:]
		return err
	}
	return nil
}

func (f *fakePlacer) Pay(_ context.Context, o bidding.Order) (bidding.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid = append(f.paid, o)
	if len(f.payErr) > 0 {
		err := f.payErr[0]
		f.payErr = f.payErr[1:]
		if err != nil {
			return bidding.Confirmation{}, err
		}
	}
	return bidding.Confirmation{
		BidID:       "BD000001",
		ListingID:   o.ListingID,
		Amount:      o.Quote.BidPerUnit,
		Quantity:    o.Quote.Quantity,
		Transport:   o.Quote.Transport(),
		TotalAmount: o.Quote.Total,
		Method:      o.Method,
		PaymentRef:  "pay_0123456789abcd",
		Timestamp:   fixedNow,
	}, nil
}

type recordingOpener struct {
	mu   sync.Mutex
	urls []string
}

func (r *recordingOpener) Open(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return nil
}

type harness struct {
	placer *fakePlacer
	opener *recordingOpener
}

func newModel(t *testing.T, p catalog.Provider) (Model, *harness) {
	t.Helper()
	if p == nil {
		mem, err := catalog.Fixtures()
		require.NoError(t, err)
		p = mem
	}
	h := &harness{placer: &fakePlacer{}, opener: &recordingOpener{}}
	m := New(context.Background(), Config{
		Provider:     p,
		Placer:       h.placer,
		Rules:        bidding.DefaultRules(),
		Contact:      contact.NewChannel(h.opener),
		Styles:       ui.NewStyles(ui.LightTheme()),
		GlamourStyle: "notty",
		Now:          func() time.Time { return fixedNow },
	})
	return m, h
}

// loadedModel returns a board with the fixture catalog loaded.
func loadedModel(t *testing.T) (Model, *harness) {
	t.Helper()
	m, h := newModel(t, nil)
	m = send(t, m, loadDashboard(context.Background(), m.cfg.Provider)())
	require.False(t, m.loading)
	require.NoError(t, m.err)
	return m, h
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs cmd and every command batched inside it, returning the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds back the messages of type T.
func deliver[T tea.Msg](t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	found := false
	for _, msg := range collect(cmd) {
		if _, ok := msg.(T); ok {
			found = true
			m = send(t, m, msg)
		}
	}
	require.True(t, found, "expected a %T from the command", *new(T))
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = send(t, m, keyPress(string(r)))
	}
	return m
}
