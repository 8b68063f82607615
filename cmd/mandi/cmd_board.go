package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"digitalmandi/cmd/mandi/board"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/contact"
	"digitalmandi/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runBoard starts the interactive marketplace
func runBoard(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var updates <-chan catalog.Reload
	if a.file != nil && a.cfg.Catalog.Watch {
		if err := a.file.Watch(ctx); err != nil {
			logging.CatalogWarn("watch %s: %v", a.file.Path(), err)
		} else {
			updates = a.file.Updates()
		}
	}

	m := board.New(ctx, board.Config{
		Provider:  a.provider,
		Updates:   updates,
		Placer:    a.simulator(),
		Rules:     rulesFromConfig(a.cfg),
		Contact:   contact.NewChannel(contact.NewBrowserOpener()),
		Styles:    a.styles(),
		ShowQR:    a.cfg.UI.ShowQR,
		Payee:     a.cfg.Payment.Payee,
		PayeeName: a.cfg.Payment.PayeeName,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		return nil
	}
	return err
}
