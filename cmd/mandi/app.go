package main

import (
	"context"
	"fmt"
	"path/filepath"

	"digitalmandi/cmd/mandi/ui"
	"digitalmandi/internal/bidding"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/config"
	"digitalmandi/internal/logging"
	"digitalmandi/internal/market"
	"digitalmandi/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every command needs: the resolved workspace, its config and
// the catalog.
type app struct {
	ws       string
	cfgPath  string
	cfg      *config.Config
	provider catalog.Provider
	file     *catalog.FileProvider
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return filepath.Abs(workspace)
	}
	return config.FindWorkspaceRoot()
}

func resolveConfigPath(ws string) string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(ws)
}

// openApp loads config, starts file logging and opens the catalog.
func openApp() (*app, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	path := resolveConfigPath(ws)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := logging.Initialize(ws, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSON(),
		Categories: cfg.Logging.Categories,
	}); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("config %s loaded (catalog=%q, theme=%s)", path, cfg.Catalog.Path, cfg.UI.Theme)

	a := &app{ws: ws, cfgPath: path, cfg: cfg}
	if cfg.Catalog.Path == "" {
		mem, err := catalog.Fixtures()
		if err != nil {
			return nil, err
		}
		a.provider = mem
		logger.Debug("using built-in catalog")
		return a, nil
	}

	catPath := cfg.Catalog.Path
	if !filepath.IsAbs(catPath) {
		catPath = filepath.Join(ws, catPath)
	}
	fp, err := catalog.OpenFile(catPath)
	if err != nil {
		return nil, err
	}
	a.provider, a.file = fp, fp
	logger.Debug("using catalog file", zap.String("path", fp.Path()))
	return a, nil
}

func (a *app) Close() {
	if a.file != nil {
		a.file.Stop()
	}
	logging.CloseAll()
}

func (a *app) styles() ui.Styles {
	return ui.NewStyles(ui.ThemeFor(a.cfg.UI.Theme))
}

func (a *app) listing(ctx context.Context, id string) (market.Listing, error) {
	l, err := a.provider.Listing(ctx, id)
	if err != nil {
		return market.Listing{}, fmt.Errorf("listing %s: %w", id, err)
	}
	return l, nil
}

func (a *app) simulator() *payment.Simulator {
	return payment.NewSimulator(payment.Config{
		RegisterDelay: a.cfg.GetRegisterDelay(),
		PayDelay:      a.cfg.GetPayDelay(),
		FailureRate:   a.cfg.Payment.FailureRate,
	})
}

// rulesFromConfig converts the bidding and transport sections to pricing
// rules.
func rulesFromConfig(cfg *config.Config) bidding.Rules {
	return bidding.Rules{
		MinIncrement:    decimal.NewFromFloat(cfg.Bidding.MinIncrement),
		DefaultRaise:    decimal.NewFromFloat(cfg.Bidding.DefaultRaise),
		DefaultQuantity: cfg.Bidding.DefaultQuantity,
		TransportRate:   decimal.NewFromFloat(cfg.Transport.RatePerUnit),
		TransportBase:   decimal.NewFromFloat(cfg.Transport.BaseFee),
	}
}

// contextOf is the command's context, or Background when it runs outside
// Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
