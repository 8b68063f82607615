package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"digitalmandi/internal/bidding"
	"digitalmandi/internal/catalog"
	"digitalmandi/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupWorkspace points the global flags at a fresh workspace and restores
// them when the test ends.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	t.Setenv("MANDI_CATALOG", "")
	t.Setenv("MANDI_PAYMENT_FAILURE_RATE", "")

	ws := t.TempDir()
	workspace = ws
	t.Cleanup(func() {
		workspace, configPath, catalogPath = "", "", ""
		listQuery, listOrganic, listPool, listVerified, listSort = "", false, false, false, string(catalog.SortPosted)
		bidAmount, bidQuantity, bidTransport, bidMethod, bidYes = "", 0, false, string(bidding.MethodUPI), false
		contactMessage, contactOpen, contactQR = "", false, false
		configForce = false
	})
	listSort = string(catalog.SortPosted)
	bidMethod = string(bidding.MethodUPI)
	return ws
}

// instantPayments writes a config whose simulated gateway never waits.
func instantPayments(t *testing.T, ws string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Payment.RegisterDelay = "0s"
	cfg.Payment.PayDelay = "0s"
	require.NoError(t, cfg.Save(config.DefaultPath(ws)))
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	return runCmd(t, &cobra.Command{}, fn, args...)
}

func runCmd(t *testing.T, cmd *cobra.Command, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	err := fn(cmd, args)
	return buf.String(), err
}

// qtyCommand is a command whose --qty flag was parsed from the command line.
func qtyCommand(t *testing.T, qty string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&bidQuantity, "qty", 0, "")
	require.NoError(t, cmd.Flags().Set("qty", qty))
	return cmd
}

func TestListingsCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runListings)
	require.NoError(t, err)
	for _, id := range []string{"L001", "L002", "L008"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Listings (8)")

	listQuery = "tomato"
	out, err = run(t, runListings)
	require.NoError(t, err)
	assert.Contains(t, out, "L001")
	assert.NotContains(t, out, "L002")
}

func TestListingsCmdRejectsUnknownSort(t *testing.T) {
	setupWorkspace(t)
	listSort = "colour"

	_, err := run(t, runListings)
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestShowCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runShow, "l001")
	require.NoError(t, err)
	assert.Contains(t, out, "Tomato (Roma)")

	_, err = run(t, runShow, "L999")
	assert.True(t, errors.Is(err, catalog.ErrNotFound), "got %v", err)
}

func TestQuoteCmd(t *testing.T) {
	setupWorkspace(t)
	bidAmount, bidTransport = "50", true

	out, err := runCmd(t, qtyCommand(t, "200"), runQuote, "L001")
	require.NoError(t, err)
	assert.Contains(t, out, "₹10,000")
	assert.Contains(t, out, "₹210", "round(200*0.8+50)")
	assert.Contains(t, out, "₹10,210")
	assert.Contains(t, out, "Tractor")
}

func TestQuoteCmdExplicitZeroQuantity(t *testing.T) {
	setupWorkspace(t)

	out, err := runCmd(t, qtyCommand(t, "0"), runQuote, "L001")
	var verrs bidding.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(bidding.FieldQuantity))
	assert.Contains(t, out, "Quantity must be between 1 and 500 kg")

	out, err = run(t, runQuote, "L001")
	require.NoError(t, err, "without --qty the default quantity applies")
	assert.Contains(t, out, "x 100 kg")
}

func TestQuoteCmdReportsValidationErrors(t *testing.T) {
	setupWorkspace(t)
	bidAmount = "40"

	out, err := run(t, runQuote, "L001")
	var verrs bidding.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(bidding.FieldBidAmount))
	assert.Contains(t, out, "Minimum bid is ₹48/kg")
	assert.Contains(t, out, "below the MSP")
}

func TestBidCmdDryRun(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runBid, "L001")
	require.NoError(t, err)
	assert.Contains(t, out, "Re-run with --yes")
}

func TestBidCmdPlacesBid(t *testing.T) {
	ws := setupWorkspace(t)
	instantPayments(t, ws)
	bidYes = true
	bidMethod = "card"

	out, err := run(t, runBid, "L001")
	require.NoError(t, err)
	assert.Contains(t, out, "BD")
	assert.Contains(t, out, "₹5,200")
	assert.Contains(t, out, "https://wa.me/919876543210?text=")
}

func TestBidCmdRejectsUnknownMethod(t *testing.T) {
	setupWorkspace(t)
	bidMethod = "cash"

	_, err := run(t, runBid, "L001")
	assert.ErrorContains(t, err, "unknown payment method")
}

func TestBidCmdReportsDecline(t *testing.T) {
	ws := setupWorkspace(t)
	instantPayments(t, ws)
	t.Setenv("MANDI_PAYMENT_FAILURE_RATE", "1")
	bidYes = true

	_, err := run(t, runBid, "L001")
	var pe *bidding.PaymentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bidding.CodeDeclined, pe.Code)
}

func TestContactCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runContact, "L001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "https://wa.me/919876543210?text=Hi%20Rajesh%20Kumar"), out)
	assert.Contains(t, out, "%E2%82%B952", "default bid quoted as ₹52")

	contactMessage, contactQR = "Is the harvest still available?", true
	out, err = run(t, runContact, "L001")
	require.NoError(t, err)
	assert.Contains(t, out, "harvest%20still%20available")
	assert.Greater(t, strings.Count(out, "\n"), 10, "QR code follows the link")
}

func TestForecastCmd(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runForecast, "wheat")
	require.NoError(t, err)
	assert.Contains(t, out, "Wheat")
	assert.NotContains(t, out, "Cotton")

	_, err = run(t, runForecast, "mango")
	assert.ErrorContains(t, err, "no forecast")
}

func TestPoolsAndStatsCmds(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runPools)
	require.NoError(t, err)
	assert.Contains(t, out, "POOL-001")

	out, err = run(t, runStats)
	require.NoError(t, err)
	assert.Contains(t, out, "Active listings")
	assert.Contains(t, out, "2 collective pools")
}

func TestCatalogFlag(t *testing.T) {
	ws := setupWorkspace(t)

	path := filepath.Join(ws, "market.yaml")
	require.NoError(t, os.WriteFile(path, catalog.FixtureYAML(), 0644))
	catalogPath = "market.yaml"

	out, err := run(t, runListings)
	require.NoError(t, err)
	assert.Contains(t, out, "L001")

	require.NoError(t, os.WriteFile(path, []byte("listings: [{id: L1}]"), 0644))
	_, err = run(t, runListings)
	assert.Error(t, err)
}

func TestConfigInitAndShow(t *testing.T) {
	ws := setupWorkspace(t)

	out, err := run(t, runConfigInit)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(ws, ".mandi", "config.yaml"))

	_, err = run(t, runConfigInit)
	assert.ErrorContains(t, err, "already exists")

	configForce = true
	_, err = run(t, runConfigInit)
	assert.NoError(t, err)

	out, err = run(t, runConfigShow)
	require.NoError(t, err)
	assert.Contains(t, out, "min_increment: 1")
	assert.Contains(t, out, "payee: digitalmandi@upi")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	ws := setupWorkspace(t)
	cfg := config.DefaultConfig()
	cfg.UI.Theme = "neon"
	require.NoError(t, cfg.Save(config.DefaultPath(ws)))

	_, err := run(t, runListings)
	assert.ErrorContains(t, err, "invalid ui.theme")
}

func TestRulesFromConfig(t *testing.T) {
	got := rulesFromConfig(config.DefaultConfig())
	want := bidding.DefaultRules()

	assert.True(t, got.MinIncrement.Equal(want.MinIncrement))
	assert.True(t, got.DefaultRaise.Equal(want.DefaultRaise))
	assert.Equal(t, want.DefaultQuantity, got.DefaultQuantity)
	assert.True(t, got.TransportRate.Equal(want.TransportRate))
	assert.True(t, got.TransportBase.Equal(want.TransportBase))
}
