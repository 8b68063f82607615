package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func nextReload(t *testing.T, p *FileProvider) Reload {
	t.Helper()
	select {
	case r := <-p.Updates():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
		return Reload{}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, FixtureYAML())

	p, err := OpenFile(path)
	require.NoError(t, err)
	ls, err := p.Listings(context.Background())
	require.NoError(t, err)
	assert.Len(t, ls, 8)
	assert.Equal(t, path, p.Path())
}

func TestOpenFileErrors(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read catalog")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeCatalog(t, bad, []byte("listings:\n  - {id: X, farmer: {name: A}, crop: {name: B, quantity: 1}, pricing: {price_per_unit: 0}}\n"))
	_, err = OpenFile(bad)
	assert.ErrorContains(t, err, "pricing.price_per_unit")
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, FixtureYAML())

	p, err := OpenFile(path)
	require.NoError(t, err)
	p.debounce = 50 * time.Millisecond
	require.NoError(t, p.Watch(context.Background()))
	defer p.Stop()

	edited := strings.Replace(string(FixtureYAML()), "name: Rajesh Kumar", "name: Rajesh K.", 1)
	writeCatalog(t, path, []byte(edited))

	// A save can surface as several events; wait for the one that sticks.
	deadline := time.Now().Add(5 * time.Second)
	for {
		r := nextReload(t, p)
		l, err := p.Listing(context.Background(), "L001")
		require.NoError(t, err)
		if r.Err == nil && l.Farmer.Name == "Rajesh K." {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("catalog not reloaded, last error: %v", r.Err)
		}
	}
}

func TestWatchKeepsPreviousOnInvalidEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, FixtureYAML())

	p, err := OpenFile(path)
	require.NoError(t, err)
	p.debounce = 50 * time.Millisecond
	require.NoError(t, p.Watch(context.Background()))
	defer p.Stop()

	writeCatalog(t, path, []byte("listings: ["))

	r := nextReload(t, p)
	assert.Error(t, r.Err)
	assert.Equal(t, path, r.Path)
	ls, err := p.Listings(context.Background())
	require.NoError(t, err)
	assert.Len(t, ls, 8)
}

func TestStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, FixtureYAML())
	p, err := OpenFile(path)
	require.NoError(t, err)

	p.Stop()
	require.NoError(t, p.Watch(context.Background()))
	require.NoError(t, p.Watch(context.Background()))
	p.Stop()
	p.Stop()
}

func TestWatchAgainAfterContextEnds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, FixtureYAML())
	p, err := OpenFile(path)
	require.NoError(t, err)
	p.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Watch(ctx))
	require.True(t, p.watching())
	cancel()
	require.Eventually(t, func() bool { return !p.watching() }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, p.Watch(context.Background()))
	defer p.Stop()
	assert.True(t, p.watching())

	writeCatalog(t, path, []byte("listings: ["))
	assert.Error(t, nextReload(t, p).Err, "the second watch delivers reloads")
}
