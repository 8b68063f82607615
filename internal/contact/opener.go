package contact

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserOpener hands URLs to the platform's default handler.
type BrowserOpener struct {
	// GOOS overrides runtime.GOOS; used by tests.
	GOOS  string
	start func(ctx context.Context, name string, args ...string) error
}

// NewBrowserOpener returns an opener for the current platform.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{start: startDetached}
}

// Open starts the handler and does not wait for it to exit.
func (b *BrowserOpener) Open(ctx context.Context, url string) error {
	name, args := b.command(url)
	start := b.start
	if start == nil {
		start = startDetached
	}
	if err := start(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", url, name, err)
	}
	return nil
}

func (b *BrowserOpener) command(url string) (string, []string) {
	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// startDetached launches name unless ctx is already done. Once started the
// process outlives ctx.
func startDetached(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
