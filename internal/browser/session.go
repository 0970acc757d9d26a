// Package browser owns the single Chrome session the whole batch reuses.
// Every lookup runs in the same tab so cookies and any solved human check
// carry over from one record to the next.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/kbo-tools/kbolookup/internal/config"
)

// Session wraps one live chromedp browser context.
type Session struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewSession launches the browser and verifies it responds. The caller must
// Close() the session when the batch finishes.
func NewSession(cfg *config.Config) (*Session, error) {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1280,900"),
		chromedp.UserAgent(cfg.UserAgent),
	}

	if cfg.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	}
	if path := findChrome(cfg.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}
	if cfg.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(cfg.Proxy))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	// Document responses logged at debug level help diagnose bans and
	// redirects without persisting anything.
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			log.Debug().
				Str("url", resp.Response.URL).
				Int64("status", int64(resp.Response.Status)).
				Msg("Document response")
		}
	})

	// Start the browser now so a missing binary fails fast, before the
	// input file is half processed.
	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug().Bool("headless", cfg.Headless).Msg("Browser session started")

	return &Session{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Ctx returns the long-lived browser context. Callers derive per-step
// timeout contexts from it but never cancel it themselves.
func (s *Session) Ctx() context.Context {
	return s.ctx
}

// Close shuts the browser down.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	err := chromedp.Cancel(s.ctx)
	s.cancelCtx()
	s.cancelAlloc()
	return err
}
