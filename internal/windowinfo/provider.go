// Package windowinfo decides how a window title is obtained: the direct
// window-text call first, the accessibility tree only when that fails or
// comes back empty.
package windowinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
	"github.com/mj1618/wintitle/internal/title"
)

// Options configures the fallback budget.
type Options struct {
	// Fallback enables the accessibility-tree resolver.
	Fallback bool
	// Timeout bounds the wait for one fallback (0 = wait for ctx only).
	Timeout time.Duration
	// Workers caps concurrent fallback lookups (minimum 1).
	Workers int
}

// ListOptions filters List results.
type ListOptions struct {
	All   bool   // Include invisible windows
	PID   int    // Filter by process ID (0 = unset)
	Class string // Case-insensitive class-name substring
	Title string // Case-insensitive title substring, applied after fallback
}

// Provider resolves window titles with a direct-then-fallback policy.
type Provider struct {
	direct   platform.TextReader
	lister   platform.WindowLister
	resolver *title.Resolver
	opts     Options
	slots    chan struct{}
	logger   *slog.Logger
}

// New creates a Provider. A nil resolver or opts.Fallback == false disables
// the fallback; a nil lister makes List return an error.
func New(direct platform.TextReader, lister platform.WindowLister, resolver *title.Resolver, opts Options, logger *slog.Logger) *Provider {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		direct:   direct,
		lister:   lister,
		resolver: resolver,
		opts:     opts,
		slots:    make(chan struct{}, opts.Workers),
		logger:   logger,
	}
}

// NewFromPlatform wires a Provider from the platform backends.
func NewFromPlatform(p *platform.Provider, opts Options, logger *slog.Logger) *Provider {
	var resolver *title.Resolver
	if p.NodeLookup != nil {
		resolver = title.NewResolver(p.NodeLookup, logger)
	}
	return New(p.TextReader, p.WindowLister, resolver, opts, logger)
}

// Title resolves the title of h. It never fails: an unresolvable window
// comes back with an empty Title and Source.
func (p *Provider) Title(ctx context.Context, h model.Handle) model.Window {
	w := model.Window{Handle: h}
	if h.IsZero() {
		return w
	}

	if p.direct != nil {
		text, err := p.direct.WindowText(h)
		switch {
		case err == nil && text != "":
			w.Title = text
			w.Source = model.SourceDirect
			return w
		case err != nil && !errors.Is(err, platform.ErrElementUnavailable):
			p.logger.Debug("direct title read failed", "handle", h, "error", err)
		}
	}

	return p.fallback(ctx, w)
}

// AccessibilityTitle resolves h through the accessibility tree only.
func (p *Provider) AccessibilityTitle(ctx context.Context, h model.Handle) model.Window {
	w := model.Window{Handle: h}
	if h.IsZero() {
		return w
	}
	return p.fallback(ctx, w)
}

// List enumerates windows, filters them and back-fills empty titles.
func (p *Provider) List(ctx context.Context, opts ListOptions) ([]model.Window, error) {
	if p.lister == nil {
		return nil, fmt.Errorf("window listing not available on this platform")
	}

	windows, err := p.lister.ListWindows()
	if err != nil {
		return nil, err
	}

	windows = model.FilterWindows(windows, opts.All, opts.PID, opts.Class)

	result := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if w.Title != "" {
			w.Source = model.SourceDirect
		} else {
			resolved := p.fallback(ctx, w)
			w.Title, w.Source = resolved.Title, resolved.Source
		}

		if !model.MatchTitle(w.Title, opts.Title) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

type resolution struct {
	title string
	ok    bool
}

// fallback runs the resolver on a bounded worker and waits at most the
// configured budget. Late results are dropped.
func (p *Provider) fallback(ctx context.Context, w model.Window) model.Window {
	if !p.opts.Fallback || p.resolver == nil {
		return w
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		p.logger.Debug("accessibility fallback skipped, no free worker", "handle", w.Handle, "error", ctx.Err())
		return w
	}

	done := make(chan resolution, 1)
	go func() {
		defer func() { <-p.slots }()
		text, ok := p.resolver.Resolve(w.Handle)
		done <- resolution{title: text, ok: ok}
	}()

	select {
	case r := <-done:
		if r.ok {
			w.Title = r.title
			w.Source = model.SourceAccessibility
		}
	case <-ctx.Done():
		p.logger.Debug("accessibility fallback abandoned", "handle", w.Handle, "error", ctx.Err())
	}
	return w
}
