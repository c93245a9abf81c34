// Package title resolves window titles through the OS accessibility tree.
//
// It is the fallback used when the direct window-text call cannot cross a
// process or sandbox boundary, such as Chromium renderer windows.
package title

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
)

// Resolver reads a window's display name from its accessibility node.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	lookup platform.NodeLookup
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil lookup resolves every handle to
// absent; a nil logger discards diagnostics.
func NewResolver(lookup platform.NodeLookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{lookup: lookup, logger: logger}
}

// Resolve returns the title of the window identified by h, and whether one
// was found. Every failure collapses to ("", false); nothing is returned as
// an error. Unexpected platform faults are logged once at debug level.
func (r *Resolver) Resolve(h model.Handle) (string, bool) {
	if h.IsZero() || r.lookup == nil {
		return "", false
	}

	name, err := r.readName(h)
	if err != nil {
		if !errors.Is(err, platform.ErrElementUnavailable) {
			r.logger.Debug("failed to get window title via accessibility tree",
				"handle", h,
				"error", err)
		}
		return "", false
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// readName performs the single lookup and converts panics raised inside the
// platform call into errors.
func (r *Resolver) readName(h model.Handle) (name string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("accessibility lookup panicked: %v", p)
		}
	}()

	node, err := r.lookup.Lookup(h)
	if err != nil {
		return "", err
	}
	if node == nil {
		return "", nil
	}
	defer node.Release()

	return node.Name()
}
