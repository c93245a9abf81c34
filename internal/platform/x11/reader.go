//go:build linux

package x11

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
)

// classifyPropertyError maps xprop failures onto the platform contract.
// xgbutil flattens X errors into strings, so matching is textual.
func classifyPropertyError(op string, h model.Handle, err error) (missing bool, out error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "No such property"):
		return true, nil
	case strings.Contains(msg, "BadWindow"):
		return false, fmt.Errorf("%s %v: %w", op, h, platform.ErrElementUnavailable)
	default:
		return false, fmt.Errorf("%s %v: %w", op, h, err)
	}
}

// TextReader implements platform.TextReader with the ICCCM WM_NAME property.
type TextReader struct {
	xu *xgbutil.XUtil
}

// NewTextReader creates a direct title reader on an open X connection.
func NewTextReader(xu *xgbutil.XUtil) *TextReader {
	return &TextReader{xu: xu}
}

func (r *TextReader) WindowText(h model.Handle) (string, error) {
	name, err := icccm.WmNameGet(r.xu, xproto.Window(h))
	if err != nil {
		if missing, err := classifyPropertyError("WM_NAME", h, err); !missing {
			return "", err
		}
		return "", nil
	}
	return name, nil
}

// NameLookup implements platform.NodeLookup with EWMH _NET_WM_NAME.
type NameLookup struct {
	xu *xgbutil.XUtil
}

// NewNameLookup creates a node lookup on an open X connection.
func NewNameLookup(xu *xgbutil.XUtil) *NameLookup {
	return &NameLookup{xu: xu}
}

func (l *NameLookup) Lookup(h model.Handle) (platform.Node, error) {
	name, err := ewmh.WmNameGet(l.xu, xproto.Window(h))
	if err != nil {
		missing, err := classifyPropertyError("_NET_WM_NAME", h, err)
		if !missing {
			return nil, err
		}
		return clientNode{}, nil
	}
	return clientNode{name: name}, nil
}

// clientNode is a snapshot of the properties read during Lookup.
type clientNode struct {
	name string
}

func (n clientNode) Name() (string, error) { return n.name, nil }
func (n clientNode) Release()              {}

// WindowLister implements platform.WindowLister with _NET_CLIENT_LIST.
type WindowLister struct {
	xu     *xgbutil.XUtil
	reader *TextReader
}

// NewWindowLister creates a lister that fills titles with reader.
func NewWindowLister(xu *xgbutil.XUtil, reader *TextReader) *WindowLister {
	return &WindowLister{xu: xu, reader: reader}
}

// ListWindows returns every managed client window, sorted by ID.
func (l *WindowLister) ListWindows() ([]model.Window, error) {
	clients, err := ewmh.ClientListGet(l.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	windows := make([]model.Window, 0, len(clients))
	for _, id := range clients {
		h := model.Handle(id)
		// Clients destroyed since the list was read are skipped.
		title, err := l.reader.WindowText(h)
		if err != nil {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(l.xu, id); err == nil {
			pid = int(p)
		}

		class := ""
		if wmClass, err := icccm.WmClassGet(l.xu, id); err == nil {
			class = strings.TrimSpace(wmClass.Class)
		}

		windows = append(windows, model.Window{
			Handle:  h,
			Title:   title,
			Class:   class,
			PID:     pid,
			Visible: l.isVisible(id),
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Handle < windows[j].Handle
	})
	return windows, nil
}

func (l *WindowLister) isVisible(id xproto.Window) bool {
	states, err := ewmh.WmStateGet(l.xu, id)
	if err != nil {
		return true
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_HIDDEN" {
			return false
		}
	}
	return true
}
