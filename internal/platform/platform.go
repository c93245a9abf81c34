package platform

import "github.com/mj1618/wintitle/internal/model"

// Node is a transient handle to an element in the OS accessibility tree.
// It is only valid until Release is called.
type Node interface {
	// Name returns the element's display name, or "" when it has none.
	Name() (string, error)

	// Release frees the platform resources backing the node.
	Release()
}

// NodeLookup locates the accessibility node backing a window handle.
// Implementations return an error wrapping ErrElementUnavailable when the
// window has closed or can no longer be reached.
type NodeLookup interface {
	Lookup(h model.Handle) (Node, error)
}

// TextReader reads a window title with the direct window-text call.
type TextReader interface {
	WindowText(h model.Handle) (string, error)
}

// WindowLister enumerates top-level windows. Titles are filled in with the
// direct call only; callers decide whether to fall back.
type WindowLister interface {
	ListWindows() ([]model.Window, error)
}
