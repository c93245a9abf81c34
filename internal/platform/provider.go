package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	NodeLookup   NodeLookup
	TextReader   TextReader
	WindowLister WindowLister
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("wintitle is not supported on %s/%s; supported: windows, linux (X11)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
