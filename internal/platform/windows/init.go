//go:build windows

package windows

import "github.com/mj1618/wintitle/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		reader := NewTextReader()
		return &platform.Provider{
			NodeLookup:   NewAutomationLookup(),
			TextReader:   reader,
			WindowLister: NewWindowLister(reader),
		}, nil
	}
}
