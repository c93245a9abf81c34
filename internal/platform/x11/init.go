//go:build linux

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil"
	"github.com/mj1618/wintitle/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		xu, err := xgbutil.NewConn()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to X11: %w", err)
		}
		reader := NewTextReader(xu)
		return &platform.Provider{
			NodeLookup:   NewNameLookup(xu),
			TextReader:   reader,
			WindowLister: NewWindowLister(xu, reader),
		}, nil
	}
}
