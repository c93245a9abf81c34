package windows

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/mj1618/wintitle/internal/platform"
)

const (
	hrSFalse              = 0x00000001
	hrRPCChangedMode      = 0x80010106 // RPC_E_CHANGED_MODE
	hrElementNotAvailable = 0x80040201 // UIA_E_ELEMENTNOTAVAILABLE
	hrInvalidWindowHandle = 0x80070578 // HRESULT_FROM_WIN32(ERROR_INVALID_WINDOW_HANDLE)
)

func failed(hr uintptr) bool {
	return int32(uint32(hr)) < 0
}

// hresultError converts a failing HRESULT into an error, wrapping
// platform.ErrElementUnavailable for the codes that mean the window is gone.
func hresultError(op string, hr uintptr) error {
	oleErr := ole.NewError(hr)
	switch uint32(hr) {
	case hrElementNotAvailable, hrInvalidWindowHandle:
		return fmt.Errorf("%s: %w (%v)", op, platform.ErrElementUnavailable, oleErr)
	}
	return fmt.Errorf("%s: %w", op, oleErr)
}
