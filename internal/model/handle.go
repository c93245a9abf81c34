package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHandle is returned by ParseHandle for malformed input.
var ErrInvalidHandle = errors.New("invalid window handle")

// Handle is an opaque OS window identifier (an HWND on Windows, an X11
// window ID on Linux). Zero means "no window".
type Handle uintptr

// IsZero reports whether h is the null handle.
func (h Handle) IsZero() bool { return h == 0 }

// String renders h as 0x-prefixed upper-case hex.
func (h Handle) String() string {
	return fmt.Sprintf("0x%X", uintptr(h))
}

// MarshalText renders handles in hex, the way Spy++ and xprop show them.
func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// ParseHandle converts a decimal or 0x-prefixed hex string to a Handle.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidHandle)
	}
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidHandle, s, err)
	}
	return Handle(v), nil
}
