//go:build windows

package windows

import (
	"fmt"
	"sort"
	"syscall"
	"unsafe"

	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
	win "golang.org/x/sys/windows"
)

var (
	user32                   = win.NewLazySystemDLL("user32.dll")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
)

// TextReader implements platform.TextReader with GetWindowTextW.
type TextReader struct{}

// NewTextReader creates a new direct title reader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// WindowText returns the caption of h as reported by GetWindowTextW.
// Windows whose caption lives in another security context report "".
func (r *TextReader) WindowText(h model.Handle) (string, error) {
	hwnd := win.HWND(h)
	if !win.IsWindow(hwnd) {
		return "", fmt.Errorf("GetWindowTextW %v: %w", h, platform.ErrElementUnavailable)
	}

	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return "", nil
	}

	buf := make([]uint16, n+1)
	// A zero count here means the caption was cleared after the length query.
	copied, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if copied == 0 || copied > uintptr(len(buf)) {
		return "", nil
	}
	return win.UTF16ToString(buf[:copied]), nil
}

// WindowLister implements platform.WindowLister with EnumWindows.
type WindowLister struct {
	reader *TextReader
}

// NewWindowLister creates a lister that fills titles with reader.
func NewWindowLister(reader *TextReader) *WindowLister {
	return &WindowLister{reader: reader}
}

var enumWindowsCallback = syscall.NewCallback(func(hwnd win.HWND, lParam uintptr) uintptr {
	handles := (*[]win.HWND)(unsafe.Pointer(lParam))
	*handles = append(*handles, hwnd)
	return 1 // continue enumeration
})

// ListWindows returns every top-level window, sorted by handle.
func (l *WindowLister) ListWindows() ([]model.Window, error) {
	var handles []win.HWND
	if err := win.EnumWindows(enumWindowsCallback, unsafe.Pointer(&handles)); err != nil {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}

	windows := make([]model.Window, 0, len(handles))
	for _, hwnd := range handles {
		h := model.Handle(hwnd)
		// Windows destroyed since enumeration are skipped.
		title, err := l.reader.WindowText(h)
		if err != nil {
			continue
		}

		var pid uint32
		_, _ = win.GetWindowThreadProcessId(hwnd, &pid)

		windows = append(windows, model.Window{
			Handle:  h,
			Title:   title,
			Class:   className(hwnd),
			PID:     int(pid),
			Visible: win.IsWindowVisible(hwnd),
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Handle < windows[j].Handle
	})
	return windows, nil
}

func className(hwnd win.HWND) string {
	buf := make([]uint16, 256)
	n, err := win.GetClassName(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return win.UTF16ToString(buf[:n])
}
