//go:build windows

package windows

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/platform"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

// automationVtbl mirrors the leading slots of the IUIAutomation vtable.
type automationVtbl struct {
	ole.IUnknownVtbl
	CompareElements   uintptr
	CompareRuntimeIds uintptr
	GetRootElement    uintptr
	ElementFromHandle uintptr
}

// elementVtbl mirrors the IUIAutomationElement vtable up to get_CurrentName.
type elementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                    uintptr
	GetRuntimeId                uintptr
	FindFirst                   uintptr
	FindAll                     uintptr
	FindFirstBuildCache         uintptr
	FindAllBuildCache           uintptr
	BuildUpdatedCache           uintptr
	GetCurrentPropertyValue     uintptr
	GetCurrentPropertyValueEx   uintptr
	GetCachedPropertyValue      uintptr
	GetCachedPropertyValueEx    uintptr
	GetCurrentPatternAs         uintptr
	GetCachedPatternAs          uintptr
	GetCurrentPattern           uintptr
	GetCachedPattern            uintptr
	GetCachedParent             uintptr
	GetCachedChildren           uintptr
	CurrentProcessId            uintptr
	CurrentControlType          uintptr
	CurrentLocalizedControlType uintptr
	CurrentName                 uintptr
}

func automationVtable(v *ole.IUnknown) *automationVtbl {
	return (*automationVtbl)(unsafe.Pointer(v.RawVTable))
}

func elementVtable(v *ole.IUnknown) *elementVtbl {
	return (*elementVtbl)(unsafe.Pointer(v.RawVTable))
}

// AutomationLookup implements platform.NodeLookup with UI Automation.
type AutomationLookup struct{}

// NewAutomationLookup creates a new UI Automation lookup.
func NewAutomationLookup() *AutomationLookup {
	return &AutomationLookup{}
}

// Lookup resolves h to its UI Automation element. The calling goroutine is
// pinned to its OS thread until the returned node is released.
func (l *AutomationLookup) Lookup(h model.Handle) (platform.Node, error) {
	runtime.LockOSThread()

	uninit, err := comInitialize()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("CoInitializeEx: %w", err)
	}
	n := &automationNode{uninit: uninit}

	automation, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		n.Release()
		return nil, fmt.Errorf("create CUIAutomation: %w", err)
	}
	n.automation = automation

	var element *ole.IUnknown
	hr, _, _ := syscall.SyscallN(
		automationVtable(automation).ElementFromHandle,
		uintptr(unsafe.Pointer(automation)),
		uintptr(h),
		uintptr(unsafe.Pointer(&element)),
	)
	if failed(hr) {
		n.Release()
		return nil, hresultError("ElementFromHandle", hr)
	}
	if element == nil {
		n.Release()
		return nil, nil
	}
	n.element = element
	return n, nil
}

// automationNode owns one IUIAutomationElement and the COM state needed to
// use it.
type automationNode struct {
	automation *ole.IUnknown
	element    *ole.IUnknown
	uninit     bool
	released   bool
}

func (n *automationNode) Name() (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(
		elementVtable(n.element).CurrentName,
		uintptr(unsafe.Pointer(n.element)),
		uintptr(unsafe.Pointer(&bstr)),
	)
	if failed(hr) {
		return "", hresultError("get_CurrentName", hr)
	}
	if bstr == nil {
		return "", nil
	}
	defer ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return ole.BstrToString(bstr), nil
}

func (n *automationNode) Release() {
	if n.released {
		return
	}
	n.released = true
	if n.element != nil {
		n.element.Release()
	}
	if n.automation != nil {
		n.automation.Release()
	}
	if n.uninit {
		ole.CoUninitialize()
	}
	runtime.UnlockOSThread()
}

// comInitialize joins the multithreaded apartment. It reports whether a
// matching CoUninitialize is owed.
func comInitialize() (bool, error) {
	err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	if err == nil {
		return true, nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		switch uint32(oleErr.Code()) {
		case hrSFalse:
			return true, nil
		case hrRPCChangedMode:
			// Thread already lives in an STA; UI Automation works there too.
			return false, nil
		}
	}
	return false, err
}
