//go:build windows

package process

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const gwOwner = 4

var (
	moduser32                    = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = moduser32.NewProc("EnumWindows")
	procGetWindowThreadProcessID = moduser32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextLengthW     = moduser32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW           = moduser32.NewProc("GetWindowTextW")
	procIsWindowVisible          = moduser32.NewProc("IsWindowVisible")
	procGetWindow                = moduser32.NewProc("GetWindow")
)

// EnumWindows callbacks are a finite resource; one is shared and the search
// state is guarded by enumMu.
var (
	enumMu       sync.Mutex
	enumPID      uint32
	enumTitle    string
	enumCallback uintptr
	enumOnce     sync.Once
)

func enumWindow(hwnd, _ uintptr) uintptr {
	var owner uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&owner)))
	if owner != enumPID {
		return 1
	}
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1
	}
	if parent, _, _ := procGetWindow.Call(hwnd, gwOwner); parent != 0 {
		return 1
	}

	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return 1
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	enumTitle = windows.UTF16ToString(buf)
	return 0
}

// mainWindowTitle returns the caption of pid's first visible, unowned
// top-level window.
func mainWindowTitle(pid int) string {
	enumOnce.Do(func() {
		enumCallback = windows.NewCallback(enumWindow)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	enumPID = uint32(pid)
	enumTitle = ""
	procEnumWindows.Call(enumCallback, 0)
	return enumTitle
}
