//go:build windows

package registry

import (
	"context"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/Iron-Ham/vslaunch/internal/editor/dte"
	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/logging"
)

func init() {
	// COM apartment state belongs to an OS thread; keep main on one.
	runtime.LockOSThread()
}

var (
	modole32                  = windows.NewLazySystemDLL("ole32.dll")
	procGetRunningObjectTable = modole32.NewProc("GetRunningObjectTable")
	procCreateBindCtx         = modole32.NewProc("CreateBindCtx")
)

// vtable slots
const (
	slotRelease = 2

	slotROTGetObject   = 6
	slotROTEnumRunning = 9

	slotEnumNext  = 3
	slotEnumReset = 5

	slotMonikerGetDisplayName = 20
)

// runningObjectTable enumerates the Windows Running Object Table.
type runningObjectTable struct {
	logger *logging.Logger
}

// NewSystem returns the Registry backed by the Windows Running Object Table.
func NewSystem(logger *logging.Logger) Registry {
	return &runningObjectTable{logger: logging.OrNop(logger).WithPhase("rot")}
}

func (r *runningObjectTable) Enumerate(ctx context.Context) ([]Entry, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE: already initialized on this thread.
		r.logger.Debug("CoInitializeEx", "result", err.Error())
	}

	var rot uintptr
	if hr, _, _ := procGetRunningObjectTable.Call(0, uintptr(unsafe.Pointer(&rot))); hr != 0 || rot == 0 {
		return nil, errors.Wrapf(errors.ErrRegistryUnavailable, "GetRunningObjectTable hr=0x%08x", uint32(hr))
	}
	defer comRelease(rot)

	var enum uintptr
	if hr := comCall(rot, slotROTEnumRunning, uintptr(unsafe.Pointer(&enum))); hr != 0 || enum == 0 {
		return nil, errors.Wrapf(errors.ErrRegistryUnavailable, "EnumRunning hr=0x%08x", uint32(hr))
	}
	defer comRelease(enum)
	comCall(enum, slotEnumReset)

	var entries []Entry
	seen := make(map[string]bool)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var moniker uintptr
		var fetched uint32
		hr := comCall(enum, slotEnumNext, 1, uintptr(unsafe.Pointer(&moniker)), uintptr(unsafe.Pointer(&fetched)))
		if hr != 0 || fetched == 0 || moniker == 0 {
			break
		}

		entry, ok := r.readEntry(rot, moniker)
		comRelease(moniker)
		if ok && !seen[entry.Name] {
			seen[entry.Name] = true
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// readEntry resolves a moniker's display name and bound object.
func (r *runningObjectTable) readEntry(rot, moniker uintptr) (Entry, bool) {
	var bindCtx uintptr
	if hr, _, _ := procCreateBindCtx.Call(0, uintptr(unsafe.Pointer(&bindCtx))); hr != 0 || bindCtx == 0 {
		return Entry{}, false
	}
	defer comRelease(bindCtx)

	var namePtr *uint16
	if hr := comCall(moniker, slotMonikerGetDisplayName, bindCtx, 0, uintptr(unsafe.Pointer(&namePtr))); hr != 0 || namePtr == nil {
		return Entry{}, false
	}
	name := windows.UTF16PtrToString(namePtr)
	windows.CoTaskMemFree(unsafe.Pointer(namePtr))

	var unk *ole.IUnknown
	if hr := comCall(rot, slotROTGetObject, moniker, uintptr(unsafe.Pointer(&unk))); hr != 0 || unk == nil {
		r.logger.Debug("GetObject failed", "name", name, "hr", uint32(hr))
		return Entry{Name: name}, true
	}
	defer unk.Release()

	disp, err := unk.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return Entry{Name: name}, true
	}
	return Entry{Name: name, Automation: dte.New(disp)}, true
}

// comCall invokes vtable slot method on obj with obj as the implicit this.
func comCall(obj uintptr, method int, args ...uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(method)*unsafe.Sizeof(uintptr(0))))
	hr, _, _ := syscall.SyscallN(fn, append([]uintptr{obj}, args...)...)
	return hr
}

func comRelease(obj uintptr) {
	if obj != 0 {
		comCall(obj, slotRelease)
	}
}
