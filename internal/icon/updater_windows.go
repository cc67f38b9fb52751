//go:build windows

package icon

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procBeginUpdateResourceW = kernel32.NewProc("BeginUpdateResourceW")
	procUpdateResourceW      = kernel32.NewProc("UpdateResourceW")
	procEndUpdateResourceW   = kernel32.NewProc("EndUpdateResourceW")
)

// winUpdater drives the kernel32 resource-update transaction.
type winUpdater struct {
	handle windows.Handle
}

func newUpdater() Updater { return &winUpdater{} }

func (u *winUpdater) Begin(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	ret, _, callErr := procBeginUpdateResourceW.Call(
		uintptr(unsafe.Pointer(p)),
		0, // keep existing resources
	)
	if ret == 0 {
		return callErr
	}
	u.handle = windows.Handle(ret)
	return nil
}

func (u *winUpdater) Update(resType, id uint16, data []byte) error {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	ret, _, callErr := procUpdateResourceW.Call(
		uintptr(u.handle),
		uintptr(resType),
		uintptr(id),
		0, // LANG_NEUTRAL
		uintptr(ptr),
		uintptr(len(data)),
	)
	if ret == 0 {
		return callErr
	}
	return nil
}

func (u *winUpdater) End(commit bool) error {
	discard := uintptr(1)
	if commit {
		discard = 0
	}
	ret, _, callErr := procEndUpdateResourceW.Call(uintptr(u.handle), discard)
	if ret == 0 {
		return callErr
	}
	return nil
}
