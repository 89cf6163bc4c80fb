package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32DLL            = syscall.NewLazyDLL("user32.dll")
	kernel32DLL          = syscall.NewLazyDLL("kernel32.dll")
	procGetLastInputInfo = user32DLL.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32DLL.NewProc("GetTickCount")
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	now, _, _ := procGetTickCount.Call()
	return idleSince(uint32(now), info.dwTime), nil
}

// idleSince compares 32-bit tick counts, which wrap every 49.7 days.
func idleSince(now, lastInput uint32) time.Duration {
	return time.Duration(now-lastInput) * time.Millisecond
}
