//go:build windows

// Package display describes monitor geometry and resolves logical
// coordinates to absolute screen positions.
package display

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// Enumerate returns the normalized list of displays using WinAPI.
func Enumerate() ([]Display, error) {
	state := &enumState{}
	callback := syscall.NewCallback(state.enumProc)

	if ok := win.EnumDisplayMonitors(0, nil, callback, 0); !ok {
		return nil, fmt.Errorf("EnumDisplayMonitors failed")
	}
	if len(state.list) == 0 {
		return nil, fmt.Errorf("no monitors detected")
	}
	return Normalize(state.list), nil
}

type enumState struct {
	list []Display
}

func (s *enumState) enumProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(hMonitor, &info) {
		return 1
	}

	r := info.RcMonitor
	s.list = append(s.list, Display{
		OffsetX: int(r.Left),
		OffsetY: int(r.Top),
		Width:   int(r.Right - r.Left),
		Height:  int(r.Bottom - r.Top),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	})
	return 1
}
