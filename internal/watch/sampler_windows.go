//go:build windows

// Package watch reports live cursor position and click activity.
package watch

import "github.com/lxn/win"

// keyDown is set in the GetAsyncKeyState result while a key is held.
const keyDown = 0x8000

// WinSampler samples mouse button state through GetAsyncKeyState.
type WinSampler struct{}

// NewSampler returns the Windows button sampler.
func NewSampler() ButtonSampler {
	return &WinSampler{}
}

// Pressed reports whether the left and right buttons are currently held.
func (s *WinSampler) Pressed() (bool, bool) {
	left := win.GetAsyncKeyState(win.VK_LBUTTON)&keyDown != 0
	right := win.GetAsyncKeyState(win.VK_RBUTTON)&keyDown != 0
	return left, right
}
