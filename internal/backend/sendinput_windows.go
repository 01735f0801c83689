//go:build windows

// Package backend abstracts the OS input-simulation layer.
package backend

import (
	"fmt"
	"unicode"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"

	"github.com/frudas24/cursorctl/internal/action"
)

// SendInputBackend injects input through the WinAPI SendInput call.
type SendInputBackend struct{}

// newSendInput returns the Windows SendInput backend.
func newSendInput() (Backend, error) {
	return &SendInputBackend{}, nil
}

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32, data uint32) error {
	input := win.MOUSE_INPUT{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:        dx,
			Dy:        dy,
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("SendInput mouse failed (error %d)", win.GetLastError())
	}
	return nil
}

// sendKeyboardInput dispatches a single keyboard input event.
func sendKeyboardInput(key win.KEYBDINPUT) error {
	input := win.KEYBD_INPUT{
		Type: win.INPUT_KEYBOARD,
		Ki:   key,
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("SendInput keyboard failed (error %d)", win.GetLastError())
	}
	return nil
}

// MoveTo moves the cursor to an absolute virtual-screen coordinate.
func (s *SendInputBackend) MoveTo(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	win.SetCursorPos(int32(x), int32(y))
	return nil
}

// buttonFlags returns the down and up event flags for a button.
func buttonFlags(button action.Button) (down, up uint32, err error) {
	switch button {
	case action.ButtonLeft:
		return win.MOUSEEVENTF_LEFTDOWN, win.MOUSEEVENTF_LEFTUP, nil
	case action.ButtonRight:
		return win.MOUSEEVENTF_RIGHTDOWN, win.MOUSEEVENTF_RIGHTUP, nil
	default:
		return 0, 0, fmt.Errorf("unknown button %q", button)
	}
}

// Click presses and releases a mouse button at the current position.
func (s *SendInputBackend) Click(button action.Button) error {
	if err := s.ButtonDown(button); err != nil {
		return err
	}
	return s.ButtonUp(button)
}

// ButtonDown presses and holds a mouse button.
func (s *SendInputBackend) ButtonDown(button action.Button) error {
	down, _, err := buttonFlags(button)
	if err != nil {
		return err
	}
	return sendMouseInput(down, 0, 0, 0)
}

// ButtonUp releases a held mouse button.
func (s *SendInputBackend) ButtonUp(button action.Button) error {
	_, up, err := buttonFlags(button)
	if err != nil {
		return err
	}
	return sendMouseInput(up, 0, 0, 0)
}

// modifierVk maps canonical modifier names to virtual-key codes.
var modifierVk = map[string]uint16{
	"ctrl":  win.VK_CONTROL,
	"alt":   win.VK_MENU,
	"shift": win.VK_SHIFT,
	"cmd":   win.VK_LWIN,
}

// namedVk maps canonical symbolic key names to virtual-key codes.
var namedVk = map[string]uint16{
	"enter": win.VK_RETURN, "tab": win.VK_TAB, "esc": win.VK_ESCAPE,
	"space": win.VK_SPACE, "backspace": win.VK_BACK, "delete": win.VK_DELETE,
	"insert": win.VK_INSERT, "up": win.VK_UP, "down": win.VK_DOWN,
	"left": win.VK_LEFT, "right": win.VK_RIGHT, "home": win.VK_HOME,
	"end": win.VK_END, "pageup": win.VK_PRIOR, "pagedown": win.VK_NEXT,
	"f1": win.VK_F1, "f2": win.VK_F2, "f3": win.VK_F3, "f4": win.VK_F4,
	"f5": win.VK_F5, "f6": win.VK_F6, "f7": win.VK_F7, "f8": win.VK_F8,
	"f9": win.VK_F9, "f10": win.VK_F10, "f11": win.VK_F11, "f12": win.VK_F12,
}

// vkForKey resolves a canonical key name to a virtual-key code.
func vkForKey(name string) (uint16, bool) {
	if vk, ok := namedVk[name]; ok {
		return vk, true
	}
	r := []rune(name)[0]
	if r >= 'a' && r <= 'z' {
		return uint16(unicode.ToUpper(r)), true
	}
	if r >= '0' && r <= '9' {
		return uint16(r), true
	}
	return 0, false
}

// PressKey taps a key with optional held modifiers.
func (s *SendInputBackend) PressKey(key string, modifiers []string) error {
	name, err := normalizeKey(key)
	if err != nil {
		return err
	}

	vk, ok := vkForKey(name)
	if !ok {
		// Punctuation without modifiers can be injected as unicode.
		if len(modifiers) == 0 && len([]rune(name)) == 1 {
			return s.TypeText(name)
		}
		return fmt.Errorf("key %q is not injectable with modifiers", key)
	}

	held := make([]uint16, 0, len(modifiers))
	for _, m := range modifiers {
		mv, ok := modifierVk[m]
		if !ok {
			return fmt.Errorf("unknown modifier %q", m)
		}
		if err := sendKeyboardInput(win.KEYBDINPUT{WVk: mv}); err != nil {
			releaseKeys(held)
			return err
		}
		held = append(held, mv)
	}

	if err := sendKeyboardInput(win.KEYBDINPUT{WVk: vk}); err != nil {
		releaseKeys(held)
		return err
	}
	if err := sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP}); err != nil {
		releaseKeys(held)
		return err
	}
	releaseKeys(held)
	return nil
}

// releaseKeys sends key-up events for held modifiers in reverse order.
func releaseKeys(held []uint16) {
	for i := len(held) - 1; i >= 0; i-- {
		_ = sendKeyboardInput(win.KEYBDINPUT{WVk: held[i], DwFlags: win.KEYEVENTF_KEYUP})
	}
}

// TypeText types unicode text into the focused window.
func (s *SendInputBackend) TypeText(text string) error {
	if text == "" {
		return nil
	}
	for _, code := range utf16.Encode([]rune(text)) {
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE}); err != nil {
			return err
		}
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE | win.KEYEVENTF_KEYUP}); err != nil {
			return err
		}
	}
	return nil
}

// wheelDelta is the WinAPI wheel unit for one scroll notch.
const wheelDelta = 120

// Scroll scrolls the wheel vertically by a signed notch amount.
func (s *SendInputBackend) Scroll(amount int) error {
	return sendMouseInput(win.MOUSEEVENTF_WHEEL, 0, 0, uint32(int32(amount*wheelDelta)))
}

// CursorPos reports the current cursor position.
func (s *SendInputBackend) CursorPos() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, fmt.Errorf("GetCursorPos failed (error %d)", win.GetLastError())
	}
	return int(pt.X), int(pt.Y), nil
}

// mapAbsolute converts screen coordinates to the WinAPI absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
