// Package backend abstracts the OS input-simulation layer.
package backend

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/frudas24/cursorctl/internal/action"

	_ "github.com/go-vgo/robotgo/base"  // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/key"   // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/mouse" // Blank import for robotgo C sources
)

// RobotBackend injects input through robotgo on every supported platform.
type RobotBackend struct{}

// MoveTo moves the cursor to an absolute screen coordinate.
func (r *RobotBackend) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// Click presses and releases a mouse button at the current position.
func (r *RobotBackend) Click(button action.Button) error {
	robotgo.Click(string(button), false)
	return nil
}

// ButtonDown presses and holds a mouse button.
func (r *RobotBackend) ButtonDown(button action.Button) error {
	if err := robotgo.Toggle(string(button)); err != nil {
		return fmt.Errorf("button down %s: %w", button, err)
	}
	return nil
}

// ButtonUp releases a held mouse button.
func (r *RobotBackend) ButtonUp(button action.Button) error {
	if err := robotgo.Toggle(string(button), "up"); err != nil {
		return fmt.Errorf("button up %s: %w", button, err)
	}
	return nil
}

// PressKey taps a key with optional held modifiers.
func (r *RobotBackend) PressKey(key string, modifiers []string) error {
	name, err := normalizeKey(key)
	if err != nil {
		return err
	}
	args := make([]interface{}, 0, len(modifiers))
	for _, m := range modifiers {
		args = append(args, m)
	}
	if err := robotgo.KeyTap(name, args...); err != nil {
		return fmt.Errorf("key tap %s: %w", name, err)
	}
	return nil
}

// TypeText types unicode text into the focused window.
func (r *RobotBackend) TypeText(text string) error {
	if text == "" {
		return nil
	}
	robotgo.TypeStr(text)
	return nil
}

// Scroll scrolls the wheel vertically by a signed notch amount.
func (r *RobotBackend) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

// CursorPos reports the current cursor position.
func (r *RobotBackend) CursorPos() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}
