// Package backend abstracts the OS input-simulation layer.
package backend

import (
	"fmt"

	"github.com/frudas24/cursorctl/internal/action"
)

// Backend defines the input primitives the executor drives. Coordinates
// are absolute virtual-screen positions.
type Backend interface {
	MoveTo(x, y int) error
	Click(button action.Button) error
	ButtonDown(button action.Button) error
	ButtonUp(button action.Button) error
	PressKey(key string, modifiers []string) error
	TypeText(text string) error
	Scroll(amount int) error
	CursorPos() (x, y int, err error)
}

// New returns the backend selected by name. An empty name picks the
// portable robotgo backend.
func New(name string) (Backend, error) {
	switch name {
	case "", "robotgo":
		return &RobotBackend{}, nil
	case "sendinput":
		return newSendInput()
	default:
		return nil, fmt.Errorf("unknown backend %q (want robotgo or sendinput)", name)
	}
}
