// Package testutil provides a recording backend for tests.
package testutil

import (
	"github.com/frudas24/cursorctl/internal/action"
	"github.com/frudas24/cursorctl/internal/backend"
)

// Call records a single backend invocation.
type Call struct {
	Name      string
	X         int
	Y         int
	Button    action.Button
	Key       string
	Modifiers []string
	Text      string
	Amount    int
}

// FakeBackend implements backend.Backend and records calls for tests.
// When FailAt is non-zero the FailAt-th call (1-based) returns FailErr.
type FakeBackend struct {
	Calls   []Call
	FailAt  int
	FailErr error

	PosX, PosY int
}

// Ensure FakeBackend implements the interface.
var _ backend.Backend = (*FakeBackend)(nil)

// record appends a call and applies the failure schedule.
func (f *FakeBackend) record(c Call) error {
	f.Calls = append(f.Calls, c)
	if f.FailAt > 0 && len(f.Calls) == f.FailAt {
		return f.FailErr
	}
	return nil
}

// MoveTo records an absolute move and tracks the cursor position.
func (f *FakeBackend) MoveTo(x, y int) error {
	err := f.record(Call{Name: "MoveTo", X: x, Y: y})
	if err == nil {
		f.PosX, f.PosY = x, y
	}
	return err
}

// Click records a click.
func (f *FakeBackend) Click(button action.Button) error {
	return f.record(Call{Name: "Click", Button: button})
}

// ButtonDown records a button press.
func (f *FakeBackend) ButtonDown(button action.Button) error {
	return f.record(Call{Name: "ButtonDown", Button: button})
}

// ButtonUp records a button release.
func (f *FakeBackend) ButtonUp(button action.Button) error {
	return f.record(Call{Name: "ButtonUp", Button: button})
}

// PressKey records a key press.
func (f *FakeBackend) PressKey(key string, modifiers []string) error {
	return f.record(Call{Name: "PressKey", Key: key, Modifiers: modifiers})
}

// TypeText records typed text.
func (f *FakeBackend) TypeText(text string) error {
	return f.record(Call{Name: "TypeText", Text: text})
}

// Scroll records a wheel delta.
func (f *FakeBackend) Scroll(amount int) error {
	return f.record(Call{Name: "Scroll", Amount: amount})
}

// CursorPos reports the tracked cursor position without recording a call.
func (f *FakeBackend) CursorPos() (int, int, error) {
	return f.PosX, f.PosY, nil
}

// Named returns the recorded calls matching a method name.
func (f *FakeBackend) Named(name string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
