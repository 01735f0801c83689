// Package action defines the uniform in-memory model for one input step.
package action

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the kind of input action to execute.
type Kind string

const (
	// KindMove moves the cursor to a monitor-local coordinate.
	KindMove Kind = "move"
	// KindClick presses and releases a mouse button.
	KindClick Kind = "click"
	// KindDrag drags from the current cursor position to a target.
	KindDrag Kind = "drag"
	// KindDragFrom drags between two explicit coordinates.
	KindDragFrom Kind = "drag_from"
	// KindKey presses a symbolic or literal key.
	KindKey Kind = "key"
	// KindType types a text string character by character.
	KindType Kind = "type"
	// KindWait sleeps without touching the backend.
	KindWait Kind = "wait"
	// KindScroll scrolls the wheel by a signed amount.
	KindScroll Kind = "scroll"
)

// Button identifies a mouse button.
type Button string

const (
	// ButtonLeft is the primary mouse button.
	ButtonLeft Button = "left"
	// ButtonRight is the secondary mouse button.
	ButtonRight Button = "right"
)

// ParseButton validates a mouse button name.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	default:
		return "", fmt.Errorf("unknown button %q (want left or right)", s)
	}
}

// modifierAliases maps accepted spellings to canonical modifier names.
var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"cmd":     "cmd",
	"command": "cmd",
	"super":   "cmd",
	"win":     "cmd",
}

// NormalizeModifiers lowercases, canonicalizes and de-duplicates modifier names.
func NormalizeModifiers(mods []string) ([]string, error) {
	if len(mods) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(mods))
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		name, ok := modifierAliases[strings.ToLower(strings.TrimSpace(m))]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q (want ctrl, alt, shift or cmd)", m)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// Action is one fully resolved step of a sequence. Instances are immutable
// after construction; the executor only reads them.
type Action struct {
	Kind Kind

	DelayBefore time.Duration
	DelayAfter  time.Duration

	// X, Y is the move target or drag end point in monitor-local space.
	X, Y int
	// FromX, FromY is the drag_from start point.
	FromX, FromY int
	Monitor      int
	IgnoreBounds bool

	Smooth   bool
	Duration time.Duration
	Steps    int

	Button   Button
	Count    int
	Interval time.Duration

	Key       string
	Modifiers []string

	Text string

	Wait time.Duration

	Amount int

	ClickBefore bool
	ClickAfter  bool
}

// String renders a short human-readable form used in logs and errors.
func (a Action) String() string {
	switch a.Kind {
	case KindMove:
		return fmt.Sprintf("move(%d, %d)", a.X, a.Y)
	case KindClick:
		return fmt.Sprintf("click(%s x%d)", a.Button, a.Count)
	case KindDrag:
		return fmt.Sprintf("drag(-> %d, %d)", a.X, a.Y)
	case KindDragFrom:
		return fmt.Sprintf("drag(%d, %d -> %d, %d)", a.FromX, a.FromY, a.X, a.Y)
	case KindKey:
		if len(a.Modifiers) > 0 {
			return fmt.Sprintf("key(%s+%s)", strings.Join(a.Modifiers, "+"), a.Key)
		}
		return fmt.Sprintf("key(%s)", a.Key)
	case KindType:
		return fmt.Sprintf("type(%d chars)", len([]rune(a.Text)))
	case KindWait:
		return fmt.Sprintf("wait(%s)", a.Wait)
	case KindScroll:
		return fmt.Sprintf("scroll(%d)", a.Amount)
	default:
		return string(a.Kind)
	}
}
