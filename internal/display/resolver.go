// Package display describes monitor geometry and resolves logical
// coordinates to absolute screen positions.
package display

import "fmt"

// Policy controls how out-of-bounds coordinates are treated.
type Policy string

const (
	// PolicyWarn logs a warning and lets execution proceed.
	PolicyWarn Policy = "warn"
	// PolicyIgnore skips bounds checking entirely.
	PolicyIgnore Policy = "ignore"
	// PolicyStrict fails resolution on out-of-bounds coordinates.
	PolicyStrict Policy = "strict"
)

// ParsePolicy validates a bounds policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyWarn, PolicyIgnore, PolicyStrict:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown bounds policy %q (want warn, ignore or strict)", s)
	}
}

// UnknownMonitorError reports a monitor index absent from the enumeration.
type UnknownMonitorError struct {
	Index int
	Count int
}

// Error describes the unknown index and how many displays exist.
func (e *UnknownMonitorError) Error() string {
	return fmt.Sprintf("unknown monitor index %d (%d displays available)", e.Index, e.Count)
}

// OutOfBoundsError reports a coordinate outside its display. Under the
// default warn policy its message is surfaced as a warning instead of an
// error.
type OutOfBoundsError struct {
	X, Y    int
	Display Display
}

// Error describes the offending coordinate and the display bounds.
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("coordinates (%d, %d) are outside %s bounds (%dx%d)",
		e.X, e.Y, e.Display.Name, e.Display.Width, e.Display.Height)
}

// Resolver maps (monitor, x, y) logical targets to absolute screen
// coordinates against a fixed display snapshot.
type Resolver struct {
	displays []Display
	policy   Policy
}

// NewResolver builds a resolver over a display snapshot.
func NewResolver(displays []Display, policy Policy) *Resolver {
	if policy == "" {
		policy = PolicyWarn
	}
	return &Resolver{displays: displays, policy: policy}
}

// Displays returns the snapshot the resolver was built over.
func (r *Resolver) Displays() []Display {
	return r.displays
}

// Resolve translates a monitor-local coordinate to the absolute virtual
// screen position. A non-empty warn string flags an advisory out-of-bounds
// coordinate; err is set for unknown monitors and, under the strict
// policy, for out-of-bounds coordinates.
func (r *Resolver) Resolve(monitor, x, y int, ignoreBounds bool) (ax, ay int, warn string, err error) {
	d, ok := ByIndex(r.displays, monitor)
	if !ok {
		return 0, 0, "", &UnknownMonitorError{Index: monitor, Count: len(r.displays)}
	}

	ax = d.OffsetX + x
	ay = d.OffsetY + y

	if ignoreBounds || r.policy == PolicyIgnore {
		return ax, ay, "", nil
	}
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		oob := &OutOfBoundsError{X: x, Y: y, Display: d}
		if r.policy == PolicyStrict {
			return 0, 0, "", oob
		}
		return ax, ay, oob.Error(), nil
	}
	return ax, ay, "", nil
}
