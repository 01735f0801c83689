// Package action defines the uniform in-memory model for one input step.
package action

import (
	"fmt"
	"time"
)

// Hardcoded fallbacks applied when neither the action nor the global
// defaults specify a value.
const (
	DefaultClickCount     = 1
	DefaultClickInterval  = 100 * time.Millisecond
	DefaultKeyInterval    = 100 * time.Millisecond
	DefaultTypeInterval   = 50 * time.Millisecond
	DefaultScrollSteps    = 10
	DefaultScrollInterval = 10 * time.Millisecond
	DefaultSmoothDuration = time.Second
	DefaultSmoothSteps    = 100
)

// Defaults holds the global fallback values established by --global-* flags.
// A nil field means no global override exists for that field. Constructed
// once per invocation and read-only thereafter.
type Defaults struct {
	Delay    *time.Duration
	Smooth   *bool
	Duration *time.Duration
	Steps    *int
	Button   *Button
	Interval *time.Duration
}

// Draft is a partially specified action produced by the parsers. Optional
// fields stay nil when the surface did not set them, so default merging can
// distinguish "unset" from an explicit zero.
type Draft struct {
	Kind Kind

	X, Y         int
	FromX, FromY int
	Key          string
	Text         string
	Seconds      float64
	Amount       int

	DelayBefore  *time.Duration
	DelayAfter   *time.Duration
	Monitor      *int
	IgnoreBounds *bool
	Smooth       *bool
	Duration     *time.Duration
	Steps        *int
	Button       *Button
	Count        *int
	Interval     *time.Duration
	Double       *bool
	Modifiers    []string
	ClickBefore  *bool
	ClickAfter   *bool
}

// Resolve merges the draft with global defaults and hardcoded fallbacks,
// producing an immutable Action. The merge rule is uniform across all
// surfaces: explicit override, else global default, else fallback.
func (d Draft) Resolve(def Defaults) (Action, error) {
	a := Action{
		Kind:         d.Kind,
		X:            d.X,
		Y:            d.Y,
		FromX:        d.FromX,
		FromY:        d.FromY,
		Key:          d.Key,
		Text:         d.Text,
		Amount:       d.Amount,
		DelayBefore:  pickDuration(d.DelayBefore, def.Delay, 0),
		DelayAfter:   pickDuration(d.DelayAfter, nil, 0),
		Monitor:      pickInt(d.Monitor, nil, 0),
		IgnoreBounds: pickBool(d.IgnoreBounds, nil, false),
	}

	switch d.Kind {
	case KindMove:
		a.Smooth = pickBool(d.Smooth, def.Smooth, false)
		a.Duration = pickDuration(d.Duration, def.Duration, DefaultSmoothDuration)
		a.Steps = pickInt(d.Steps, def.Steps, DefaultSmoothSteps)
	case KindClick:
		a.Button = pickButton(d.Button, def.Button, ButtonLeft)
		a.Count = pickInt(d.Count, nil, DefaultClickCount)
		a.Interval = pickDuration(d.Interval, def.Interval, DefaultClickInterval)
	case KindDrag, KindDragFrom:
		a.Button = pickButton(d.Button, def.Button, ButtonLeft)
		a.Smooth = pickBool(d.Smooth, def.Smooth, false)
		a.Duration = pickDuration(d.Duration, def.Duration, DefaultSmoothDuration)
		a.Steps = pickInt(d.Steps, def.Steps, DefaultSmoothSteps)
		a.Count = pickInt(d.Count, nil, DefaultClickCount)
		a.Interval = pickDuration(d.Interval, def.Interval, DefaultClickInterval)
		a.ClickBefore = pickBool(d.ClickBefore, nil, false)
		a.ClickAfter = pickBool(d.ClickAfter, nil, false)
	case KindKey:
		if d.Key == "" {
			return Action{}, fmt.Errorf("key action requires a key name")
		}
		mods, err := NormalizeModifiers(d.Modifiers)
		if err != nil {
			return Action{}, err
		}
		a.Modifiers = mods
		a.Count = pickInt(d.Count, nil, DefaultClickCount)
		a.Interval = pickDuration(d.Interval, def.Interval, DefaultKeyInterval)
	case KindType:
		a.Interval = pickDuration(d.Interval, def.Interval, DefaultTypeInterval)
	case KindWait:
		if d.Seconds < 0 {
			return Action{}, fmt.Errorf("wait seconds must be non-negative, got %v", d.Seconds)
		}
		a.Wait = time.Duration(d.Seconds * float64(time.Second))
	case KindScroll:
		a.Steps = pickInt(d.Steps, def.Steps, DefaultScrollSteps)
		a.Interval = pickDuration(d.Interval, def.Interval, DefaultScrollInterval)
	default:
		return Action{}, fmt.Errorf("unknown action kind %q", d.Kind)
	}

	// double always wins over any explicit count
	if pickBool(d.Double, nil, false) {
		a.Count = 2
	}

	if err := a.validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// validate rejects negative timing and count values. Zero counts are
// legal no-ops, never errors.
func (a Action) validate() error {
	for _, c := range []struct {
		name string
		d    time.Duration
	}{
		{"delay-before", a.DelayBefore},
		{"delay-after", a.DelayAfter},
		{"duration", a.Duration},
		{"interval", a.Interval},
		{"wait", a.Wait},
	} {
		if c.d < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", c.name, c.d)
		}
	}
	if a.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", a.Count)
	}
	if a.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", a.Steps)
	}
	if a.Monitor < 0 {
		return fmt.Errorf("monitor index must be non-negative, got %d", a.Monitor)
	}
	return nil
}

// pickDuration returns the first non-nil duration, else the fallback.
func pickDuration(override, global *time.Duration, fallback time.Duration) time.Duration {
	if override != nil {
		return *override
	}
	if global != nil {
		return *global
	}
	return fallback
}

// pickInt returns the first non-nil int, else the fallback.
func pickInt(override, global *int, fallback int) int {
	if override != nil {
		return *override
	}
	if global != nil {
		return *global
	}
	return fallback
}

// pickBool returns the first non-nil bool, else the fallback.
func pickBool(override, global *bool, fallback bool) bool {
	if override != nil {
		return *override
	}
	if global != nil {
		return *global
	}
	return fallback
}

// pickButton returns the first non-nil button, else the fallback.
func pickButton(override, global *Button, fallback Button) Button {
	if override != nil {
		return *override
	}
	if global != nil {
		return *global
	}
	return fallback
}
