// Package parse lowers the three CLI surfaces into ordered action lists.
package parse

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/cursorctl/internal/action"
)

// step mirrors one element of a JSON or YAML sequence document. This
// surface is the only one exposing every action field. Pointer fields
// distinguish "absent" from an explicit zero for default merging.
type step struct {
	Type string `json:"type" yaml:"type"`

	X  *int `json:"x,omitempty" yaml:"x,omitempty"`
	Y  *int `json:"y,omitempty" yaml:"y,omitempty"`
	X1 *int `json:"x1,omitempty" yaml:"x1,omitempty"`
	Y1 *int `json:"y1,omitempty" yaml:"y1,omitempty"`
	X2 *int `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2 *int `json:"y2,omitempty" yaml:"y2,omitempty"`

	Monitor      *int  `json:"monitor_index,omitempty" yaml:"monitor_index,omitempty"`
	IgnoreBounds *bool `json:"ignore_bounds,omitempty" yaml:"ignore_bounds,omitempty"`

	Smooth   *bool    `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	Duration *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	Steps    *int     `json:"steps,omitempty" yaml:"steps,omitempty"`

	Button   *string  `json:"button,omitempty" yaml:"button,omitempty"`
	Count    *int     `json:"count,omitempty" yaml:"count,omitempty"`
	Interval *float64 `json:"interval,omitempty" yaml:"interval,omitempty"`
	Double   *bool    `json:"double,omitempty" yaml:"double,omitempty"`

	Key       string   `json:"key,omitempty" yaml:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
	Seconds *float64 `json:"seconds,omitempty" yaml:"seconds,omitempty"`
	Amount  *int     `json:"amount,omitempty" yaml:"amount,omitempty"`

	DelayBefore *float64 `json:"delay_before,omitempty" yaml:"delay_before,omitempty"`
	DelayAfter  *float64 `json:"delay_after,omitempty" yaml:"delay_after,omitempty"`

	ClickBefore *bool `json:"click_before,omitempty" yaml:"click_before,omitempty"`
	ClickAfter  *bool `json:"click_after,omitempty" yaml:"click_after,omitempty"`
}

// Sequence parses a JSON or YAML sequence document, given either inline
// or as a path to a file, into resolved actions.
func Sequence(arg string, def action.Defaults) ([]action.Action, error) {
	drafts, err := sequenceDrafts(arg)
	if err != nil {
		return nil, err
	}
	return resolveDrafts(drafts, def)
}

// sequenceDrafts decodes the document and lowers each step to a draft.
func sequenceDrafts(arg string) ([]action.Draft, error) {
	data, isYAML, err := sequenceSource(arg)
	if err != nil {
		return nil, err
	}

	var steps []step
	if isYAML {
		err = yaml.Unmarshal(data, &steps)
	} else {
		err = json.Unmarshal(data, &steps)
	}
	if err != nil {
		return nil, &ParseError{Fragment: "sequence", Err: err}
	}

	drafts := make([]action.Draft, 0, len(steps))
	for i, s := range steps {
		d, err := stepDraft(i, s)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// sequenceSource returns the document bytes and whether they are YAML.
// A leading `[` means an inline JSON array, a leading `-` an inline YAML
// list; anything else is a file path.
func sequenceSource(arg string) ([]byte, bool, error) {
	trimmed := strings.TrimSpace(arg)
	if strings.HasPrefix(trimmed, "[") {
		return []byte(trimmed), false, nil
	}
	if strings.HasPrefix(trimmed, "-") {
		return []byte(arg), true, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, false, &ParseError{Fragment: "sequence", Err: err}
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return data, true, nil
	default:
		return data, false, nil
	}
}

// stepDraft converts one decoded step into a draft.
func stepDraft(idx int, s step) (action.Draft, error) {
	fail := func(reason string) (action.Draft, error) {
		return action.Draft{}, &MalformedActionError{Index: idx, Reason: reason}
	}

	d := action.Draft{
		Monitor:      s.Monitor,
		IgnoreBounds: s.IgnoreBounds,
		Smooth:       s.Smooth,
		Steps:        s.Steps,
		Count:        s.Count,
		Double:       s.Double,
		Modifiers:    s.Modifiers,
		ClickBefore:  s.ClickBefore,
		ClickAfter:   s.ClickAfter,
		Key:          s.Key,
		Text:         s.Text,
		DelayBefore:  secondsPtr(s.DelayBefore),
		DelayAfter:   secondsPtr(s.DelayAfter),
		Duration:     secondsPtr(s.Duration),
		Interval:     secondsPtr(s.Interval),
	}
	if s.Button != nil {
		b, err := action.ParseButton(*s.Button)
		if err != nil {
			return fail(err.Error())
		}
		d.Button = &b
	}
	if s.Seconds != nil {
		d.Seconds = *s.Seconds
	}
	if s.Amount != nil {
		d.Amount = *s.Amount
	}

	switch strings.ToLower(s.Type) {
	case "move":
		if s.X == nil || s.Y == nil {
			return fail("move requires x and y")
		}
		d.Kind = action.KindMove
		d.X, d.Y = *s.X, *s.Y
	case "click":
		d.Kind = action.KindClick
	case "drag":
		// the end point may be given as x2/y2 or plain x/y
		ex, ey := s.X2, s.Y2
		if ex == nil || ey == nil {
			ex, ey = s.X, s.Y
		}
		if ex == nil || ey == nil {
			return fail("drag requires x2 and y2")
		}
		d.Kind = action.KindDrag
		d.X, d.Y = *ex, *ey
	case "drag_from":
		if s.X1 == nil || s.Y1 == nil || s.X2 == nil || s.Y2 == nil {
			return fail("drag_from requires x1, y1, x2 and y2")
		}
		d.Kind = action.KindDragFrom
		d.FromX, d.FromY = *s.X1, *s.Y1
		d.X, d.Y = *s.X2, *s.Y2
	case "key":
		d.Kind = action.KindKey
	case "type":
		d.Kind = action.KindType
	case "wait":
		d.Kind = action.KindWait
	case "scroll":
		d.Kind = action.KindScroll
	default:
		return action.Draft{}, &UnknownActionTypeError{Index: idx, Type: s.Type}
	}
	return d, nil
}

// secondsPtr converts an optional float seconds value to an optional
// duration.
func secondsPtr(v *float64) *time.Duration {
	if v == nil {
		return nil
	}
	d := seconds(*v)
	return &d
}
