// Package parse lowers the three CLI surfaces into ordered action lists.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/cursorctl/internal/action"
)

// Mode selects what the invocation does. Informational modes and action
// execution are mutually exclusive.
type Mode int

const (
	// ModeRun executes a parsed action sequence.
	ModeRun Mode = iota
	// ModeHelp prints usage.
	ModeHelp
	// ModeResolution prints the primary display resolution.
	ModeResolution
	// ModeMonitors prints the display table.
	ModeMonitors
	// ModeWatch polls live cursor position and clicks.
	ModeWatch
)

// WatchOptions configures the live cursor reporter.
type WatchOptions struct {
	Interval time.Duration
	Duration time.Duration
	Clicks   bool
}

// Command is a fully parsed CLI invocation.
type Command struct {
	Mode     Mode
	Actions  []action.Action
	Defaults action.Defaults
	Watch    WatchOptions
}

// item preserves command-line ordering across the three entry points.
type item struct {
	draft *action.Draft
	do    string
	seq   string
}

// scanner walks raw argv left to right, maintaining the pending action a
// later override flag binds to.
type scanner struct {
	args       []string
	pos        int
	items      []item
	def        action.Defaults
	watch      WatchOptions
	mode       Mode
	modeFlag   string
	firstDelay *time.Duration
	ignoreAll  bool
}

// Args parses raw command-line arguments (excluding the program name)
// into a Command. Global defaults apply regardless of their position;
// actions and override binding follow argv order.
func Args(argv []string) (*Command, error) {
	s := &scanner{
		args:  argv,
		watch: WatchOptions{Interval: 500 * time.Millisecond, Clicks: true},
	}

	// Bare leading "X Y" is the original invocation form: one move.
	if len(argv) >= 2 {
		if x, err := strconv.Atoi(argv[0]); err == nil {
			if y, err := strconv.Atoi(argv[1]); err == nil {
				s.open(action.Draft{Kind: action.KindMove, X: x, Y: y})
				s.pos = 2
			}
		}
	}

	for s.pos < len(s.args) {
		tok := s.args[s.pos]
		s.pos++
		if err := s.flag(tok); err != nil {
			return nil, err
		}
		if s.mode == ModeHelp {
			return &Command{Mode: ModeHelp}, nil
		}
	}
	return s.finish()
}

// open commits the pending action implicitly and starts a new one.
func (s *scanner) open(d action.Draft) {
	s.items = append(s.items, item{draft: &d})
}

// pending returns the action the next override flag binds to.
func (s *scanner) pending() *action.Draft {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1].draft
}

// fail wraps a scanner error with the offending flag.
func fail(flag string, err error) error {
	return &ParseError{Fragment: flag, Err: err}
}

// failf wraps a formatted scanner error with the offending flag.
func failf(flag, format string, args ...interface{}) error {
	return fail(flag, fmt.Errorf(format, args...))
}

// splitFlag separates an inline `--name=value` token.
func splitFlag(tok string) (name, inline string, has bool) {
	if strings.HasPrefix(tok, "--") {
		if i := strings.IndexByte(tok, '='); i >= 0 {
			return tok[:i], tok[i+1:], true
		}
	}
	return tok, "", false
}

// value returns the flag's value from the inline form or the next token.
func (s *scanner) value(flag, inline string, has bool) (string, error) {
	if has {
		return inline, nil
	}
	if s.pos >= len(s.args) {
		return "", failf(flag, "missing value")
	}
	v := s.args[s.pos]
	s.pos++
	return v, nil
}

// intValue parses the flag's value as an integer.
func (s *scanner) intValue(flag, inline string, has bool) (int, error) {
	v, err := s.value(flag, inline, has)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, failf(flag, "bad integer %q", v)
	}
	return n, nil
}

// durValue parses the flag's value as float seconds.
func (s *scanner) durValue(flag, inline string, has bool) (time.Duration, error) {
	v, err := s.value(flag, inline, has)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, failf(flag, "bad number %q", v)
	}
	return seconds(f), nil
}

// coords consumes n required positional tokens following an action flag.
func (s *scanner) coords(flag string, n int) ([]int, error) {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if s.pos >= len(s.args) {
			return nil, failf(flag, "expects %d coordinate(s), got %d", n, i)
		}
		v, err := strconv.Atoi(s.args[s.pos])
		if err != nil {
			return nil, failf(flag, "bad coordinate %q", s.args[s.pos])
		}
		s.pos++
		out = append(out, v)
	}
	return out, nil
}

// override mutates the pending action's override set.
func (s *scanner) override(flag string, apply func(*action.Draft)) error {
	p := s.pending()
	if p == nil {
		return failf(flag, "must follow an action flag")
	}
	apply(p)
	return nil
}

// setMode selects an informational mode, rejecting conflicting ones.
func (s *scanner) setMode(flag string, m Mode) error {
	if s.mode != ModeRun && s.mode != m {
		return failf(flag, "cannot be combined with %s", s.modeFlag)
	}
	s.mode = m
	s.modeFlag = flag
	return nil
}

// flag dispatches one argv token.
func (s *scanner) flag(tok string) error {
	name, inline, has := splitFlag(tok)
	switch name {

	// action-start flags
	case "--move":
		c, err := s.coords(name, 2)
		if err != nil {
			return err
		}
		s.open(action.Draft{Kind: action.KindMove, X: c[0], Y: c[1]})
	case "--click":
		s.open(action.Draft{Kind: action.KindClick})
	case "--right-click":
		s.open(action.Draft{Kind: action.KindClick, Button: ptr(action.ButtonRight)})
	case "--double-click":
		s.open(action.Draft{Kind: action.KindClick, Double: ptr(true)})
	case "--drag":
		c, err := s.coords(name, 2)
		if err != nil {
			return err
		}
		s.open(action.Draft{Kind: action.KindDrag, X: c[0], Y: c[1]})
	case "--drag-from":
		c, err := s.coords(name, 4)
		if err != nil {
			return err
		}
		s.open(action.Draft{Kind: action.KindDragFrom, FromX: c[0], FromY: c[1], X: c[2], Y: c[3]})
	case "--key":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		s.open(action.Draft{Kind: action.KindKey, Key: v})
	case "--type":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		s.open(action.Draft{Kind: action.KindType, Text: v})
	case "--wait":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return failf(name, "bad seconds value %q", v)
		}
		s.open(action.Draft{Kind: action.KindWait, Seconds: f})
	case "--scroll":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return failf(name, "bad scroll amount %q", v)
		}
		s.open(action.Draft{Kind: action.KindScroll, Amount: n})

	// per-action override flags
	case "--smooth":
		return s.override(name, func(d *action.Draft) { d.Smooth = ptr(true) })
	case "--no-smooth", "--no-drag-smooth":
		return s.override(name, func(d *action.Draft) { d.Smooth = ptr(false) })
	case "--duration":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Duration = &v })
	case "--steps", "--scroll-steps":
		v, err := s.intValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Steps = &v })
	case "--click-count", "--key-count":
		v, err := s.intValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Count = &v })
	case "--click-interval", "--key-interval", "--type-interval", "--scroll-interval":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Interval = &v })
	case "--click-delay", "--key-delay", "--type-delay":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.DelayBefore = &v })
	case "--delay-after":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.DelayAfter = &v })
	case "--double":
		return s.override(name, func(d *action.Draft) { d.Double = ptr(true) })
	case "--modifiers":
		mods, err := s.modifierList(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Modifiers = append(d.Modifiers, mods...) })
	case "--click-before-drag":
		return s.override(name, func(d *action.Draft) { d.ClickBefore = ptr(true) })
	case "--click-after-drag":
		return s.override(name, func(d *action.Draft) { d.ClickAfter = ptr(true) })
	case "--monitor-index":
		v, err := s.intValue(name, inline, has)
		if err != nil {
			return err
		}
		return s.override(name, func(d *action.Draft) { d.Monitor = &v })
	case "--ignore-bounds":
		if p := s.pending(); p != nil {
			p.IgnoreBounds = ptr(true)
			return nil
		}
		s.ignoreAll = true

	// global defaults
	case "--global-delay":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.def.Delay = &v
	case "--global-smooth":
		s.def.Smooth = ptr(true)
	case "--global-duration":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.def.Duration = &v
	case "--global-steps":
		v, err := s.intValue(name, inline, has)
		if err != nil {
			return err
		}
		s.def.Steps = &v
	case "--global-button":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		b, err := action.ParseButton(v)
		if err != nil {
			return fail(name, err)
		}
		s.def.Button = &b
	case "--global-interval":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.def.Interval = &v

	// alternate sequence entry points
	case "--do":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		s.items = append(s.items, item{do: v})
	case "--sequence":
		v, err := s.value(name, inline, has)
		if err != nil {
			return err
		}
		s.items = append(s.items, item{seq: v})

	// informational modes
	case "--show-resolution":
		return s.setMode(name, ModeResolution)
	case "--list-monitors":
		return s.setMode(name, ModeMonitors)
	case "--monitor":
		return s.setMode(name, ModeWatch)
	case "--monitor-interval":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.watch.Interval = v
	case "--monitor-duration":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.watch.Duration = v
	case "--no-monitor-clicks":
		s.watch.Clicks = false

	// supplements
	case "-d", "--delay":
		v, err := s.durValue(name, inline, has)
		if err != nil {
			return err
		}
		s.firstDelay = &v
	case "-h", "--help":
		s.mode = ModeHelp

	default:
		return failf(tok, "unknown flag")
	}
	return nil
}

// modifierList reads modifier names from the inline value or from the
// following non-flag tokens.
func (s *scanner) modifierList(flag, inline string, has bool) ([]string, error) {
	if has {
		mods := strings.FieldsFunc(inline, func(r rune) bool { return r == ',' || r == '+' })
		if len(mods) == 0 {
			return nil, failf(flag, "requires at least one modifier")
		}
		return mods, nil
	}
	var mods []string
	for s.pos < len(s.args) && !strings.HasPrefix(s.args[s.pos], "-") {
		mods = append(mods, s.args[s.pos])
		s.pos++
	}
	if len(mods) == 0 {
		return nil, failf(flag, "requires at least one modifier")
	}
	return mods, nil
}

// finish expands ordered items into drafts and resolves them.
func (s *scanner) finish() (*Command, error) {
	if s.mode != ModeRun {
		if len(s.items) > 0 {
			return nil, failf(s.modeFlag, "cannot be combined with actions")
		}
		return &Command{Mode: s.mode, Watch: s.watch}, nil
	}

	var drafts []action.Draft
	for _, it := range s.items {
		switch {
		case it.draft != nil:
			drafts = append(drafts, *it.draft)
		case it.do != "":
			ds, err := scriptDrafts(it.do)
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, ds...)
		case it.seq != "":
			ds, err := sequenceDrafts(it.seq)
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, ds...)
		}
	}

	if s.ignoreAll {
		for i := range drafts {
			if drafts[i].IgnoreBounds == nil {
				drafts[i].IgnoreBounds = ptr(true)
			}
		}
	}
	if s.firstDelay != nil && len(drafts) > 0 && drafts[0].DelayBefore == nil {
		drafts[0].DelayBefore = s.firstDelay
	}

	actions, err := resolveDrafts(drafts, s.def)
	if err != nil {
		return nil, err
	}
	return &Command{Mode: ModeRun, Actions: actions, Defaults: s.def, Watch: s.watch}, nil
}
