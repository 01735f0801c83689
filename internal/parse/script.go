// Package parse lowers the three CLI surfaces into ordered action lists.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frudas24/cursorctl/internal/action"
)

// Script parses the semicolon-delimited mini-language into resolved
// actions: `command arg... [--flag[=value]]...` per clause.
func Script(input string, def action.Defaults) ([]action.Action, error) {
	drafts, err := scriptDrafts(input)
	if err != nil {
		return nil, err
	}
	return resolveDrafts(drafts, def)
}

// scriptDrafts lowers each non-empty clause to a draft, preserving order.
func scriptDrafts(input string) ([]action.Draft, error) {
	var drafts []action.Draft
	idx := 0
	for _, raw := range strings.Split(input, ";") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		tokens, err := tokenize(text)
		if err != nil {
			return nil, &MalformedActionError{Index: idx, Clause: text, Reason: err.Error()}
		}
		if len(tokens) == 0 {
			continue
		}
		d, err := clauseDraft(idx, text, tokens)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
		idx++
	}
	return drafts, nil
}

// clauseCommands maps mini-language keywords to action kinds and their
// required positional argument count.
var clauseCommands = map[string]struct {
	kind action.Kind
	args int
}{
	"move":      {action.KindMove, 2},
	"click":     {action.KindClick, 0},
	"key":       {action.KindKey, 1},
	"wait":      {action.KindWait, 1},
	"drag":      {action.KindDrag, 2},
	"drag_from": {action.KindDragFrom, 4},
	"type":      {action.KindType, 1},
	"scroll":    {action.KindScroll, 1},
}

// clauseDraft builds a draft from one tokenized clause.
func clauseDraft(idx int, text string, tokens []string) (action.Draft, error) {
	cmd, ok := clauseCommands[strings.ToLower(tokens[0])]
	if !ok {
		return action.Draft{}, &UnknownCommandError{Index: idx, Clause: text}
	}

	rest := tokens[1:]
	pos := rest
	var flags []string
	for i, t := range rest {
		if strings.HasPrefix(t, "--") {
			pos = rest[:i]
			flags = rest[i:]
			break
		}
	}
	if len(pos) < cmd.args {
		return action.Draft{}, &MalformedActionError{
			Index: idx, Clause: text,
			Reason: fmt.Sprintf("%s requires %d argument(s), got %d", tokens[0], cmd.args, len(pos)),
		}
	}
	pos = pos[:cmd.args]

	d := action.Draft{Kind: cmd.kind}
	fail := func(reason string) (action.Draft, error) {
		return action.Draft{}, &MalformedActionError{Index: idx, Clause: text, Reason: reason}
	}

	switch cmd.kind {
	case action.KindMove, action.KindDrag:
		x, err := strconv.Atoi(pos[0])
		if err != nil {
			return fail(fmt.Sprintf("bad x coordinate %q", pos[0]))
		}
		y, err := strconv.Atoi(pos[1])
		if err != nil {
			return fail(fmt.Sprintf("bad y coordinate %q", pos[1]))
		}
		d.X, d.Y = x, y
	case action.KindDragFrom:
		vals := make([]int, 4)
		for i, p := range pos {
			v, err := strconv.Atoi(p)
			if err != nil {
				return fail(fmt.Sprintf("bad coordinate %q", p))
			}
			vals[i] = v
		}
		d.FromX, d.FromY, d.X, d.Y = vals[0], vals[1], vals[2], vals[3]
	case action.KindKey:
		d.Key = pos[0]
	case action.KindWait:
		v, err := strconv.ParseFloat(pos[0], 64)
		if err != nil {
			return fail(fmt.Sprintf("bad seconds value %q", pos[0]))
		}
		d.Seconds = v
	case action.KindType:
		d.Text = pos[0]
	case action.KindScroll:
		v, err := strconv.Atoi(pos[0])
		if err != nil {
			return fail(fmt.Sprintf("bad scroll amount %q", pos[0]))
		}
		d.Amount = v
	}

	for _, f := range flags {
		if err := applyClauseFlag(&d, f); err != nil {
			return fail(err.Error())
		}
	}
	return d, nil
}

// applyClauseFlag applies one `--flag` or `--flag=value` override to a
// clause draft.
func applyClauseFlag(d *action.Draft, flag string) error {
	name := strings.TrimPrefix(flag, "--")
	value := ""
	hasValue := false
	if i := strings.IndexByte(name, '='); i >= 0 {
		value = name[i+1:]
		name = name[:i]
		hasValue = true
	}

	needValue := func() (string, error) {
		if !hasValue {
			return "", fmt.Errorf("--%s requires a value", name)
		}
		return value, nil
	}
	floatValue := func() (float64, error) {
		v, err := needValue()
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("--%s: bad number %q", name, v)
		}
		return f, nil
	}
	intValue := func() (int, error) {
		v, err := needValue()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("--%s: bad integer %q", name, v)
		}
		return n, nil
	}

	switch name {
	case "smooth":
		d.Smooth = ptr(true)
	case "no-smooth":
		d.Smooth = ptr(false)
	case "duration":
		f, err := floatValue()
		if err != nil {
			return err
		}
		d.Duration = ptr(seconds(f))
	case "steps":
		n, err := intValue()
		if err != nil {
			return err
		}
		d.Steps = ptr(n)
	case "button":
		v, err := needValue()
		if err != nil {
			return err
		}
		b, err := action.ParseButton(v)
		if err != nil {
			return err
		}
		d.Button = ptr(b)
	case "count":
		n, err := intValue()
		if err != nil {
			return err
		}
		d.Count = ptr(n)
	case "interval":
		f, err := floatValue()
		if err != nil {
			return err
		}
		d.Interval = ptr(seconds(f))
	case "double":
		d.Double = ptr(true)
	case "delay":
		f, err := floatValue()
		if err != nil {
			return err
		}
		d.DelayBefore = ptr(seconds(f))
	case "delay-after":
		f, err := floatValue()
		if err != nil {
			return err
		}
		d.DelayAfter = ptr(seconds(f))
	case "monitor":
		n, err := intValue()
		if err != nil {
			return err
		}
		d.Monitor = ptr(n)
	case "ignore-bounds":
		d.IgnoreBounds = ptr(true)
	case "click-before":
		d.ClickBefore = ptr(true)
	case "click-after":
		d.ClickAfter = ptr(true)
	case "mod", "modifiers":
		v, err := needValue()
		if err != nil {
			return err
		}
		for _, m := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '+' }) {
			d.Modifiers = append(d.Modifiers, m)
		}
	default:
		return fmt.Errorf("unknown flag --%s", name)
	}
	return nil
}
