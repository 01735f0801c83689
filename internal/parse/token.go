// Package parse lowers the three CLI surfaces into ordered action lists.
package parse

import (
	"fmt"
	"time"
	"unicode"

	"github.com/frudas24/cursorctl/internal/action"
)

// tokenize splits a clause into whitespace-separated tokens. A double
// quote opens a segment consumed up to the matching unescaped closing
// quote, permitting embedded spaces; backslash escapes quotes and
// backslashes inside quoted segments.
func tokenize(clause string) ([]string, error) {
	var (
		tokens []string
		cur    []rune
		have   bool
		quoted bool
	)

	runes := []rune(clause)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case quoted:
			if r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
				cur = append(cur, runes[i+1])
				i += 2
				continue
			}
			if r == '"' {
				quoted = false
				i++
				continue
			}
			cur = append(cur, r)
			i++
		case r == '"':
			quoted = true
			have = true
			i++
		case unicode.IsSpace(r):
			if have {
				tokens = append(tokens, string(cur))
				cur = cur[:0]
				have = false
			}
			i++
		default:
			cur = append(cur, r)
			have = true
			i++
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if have {
		tokens = append(tokens, string(cur))
	}
	return tokens, nil
}

// seconds converts a float seconds value to a duration.
func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// ptr returns a pointer to v, for optional draft fields.
func ptr[T any](v T) *T {
	return &v
}

// resolveDrafts merges every draft against the global defaults. The first
// resolution failure aborts with the action's position.
func resolveDrafts(drafts []action.Draft, def action.Defaults) ([]action.Action, error) {
	actions := make([]action.Action, 0, len(drafts))
	for i, d := range drafts {
		a, err := d.Resolve(def)
		if err != nil {
			return nil, &ParseError{Fragment: fmt.Sprintf("action %d (%s)", i, d.Kind), Err: err}
		}
		actions = append(actions, a)
	}
	return actions, nil
}
