// Package backend abstracts the OS input-simulation layer.
package backend

import (
	"fmt"
	"strings"
	"unicode"
)

// keyAliases maps accepted spellings to the canonical key names shared by
// both backends.
var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
	"del":    "delete",
	"bksp":   "backspace",
}

// namedKeys is the closed set of symbolic key names the backends accept.
var namedKeys = map[string]bool{
	"enter": true, "tab": true, "esc": true, "space": true,
	"backspace": true, "delete": true, "insert": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// normalizeKey canonicalizes a symbolic key name or validates a literal
// character. Unrecognized names are backend errors: the executor treats
// them as fatal.
func normalizeKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key name")
	}
	runes := []rune(key)
	if len(runes) == 1 {
		if unicode.IsPrint(runes[0]) && runes[0] != ' ' {
			return strings.ToLower(key), nil
		}
		return "", fmt.Errorf("unsupported key character %q", key)
	}

	name := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	if !namedKeys[name] {
		return "", fmt.Errorf("unknown key name %q", key)
	}
	return name, nil
}
