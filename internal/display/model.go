// Package display describes monitor geometry and resolves logical
// coordinates to absolute screen positions.
package display

import "fmt"

// Display describes one monitor in the virtual screen space. The snapshot
// is taken once per invocation; topology is assumed stable for the run.
type Display struct {
	Index   int
	Name    string
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	Primary bool
}

// ByIndex returns the display matching the 0-based index.
func ByIndex(list []Display, idx int) (Display, bool) {
	for _, d := range list {
		if d.Index == idx {
			return d, true
		}
	}
	return Display{}, false
}

// Primary returns the primary display, falling back to the first entry.
func Primary(list []Display) (Display, bool) {
	for _, d := range list {
		if d.Primary {
			return d, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return Display{}, false
}

// Normalize re-bases a raw enumeration so the primary display gets index 0
// and the rest keep their relative order. Missing names are filled in.
func Normalize(list []Display) []Display {
	out := make([]Display, 0, len(list))
	for _, d := range list {
		if d.Primary {
			out = append(out, d)
		}
	}
	for _, d := range list {
		if !d.Primary {
			out = append(out, d)
		}
	}
	for i := range out {
		out[i].Index = i
		if out[i].Name == "" {
			out[i].Name = fmt.Sprintf("display-%d", i)
		}
	}
	return out
}
