//go:build !windows

// Package display describes monitor geometry and resolves logical
// coordinates to absolute screen positions.
package display

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// Enumerate returns the normalized list of displays. The library reports
// the primary display first on every supported platform.
func Enumerate() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no monitors detected")
	}

	list := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		list = append(list, Display{
			OffsetX: b.Min.X,
			OffsetY: b.Min.Y,
			Width:   b.Dx(),
			Height:  b.Dy(),
			Primary: i == 0,
		})
	}
	return Normalize(list), nil
}
