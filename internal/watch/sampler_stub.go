//go:build !windows

// Package watch reports live cursor position and click activity.
package watch

// NoopSampler reports no button activity on platforms without a
// low-level button state query.
type NoopSampler struct{}

// NewSampler returns a sampler that never reports pressed buttons.
func NewSampler() ButtonSampler {
	return &NoopSampler{}
}

// Pressed always reports released buttons.
func (s *NoopSampler) Pressed() (bool, bool) {
	return false, false
}
