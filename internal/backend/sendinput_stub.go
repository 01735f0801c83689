//go:build !windows

// Package backend abstracts the OS input-simulation layer.
package backend

import "errors"

// ErrUnsupported indicates the SendInput backend is not available.
var ErrUnsupported = errors.New("sendinput backend is only supported on Windows")

// newSendInput fails on non-Windows platforms.
func newSendInput() (Backend, error) {
	return nil, ErrUnsupported
}
