// Package watch reports live cursor position and click activity.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// CursorProvider reports the current OS cursor position.
type CursorProvider interface {
	CursorPos() (x, y int, err error)
}

// ButtonSampler reports the instantaneous pressed state of the mouse
// buttons. Click counting works on rising edges between samples.
type ButtonSampler interface {
	Pressed() (left, right bool)
}

// Options configures the reporter loop.
type Options struct {
	Interval time.Duration
	Duration time.Duration
	Clicks   bool
}

// Summary totals one reporter run.
type Summary struct {
	Samples     int
	LeftClicks  int
	RightClicks int
}

// Watcher polls the cursor and buttons on a fixed interval.
type Watcher struct {
	cursor  CursorProvider
	buttons ButtonSampler
	out     io.Writer
	sleep   func(ctx context.Context, d time.Duration) error
}

// New builds a watcher writing one line per observed change to out.
func New(cursor CursorProvider, buttons ButtonSampler, out io.Writer) *Watcher {
	return &Watcher{
		cursor:  cursor,
		buttons: buttons,
		out:     out,
		sleep:   sleepCtx,
	}
}

// SetSleepFunc overrides the clock used between samples.
func (w *Watcher) SetSleepFunc(fn func(ctx context.Context, d time.Duration) error) {
	if fn != nil {
		w.sleep = fn
	}
}

// sleepCtx blocks for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run polls until the duration elapses or the context is cancelled.
// Cancellation is not an error: the summary so far is returned.
func (w *Watcher) Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	var deadline time.Time
	if opts.Duration > 0 {
		deadline = time.Now().Add(opts.Duration)
	}

	var (
		sum              Summary
		lastX, lastY     int
		havePos          bool
		lastLeft, lastRt bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return sum, nil
		}

		x, y, err := w.cursor.CursorPos()
		if err != nil {
			return sum, fmt.Errorf("cursor position: %w", err)
		}
		sum.Samples++
		if !havePos || x != lastX || y != lastY {
			fmt.Fprintf(w.out, "cursor: (%d, %d)\n", x, y)
			lastX, lastY = x, y
			havePos = true
		}

		if opts.Clicks {
			left, right := w.buttons.Pressed()
			if left && !lastLeft {
				sum.LeftClicks++
				fmt.Fprintf(w.out, "click: left (total %d)\n", sum.LeftClicks)
			}
			if right && !lastRt {
				sum.RightClicks++
				fmt.Fprintf(w.out, "click: right (total %d)\n", sum.RightClicks)
			}
			lastLeft, lastRt = left, right
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return sum, nil
		}
		if err := w.sleep(ctx, opts.Interval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return sum, nil
			}
			return sum, err
		}
	}
}
