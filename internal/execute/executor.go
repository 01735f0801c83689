// Package execute walks an ordered action list and drives the backend
// with timing control and fail-fast error reporting.
package execute

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frudas24/cursorctl/internal/action"
	"github.com/frudas24/cursorctl/internal/backend"
	"github.com/frudas24/cursorctl/internal/display"
)

// BackendError reports a fatal input-simulation failure. The remaining
// actions are left unexecuted.
type BackendError struct {
	Index int
	Kind  action.Kind
	Err   error
}

// Error names the failing action's position and kind.
func (e *BackendError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index, e.Kind, e.Err)
}

// Unwrap exposes the underlying backend failure.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Report summarizes a sequence run. Executed counts actions whose full
// effect, including delay_after, completed.
type Report struct {
	Executed int
	Warnings []string
}

// target holds the pre-resolved absolute coordinates for one action.
type target struct {
	x, y         int
	fromX, fromY int
}

// Executor runs actions strictly sequentially against one backend.
type Executor struct {
	backend  backend.Backend
	resolver *display.Resolver
	sleep    func(ctx context.Context, d time.Duration) error
	logf     func(format string, args ...interface{})
}

// New builds an executor over a backend and a geometry resolver.
func New(b backend.Backend, r *display.Resolver) *Executor {
	return &Executor{
		backend:  b,
		resolver: r,
		sleep:    sleepCtx,
		logf:     log.Printf,
	}
}

// SetSleepFunc overrides the clock used for delays and intervals.
func (e *Executor) SetSleepFunc(fn func(ctx context.Context, d time.Duration) error) {
	if fn != nil {
		e.sleep = fn
	}
}

// SetLogFunc overrides the warning logger.
func (e *Executor) SetLogFunc(fn func(format string, args ...interface{})) {
	if fn != nil {
		e.logf = fn
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

// Execute runs the sequence. Coordinates are resolved up front so an
// unknown monitor surfaces before any backend call; bounds warnings are
// logged and execution proceeds. A backend failure stops the run
// immediately; a cancelled context yields a partial report.
func (e *Executor) Execute(ctx context.Context, actions []action.Action) (Report, error) {
	targets, warnings, err := e.plan(actions)
	if err != nil {
		return Report{}, err
	}
	report := Report{Warnings: warnings}
	for _, w := range warnings {
		e.logf("bounds: %s", w)
	}

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := e.sleep(ctx, a.DelayBefore); err != nil {
			return report, err
		}
		if err := e.dispatch(ctx, a, targets[i]); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			return report, &BackendError{Index: i, Kind: a.Kind, Err: err}
		}
		if err := e.sleep(ctx, a.DelayAfter); err != nil {
			return report, err
		}
		report.Executed++
	}
	return report, nil
}

// plan resolves every coordinate-carrying action against the display
// snapshot before execution begins.
func (e *Executor) plan(actions []action.Action) ([]target, []string, error) {
	targets := make([]target, len(actions))
	var warnings []string

	resolve := func(idx int, a action.Action, x, y int) (int, int, error) {
		ax, ay, warn, err := e.resolver.Resolve(a.Monitor, x, y, a.IgnoreBounds)
		if err != nil {
			return 0, 0, fmt.Errorf("action %d (%s): %w", idx, a.Kind, err)
		}
		if warn != "" {
			warnings = append(warnings, fmt.Sprintf("action %d (%s): %s", idx, a.Kind, warn))
		}
		return ax, ay, nil
	}

	for i, a := range actions {
		var err error
		switch a.Kind {
		case action.KindMove, action.KindDrag:
			targets[i].x, targets[i].y, err = resolve(i, a, a.X, a.Y)
		case action.KindDragFrom:
			targets[i].fromX, targets[i].fromY, err = resolve(i, a, a.FromX, a.FromY)
			if err == nil {
				targets[i].x, targets[i].y, err = resolve(i, a, a.X, a.Y)
			}
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return targets, warnings, nil
}

// dispatch performs one action's backend effect.
func (e *Executor) dispatch(ctx context.Context, a action.Action, t target) error {
	switch a.Kind {
	case action.KindMove:
		return e.doMove(ctx, a, t.x, t.y)
	case action.KindClick:
		return e.doClick(ctx, a)
	case action.KindDrag, action.KindDragFrom:
		return e.doDrag(ctx, a, t)
	case action.KindKey:
		return e.doKey(ctx, a)
	case action.KindType:
		return e.doType(ctx, a)
	case action.KindWait:
		return e.sleep(ctx, a.Wait)
	case action.KindScroll:
		return e.doScroll(ctx, a)
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
}

// doMove moves directly or glides linearly to the target.
func (e *Executor) doMove(ctx context.Context, a action.Action, x, y int) error {
	if !a.Smooth {
		return e.backend.MoveTo(x, y)
	}
	fromX, fromY, err := e.backend.CursorPos()
	if err != nil {
		return err
	}
	return e.glide(ctx, fromX, fromY, x, y, a.Duration, a.Steps)
}

// glide interpolates steps points linearly between two positions over a
// duration, sleeping duration/steps between backend moves. Cancellation
// is honored between moves, never mid-sleep-step.
func (e *Executor) glide(ctx context.Context, fromX, fromY, toX, toY int, dur time.Duration, steps int) error {
	if steps < 1 {
		steps = 1
	}
	pause := dur / time.Duration(steps)
	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		x := fromX + (toX-fromX)*i/steps
		y := fromY + (toY-fromY)*i/steps
		if err := e.backend.MoveTo(x, y); err != nil {
			return err
		}
		if i < steps {
			if err := e.sleep(ctx, pause); err != nil {
				return err
			}
		}
	}
	return nil
}

// doClick issues count clicks with interval between repeats and no sleep
// after the last.
func (e *Executor) doClick(ctx context.Context, a action.Action) error {
	for i := 0; i < a.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.backend.Click(a.Button); err != nil {
			return err
		}
		if i < a.Count-1 {
			if err := e.sleep(ctx, a.Interval); err != nil {
				return err
			}
		}
	}
	return nil
}

// doDrag brackets a press-move-release with optional clicks.
func (e *Executor) doDrag(ctx context.Context, a action.Action, t target) error {
	if a.ClickBefore {
		if err := e.doClick(ctx, a); err != nil {
			return err
		}
	}
	if a.Kind == action.KindDragFrom {
		if err := e.backend.MoveTo(t.fromX, t.fromY); err != nil {
			return err
		}
	}
	if err := e.backend.ButtonDown(a.Button); err != nil {
		return err
	}
	if a.Smooth {
		fromX, fromY, err := e.backend.CursorPos()
		if err != nil {
			return err
		}
		if err := e.glide(ctx, fromX, fromY, t.x, t.y, a.Duration, a.Steps); err != nil {
			// release before surfacing so the button is not left held
			_ = e.backend.ButtonUp(a.Button)
			return err
		}
	} else {
		if err := e.backend.MoveTo(t.x, t.y); err != nil {
			_ = e.backend.ButtonUp(a.Button)
			return err
		}
	}
	if err := e.backend.ButtonUp(a.Button); err != nil {
		return err
	}
	if a.ClickAfter {
		if err := e.doClick(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// doKey issues count key presses with interval between repeats.
func (e *Executor) doKey(ctx context.Context, a action.Action) error {
	for i := 0; i < a.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.backend.PressKey(a.Key, a.Modifiers); err != nil {
			return err
		}
		if i < a.Count-1 {
			if err := e.sleep(ctx, a.Interval); err != nil {
				return err
			}
		}
	}
	return nil
}

// doType emits one key event per character with interval between them.
func (e *Executor) doType(ctx context.Context, a action.Action) error {
	runes := []rune(a.Text)
	for i, r := range runes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.backend.TypeText(string(r)); err != nil {
			return err
		}
		if i < len(runes)-1 {
			if err := e.sleep(ctx, a.Interval); err != nil {
				return err
			}
		}
	}
	return nil
}

// doScroll partitions the amount across steps calls, folding the
// remainder into the last call so per-call deltas sum exactly.
func (e *Executor) doScroll(ctx context.Context, a action.Action) error {
	if a.Steps < 1 {
		return nil
	}
	per := a.Amount / a.Steps
	for i := 0; i < a.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		delta := per
		if i == a.Steps-1 {
			delta = a.Amount - per*(a.Steps-1)
		}
		if err := e.backend.Scroll(delta); err != nil {
			return err
		}
		if i < a.Steps-1 {
			if err := e.sleep(ctx, a.Interval); err != nil {
				return err
			}
		}
	}
	return nil
}
