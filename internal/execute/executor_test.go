package execute

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/frudas24/cursorctl/internal/action"
	"github.com/frudas24/cursorctl/internal/display"
	"github.com/frudas24/cursorctl/internal/testutil"
)

// newTestExecutor wires a fake backend, a single 1920x1080 display and a
// sleep recorder that never blocks.
func newTestExecutor(fake *testutil.FakeBackend) (*Executor, *[]time.Duration) {
	displays := []display.Display{
		{Index: 0, Name: "display-0", Width: 1920, Height: 1080, Primary: true},
		{Index: 1, Name: "display-1", Width: 1280, Height: 1024, OffsetX: 1920},
	}
	e := New(fake, display.NewResolver(displays, display.PolicyWarn))
	slept := &[]time.Duration{}
	e.SetSleepFunc(func(ctx context.Context, d time.Duration) error {
		if d > 0 {
			*slept = append(*slept, d)
		}
		return ctx.Err()
	})
	e.SetLogFunc(func(format string, args ...interface{}) {})
	return e, slept
}

// resolve builds a resolved action for tests.
func resolve(t *testing.T, d action.Draft) action.Action {
	t.Helper()
	a, err := d.Resolve(action.Defaults{})
	if err != nil {
		t.Fatalf("resolve %s: %v", d.Kind, err)
	}
	return a
}

// TestExecute_FailFast verifies a backend failure stops the run with the
// failing action's position and leaves the rest unexecuted.
func TestExecute_FailFast(t *testing.T) {
	boom := fmt.Errorf("injection refused")
	fake := &testutil.FakeBackend{FailAt: 2, FailErr: boom}
	e, _ := newTestExecutor(fake)

	actions := []action.Action{
		resolve(t, action.Draft{Kind: action.KindClick}),
		resolve(t, action.Draft{Kind: action.KindClick}),
		resolve(t, action.Draft{Kind: action.KindClick}),
	}
	report, err := e.Execute(context.Background(), actions)

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Index != 1 || be.Kind != action.KindClick {
		t.Fatalf("unexpected failure detail: %#v", be)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if report.Executed != 1 {
		t.Fatalf("expected 1 executed action, got %d", report.Executed)
	}
	if len(fake.Calls) != 2 {
		t.Fatalf("expected exactly 2 backend calls, got %d", len(fake.Calls))
	}
}

// TestExecute_ScrollPartition verifies the amount is split across steps
// with the remainder folded into the last call.
func TestExecute_ScrollPartition(t *testing.T) {
	cases := []struct {
		amount, steps int
		want          []int
	}{
		{10, 3, []int{3, 3, 4}},
		{-10, 3, []int{-3, -3, -4}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{2, 5, []int{0, 0, 0, 0, 2}},
	}
	for _, c := range cases {
		fake := &testutil.FakeBackend{}
		e, _ := newTestExecutor(fake)
		a := resolve(t, action.Draft{Kind: action.KindScroll, Amount: c.amount, Steps: &c.steps})
		if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
			t.Fatalf("scroll %d/%d: %v", c.amount, c.steps, err)
		}
		calls := fake.Named("Scroll")
		if len(calls) != len(c.want) {
			t.Fatalf("scroll %d/%d: expected %d calls, got %d", c.amount, c.steps, len(c.want), len(calls))
		}
		sum := 0
		for i, call := range calls {
			if call.Amount != c.want[i] {
				t.Fatalf("scroll %d/%d: call %d delta %d, want %d", c.amount, c.steps, i, call.Amount, c.want[i])
			}
			sum += call.Amount
		}
		if sum != c.amount {
			t.Fatalf("scroll %d/%d: deltas sum to %d", c.amount, c.steps, sum)
		}
	}
}

// TestExecute_ScrollZeroSteps verifies steps=0 is a no-op.
func TestExecute_ScrollZeroSteps(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	zero := 0
	a := resolve(t, action.Draft{Kind: action.KindScroll, Amount: 10, Steps: &zero})
	report, err := e.Execute(context.Background(), []action.Action{a})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(fake.Calls) != 0 || report.Executed != 1 {
		t.Fatalf("expected no backend calls and 1 executed, got %d calls %d executed",
			len(fake.Calls), report.Executed)
	}
}

// TestExecute_SmoothMove verifies the glide emits steps moves ending
// exactly at the target with duration/steps pauses between them.
func TestExecute_SmoothMove(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, slept := newTestExecutor(fake)

	steps := 4
	dur := 400 * time.Millisecond
	a := resolve(t, action.Draft{
		Kind: action.KindMove, X: 100, Y: 200,
		Smooth: boolPtr(true), Steps: &steps, Duration: &dur,
	})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	moves := fake.Named("MoveTo")
	if len(moves) != steps {
		t.Fatalf("expected %d moves, got %d", steps, len(moves))
	}
	last := moves[len(moves)-1]
	if last.X != 100 || last.Y != 200 {
		t.Fatalf("glide did not end at target: (%d, %d)", last.X, last.Y)
	}
	if len(*slept) != steps-1 {
		t.Fatalf("expected %d pauses, got %d", steps-1, len(*slept))
	}
	for _, d := range *slept {
		if d != 100*time.Millisecond {
			t.Fatalf("expected 100ms pauses, got %v", d)
		}
	}
}

// TestExecute_InstantMove verifies a non-smooth move is a single call.
func TestExecute_InstantMove(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, slept := newTestExecutor(fake)
	a := resolve(t, action.Draft{Kind: action.KindMove, X: 50, Y: 60})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(fake.Calls) != 1 || fake.Calls[0].X != 50 || fake.Calls[0].Y != 60 {
		t.Fatalf("unexpected calls: %#v", fake.Calls)
	}
	if len(*slept) != 0 {
		t.Fatalf("instant move should not sleep: %v", *slept)
	}
}

// TestExecute_SecondaryMonitorOffset verifies the display origin is added
// before the backend sees the coordinate.
func TestExecute_SecondaryMonitorOffset(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	mon := 1
	a := resolve(t, action.Draft{Kind: action.KindMove, X: 100, Y: 200, Monitor: &mon})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fake.Calls[0].X != 2020 || fake.Calls[0].Y != 200 {
		t.Fatalf("expected (2020, 200), got (%d, %d)", fake.Calls[0].X, fake.Calls[0].Y)
	}
}

// TestExecute_UnknownMonitorBeforeBackend verifies planning fails before
// any backend call is made.
func TestExecute_UnknownMonitorBeforeBackend(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	mon := 7
	actions := []action.Action{
		resolve(t, action.Draft{Kind: action.KindClick}),
		resolve(t, action.Draft{Kind: action.KindMove, X: 1, Y: 2, Monitor: &mon}),
	}
	_, err := e.Execute(context.Background(), actions)
	var ume *display.UnknownMonitorError
	if !errors.As(err, &ume) {
		t.Fatalf("expected UnknownMonitorError, got %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected zero backend calls, got %d", len(fake.Calls))
	}
}

// TestExecute_BoundsWarningProceeds verifies out-of-bounds coordinates
// warn but still execute.
func TestExecute_BoundsWarningProceeds(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	a := resolve(t, action.Draft{Kind: action.KindMove, X: -5, Y: 0})
	report, err := e.Execute(context.Background(), []action.Action{a})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %#v", report.Warnings)
	}
	if len(fake.Calls) != 1 || fake.Calls[0].X != -5 {
		t.Fatalf("warned action should still run: %#v", fake.Calls)
	}
}

// TestExecute_ClickRepeats verifies count clicks with interval pauses
// between repeats and none after the last.
func TestExecute_ClickRepeats(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, slept := newTestExecutor(fake)
	count := 3
	iv := 100 * time.Millisecond
	a := resolve(t, action.Draft{Kind: action.KindClick, Count: &count, Interval: &iv})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(fake.Named("Click")) != 3 {
		t.Fatalf("expected 3 clicks, got %d", len(fake.Named("Click")))
	}
	if len(*slept) != 2 {
		t.Fatalf("expected 2 interval pauses, got %d", len(*slept))
	}
}

// TestExecute_ZeroCountClick verifies count=0 touches nothing.
func TestExecute_ZeroCountClick(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	zero := 0
	a := resolve(t, action.Draft{Kind: action.KindClick, Count: &zero})
	report, err := e.Execute(context.Background(), []action.Action{a})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(fake.Calls) != 0 || report.Executed != 1 {
		t.Fatalf("expected no-op, got %d calls", len(fake.Calls))
	}
}

// TestExecute_TypePerCharacter verifies one backend call per character
// with interval pauses between them.
func TestExecute_TypePerCharacter(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, slept := newTestExecutor(fake)
	a := resolve(t, action.Draft{Kind: action.KindType, Text: "héllo"})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	calls := fake.Named("TypeText")
	if len(calls) != 5 {
		t.Fatalf("expected 5 character calls, got %d", len(calls))
	}
	if calls[1].Text != "é" {
		t.Fatalf("expected rune-wise typing, got %q", calls[1].Text)
	}
	if len(*slept) != 4 {
		t.Fatalf("expected 4 pauses, got %d", len(*slept))
	}
}

// TestExecute_DragOrder verifies press, move and release ordering with
// the bracketing clicks.
func TestExecute_DragOrder(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	a := resolve(t, action.Draft{
		Kind:  action.KindDragFrom,
		FromX: 10, FromY: 20, X: 30, Y: 40,
		ClickBefore: boolPtr(true), ClickAfter: boolPtr(true),
	})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []string{"Click", "MoveTo", "ButtonDown", "MoveTo", "ButtonUp", "Click"}
	if len(fake.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %#v", len(want), fake.Calls)
	}
	for i, name := range want {
		if fake.Calls[i].Name != name {
			t.Fatalf("call %d: expected %s, got %s", i, name, fake.Calls[i].Name)
		}
	}
	if fake.Calls[1].X != 10 || fake.Calls[1].Y != 20 {
		t.Fatalf("unexpected drag start: %#v", fake.Calls[1])
	}
	if fake.Calls[3].X != 30 || fake.Calls[3].Y != 40 {
		t.Fatalf("unexpected drag end: %#v", fake.Calls[3])
	}
}

// TestExecute_DragReleasesOnFailure verifies the button is released when
// the mid-drag move fails.
func TestExecute_DragReleasesOnFailure(t *testing.T) {
	boom := fmt.Errorf("move failed")
	// call 1 = ButtonDown, call 2 = MoveTo
	fake := &testutil.FakeBackend{FailAt: 2, FailErr: boom}
	e, _ := newTestExecutor(fake)
	a := resolve(t, action.Draft{Kind: action.KindDrag, X: 30, Y: 40})
	_, err := e.Execute(context.Background(), []action.Action{a})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped move failure, got %v", err)
	}
	last := fake.Calls[len(fake.Calls)-1]
	if last.Name != "ButtonUp" {
		t.Fatalf("expected trailing ButtonUp, got %#v", fake.Calls)
	}
}

// TestExecute_Delays verifies delay_before and delay_after sleeps wrap the
// action effect.
func TestExecute_Delays(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, slept := newTestExecutor(fake)
	before := 2 * time.Second
	after := time.Second
	a := resolve(t, action.Draft{Kind: action.KindClick, DelayBefore: &before, DelayAfter: &after})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(*slept) != 2 || (*slept)[0] != before || (*slept)[1] != after {
		t.Fatalf("unexpected sleeps: %v", *slept)
	}
}

// TestExecute_CancelMidSequence verifies cancellation yields a partial
// report with the context error.
func TestExecute_CancelMidSequence(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)

	ctx, cancel := context.WithCancel(context.Background())
	e.SetSleepFunc(func(ctx context.Context, d time.Duration) error {
		// the wait action's sleep simulates the interrupt arriving
		if d > 0 {
			cancel()
		}
		return ctx.Err()
	})

	actions := []action.Action{
		resolve(t, action.Draft{Kind: action.KindClick}),
		resolve(t, action.Draft{Kind: action.KindWait, Seconds: 5}),
		resolve(t, action.Draft{Kind: action.KindClick}),
	}
	report, err := e.Execute(ctx, actions)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.Executed != 1 {
		t.Fatalf("expected 1 executed action, got %d", report.Executed)
	}
	if len(fake.Calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", len(fake.Calls))
	}
}

// TestExecute_CancelledUpFront verifies a pre-cancelled context executes
// nothing.
func TestExecute_CancelledUpFront(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := e.Execute(ctx, []action.Action{resolve(t, action.Draft{Kind: action.KindClick})})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.Executed != 0 || len(fake.Calls) != 0 {
		t.Fatalf("expected nothing executed, got %d executed %d calls", report.Executed, len(fake.Calls))
	}
}

// TestExecute_KeyRepeats verifies count key presses with modifiers.
func TestExecute_KeyRepeats(t *testing.T) {
	fake := &testutil.FakeBackend{}
	e, _ := newTestExecutor(fake)
	count := 2
	a := resolve(t, action.Draft{
		Kind: action.KindKey, Key: "c",
		Modifiers: []string{"ctrl"}, Count: &count,
	})
	if _, err := e.Execute(context.Background(), []action.Action{a}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	calls := fake.Named("PressKey")
	if len(calls) != 2 {
		t.Fatalf("expected 2 key presses, got %d", len(calls))
	}
	if calls[0].Key != "c" || len(calls[0].Modifiers) != 1 || calls[0].Modifiers[0] != "ctrl" {
		t.Fatalf("unexpected key call: %#v", calls[0])
	}
}

// boolPtr returns a pointer to b for draft overrides.
func boolPtr(b bool) *bool {
	return &b
}
