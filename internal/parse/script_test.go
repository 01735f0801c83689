package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/frudas24/cursorctl/internal/action"
)

// TestScript_Basic verifies a multi-clause script lowers to the expected
// ordered actions.
func TestScript_Basic(t *testing.T) {
	actions, err := Script("move 100 200; click --count=3; wait 1.5", action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Kind != action.KindMove || actions[0].X != 100 || actions[0].Y != 200 {
		t.Fatalf("unexpected first action: %#v", actions[0])
	}
	if actions[1].Kind != action.KindClick || actions[1].Count != 3 {
		t.Fatalf("unexpected second action: %#v", actions[1])
	}
	if actions[2].Kind != action.KindWait || actions[2].Wait != 1500*time.Millisecond {
		t.Fatalf("unexpected third action: %#v", actions[2])
	}
}

// TestScript_EmptyClausesSkipped verifies blank clauses produce nothing.
func TestScript_EmptyClausesSkipped(t *testing.T) {
	actions, err := Script("; move 1 2 ;; click ;", action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
}

// TestScript_QuotedText verifies quoted type payloads keep their spaces.
func TestScript_QuotedText(t *testing.T) {
	actions, err := Script(`type "hello world"`, action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if actions[0].Text != "hello world" {
		t.Fatalf("expected quoted text, got %q", actions[0].Text)
	}
}

// TestScript_ClauseFlags verifies per-clause flag overrides bind to their
// clause only.
func TestScript_ClauseFlags(t *testing.T) {
	actions, err := Script("move 10 20 --smooth --duration=0.5 --monitor=1; move 30 40", action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !actions[0].Smooth || actions[0].Duration != 500*time.Millisecond || actions[0].Monitor != 1 {
		t.Fatalf("unexpected first action: %#v", actions[0])
	}
	if actions[1].Smooth || actions[1].Monitor != 0 {
		t.Fatalf("override leaked into second action: %#v", actions[1])
	}
}

// TestScript_KeyModifiers verifies --mod lists split on , and +.
func TestScript_KeyModifiers(t *testing.T) {
	actions, err := Script("key c --mod=ctrl+shift", action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	mods := actions[0].Modifiers
	if len(mods) != 2 || mods[0] != "ctrl" || mods[1] != "shift" {
		t.Fatalf("unexpected modifiers: %#v", mods)
	}
}

// TestScript_UnknownCommand verifies unknown commands report their clause
// position.
func TestScript_UnknownCommand(t *testing.T) {
	_, err := Script("move 1 2; hover 3 4", action.Defaults{})
	var uce *UnknownCommandError
	if !errors.As(err, &uce) {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}
	if uce.Index != 1 {
		t.Fatalf("expected index 1, got %d", uce.Index)
	}
}

// TestScript_MissingArguments verifies a short clause is malformed.
func TestScript_MissingArguments(t *testing.T) {
	_, err := Script("move 100", action.Defaults{})
	var mae *MalformedActionError
	if !errors.As(err, &mae) {
		t.Fatalf("expected MalformedActionError, got %v", err)
	}
}

// TestScript_BadCoordinate verifies non-numeric coordinates are malformed.
func TestScript_BadCoordinate(t *testing.T) {
	_, err := Script("move abc 200", action.Defaults{})
	var mae *MalformedActionError
	if !errors.As(err, &mae) {
		t.Fatalf("expected MalformedActionError, got %v", err)
	}
}

// TestScript_UnknownFlag verifies unknown clause flags are malformed.
func TestScript_UnknownFlag(t *testing.T) {
	_, err := Script("click --sideways", action.Defaults{})
	var mae *MalformedActionError
	if !errors.As(err, &mae) {
		t.Fatalf("expected MalformedActionError, got %v", err)
	}
}

// TestScript_DragFrom verifies four-coordinate drags parse positionally.
func TestScript_DragFrom(t *testing.T) {
	actions, err := Script("drag_from 1 2 3 4 --button=right", action.Defaults{})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	a := actions[0]
	if a.Kind != action.KindDragFrom || a.FromX != 1 || a.FromY != 2 || a.X != 3 || a.Y != 4 {
		t.Fatalf("unexpected drag_from: %#v", a)
	}
	if a.Button != action.ButtonRight {
		t.Fatalf("expected right button, got %q", a.Button)
	}
}
