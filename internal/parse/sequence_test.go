package parse

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/frudas24/cursorctl/internal/action"
)

// TestSequence_InlineJSON verifies inline JSON arrays parse in order.
func TestSequence_InlineJSON(t *testing.T) {
	doc := `[{"type":"move","x":100,"y":200,"smooth":true},{"type":"click","count":2},{"type":"scroll","amount":-5}]`
	actions, err := Sequence(doc, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Kind != action.KindMove || !actions[0].Smooth {
		t.Fatalf("unexpected first action: %#v", actions[0])
	}
	if actions[1].Count != 2 {
		t.Fatalf("unexpected second action: %#v", actions[1])
	}
	if actions[2].Amount != -5 {
		t.Fatalf("unexpected third action: %#v", actions[2])
	}
}

// TestSequence_JSONFile verifies a file path source is read and decoded.
func TestSequence_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")
	doc := `[{"type":"type","text":"hello","interval":0.02},{"type":"wait","seconds":0.5}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	actions, err := Sequence(path, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if actions[0].Text != "hello" || actions[0].Interval != 20*time.Millisecond {
		t.Fatalf("unexpected type action: %#v", actions[0])
	}
	if actions[1].Wait != 500*time.Millisecond {
		t.Fatalf("unexpected wait action: %#v", actions[1])
	}
}

// TestSequence_YAMLFile verifies .yaml file sources decode as YAML.
func TestSequence_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.yaml")
	doc := "- type: move\n  x: 10\n  y: 20\n  monitor_index: 1\n- type: key\n  key: enter\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	actions, err := Sequence(path, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if actions[0].Monitor != 1 {
		t.Fatalf("unexpected move action: %#v", actions[0])
	}
	if actions[1].Key != "enter" {
		t.Fatalf("unexpected key action: %#v", actions[1])
	}
}

// TestSequence_InlineYAML verifies a leading dash selects inline YAML.
func TestSequence_InlineYAML(t *testing.T) {
	doc := "- type: click\n  button: right\n"
	actions, err := Sequence(doc, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if actions[0].Button != action.ButtonRight {
		t.Fatalf("unexpected action: %#v", actions[0])
	}
}

// TestSequence_UnknownType verifies unknown step types report their index.
func TestSequence_UnknownType(t *testing.T) {
	_, err := Sequence(`[{"type":"move","x":1,"y":2},{"type":"hover"}]`, action.Defaults{})
	var ute *UnknownActionTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnknownActionTypeError, got %v", err)
	}
	if ute.Index != 1 || ute.Type != "hover" {
		t.Fatalf("unexpected error detail: %#v", ute)
	}
}

// TestSequence_MissingRequiredField verifies required coordinates are
// enforced per type.
func TestSequence_MissingRequiredField(t *testing.T) {
	var mae *MalformedActionError
	if _, err := Sequence(`[{"type":"move","x":1}]`, action.Defaults{}); !errors.As(err, &mae) {
		t.Fatalf("expected MalformedActionError for move, got %v", err)
	}
	if _, err := Sequence(`[{"type":"drag_from","x1":1,"y1":2}]`, action.Defaults{}); !errors.As(err, &mae) {
		t.Fatalf("expected MalformedActionError for drag_from, got %v", err)
	}
}

// TestSequence_DragEndAliases verifies drag accepts x2/y2 or plain x/y.
func TestSequence_DragEndAliases(t *testing.T) {
	a, err := Sequence(`[{"type":"drag","x2":30,"y2":40}]`, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	b, err := Sequence(`[{"type":"drag","x":30,"y":40}]`, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("alias mismatch: %#v vs %#v", a, b)
	}
}

// TestSequence_ParseIsRepeatable verifies parsing has no hidden state.
func TestSequence_ParseIsRepeatable(t *testing.T) {
	doc := `[{"type":"move","x":5,"y":6},{"type":"click","double":true}]`
	first, err := Sequence(doc, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	second, err := Sequence(doc, action.Defaults{})
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeat parse differs: %#v vs %#v", first, second)
	}
}

// TestSequence_BadDocument verifies decode failures surface as parse
// errors.
func TestSequence_BadDocument(t *testing.T) {
	if _, err := Sequence(`[{"type":`, action.Defaults{}); err == nil {
		t.Fatalf("expected error for truncated JSON")
	}
	if _, err := Sequence("no/such/file.json", action.Defaults{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
