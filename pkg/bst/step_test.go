package bst

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestActionRoundTrip(t *testing.T) {
	all := []Action{
		ActionVisited, ActionCompared, ActionMovedLeft, ActionMovedRight,
		ActionInserted, ActionFound, ActionNotFound,
	}
	for _, a := range all {
		parsed, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", a.String(), err)
		}
		if parsed != a {
			t.Errorf("round trip %v -> %q -> %v", a, a.String(), parsed)
		}
	}

	if _, err := ParseAction("SWAPPED"); err == nil {
		t.Error("ParseAction accepted unknown action")
	}
}

func TestStepJSONNullNode(t *testing.T) {
	tr := &Tree{}
	steps := tr.Search(42)

	data, err := json.Marshal(steps)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"node":null`) {
		t.Errorf("NOT_FOUND step should serialize node as null: %s", data)
	}

	var back []Step
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 1 || back[0].HasValue || back[0].Action != ActionNotFound {
		t.Errorf("round trip = %+v", back)
	}
}

func TestStepJSONWithNode(t *testing.T) {
	steps := New(50).Insert(30)

	data, err := json.Marshal(steps)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back []Step
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != len(steps) {
		t.Fatalf("len = %d, want %d", len(back), len(steps))
	}
	for i := range steps {
		if back[i] != steps[i] {
			t.Errorf("step %d: %+v != %+v", i, back[i], steps[i])
		}
	}
}

func TestStepDescriptionsArePresent(t *testing.T) {
	tr := New(50, 30, 70)
	for _, s := range tr.Search(99) {
		if s.Description == "" {
			t.Errorf("step %v has empty description", s.Action)
		}
	}
}
