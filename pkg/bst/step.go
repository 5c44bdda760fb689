package bst

import (
	"encoding/json"
	"fmt"
)

// Action classifies what a single trace step represents. The set is closed:
// every step emitted by the engine carries exactly one of these values, and
// playback code is expected to switch over them exhaustively rather than
// dispatch on strings.
type Action int

const (
	// ActionVisited marks that the operation examined a node.
	ActionVisited Action = iota
	// ActionCompared marks a key comparison against a node.
	ActionCompared
	// ActionMovedLeft marks a descent into a left child.
	ActionMovedLeft
	// ActionMovedRight marks a descent into a right child.
	ActionMovedRight
	// ActionInserted marks the attachment of a new node.
	ActionInserted
	// ActionFound marks a successful match. During insertion it means the
	// value was already present and the insert was rejected.
	ActionFound
	// ActionNotFound marks an unsuccessful search. Steps with this action
	// carry no node value.
	ActionNotFound
)

// actionNames maps actions to their wire names.
var actionNames = [...]string{
	ActionVisited:    "VISITED",
	ActionCompared:   "COMPARED",
	ActionMovedLeft:  "MOVED_LEFT",
	ActionMovedRight: "MOVED_RIGHT",
	ActionInserted:   "INSERTED",
	ActionFound:      "FOUND",
	ActionNotFound:   "NOT_FOUND",
}

// String returns the canonical wire name of the action (e.g. "MOVED_LEFT").
func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts a wire name back into an Action.
// It is the inverse of [Action.String].
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if s == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action: %q", s)
}

// MarshalJSON encodes the action as its wire name.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an action from its wire name.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Step is one immutable entry in an operation's execution trace. Steps are
// appended in the order the algorithm made its decisions, so replaying a
// sequence reproduces the exact path taken through the tree.
//
// A step either concerns a specific node (HasValue true) or records a global
// outcome such as "not found" (HasValue false). Description is display text
// for the playback layer and carries no control semantics.
type Step struct {
	Action      Action
	Value       int
	HasValue    bool
	Description string
}

// stepJSON is the wire form of a Step. A nil Node signals a global outcome.
type stepJSON struct {
	Node        *int   `json:"node"`
	Action      Action `json:"action"`
	Description string `json:"description"`
}

// MarshalJSON encodes the step with "node": null for global outcomes.
func (s Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{Action: s.Action, Description: s.Description}
	if s.HasValue {
		v := s.Value
		out.Node = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a step from its wire form.
func (s *Step) UnmarshalJSON(data []byte) error {
	var in stepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Step{Action: in.Action, Description: in.Description}
	if in.Node != nil {
		s.Value = *in.Node
		s.HasValue = true
	}
	return nil
}

// stepAt builds a step concerning a specific node.
func stepAt(a Action, value int, desc string) Step {
	return Step{Action: a, Value: value, HasValue: true, Description: desc}
}

// stepGlobal builds a step with no node attached (e.g. NOT_FOUND).
func stepGlobal(a Action, desc string) Step {
	return Step{Action: a, Description: desc}
}

func visited(v int) Step {
	return stepAt(ActionVisited, v, fmt.Sprintf("visiting node %d", v))
}

func compared(incoming, current int) Step {
	return stepAt(ActionCompared, current, fmt.Sprintf("comparing %d with node %d", incoming, current))
}

func movedLeft(from int) Step {
	return stepAt(ActionMovedLeft, from, fmt.Sprintf("moving left from node %d", from))
}

func movedRight(from int) Step {
	return stepAt(ActionMovedRight, from, fmt.Sprintf("moving right from node %d", from))
}

func inserted(v int) Step {
	return stepAt(ActionInserted, v, fmt.Sprintf("inserted %d", v))
}

func foundDuplicate(v int) Step {
	return stepAt(ActionFound, v, fmt.Sprintf("%d already in the tree, insert rejected", v))
}

func found(v int) Step {
	return stepAt(ActionFound, v, fmt.Sprintf("found %d", v))
}

func notFound(v int) Step {
	return stepGlobal(ActionNotFound, fmt.Sprintf("%d is not in the tree", v))
}
