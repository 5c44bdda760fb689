// Package playback drives step sequences produced by the bst engine.
//
// A [Player] holds one operation's trace and a cursor into it. The engine
// guarantees the trace is deterministic, so a Player can be rewound and
// replayed freely; timing policy (manual stepping, autoplay pacing) lives
// entirely here and never affects the trace itself.
package playback

import (
	"context"
	"time"

	"github.com/matzehuels/treetrace/pkg/bst"
)

// Player steps through a trace. The zero value is an empty, finished player;
// use New. Player is not safe for concurrent use.
type Player struct {
	steps  []bst.Step
	cursor int // index of the next step to apply; len(steps) when done
}

// New creates a player positioned before the first step.
func New(steps []bst.Step) *Player {
	return &Player{steps: steps}
}

// Len returns the total number of steps.
func (p *Player) Len() int { return len(p.steps) }

// Pos returns how many steps have been applied.
func (p *Player) Pos() int { return p.cursor }

// Done reports whether all steps have been applied.
func (p *Player) Done() bool { return p.cursor >= len(p.steps) }

// Steps returns the underlying trace.
func (p *Player) Steps() []bst.Step { return p.steps }

// Current returns the most recently applied step.
// ok is false before the first Next and for an empty trace.
func (p *Player) Current() (bst.Step, bool) {
	if p.cursor == 0 || len(p.steps) == 0 {
		return bst.Step{}, false
	}
	return p.steps[p.cursor-1], true
}

// Next applies the next step and returns it. ok is false when the trace is
// exhausted, leaving the cursor unchanged.
func (p *Player) Next() (bst.Step, bool) {
	if p.Done() {
		return bst.Step{}, false
	}
	p.cursor++
	return p.steps[p.cursor-1], true
}

// Prev rewinds one step and returns the step that is now current.
// ok is false at the start of the trace.
func (p *Player) Prev() (bst.Step, bool) {
	if p.cursor == 0 {
		return bst.Step{}, false
	}
	p.cursor--
	return p.Current()
}

// Seek positions the cursor so that pos steps are applied.
// Out-of-range positions are clamped.
func (p *Player) Seek(pos int) {
	p.cursor = min(max(pos, 0), len(p.steps))
}

// Reset rewinds to before the first step.
func (p *Player) Reset() { p.cursor = 0 }

// Run plays the remaining steps at the given interval, calling fn for each.
// It returns early when ctx is cancelled or fn returns false. The first step
// fires immediately rather than after one interval.
func (p *Player) Run(ctx context.Context, interval time.Duration, fn func(bst.Step) bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for first := true; !p.Done(); first = false {
		if !first {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		step, ok := p.Next()
		if !ok {
			return nil
		}
		if !fn(step) {
			return nil
		}
	}
	return nil
}

// HighlightClass maps an action to the style class a renderer should apply
// to the step's node. The switch is exhaustive over the closed action set.
func HighlightClass(a bst.Action) string {
	switch a {
	case bst.ActionVisited:
		return "visited"
	case bst.ActionCompared:
		return "compared"
	case bst.ActionMovedLeft, bst.ActionMovedRight:
		return "moved"
	case bst.ActionInserted:
		return "inserted"
	case bst.ActionFound:
		return "found"
	case bst.ActionNotFound:
		return "missing"
	default:
		return "none"
	}
}
