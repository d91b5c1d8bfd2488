package anim

import (
	"strings"
	"time"
)

// Range is one contiguous span of model frames played at a fixed rate.
type Range struct {
	FirstFrame    int
	NumFrames     int
	LoopingFrames int
	FPS           int
}

// Placeholder stands in for canonical slots the table does not define.
var Placeholder = Range{FirstFrame: 0, NumFrames: 1, LoopingFrames: 0, FPS: 10}

// Entry is a named data line of animation.cfg.
type Entry struct {
	Name  string
	Range Range
}

// Table is a parsed, reconciled animation.cfg.
type Table struct {
	Entries []Entry
}

// ByName returns the range of the first entry whose name matches,
// ignoring case.
func (t *Table) ByName(name string) (Range, bool) {
	for _, e := range t.Entries {
		if strings.EqualFold(e.Name, name) {
			return e.Range, true
		}
	}
	return Range{}, false
}

// Slot returns the entry at the slot's position, or false when the file
// has fewer entries.
func (t *Table) Slot(s Slot) (Range, bool) {
	if !s.Valid() || int(s) >= len(t.Entries) {
		return Range{}, false
	}
	return t.Entries[s].Range, true
}

// SlotOrPlaceholder is Slot with missing slots replaced by Placeholder.
func (t *Table) SlotOrPlaceholder(s Slot) Range {
	if r, ok := t.Slot(s); ok {
		return r
	}
	return Placeholder
}

// Missing lists the canonical slots the table does not cover.
func (t *Table) Missing() []Slot {
	var out []Slot
	for s := Slot(0); s < NumSlots; s++ {
		if _, ok := t.Slot(s); !ok {
			out = append(out, s)
		}
	}
	return out
}

// FrameAt returns the model frame shown after elapsed playback time.
// Ranges with looping frames wrap over them; others hold the last frame.
func (r Range) FrameAt(elapsed time.Duration) int {
	if r.FPS <= 0 || elapsed <= 0 {
		return r.FirstFrame
	}
	n := int(elapsed * time.Duration(r.FPS) / time.Second)
	if r.LoopingFrames > 0 {
		return r.FirstFrame + n%r.LoopingFrames
	}
	if last := r.NumFrames - 1; n > last {
		n = max(last, 0)
	}
	return r.FirstFrame + n
}

// Duration is the time one pass over the range takes.
func (r Range) Duration() time.Duration {
	if r.FPS <= 0 {
		return 0
	}
	return time.Duration(r.NumFrames) * time.Second / time.Duration(r.FPS)
}
