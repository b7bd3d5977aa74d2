package dirty

import (
	"sort"
	"sync"

	"github.com/dshills/textcore/internal/engine"
)

// DefaultMaxRanges is the number of separate ranges kept before the
// tracker falls back to marking everything.
const DefaultMaxRanges = 32

// Tracker accumulates dirty line ranges. It may be read from a render
// goroutine while the owning goroutine marks changes.
type Tracker struct {
	mu sync.RWMutex

	ranges    []Range
	all       bool
	lineCount int
	maxRanges int
}

// NewTracker creates a tracker for a document of lineCount lines.
func NewTracker(lineCount int) *Tracker {
	return &Tracker{
		ranges:    make([]Range, 0, 8),
		lineCount: max(lineCount, 1),
		maxRanges: DefaultMaxRanges,
	}
}

// Observe marks every change e reports. The returned function stops
// observing.
func (t *Tracker) Observe(e *engine.Engine) func() {
	t.SetLineCount(e.LineCount())
	return e.OnChange(t.MarkChange)
}

// SetLineCount updates the document size and marks everything dirty.
func (t *Tracker) SetLineCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lineCount = max(n, 1)
	t.markAll()
}

// LineCount returns the document size the tracker assumes.
func (t *Tracker) LineCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lineCount
}

// MarkAll marks every line dirty.
func (t *Tracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.markAll()
}

func (t *Tracker) markAll() {
	t.all = true
	t.ranges = t.ranges[:0]
}

// MarkLine marks one line dirty.
func (t *Tracker) MarkLine(line int) {
	t.MarkLines(line, line)
}

// MarkLines marks lines start through end dirty.
func (t *Tracker) MarkLines(start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.add(NewRange(start, end))
}

// MarkChange marks the lines touched by an edit. When the edit changes the
// line count, every line after it moves, so the range runs to the end.
func (t *Tracker) MarkChange(ch engine.Change) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delta := ch.NewLastLine - ch.OldLastLine
	t.lineCount = max(t.lineCount+delta, 1)
	r := NewRange(ch.FirstLine, ch.NewLastLine)
	if delta != 0 {
		r.End = t.lineCount - 1
	}
	t.add(r)
}

func (t *Tracker) add(r Range) {
	if t.all {
		return
	}
	r = r.Clamp(t.lineCount)
	if r.IsEmpty() {
		return
	}

	for i := range t.ranges {
		if merged, ok := t.ranges[i].Merge(r); ok {
			t.ranges[i] = merged
			t.coalesce()
			return
		}
	}
	t.ranges = append(t.ranges, r)
	if len(t.ranges) > t.maxRanges {
		t.markAll()
	}
}

// coalesce merges ranges until none overlap or touch.
func (t *Tracker) coalesce() {
	sort.Slice(t.ranges, func(i, j int) bool { return t.ranges[i].Start < t.ranges[j].Start })
	out := t.ranges[:0]
	for _, r := range t.ranges {
		if n := len(out); n > 0 {
			if merged, ok := out[n-1].Merge(r); ok {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, r)
	}
	t.ranges = out
}

// SetMaxRanges sets how many ranges are kept before everything is marked.
// Values below 1 are clamped to 1.
func (t *Tracker) SetMaxRanges(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.maxRanges = max(n, 1)
}

// IsDirty returns true if any line is dirty.
func (t *Tracker) IsDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.all || len(t.ranges) > 0
}

// IsAll returns true if every line is dirty.
func (t *Tracker) IsAll() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.all
}

// IsLineDirty returns true if line needs layout.
func (t *Tracker) IsLineDirty(line int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.all {
		return line >= 0 && line < t.lineCount
	}
	for _, r := range t.ranges {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// Ranges returns the dirty ranges in line order.
func (t *Tracker) Ranges() []Range {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot()
}

func (t *Tracker) snapshot() []Range {
	if t.all {
		return []Range{{Start: 0, End: t.lineCount - 1}}
	}
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Lines returns the dirty line numbers in ascending order.
func (t *Tracker) Lines() []int {
	var lines []int
	for _, r := range t.Ranges() {
		for l := r.Start; l <= r.End; l++ {
			lines = append(lines, l)
		}
	}
	return lines
}

// Take returns the dirty ranges and clears the tracker.
func (t *Tracker) Take() []Range {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.snapshot()
	t.ranges = t.ranges[:0]
	t.all = false
	return out
}

// Clear forgets all dirty ranges.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ranges = t.ranges[:0]
	t.all = false
}
