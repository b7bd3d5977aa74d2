package style

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustAdd(t *testing.T, o *Overlay, start, end int, tag Tag) SpanID {
	t.Helper()
	id, err := o.Add(start, end, tag)
	if err != nil {
		t.Fatalf("Add(%d, %d): %v", start, end, err)
	}
	return id
}

func TestAddRemoveGet(t *testing.T) {
	o := New()
	a := mustAdd(t, o, 2, 5, 1)
	b := mustAdd(t, o, 0, 10, 2)
	if o.Len() != 2 || a == b {
		t.Fatalf("Len() = %d, ids %d %d", o.Len(), a, b)
	}
	if s, ok := o.Get(a); !ok || s.Start != 2 || s.End != 5 || s.Tag != 1 {
		t.Errorf("Get(a) = %v, %v", s, ok)
	}
	if s, ok := o.Remove(a); !ok || s.ID != a {
		t.Errorf("Remove(a) = %v, %v", s, ok)
	}
	if _, ok := o.Remove(a); ok {
		t.Error("second Remove should fail")
	}
	if _, err := o.Add(5, 2, 1); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Add crossed span error = %v", err)
	}
	if _, err := o.Add(-1, 2, 1); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Add negative span error = %v", err)
	}
}

func TestStylesAt(t *testing.T) {
	o := New()
	mustAdd(t, o, 0, 4, 1)
	mustAdd(t, o, 2, 6, 2)
	mustAdd(t, o, 3, 3, 3)
	mustAdd(t, o, 8, 9, 4)

	tests := []struct {
		pos  int
		want []Tag
	}{
		{0, []Tag{1}},
		{2, []Tag{1, 2}},
		{3, []Tag{1, 2}},
		{4, []Tag{2}},
		{6, nil},
		{8, []Tag{4}},
		{9, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, o.StylesAt(tt.pos)); diff != "" {
			t.Errorf("StylesAt(%d) mismatch (-want +got):\n%s", tt.pos, diff)
		}
	}
}

func TestSpansIn(t *testing.T) {
	o := New()
	a := mustAdd(t, o, 0, 4, 1)
	b := mustAdd(t, o, 4, 6, 2)
	c := mustAdd(t, o, 5, 5, 3)
	d := mustAdd(t, o, 7, 9, 4)

	ids := func(spans []Span) []SpanID {
		var out []SpanID
		for _, s := range spans {
			out = append(out, s.ID)
		}
		return out
	}
	tests := []struct {
		start, end int
		want       []SpanID
	}{
		{0, 10, []SpanID{a, b, c, d}},
		{4, 5, []SpanID{b}},
		{4, 6, []SpanID{b, c}},
		{6, 7, nil},
		{3, 3, []SpanID{a}},
		{8, 20, []SpanID{d}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ids(o.SpansIn(tt.start, tt.end))); diff != "" {
			t.Errorf("SpansIn(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.end, diff)
		}
	}
}

func TestAdjustRules(t *testing.T) {
	tests := []struct {
		name                     string
		span                     Span
		start, removed, inserted int
		want                     Span
		deleted                  bool
	}{
		{"before edit", Span{Start: 0, End: 3}, 5, 2, 1, Span{Start: 0, End: 3}, false},
		{"after edit", Span{Start: 10, End: 12}, 5, 2, 4, Span{Start: 12, End: 14}, false},
		{"insert before shifts", Span{Start: 5, End: 8}, 2, 0, 3, Span{Start: 8, End: 11}, false},
		{"insert at start shifts", Span{Start: 5, End: 8}, 5, 0, 3, Span{Start: 8, End: 11}, false},
		{"insert inside extends", Span{Start: 5, End: 8}, 6, 0, 3, Span{Start: 5, End: 11}, false},
		{"insert at end does not extend", Span{Start: 5, End: 8}, 8, 0, 3, Span{Start: 5, End: 8}, false},
		{"delete inside shortens", Span{Start: 2, End: 10}, 4, 3, 0, Span{Start: 2, End: 7}, false},
		{"delete containing removes", Span{Start: 4, End: 6}, 3, 5, 0, Span{}, true},
		{"delete exact removes", Span{Start: 4, End: 6}, 4, 2, 0, Span{}, true},
		{"straddle left truncates", Span{Start: 2, End: 6}, 4, 4, 0, Span{Start: 2, End: 4}, false},
		{"straddle right collapses start", Span{Start: 5, End: 10}, 3, 4, 0, Span{Start: 3, End: 6}, false},
		{"replace straddle right", Span{Start: 5, End: 10}, 3, 4, 2, Span{Start: 5, End: 8}, false},
		{"empty span at insert point", Span{Start: 4, End: 4}, 4, 0, 2, Span{Start: 6, End: 6}, false},
		{"empty span inside delete survives", Span{Start: 5, End: 5}, 3, 4, 0, Span{Start: 3, End: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := adjust(tt.span, tt.start, tt.removed, tt.inserted)
			if ok == tt.deleted {
				t.Fatalf("adjust kept=%v, want deleted=%v", ok, tt.deleted)
			}
			if ok && (got.Start != tt.want.Start || got.End != tt.want.End) {
				t.Errorf("adjust = [%d, %d), want [%d, %d)", got.Start, got.End, tt.want.Start, tt.want.End)
			}
		})
	}
}

func TestAdjustOverlay(t *testing.T) {
	o := New()
	before := mustAdd(t, o, 0, 2, 1)
	inside := mustAdd(t, o, 4, 6, 2)
	straddle := mustAdd(t, o, 3, 9, 3)
	after := mustAdd(t, o, 12, 15, 4)

	prior := o.Adjust(4, 3, 0) // delete [4, 7)

	if _, ok := o.Get(inside); ok {
		t.Error("span inside the deletion should be removed")
	}
	want := []Span{
		{ID: before, Start: 0, End: 2, Tag: 1},
		{ID: straddle, Start: 3, End: 6, Tag: 3},
		{ID: after, Start: 9, End: 12, Tag: 4},
	}
	if diff := cmp.Diff(want, o.Spans()); diff != "" {
		t.Errorf("spans after delete (-want +got):\n%s", diff)
	}

	gotIDs := map[SpanID]Span{}
	for _, s := range prior {
		gotIDs[s.ID] = s
	}
	if _, ok := gotIDs[inside]; !ok {
		t.Error("removed span missing from prior states")
	}
	if s := gotIDs[straddle]; s.Start != 3 || s.End != 9 {
		t.Errorf("prior state of straddling span = %v", s)
	}
	if _, ok := gotIDs[after]; ok {
		t.Error("shifted span should not be reported as touched")
	}
}

func TestAdjustRoundTrip(t *testing.T) {
	o := New()
	mustAdd(t, o, 0, 3, 1)
	mustAdd(t, o, 3, 7, 2)
	mustAdd(t, o, 5, 5, 3)
	mustAdd(t, o, 6, 20, 4)
	want := o.Spans()

	for _, at := range []int{0, 3, 5, 6, 7, 20, 25} {
		o.Adjust(at, 0, 4)
		o.Adjust(at, 4, 0)
		if diff := cmp.Diff(want, o.Spans()); diff != "" {
			t.Errorf("insert then delete at %d changed layout (-want +got):\n%s", at, diff)
		}
	}
}

func TestRestore(t *testing.T) {
	o := New()
	id := mustAdd(t, o, 2, 8, 7)
	prior := o.Adjust(1, 5, 0)
	if err := o.Restore(prior[0]); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s, _ := o.Get(id); s.Start != 2 || s.End != 8 {
		t.Errorf("restored span = %v", s)
	}
	if o.Len() != 1 {
		t.Errorf("Len() = %d after restore, want 1", o.Len())
	}
	next := mustAdd(t, o, 0, 1, 0)
	if next <= id {
		t.Errorf("new id %d reuses restored id %d", next, id)
	}
	if err := o.Restore(Span{ID: 0, Start: 0, End: 1}); !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Restore with zero ID error = %v", err)
	}
}

func TestMatchAndClear(t *testing.T) {
	o := New()
	mustAdd(t, o, 0, 10, 1)
	id := mustAdd(t, o, 2, 4, 2)
	if s, ok := o.Match(3, 2); !ok || s.ID != id {
		t.Errorf("Match(3, 2) = %v, %v", s, ok)
	}
	if _, ok := o.Match(5, 2); ok {
		t.Error("Match(5, 2) should fail")
	}
	o.Clear()
	if o.Len() != 0 || len(o.Spans()) != 0 || o.StylesAt(3) != nil {
		t.Error("Clear left spans behind")
	}
}

// TestRandomizedAgainstModel drives the tree and a plain slice with the same
// operations and compares every query.
func TestRandomizedAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	o := New()
	model := map[SpanID]Span{}
	size := 200

	sorted := func() []Span {
		out := make([]Span, 0, len(model))
		for _, s := range model {
			out = append(out, s)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Start != out[j].Start {
				return out[i].Start < out[j].Start
			}
			return out[i].ID < out[j].ID
		})
		return out
	}

	for step := 0; step < 3000; step++ {
		switch op := rng.Intn(10); {
		case op < 4:
			a := rng.Intn(size + 1)
			b := a + rng.Intn(12)
			id := mustAdd(t, o, a, b, Tag(rng.Intn(5)))
			model[id], _ = o.Get(id)
		case op < 5 && len(model) > 0:
			for id := range model {
				o.Remove(id)
				delete(model, id)
				break
			}
		default:
			start := rng.Intn(size + 1)
			removed := rng.Intn(min(8, size-start) + 1)
			inserted := rng.Intn(8)
			o.Adjust(start, removed, inserted)
			for id, s := range model {
				if ns, ok := adjust(s, start, removed, inserted); ok {
					model[id] = ns
				} else {
					delete(model, id)
				}
			}
			size += inserted - removed
		}

		if step%50 != 0 {
			continue
		}
		if diff := cmp.Diff(sorted(), o.Spans()); diff != "" {
			t.Fatalf("step %d: spans mismatch (-model +tree):\n%s", step, diff)
		}
		pos := rng.Intn(size + 1)
		var want []Span
		for _, s := range sorted() {
			if s.Contains(pos) {
				want = append(want, s)
			}
		}
		if diff := cmp.Diff(want, o.At(pos)); diff != "" {
			t.Fatalf("step %d: At(%d) mismatch (-model +tree):\n%s", step, pos, diff)
		}
	}
}
