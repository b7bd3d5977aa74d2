package style

import "fmt"

// Overlay is an interval index of spans over one buffer.
// It is not safe for concurrent use.
type Overlay struct {
	root   *node
	byID   map[SpanID]*node
	nextID SpanID
}

// New creates an empty overlay.
func New() *Overlay {
	return &Overlay{byID: make(map[SpanID]*node), nextID: 1}
}

// Len returns the number of spans.
func (o *Overlay) Len() int {
	return len(o.byID)
}

func (o *Overlay) setRoot(n *node) {
	o.root = n
	if n != nil {
		n.parent = nil
	}
}

// settle pushes pending offsets from the root down to n.
func (o *Overlay) settle(n *node) {
	var path []*node
	for p := n.parent; p != nil; p = p.parent {
		path = append(path, p)
	}
	for i := len(path) - 1; i >= 0; i-- {
		path[i].push()
	}
}

func (o *Overlay) insert(n *node) {
	n.left, n.right, n.parent, n.lazy = nil, nil, nil, 0
	n.maxEnd = n.span.End
	l, r := split(o.root, n.span.Start, n.span.ID)
	o.setRoot(merge(merge(l, n), r))
	o.byID[n.span.ID] = n
}

func (o *Overlay) detach(n *node) {
	o.settle(n)
	key := n.span
	l, r := split(o.root, key.Start, key.ID)
	_, r = split(r, key.Start, key.ID+1)
	o.setRoot(merge(l, r))
	delete(o.byID, key.ID)
}

// Add inserts a span over [start, end) and returns its ID.
func (o *Overlay) Add(start, end int, tag Tag) (SpanID, error) {
	if start < 0 || end < start {
		return 0, fmt.Errorf("span [%d, %d): %w", start, end, ErrInvalidSpan)
	}
	id := o.nextID
	o.nextID++
	o.insert(&node{span: Span{ID: id, Start: start, End: end, Tag: tag}, prio: priority(id)})
	return id, nil
}

// Remove deletes a span and returns its last state.
func (o *Overlay) Remove(id SpanID) (Span, bool) {
	n, ok := o.byID[id]
	if !ok {
		return Span{}, false
	}
	o.detach(n)
	return n.span, true
}

// Get returns the current state of a span.
func (o *Overlay) Get(id SpanID) (Span, bool) {
	n, ok := o.byID[id]
	if !ok {
		return Span{}, false
	}
	o.settle(n)
	return n.span, true
}

// Restore puts s back exactly as given, replacing any span with the same ID.
func (o *Overlay) Restore(s Span) error {
	if s.ID == 0 || s.Start < 0 || s.End < s.Start {
		return fmt.Errorf("restore %s: %w", s, ErrInvalidSpan)
	}
	if n, ok := o.byID[s.ID]; ok {
		o.detach(n)
	}
	if s.ID >= o.nextID {
		o.nextID = s.ID + 1
	}
	o.insert(&node{span: s, prio: priority(s.ID)})
	return nil
}

// Clear removes every span. IDs are not reused.
func (o *Overlay) Clear() {
	o.root = nil
	clear(o.byID)
}

// At returns the spans with Start <= pos < End, ordered by start.
func (o *Overlay) At(pos int) []Span {
	var out []Span
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil || n.maxEnd <= pos {
			return
		}
		n.push()
		visit(n.left)
		if n.span.Start > pos {
			return
		}
		if pos < n.span.End {
			out = append(out, n.span)
		}
		visit(n.right)
	}
	visit(o.root)
	return out
}

// StylesAt returns the tags active at pos, ordered by span start.
func (o *Overlay) StylesAt(pos int) []Tag {
	spans := o.At(pos)
	if len(spans) == 0 {
		return nil
	}
	tags := make([]Tag, len(spans))
	for i, s := range spans {
		tags[i] = s.Tag
	}
	return tags
}

// SpansIn returns the spans overlapping [start, end), ordered by start.
// Empty spans count when they sit inside [start, end). An empty query
// range behaves like At.
func (o *Overlay) SpansIn(start, end int) []Span {
	if end <= start {
		return o.At(start)
	}
	var out []Span
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil || n.maxEnd < start {
			return
		}
		n.push()
		visit(n.left)
		if n.span.Start >= end {
			return
		}
		s := n.span
		if s.End > start || (s.IsEmpty() && s.Start >= start) {
			out = append(out, s)
		}
		visit(n.right)
	}
	visit(o.root)
	return out
}

// Match returns the first span tagged tag that contains pos.
func (o *Overlay) Match(pos int, tag Tag) (Span, bool) {
	for _, s := range o.At(pos) {
		if s.Tag == tag {
			return s, true
		}
	}
	return Span{}, false
}

// Spans returns every span ordered by start.
func (o *Overlay) Spans() []Span {
	out := make([]Span, 0, len(o.byID))
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil {
			return
		}
		n.push()
		visit(n.left)
		out = append(out, n.span)
		visit(n.right)
	}
	visit(o.root)
	return out
}

// touching returns the nodes whose spans satisfy Start <= end and
// End >= start.
func (o *Overlay) touching(start, end int) []*node {
	var out []*node
	var visit func(n *node)
	visit = func(n *node) {
		if n == nil || n.maxEnd < start {
			return
		}
		n.push()
		visit(n.left)
		if n.span.Start > end {
			return
		}
		if n.span.End >= start {
			out = append(out, n)
		}
		visit(n.right)
	}
	visit(o.root)
	return out
}

// Adjust moves spans through an edit that replaced removed bytes at start
// with inserted bytes. It returns the prior state of every span it had to
// recompute, including spans it deleted.
func (o *Overlay) Adjust(start, removed, inserted int) []Span {
	end := start + removed
	touched := o.touching(start, end)
	before := make([]Span, len(touched))
	for i, n := range touched {
		before[i] = n.span
		o.detach(n)
	}

	if delta := inserted - removed; delta != 0 {
		l, r := split(o.root, end+1, 0)
		r.shift(delta)
		o.setRoot(merge(l, r))
	}

	for _, n := range touched {
		if s, ok := adjust(n.span, start, removed, inserted); ok {
			n.span = s
			o.insert(n)
		}
	}
	return before
}
