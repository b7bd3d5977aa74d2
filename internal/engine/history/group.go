package history

import (
	"fmt"

	"github.com/google/uuid"
)

// BeginGroup starts collecting records into one step. Groups nest; only
// the outermost EndGroup pushes the step.
func (l *Log) BeginGroup() {
	l.depth++
	if l.grouping {
		return
	}
	l.Break()
	l.grouping = true
	l.group = Record{}
}

// EndGroup pushes the collected step. An empty group records nothing.
func (l *Log) EndGroup() {
	if !l.grouping {
		return
	}
	if l.depth--; l.depth > 0 {
		return
	}
	l.grouping = false
	g := l.group
	l.group = Record{}
	if len(g.Edits) == 0 && len(g.Spans) == 0 {
		return
	}
	if len(g.Edits) == 0 {
		g.Kind = KindStyle
	}
	l.push(g)
	l.last = run{}
}

// CancelGroup reverses the collected records against t and drops them.
// Inside nested groups it cancels the outermost one.
func (l *Log) CancelGroup(t Target) error {
	if !l.grouping {
		return nil
	}
	g := l.group
	l.grouping = false
	l.depth = 0
	l.group = Record{}
	if g.ID == uuid.Nil {
		return nil
	}
	return revert(t, g)
}

// IsGrouping returns true while a group is open.
func (l *Log) IsGrouping() bool {
	return l.grouping
}

func (l *Log) addToGroup(r Record) {
	if l.group.ID == uuid.Nil {
		l.group = Record{
			ID:     uuid.New(),
			Kind:   KindEdit,
			Before: r.Before,
			Time:   r.Time,
		}
	}
	l.group.Edits = append(l.group.Edits, r.Edits...)
	l.group.Spans = mergeSpans(l.group.Spans, r.Spans)
	l.group.After = r.After
}

// Transaction runs fn inside a group. If fn fails, whatever it recorded is
// reverted against t and fn's error is returned.
func (l *Log) Transaction(t Target, fn func() error) error {
	l.BeginGroup()
	if err := fn(); err != nil {
		if rerr := l.CancelGroup(t); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	l.EndGroup()
	return nil
}
