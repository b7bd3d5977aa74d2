package history

import "github.com/dshills/textcore/internal/engine/grapheme"

// Boundary selects where a typing or backspace run is cut.
type Boundary uint8

const (
	// BoundaryNone cuts runs only at MaxRun.
	BoundaryNone Boundary = iota
	// BoundaryWhitespace cuts when a non-space grapheme follows a space,
	// so each word and its trailing space form one step.
	BoundaryWhitespace
	// BoundaryWord cuts whenever the grapheme class changes between word
	// characters, punctuation and space.
	BoundaryWord
)

// String returns the configuration name of the boundary.
func (b Boundary) String() string {
	switch b {
	case BoundaryWhitespace:
		return "whitespace"
	case BoundaryWord:
		return "word"
	default:
		return "none"
	}
}

// ParseBoundary maps a configuration name to a Boundary.
func ParseBoundary(s string) (Boundary, bool) {
	switch s {
	case "none":
		return BoundaryNone, true
	case "whitespace", "":
		return BoundaryWhitespace, true
	case "word":
		return BoundaryWord, true
	default:
		return BoundaryNone, false
	}
}

// Policy bounds coalescing. MaxRun <= 0 means runs are not length-limited.
type Policy struct {
	MaxRun   int
	Boundary Boundary
}

// DefaultPolicy merges up to 32 graphemes and cuts at whitespace.
var DefaultPolicy = Policy{MaxRun: 32, Boundary: BoundaryWhitespace}

// cuts reports whether a grapheme of class next may not join a run whose
// last grapheme had class prev.
func (p Policy) cuts(prev, next grapheme.Class) bool {
	switch p.Boundary {
	case BoundaryWhitespace:
		return prev == grapheme.ClassSpace && next != grapheme.ClassSpace
	case BoundaryWord:
		return prev != next
	default:
		return false
	}
}

// run is the last-edit descriptor used to decide coalescing.
type run struct {
	open   bool
	kind   Kind
	edge   int
	length int
	last   grapheme.Class
}

// describe starts a run from a freshly pushed record.
func describe(r Record) run {
	if len(r.Edits) != 1 || (r.Kind != KindTyping && r.Kind != KindBackspace) {
		return run{}
	}
	e := r.Edits[0]
	ru := run{open: true, kind: r.Kind, length: 1}
	if r.Kind == KindTyping {
		ru.edge = e.NewEnd()
		ru.last = grapheme.ClassOf(e.NewText)
	} else {
		ru.edge = e.Start
		ru.last = grapheme.ClassOf(e.OldText)
	}
	return ru
}

// accepts reports whether r extends the run under policy p.
func (ru run) accepts(r Record, p Policy) bool {
	if !ru.open || r.Kind != ru.kind || len(r.Edits) != 1 {
		return false
	}
	if p.MaxRun > 0 && ru.length >= p.MaxRun {
		return false
	}
	e := r.Edits[0]
	switch r.Kind {
	case KindTyping:
		return e.Start == ru.edge && e.OldText == "" && !p.cuts(ru.last, grapheme.ClassOf(e.NewText))
	case KindBackspace:
		return e.OldEnd() == ru.edge && e.NewText == "" && !p.cuts(ru.last, grapheme.ClassOf(e.OldText))
	default:
		return false
	}
}
