package textedit

import (
	"fmt"
	"strings"
)

// Range is a selection range; Anchor is the fixed end and Head the moving
// end. An empty range is a cursor.
type Range struct {
	Anchor int
	Head   int
}

// Cursor returns an empty range at pos.
func Cursor(pos int) Range { return Range{pos, pos} }

// From returns the lower end of the range.
func (r Range) From() int {
	if r.Anchor < r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns the upper end of the range.
func (r Range) To() int {
	if r.Anchor > r.Head {
		return r.Anchor
	}
	return r.Head
}

// Empty returns true if the range is a cursor.
func (r Range) Empty() bool { return r.Anchor == r.Head }

// Map maps both ends of the range through a change set.
func (r Range) Map(cs ChangeSet, assoc int) Range {
	return Range{cs.MapPos(r.Anchor, assoc), cs.MapPos(r.Head, assoc)}
}

func (r Range) String() string {
	if r.Empty() {
		return fmt.Sprintf("@%v", r.Head)
	}
	return fmt.Sprintf("%v..%v", r.Anchor, r.Head)
}

// Selection is a set of ranges, one of which is the main range.
type Selection struct {
	Ranges []Range
	Main   int
}

// NewSelection returns a selection of the given ranges, the last of which is
// main.
func NewSelection(ranges ...Range) Selection {
	if len(ranges) == 0 {
		ranges = []Range{Cursor(0)}
	}
	return Selection{Ranges: ranges, Main: len(ranges) - 1}
}

// Single returns a selection holding one cursor.
func Single(pos int) Selection { return NewSelection(Cursor(pos)) }

// MainRange returns the main range.
func (sel Selection) MainRange() Range {
	if sel.Main < 0 || sel.Main >= len(sel.Ranges) {
		return Range{}
	}
	return sel.Ranges[sel.Main]
}

// Map maps every range through a change set.
func (sel Selection) Map(cs ChangeSet, assoc int) Selection {
	ranges := make([]Range, len(sel.Ranges))
	for i, r := range sel.Ranges {
		ranges[i] = r.Map(cs, assoc)
	}
	return Selection{Ranges: ranges, Main: sel.Main}
}

func (sel Selection) String() string {
	parts := make([]string, len(sel.Ranges))
	for i, r := range sel.Ranges {
		parts[i] = r.String()
		if i == sel.Main && len(sel.Ranges) > 1 {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, " ")
}
