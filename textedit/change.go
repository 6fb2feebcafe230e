package textedit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrOverlap is returned when two changes in one set partially overlap.
	ErrOverlap = errors.New("overlapping changes")

	// ErrRange is returned for a change outside of its document.
	ErrRange = errors.New("change out of range")

	// ErrLength is returned when a change set is applied to, or composed
	// with, content of the wrong length.
	ErrLength = errors.New("change set length mismatch")
)

// Change replaces the bytes [From, To) of one document snapshot with Insert.
type Change struct {
	From   int
	To     int
	Insert string
}

func (c Change) delta() int { return len(c.Insert) - (c.To - c.From) }

func (c Change) String() string {
	return fmt.Sprintf("[%v,%v)=%q", c.From, c.To, c.Insert)
}

// ChangeSet is an ordered set of non-overlapping changes against a document
// of a known length, applied together as if simultaneously.
type ChangeSet struct {
	changes []Change
	length  int
}

// NewChangeSet builds a change set for a document of the given length.
// Changes are sorted by position; a change repeating the exact range of an
// earlier one replaces it.
func NewChangeSet(length int, changes ...Change) (ChangeSet, error) {
	cs := ChangeSet{length: length}
	if len(changes) == 0 {
		return cs, nil
	}
	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})
	for _, c := range sorted {
		if c.From < 0 || c.To < c.From || c.To > length {
			return ChangeSet{}, fmt.Errorf("%w: %v in length %v", ErrRange, c, length)
		}
		if i := len(cs.changes) - 1; i >= 0 {
			last := cs.changes[i]
			if last.From == c.From && last.To == c.To {
				cs.changes[i] = c
				continue
			}
			if c.From < last.To {
				return ChangeSet{}, fmt.Errorf("%w: %v and %v", ErrOverlap, last, c)
			}
		}
		if c.From == c.To && c.Insert == "" {
			continue
		}
		cs.changes = append(cs.changes, c)
	}
	return cs, nil
}

// Len returns the length of the document the set applies to.
func (cs ChangeSet) Len() int { return cs.length }

// NewLen returns the length of the document after applying the set.
func (cs ChangeSet) NewLen() int {
	n := cs.length
	for _, c := range cs.changes {
		n += c.delta()
	}
	return n
}

// Empty returns true if the set changes nothing.
func (cs ChangeSet) Empty() bool { return len(cs.changes) == 0 }

// Changes returns a copy of the set's changes in document order.
func (cs ChangeSet) Changes() []Change {
	return append([]Change(nil), cs.changes...)
}

// Apply returns text with all changes applied.
func (cs ChangeSet) Apply(text string) (string, error) {
	if len(text) != cs.length {
		return "", fmt.Errorf("%w: applying to %v bytes, expected %v", ErrLength, len(text), cs.length)
	}
	var sb strings.Builder
	sb.Grow(cs.NewLen())
	pos := 0
	for _, c := range cs.changes {
		sb.WriteString(text[pos:c.From])
		sb.WriteString(c.Insert)
		pos = c.To
	}
	sb.WriteString(text[pos:])
	return sb.String(), nil
}

// MapPos maps a position in the original document into the changed one.
// Positions inside a replaced span map to its start, or to the end of its
// replacement text when assoc > 0. A position where text is inserted stays
// before the insertion when assoc < 0, and moves after it otherwise.
func (cs ChangeSet) MapPos(pos, assoc int) int {
	shift := 0
	for _, c := range cs.changes {
		if pos < c.From {
			break
		}
		if c.From == c.To {
			if pos == c.From && assoc < 0 {
				return pos + shift
			}
			shift += c.delta()
			continue
		}
		if pos >= c.To {
			shift += c.delta()
			continue
		}
		if pos == c.From || assoc <= 0 {
			return c.From + shift
		}
		return c.From + shift + len(c.Insert)
	}
	return pos + shift
}

// segment is a piece of a change set's output: either a kept range of the
// original document, or inserted text.
type segment struct {
	from, to int
	text     string
	kept     bool
}

func (seg segment) len() int {
	if seg.kept {
		return seg.to - seg.from
	}
	return len(seg.text)
}

func (seg segment) slice(i, j int) segment {
	if seg.kept {
		return segment{from: seg.from + i, to: seg.from + j, kept: true}
	}
	return segment{text: seg.text[i:j]}
}

func (cs ChangeSet) segments() []segment {
	var segs []segment
	pos := 0
	for _, c := range cs.changes {
		if c.From > pos {
			segs = append(segs, segment{from: pos, to: c.From, kept: true})
		}
		if c.Insert != "" {
			segs = append(segs, segment{text: c.Insert})
		}
		pos = c.To
	}
	if pos < cs.length {
		segs = append(segs, segment{from: pos, to: cs.length, kept: true})
	}
	return segs
}

// Compose returns a single change set equivalent to applying the receiver
// and then next, which must be expressed against the receiver's output.
func (cs ChangeSet) Compose(next ChangeSet) (ChangeSet, error) {
	if next.length != cs.NewLen() {
		return ChangeSet{}, fmt.Errorf("%w: composing set of length %v after output length %v",
			ErrLength, next.length, cs.NewLen())
	}

	var (
		segs = cs.segments()
		out  []segment
		si   int // current segment
		off  int // offset within segs[si]
	)
	advance := func(n int, keep bool) {
		for n > 0 && si < len(segs) {
			seg := segs[si]
			k := seg.len() - off
			if k > n {
				k = n
			}
			if keep {
				out = append(out, seg.slice(off, off+k))
			}
			if off += k; off == seg.len() {
				si++
				off = 0
			}
			n -= k
		}
	}

	pos := 0
	for _, c := range next.changes {
		advance(c.From-pos, true)
		advance(c.To-c.From, false)
		if c.Insert != "" {
			out = append(out, segment{text: c.Insert})
		}
		pos = c.To
	}
	advance(next.length-pos, true)

	res := ChangeSet{length: cs.length}
	var (
		basePos int
		pending strings.Builder
	)
	for _, seg := range out {
		if !seg.kept {
			pending.WriteString(seg.text)
			continue
		}
		if seg.from > basePos || pending.Len() > 0 {
			res.changes = append(res.changes, Change{basePos, seg.from, pending.String()})
			pending.Reset()
		}
		basePos = seg.to
	}
	if basePos < cs.length || pending.Len() > 0 {
		res.changes = append(res.changes, Change{basePos, cs.length, pending.String()})
	}
	return res, nil
}

// String lists the set's changes.
func (cs ChangeSet) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ChangeSet(%v)", cs.length)
	for _, c := range cs.changes {
		sb.WriteByte(' ')
		sb.WriteString(c.String())
	}
	return sb.String()
}
