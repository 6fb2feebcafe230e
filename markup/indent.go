package markup

import (
	"sort"

	"github.com/jcorbin/mdcont/textedit"
)

// IndentMore handles Tab: it indents every selected line by one indent
// unit, renumbering an ordered item as it joins a deeper list and the
// siblings it leaves behind. It abstains only for a read-only state.
func IndentMore(st *textedit.State) Result {
	return changeBySelectedLine(st, "input.indent", func(doc *textedit.Doc, line textedit.Line) []textedit.Change {
		return indentLine(doc, line)
	})
}

// IndentLess handles Shift-Tab: it removes one indent unit from every
// selected line that has leading whitespace, renumbering an ordered item
// as it joins the shallower list and the siblings it leaves behind. It
// abstains only for a read-only state.
func IndentLess(st *textedit.State) Result {
	return changeBySelectedLine(st, "delete.dedent", func(doc *textedit.Doc, line textedit.Line) []textedit.Change {
		changes, _ := dedentLine(doc, line)
		return changes
	})
}

// changeBySelectedLine calls fn once for every selected line, top to
// bottom, with the document as edited for all lines above it. The edits are
// composed into one transaction, and the selection mapped through each.
func changeBySelectedLine(
	st *textedit.State,
	userEvent string,
	fn func(doc *textedit.Doc, line textedit.Line) []textedit.Change,
) Result {
	if st.ReadOnly {
		return Abstain
	}
	doc, sel := st.Doc, st.Selection
	all, err := textedit.NewChangeSet(doc.Len())
	if err != nil {
		return Abstain
	}
	for _, n := range selectedLines(doc, st.Selection) {
		cs, err := textedit.NewChangeSet(doc.Len(), fn(doc, doc.Line(n))...)
		if err != nil {
			return Abstain
		}
		if cs.Empty() {
			continue
		}
		text, err := cs.Apply(doc.String())
		if err != nil {
			return Abstain
		}
		if all, err = all.Compose(cs); err != nil {
			return Abstain
		}
		doc = textedit.NewDoc(text, doc.Options())
		sel = sel.Map(cs, 1)
	}
	return handled(textedit.Transaction{
		Changes:   all,
		Selection: sel,
		UserEvent: userEvent,
	})
}

// selectedLines returns the numbers of all lines touched by the selection,
// in order; a non-empty range does not touch a line that it ends at the
// start of.
func selectedLines(doc *textedit.Doc, sel textedit.Selection) []int {
	seen := make(map[int]bool)
	var lines []int
	for _, r := range sel.Ranges {
		for pos := r.From(); pos <= r.To(); {
			line := doc.LineAt(pos)
			if !seen[line.Number] && (r.Empty() || r.To() > line.From) {
				seen[line.Number] = true
				lines = append(lines, line.Number)
			}
			pos = line.To + len(doc.LineBreak())
		}
	}
	sort.Ints(lines)
	return lines
}

// indentLine inserts one indent unit at the start of line; an ordered item
// is renumbered after its new previous sibling, and the siblings it leaves
// are renumbered without it.
func indentLine(doc *textedit.Doc, line textedit.Line) []textedit.Change {
	var changes []textedit.Change
	if ll, ok := parseListLine(line); ok {
		w := doc.IndentWidth()
		deeper, here := IndentEq(ll.indent+w), IndentEq(ll.indent)
		number := PreviousNumber(doc, line, deeper, here) + 1
		if c, ok := ll.renumber(number); ok {
			changes = append(changes, c)
		}
		changes = append(changes, RenumberFollowing(doc, line, deeper, here, number)...)
		changes = append(changes, RenumberFollowing(doc, line, here, IndentEq(ll.indent-w), -1)...)
	}
	return append(changes, textedit.Change{From: line.From, To: line.From, Insert: doc.IndentUnit()})
}

// dedentLine rewrites the leading whitespace of line one indent unit
// narrower, keeping any prefix it shares with the narrower indentation; an
// ordered item is renumbered after its new previous sibling, and the
// siblings it leaves restart from 1. Lines without leading whitespace are
// left alone, returning false.
func dedentLine(doc *textedit.Doc, line textedit.Line) ([]textedit.Change, bool) {
	space := textedit.LeadingSpace(line.Text)
	if space == "" {
		return nil, false
	}
	w := doc.IndentWidth()
	col := textedit.CountColumn(space, doc.TabSize(), -1)
	insert := doc.IndentString(max(0, col-w))
	keep := textedit.CommonPrefix(space, insert)

	var changes []textedit.Change
	if ll, ok := parseListLine(line); ok {
		shallower, here := IndentEq(ll.indent-w), IndentEq(ll.indent)
		number := PreviousNumber(doc, line, shallower, NoIndent) + 1
		if c, ok := ll.renumber(number); ok {
			changes = append(changes, c)
		}
		changes = append(changes, RenumberFollowing(doc, line, shallower, IndentEq(ll.indent-2*w), number)...)
		changes = append(changes, RenumberFollowing(doc, line, here, shallower, 0)...)
	}
	changes = append(changes, textedit.Change{
		From:   line.From + keep,
		To:     line.From + len(space),
		Insert: insert[keep:],
	})
	return changes, true
}
