package markup

import (
	"strings"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

// DeleteMarkupBackward handles Backspace at every cursor that sits at or
// just after the end of list or quote markup: trailing space after the
// marker is trimmed, a list marker is replaced by blank indentation of the
// same width, and blank or quote markup is deleted back to where its
// context starts. It abstains unless every selection range is such a
// cursor.
func DeleteMarkupBackward(st *textedit.State, tree *scandown.Tree) Result {
	doc := st.Doc
	tr, ok, err := st.ChangeByRange(func(r textedit.Range) (textedit.RangeChange, bool) {
		if !r.Empty() || !markdownActive(doc, tree, r.From()) {
			return textedit.RangeChange{}, false
		}
		return deleteMarkup(doc, tree, r.From())
	})
	if err != nil || !ok {
		return Abstain
	}
	tr.UserEvent = "delete"
	tr.ScrollIntoView = true
	return handled(tr)
}

// contextNodeForDelete resolves the node whose contexts apply to a
// backspace at pos, stepping back over marks and into a preceding list's
// last item.
func contextNodeForDelete(tree *scandown.Tree, pos int) scandown.Node {
	node, scan := tree.ResolveInner(pos, -1), pos
	if node.Type().IsMark() {
		scan = node.From()
		node = node.Parent()
	}
	for {
		prev := node.ChildBefore(scan)
		switch {
		case prev.Type().IsMark():
			scan = prev.From()
		case prev.Type().IsList():
			node = prev.LastChild()
			scan = node.To()
		default:
			return node
		}
	}
}

func deleteMarkup(doc *textedit.Doc, tree *scandown.Tree, pos int) (textedit.RangeChange, bool) {
	line := doc.LineAt(pos)
	col := pos - line.From
	ctx := ContextAt(doc, contextNodeForDelete(tree, pos))
	if len(ctx) == 0 {
		return textedit.RangeChange{}, false
	}

	inner := ctx[len(ctx)-1]
	spaceEnd := inner.To - len(inner.SpaceAfter)
	if inner.SpaceAfter != "" {
		spaceEnd++
	}

	// trim extra space after the marker
	if col > spaceEnd && spaceEnd <= len(line.Text) && strings.TrimSpace(line.Text[spaceEnd:col]) == "" {
		return textedit.RangeChange{
			Changes: []textedit.Change{{From: line.From + spaceEnd, To: pos}},
			Cursor:  pos,
			Assoc:   -1,
		}, true
	}

	if col != spaceEnd {
		return textedit.RangeChange{}, false
	}
	// only on the line that carries the marker, or under it when only
	// indentation precedes
	if !inner.Item.IsNone() &&
		line.From > inner.Item.From() &&
		strings.TrimSpace(lineTo(line.Text, inner.To)) != "" {
		return textedit.RangeChange{}, false
	}

	start := line.From + inner.From
	if !inner.Item.IsNone() && strings.TrimSpace(lineSlice(line.Text, inner.From, inner.To)) != "" {
		// demote the marker to indentation
		tabSize := doc.TabSize()
		insert := inner.Blank(
			textedit.CountColumn(line.Text, tabSize, inner.To)-textedit.CountColumn(line.Text, tabSize, inner.From),
			true)
		if start == line.From {
			insert = doc.NormalizeIndent(insert)
		}
		return textedit.RangeChange{
			Changes: []textedit.Change{{From: start, To: line.From + inner.To, Insert: insert}},
			Cursor:  line.From + inner.To,
			Assoc:   1,
		}, true
	}

	if start < pos {
		return textedit.RangeChange{
			Changes: []textedit.Change{{From: start, To: pos}},
			Cursor:  pos,
			Assoc:   -1,
		}, true
	}
	return textedit.RangeChange{}, false
}

// lineTo returns text up to byte offset i, clamped to its end.
func lineTo(text string, i int) string {
	if i > len(text) {
		return text
	}
	return text[:i]
}

// lineSlice returns text[i:j] clamped to its end.
func lineSlice(text string, i, j int) string {
	return lineFrom(lineTo(text, j), i)
}
