package markup

import (
	"regexp"
	"strings"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

var blankQuotePattern = regexp.MustCompile(`^[\s>]*$`)

// noMax is the Blank width that pads to the context's own marker.
const noMax = -1

// InsertNewlineContinueMarkup handles Enter at every cursor: it starts a new
// line carrying the list and quote markup active on the cursor's line, or,
// when the cursor sits after an empty list item's marker, removes one level
// of markup instead. It abstains if any selection range is not a cursor
// within Markdown list or quote markup.
func InsertNewlineContinueMarkup(st *textedit.State, tree *scandown.Tree) Result {
	doc := st.Doc
	var renumber []renumbering
	tr, ok, err := st.ChangeByRange(func(r textedit.Range) (textedit.RangeChange, bool) {
		if !r.Empty() || !markdownActive(doc, tree, r.From()) {
			return textedit.RangeChange{}, false
		}
		rc, req, ok := continueMarkup(doc, tree, r.From())
		renumber = append(renumber, req...)
		return rc, ok
	})
	if err != nil || !ok {
		return Abstain
	}
	if tr, err = renumberLists(doc, tr, renumber); err != nil {
		return Abstain
	}
	tr.UserEvent = "input"
	tr.ScrollIntoView = true
	return handled(tr)
}

func continueMarkup(doc *textedit.Doc, tree *scandown.Tree, pos int) (textedit.RangeChange, []renumbering, bool) {
	line := doc.LineAt(pos)
	col := pos - line.From
	ctx := ContextAt(doc, tree.ResolveInner(pos, -1))
	for len(ctx) > 0 && ctx[len(ctx)-1].From > col {
		ctx = ctx[:len(ctx)-1]
	}
	if len(ctx) == 0 || ctx[len(ctx)-1].Kind == FencedCode || !opensMarkup(line.Text) {
		return textedit.RangeChange{}, nil, false
	}

	inner := ctx[len(ctx)-1]
	emptyLine := col >= inner.To-len(inner.SpaceAfter) &&
		strings.TrimSpace(lineFrom(line.Text, inner.To)) == ""

	if !inner.Item.IsNone() && emptyLine {
		if rc, req, ok := endItem(doc, ctx, line, pos); ok {
			return rc, req, true
		}
	}

	if inner.Kind.IsQuote() && emptyLine {
		if loc := quoteTailPattern.FindStringIndex(line.Text); loc != nil && loc[0] == inner.From {
			return textedit.RangeChange{
				Changes: []textedit.Change{{From: line.From + loc[0], To: line.To, Insert: doc.LineBreak()}},
				Cursor:  pos,
				Assoc:   -1,
			}, nil, true
		}
	}

	rc, req := continueLine(doc, ctx, line, pos)
	return rc, req, true
}

// opensMarkup returns true if a line starts with a list or quote marker.
func opensMarkup(text string) bool {
	return orderedPattern.MatchString(text) ||
		bulletPattern.MatchString(text) ||
		quoteOpenPattern.MatchString(text)
}

// endItem removes the marker of an empty list item, or promotes it one
// level when indented; ok is false when the item should be continued
// instead.
func endItem(doc *textedit.Doc, ctx []Context, line textedit.Line, pos int) (rc textedit.RangeChange, req []renumbering, ok bool) {
	inner := ctx[len(ctx)-1]
	var first, second scandown.Node
	if items := inner.Node.Children(scandown.ListItem); len(items) > 0 {
		first = items[0]
		if len(items) > 1 {
			second = items[1]
		}
	}
	if first.IsNone() {
		return rc, nil, false
	}
	if !(first.To() >= pos ||
		(!second.IsNone() && second.To() <= pos) ||
		(line.From > 0 && blankQuotePattern.MatchString(doc.LineAt(line.From-1).Text))) {
		return rc, nil, false
	}

	if changes, indented := dedentLine(doc, line); indented {
		return textedit.RangeChange{Changes: changes, Cursor: line.To, Assoc: 1}, nil, true
	}

	var next *Context
	if len(ctx) > 1 {
		next = &ctx[len(ctx)-2]
	}
	delFrom, insert := line.From, ""
	switch {
	case next == nil:
	case !next.Item.IsNone():
		// reopen the outer item
		delFrom = line.From + next.From
		insert = next.Marker(doc, 1)
	default:
		delFrom = line.From + next.To
	}
	if delFrom > pos {
		delFrom = pos
	}

	if inner.Kind == OrderedList {
		req = append(req, renumberFrom(doc, first, inner.Node)...)
	}
	if next != nil && next.Kind == OrderedList && insert != "" {
		req = append(req, renumberFrom(doc, next.Item, next.Node)...)
	}
	return textedit.RangeChange{
		Changes: []textedit.Change{{From: delFrom, To: pos, Insert: insert}},
		Cursor:  pos,
		Assoc:   1,
	}, req, true
}

// continueLine breaks the line at pos, opening the new line with markup for
// every context level.
func continueLine(doc *textedit.Doc, ctx []Context, line textedit.Line, pos int) (textedit.RangeChange, []renumbering) {
	inner := ctx[len(ctx)-1]
	continued := !inner.Item.IsNone() && inner.Item.From() < line.From

	var req []renumbering
	if inner.Kind == OrderedList && !continued {
		req = renumberFrom(doc, inner.Item, inner.Node)
	}

	var insert string
	if !continued || len(markupPrefix.FindString(line.Text)) >= inner.To {
		var sb strings.Builder
		for i, c := range ctx {
			if i == len(ctx)-1 && !continued {
				sb.WriteString(c.Marker(doc, 1))
			} else {
				sb.WriteString(c.Blank(alignWidth(doc, ctx, line, i, sb.Len()), true))
			}
		}
		insert = sb.String()
	}

	from := line.From + len(strings.TrimRight(line.Text[:pos-line.From], " \t\f\v\r"))
	insert = doc.NormalizeIndent(insert)
	if nonTightList(doc, inner.Node) {
		insert = blankLine(doc, ctx, line) + doc.LineBreak() + insert
	}
	return textedit.RangeChange{
		Changes: []textedit.Change{{From: from, To: pos, Insert: doc.LineBreak() + insert}},
		Cursor:  pos,
		Assoc:   1,
	}, req
}

// renumbering asks for an ordered list to be renumbered once every cursor's
// edit is in place: its items count up from start, beginning with the first
// item found within [from, to] of the unedited document.
type renumbering struct {
	from, to int
	start    int
}

// renumberFrom requests renumbering list from item, keeping item's number.
func renumberFrom(doc *textedit.Doc, item, list scandown.Node) []renumbering {
	number, _, _, ok := ItemNumber(doc, item)
	if !ok {
		return nil
	}
	return []renumbering{{from: item.From(), to: list.To(), start: number}}
}

// renumberLists extends tr to renumber every requested list in the document
// as tr leaves it, so that the items added or removed at all cursors are
// counted together. Each list is renumbered once, by its request that starts
// earliest.
func renumberLists(doc *textedit.Doc, tr textedit.Transaction, reqs []renumbering) (textedit.Transaction, error) {
	if len(reqs) == 0 {
		return tr, nil
	}
	text, err := tr.Changes.Apply(doc.String())
	if err != nil {
		return tr, err
	}
	edited := textedit.NewDoc(text, doc.Options())
	tree := scandown.Parse(text)

	type listStart struct {
		item  scandown.Node
		start int
	}
	var (
		lists  []scandown.Node
		starts = make(map[scandown.Node]listStart)
	)
	for _, req := range reqs {
		item := firstItem(tree, tr.Changes.MapPos(req.from, -1), tr.Changes.MapPos(req.to, 1))
		if item.IsNone() {
			continue
		}
		list := item.Parent()
		if list.Type() != scandown.OrderedList {
			continue
		}
		prior, seen := starts[list]
		if !seen {
			lists = append(lists, list)
		} else if prior.item.From() <= item.From() {
			continue
		}
		starts[list] = listStart{item, req.start}
	}

	var changes []textedit.Change
	for _, list := range lists {
		ls := starts[list]
		changes = append(changes, countFrom(edited, ls.item, ls.start)...)
	}
	cs, err := textedit.NewChangeSet(edited.Len(), changes...)
	if err != nil || cs.Empty() {
		return tr, err
	}
	all, err := tr.Changes.Compose(cs)
	if err != nil {
		return tr, err
	}
	tr.Changes = all
	tr.Selection = tr.Selection.Map(cs, -1)
	return tr, nil
}

// firstItem returns the first ListItem, in document order, that starts
// within [from, to].
func firstItem(tree *scandown.Tree, from, to int) (found scandown.Node) {
	tree.Walk(func(n scandown.Node, _ int) bool {
		if !found.IsNone() || n.To() < from || n.From() > to {
			return false
		}
		if n.Type() == scandown.ListItem && n.From() >= from {
			found = n
			return false
		}
		return true
	})
	return found
}

// alignWidth returns the Blank width for the i-th context so that it reaches
// the column where the next context starts, given the width already built.
func alignWidth(doc *textedit.Doc, ctx []Context, line textedit.Line, i, built int) int {
	if i >= len(ctx)-1 {
		return noMax
	}
	width := textedit.CountColumn(line.Text, doc.TabSize(), ctx[i+1].From) - built
	if width < 0 {
		width = 0
	}
	return width
}

// blankLine returns the continuation of the outer contexts for an empty
// separator line in a loose list.
func blankLine(doc *textedit.Doc, ctx []Context, line textedit.Line) string {
	var sb strings.Builder
	for i := 0; i < len(ctx)-1; i++ {
		width := noMax
		if i < len(ctx)-2 {
			width = alignWidth(doc, ctx, line, i, sb.Len())
		}
		sb.WriteString(ctx[i].Blank(width, i < len(ctx)-2))
	}
	return doc.NormalizeIndent(sb.String())
}

// nonTightList returns true if the list's first two items are separated by
// a blank line.
func nonTightList(doc *textedit.Doc, list scandown.Node) bool {
	if !list.Type().IsList() {
		return false
	}
	items := list.Children(scandown.ListItem)
	if len(items) < 2 {
		return false
	}
	line1 := doc.LineAt(items[0].To())
	line2 := doc.LineAt(items[1].From())
	n := line1.Number
	if !blankQuotePattern.MatchString(line1.Text) {
		n++
	}
	return n < line2.Number
}

// markdownActive returns false inside the body of a fenced code block that
// declares an info string; its content belongs to another language.
func markdownActive(doc *textedit.Doc, tree *scandown.Tree, pos int) bool {
	for n := tree.ResolveInner(pos, -1); !n.IsNone(); n = n.Parent() {
		if n.Type() != scandown.FencedCode {
			continue
		}
		if n.Child(scandown.CodeInfo).IsNone() {
			return true
		}
		at := doc.LineAt(pos).Number
		open := doc.LineAt(n.From()).Number
		if at <= open {
			return true
		}
		if last := n.LastChild(); last.Type() == scandown.CodeMark {
			if end := doc.LineAt(last.From()).Number; end > open && at >= end {
				return true
			}
		}
		return false
	}
	return true
}

// lineFrom returns text from byte offset i, or "" past its end.
func lineFrom(text string, i int) string {
	if i >= len(text) {
		return ""
	}
	return text[i:]
}
