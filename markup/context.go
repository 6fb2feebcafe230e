/* Package markup implements structural continuation editing for Markdown:
commands that reproduce or remove list, blockquote, and alert markup when the
user presses Enter, Tab, Shift-Tab, or Backspace, keeping ordered list
numbering consistent as items are added, removed, or re-indented.

Every command is a pure function of one textedit.State and the scandown.Tree
parsed from its document, returning either a transaction that handles every
selection range, or Abstain so that the host applies its default behavior.

*/
package markup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

// Kind is the markup construct described by a Context.
type Kind uint8

// Kind constants; the zero Kind is invalid.
const (
	Blockquote Kind = iota + 1
	Alert
	OrderedList
	BulletList
	FencedCode
)

func (k Kind) String() string {
	switch k {
	case Blockquote:
		return "Blockquote"
	case Alert:
		return "Alert"
	case OrderedList:
		return "OrderedList"
	case BulletList:
		return "BulletList"
	case FencedCode:
		return "FencedCode"
	default:
		return "InvalidKind" + strconv.Itoa(int(k))
	}
}

// IsQuote returns true for blockquotes and alerts.
func (k Kind) IsQuote() bool { return k == Blockquote || k == Alert }

var (
	quotePattern   = regexp.MustCompile(`^ *>( *)`)
	orderedPattern = regexp.MustCompile(`^( *)\d+([.)])( *)`)
	bulletPattern  = regexp.MustCompile(`^( *)([-+*])( {1,4}\[[ xX]\])?( +)`)
	numberPattern  = regexp.MustCompile(`^(\s*)(\d+)[.)]`)

	quoteOpenPattern = regexp.MustCompile(`^ *>`)
	quoteTailPattern = regexp.MustCompile(`>\s*$`)
	markupPrefix     = regexp.MustCompile(`^[\s\d.)\-+*>]*`)
	checkboxMark     = strings.NewReplacer("x", " ", "X", " ")
)

// Context describes one level of markup enclosing a position: which
// construct it is, and how its marker is spelled on the construct's line.
type Context struct {
	Kind Kind

	// Node is the list node for list items, the quote or code node
	// otherwise.
	Node scandown.Node

	// From and To span the marker, and any pad belonging to it, relative to
	// the start of the line holding Node's first item or first line.
	From, To int

	SpaceBefore string // indentation before the marker glyph
	SpaceAfter  string // significant space kept after the marker
	Glyph       string // ">", "." or ")", or a bullet with any checkbox

	// Item is the ListItem the context was derived from, or none.
	Item scandown.Node
}

// Format writes a textual representation of the receiver, e.g.
// `BulletList[0:4] "  " "-" " "`; the "+" flag adds its node.
func (c Context) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "%v[%v:%v] %q %q %q", c.Kind, c.From, c.To, c.SpaceBefore, c.Glyph, c.SpaceAfter)
	if f.Flag('+') {
		fmt.Fprintf(f, " %v", c.Node)
	}
}

// ContextAt collects the markup contexts enclosing node, outermost first.
// Ancestors whose line does not spell the expected marker are skipped.
func ContextAt(doc *textedit.Doc, node scandown.Node) []Context {
	var nodes []scandown.Node
	for cur := node; !cur.IsNone() && cur.Type() != scandown.Document; cur = cur.Parent() {
		switch cur.Type() {
		case scandown.ListItem, scandown.Blockquote, scandown.Alert, scandown.FencedCode:
			nodes = append(nodes, cur)
		}
	}
	var ctx []Context
	for i := len(nodes) - 1; i >= 0; i-- {
		if c, ok := contextOf(doc, nodes[i]); ok {
			ctx = append(ctx, c)
		}
	}
	return ctx
}

func contextOf(doc *textedit.Doc, node scandown.Node) (Context, bool) {
	line := doc.LineAt(node.From())
	start := node.From() - line.From
	text := line.Text[start:]

	switch node.Type() {
	case scandown.FencedCode:
		return Context{Kind: FencedCode, Node: node, From: start, To: start}, true

	case scandown.Blockquote, scandown.Alert:
		m := quotePattern.FindStringSubmatch(text)
		if m == nil {
			return Context{}, false
		}
		after, n := foldPad(m[1], len(m[0]), 2)
		kind := Blockquote
		if node.Type() == scandown.Alert {
			kind = Alert
		}
		return Context{
			Kind:       kind,
			Node:       node,
			From:       start,
			To:         start + n,
			SpaceAfter: after,
			Glyph:      ">",
		}, true

	case scandown.ListItem:
		list := node.Parent()
		switch list.Type() {
		case scandown.OrderedList:
			m := orderedPattern.FindStringSubmatch(text)
			if m == nil {
				return Context{}, false
			}
			after, n := foldPad(m[3], len(m[0]), 4)
			return Context{
				Kind:        OrderedList,
				Node:        list,
				From:        start,
				To:          start + n,
				SpaceBefore: m[1],
				SpaceAfter:  after,
				Glyph:       m[2],
				Item:        node,
			}, true

		case scandown.BulletList:
			m := bulletPattern.FindStringSubmatch(text)
			if m == nil {
				return Context{}, false
			}
			after, n := foldPad(m[4], len(m[0]), 4)
			return Context{
				Kind:        BulletList,
				Node:        list,
				From:        start,
				To:          start + n,
				SpaceBefore: m[1],
				SpaceAfter:  after,
				Glyph:       m[2] + checkboxMark.Replace(m[3]),
				Item:        node,
			}, true
		}
	}
	return Context{}, false
}

// foldPad keeps only the first byte of a pad at least limit long; the rest
// is left to be read as indentation rather than marker.
func foldPad(pad string, n, limit int) (string, int) {
	if len(pad) >= limit {
		n -= len(pad) - 1
		pad = pad[:1]
	}
	return pad, n
}

// Blank returns the text that continues this level on a line that opens no
// new marker: its indentation, and the quote glyph for quotes. When maxWidth
// is not negative, the result is padded with spaces to that width; otherwise
// it is padded to the marker's width, with the marker's trailing space
// included only if trailing is true.
func (c Context) Blank(maxWidth int, trailing bool) string {
	var sb strings.Builder
	sb.WriteString(c.SpaceBefore)
	if c.Kind.IsQuote() {
		sb.WriteByte('>')
	}
	if maxWidth >= 0 {
		for sb.Len() < maxWidth {
			sb.WriteByte(' ')
		}
		return sb.String()
	}
	for i := c.To - c.From - sb.Len() - len(c.SpaceAfter); i > 0; i-- {
		sb.WriteByte(' ')
	}
	if trailing {
		sb.WriteString(c.SpaceAfter)
	}
	return sb.String()
}

// Marker returns the marker text that opens a new item at this level. An
// ordered item is numbered add more than the context's own item.
func (c Context) Marker(doc *textedit.Doc, add int) string {
	var number string
	if c.Kind == OrderedList {
		if n, _, _, ok := ItemNumber(doc, c.Item); ok {
			number = strconv.Itoa(n + add)
		}
	}
	return c.SpaceBefore + number + c.Glyph + c.SpaceAfter
}

// ItemNumber parses the decimal label of an ordered ListItem, returning it
// along with the document span of its digits.
func ItemNumber(doc *textedit.Doc, item scandown.Node) (number, from, to int, ok bool) {
	if item.IsNone() {
		return 0, 0, 0, false
	}
	text := doc.Slice(item.From(), item.To())
	m := numberPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, 0, 0, false
	}
	number, err := strconv.Atoi(text[m[4]:m[5]])
	if err != nil {
		return 0, 0, 0, false
	}
	return number, item.From() + m[4], item.From() + m[5], true
}
