package scandown

import (
	"fmt"
	"io"
	"strings"
)

var typeNames = [...]string{
	None:        "None",
	Document:    "Document",
	Paragraph:   "Paragraph",
	Heading:     "Heading",
	Ruler:       "Ruler",
	CodeBlock:   "CodeBlock",
	FencedCode:  "FencedCode",
	CodeMark:    "CodeMark",
	CodeInfo:    "CodeInfo",
	Blockquote:  "Blockquote",
	Alert:       "Alert",
	AlertInfo:   "AlertInfo",
	QuoteMark:   "QuoteMark",
	BulletList:  "BulletList",
	OrderedList: "OrderedList",
	ListItem:    "ListItem",
	ListMark:    "ListMark",
}

// Format writes a type string representing the receiver code.
func (t Type) Format(f fmt.State, _ rune) {
	if int(t) < len(typeNames) {
		io.WriteString(f, typeNames[t])
	} else {
		fmt.Fprintf(f, "InvalidType%v", int(t))
	}
}

func (t Type) String() string { return fmt.Sprint(t) }

// Format writes a textual representation of the receiver, providing improved
// fmt.Printf display: "Type[from:to]", followed by the quoted source text of
// a leaf node when formatted with "%+v".
func (n Node) Format(f fmt.State, _ rune) {
	if n.IsNone() {
		io.WriteString(f, "None")
		return
	}
	fmt.Fprintf(f, "%v[%v:%v]", n.Type(), n.From(), n.To())
	if f.Flag('+') && n.FirstChild().IsNone() {
		fmt.Fprintf(f, " %q", n.Text())
	}
}

// Format writes an indented outline of every node in the tree, one per line;
// the "+" flag is passed through to each node.
func (t *Tree) Format(f fmt.State, _ rune) {
	verb := "%v"
	if f.Flag('+') {
		verb = "%+v"
	}
	first := true
	t.Walk(func(n Node, depth int) bool {
		if !first {
			io.WriteString(f, "\n")
		}
		first = false
		io.WriteString(f, strings.Repeat("  ", depth))
		fmt.Fprintf(f, verb, n)
		return true
	})
}
