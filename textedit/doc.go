/* Package textedit implements the host editor model that markup commands run
against: an immutable line-addressable document, multi-range selections, and
change sets that are applied atomically as transactions.

A Doc is never mutated. Edits are expressed as Changes against byte offsets
captured from one Doc snapshot, collected into a ChangeSet, and applied to
produce the next State.

*/
package textedit

import (
	"sort"
	"strings"
)

// Options control how a document measures and produces indentation.
type Options struct {
	TabSize    int    // column width of a tab stop; default 4
	IndentUnit string // one level of indentation; default two spaces
	LineBreak  string // line separator; default "\n"
}

// DefaultOptions returns the options used for any zero Options field.
func DefaultOptions() Options {
	return Options{
		TabSize:    4,
		IndentUnit: "  ",
		LineBreak:  "\n",
	}
}

func (opts Options) withDefaults() Options {
	def := DefaultOptions()
	if opts.TabSize <= 0 {
		opts.TabSize = def.TabSize
	}
	if opts.IndentUnit == "" {
		opts.IndentUnit = def.IndentUnit
	}
	if opts.LineBreak == "" {
		opts.LineBreak = def.LineBreak
	}
	return opts
}

// Line is one line of a Doc; From and To are absolute byte offsets, and Text
// excludes the line break.
type Line struct {
	Number int // 1-based
	From   int
	To     int
	Text   string
}

// Doc is an immutable text snapshot.
type Doc struct {
	text   string
	starts []int // byte offset of each line start
	opts   Options
}

// NewDoc creates a document from text, splitting lines on opts.LineBreak.
func NewDoc(text string, opts Options) *Doc {
	opts = opts.withDefaults()
	doc := &Doc{text: text, opts: opts}
	doc.starts = append(doc.starts, 0)
	for off := 0; ; {
		i := strings.Index(text[off:], opts.LineBreak)
		if i < 0 {
			break
		}
		off += i + len(opts.LineBreak)
		doc.starts = append(doc.starts, off)
	}
	return doc
}

func (doc *Doc) String() string { return doc.text }

// Len returns the document length in bytes.
func (doc *Doc) Len() int { return len(doc.text) }

// Options returns the (defaulted) options the document was created with.
func (doc *Doc) Options() Options { return doc.opts }

// TabSize returns the tab stop width.
func (doc *Doc) TabSize() int { return doc.opts.TabSize }

// IndentUnit returns the configured indentation unit string.
func (doc *Doc) IndentUnit() string { return doc.opts.IndentUnit }

// LineBreak returns the line separator inserted by commands.
func (doc *Doc) LineBreak() string { return doc.opts.LineBreak }

// IndentWidth returns the column width of one indent unit.
func (doc *Doc) IndentWidth() int {
	return CountColumn(doc.opts.IndentUnit, doc.opts.TabSize, -1)
}

// IndentString returns canonical indentation reaching the given column:
// tabs followed by spaces when the indent unit contains a tab, only spaces
// otherwise.
func (doc *Doc) IndentString(cols int) string {
	var sb strings.Builder
	if strings.ContainsRune(doc.opts.IndentUnit, '\t') {
		for ; cols >= doc.opts.TabSize; cols -= doc.opts.TabSize {
			sb.WriteByte('\t')
		}
	}
	for ; cols > 0; cols-- {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// Slice returns the text between two offsets, clamped to the document.
func (doc *Doc) Slice(from, to int) string {
	from, to = doc.clamp(from), doc.clamp(to)
	if to < from {
		return ""
	}
	return doc.text[from:to]
}

func (doc *Doc) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(doc.text) {
		return len(doc.text)
	}
	return pos
}

// Lines returns the number of lines; an empty document has one line.
func (doc *Doc) Lines() int { return len(doc.starts) }

// Line returns the n-th line, counting from 1. Out of range numbers are
// clamped to the first or last line.
func (doc *Doc) Line(n int) Line {
	if n < 1 {
		n = 1
	} else if n > len(doc.starts) {
		n = len(doc.starts)
	}
	from := doc.starts[n-1]
	to := len(doc.text)
	if n < len(doc.starts) {
		to = doc.starts[n] - len(doc.opts.LineBreak)
	}
	return Line{
		Number: n,
		From:   from,
		To:     to,
		Text:   doc.text[from:to],
	}
}

// LineAt returns the line containing pos. A position inside a line break
// belongs to the line it terminates.
func (doc *Doc) LineAt(pos int) Line {
	pos = doc.clamp(pos)
	n := sort.Search(len(doc.starts), func(i int) bool {
		return doc.starts[i] > pos
	})
	return doc.Line(n)
}
