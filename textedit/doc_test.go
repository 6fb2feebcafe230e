package textedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/mdcont/textedit"
)

func TestDoc_Lines(t *testing.T) {
	doc := NewDoc("a\nbc\n", Options{})
	assert.Equal(t, 3, doc.Lines())
	assert.Equal(t, Line{Number: 1, From: 0, To: 1, Text: "a"}, doc.Line(1))
	assert.Equal(t, Line{Number: 2, From: 2, To: 4, Text: "bc"}, doc.Line(2))
	assert.Equal(t, Line{Number: 3, From: 5, To: 5, Text: ""}, doc.Line(3))

	for _, tc := range []struct {
		pos  int
		line int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{99, 3},
		{-1, 1},
	} {
		assert.Equal(t, tc.line, doc.LineAt(tc.pos).Number, "LineAt(%v)", tc.pos)
	}

	assert.Equal(t, "bc", doc.Slice(2, 4))
	assert.Equal(t, "", doc.Slice(4, 2))
}

func TestDoc_LineBreak(t *testing.T) {
	doc := NewDoc("a\r\nb", Options{LineBreak: "\r\n"})
	assert.Equal(t, 2, doc.Lines())
	assert.Equal(t, "a", doc.Line(1).Text)
	assert.Equal(t, Line{Number: 2, From: 3, To: 4, Text: "b"}, doc.Line(2))
	assert.Equal(t, "\r\n", doc.LineBreak())
}

func TestDoc_Indent(t *testing.T) {
	spaces := NewDoc("", Options{})
	assert.Equal(t, 4, spaces.TabSize())
	assert.Equal(t, "  ", spaces.IndentUnit())
	assert.Equal(t, 2, spaces.IndentWidth())
	assert.Equal(t, "   ", spaces.IndentString(3))
	assert.Equal(t, "", spaces.IndentString(0))

	tabs := NewDoc("", Options{IndentUnit: "\t", TabSize: 4})
	assert.Equal(t, 4, tabs.IndentWidth())
	assert.Equal(t, "\t  ", tabs.IndentString(6))
	assert.Equal(t, "\t\t", tabs.IndentString(8))
}

func TestCountColumn(t *testing.T) {
	for _, tc := range []struct {
		s    string
		to   int
		want int
	}{
		{"", -1, 0},
		{"abc", -1, 3},
		{"abc", 1, 1},
		{"\tab", -1, 6},
		{"a\tb", 2, 4},
		{"  \t", -1, 4},
		{"éx", -1, 2},
		{" \U0001F44D\U0001F3FDx", -1, 3},
	} {
		assert.Equal(t, tc.want, CountColumn(tc.s, 4, tc.to), "CountColumn(%q, 4, %v)", tc.s, tc.to)
	}
}

func TestNormalizeIndent(t *testing.T) {
	tabs := NewDoc("", Options{IndentUnit: "\t"})
	assert.Equal(t, "\t  x", tabs.NormalizeIndent("      x"))
	assert.Equal(t, "\t\t- ", tabs.NormalizeIndent("  \t    - "))
	assert.Equal(t, "x", tabs.NormalizeIndent("x"))

	spaces := NewDoc("", Options{})
	assert.Equal(t, "      x", spaces.NormalizeIndent("      x"))
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, 2, CommonPrefix("  \t", "    "))
	assert.Equal(t, 0, CommonPrefix("\t", " "))
	assert.Equal(t, 3, CommonPrefix("abc", "abc"))
	assert.Equal(t, "  \t", LeadingBlank("  \tx "))
	assert.Equal(t, "", LeadingBlank("x"))
}
