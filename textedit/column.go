package textedit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// CountColumn returns the display column reached at byte offset to within s
// (to < 0 means the end of s). Tabs advance to the next multiple of tabSize;
// any other grapheme cluster counts as one column.
func CountColumn(s string, tabSize, to int) int {
	if to < 0 || to > len(s) {
		to = len(s)
	}
	s = s[:to]
	n := 0
	state := -1
	for len(s) > 0 {
		if s[0] == '\t' {
			n += tabSize - n%tabSize
			s = s[1:]
			state = -1
			continue
		}
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "" {
			break
		}
		n++
	}
	return n
}

// CommonPrefix returns the length of the longest shared byte prefix of a and
// b; used to rewrite only the differing tail of leading whitespace.
func CommonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// LeadingBlank returns the run of spaces and tabs at the start of s.
func LeadingBlank(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// LeadingSpace returns the run of whitespace at the start of s, including
// any line feed or carriage return bytes.
func LeadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\r\n\f\v"))]
}

// NormalizeIndent rewrites the leading blank run of content as the minimal
// tabs and spaces reaching the same column, but only when the document's
// indent unit is a tab; otherwise content is returned unchanged.
func (doc *Doc) NormalizeIndent(content string) string {
	blank := LeadingBlank(content)
	if blank == "" || doc.opts.IndentUnit != "\t" {
		return content
	}
	col := CountColumn(content, doc.opts.TabSize, len(blank))
	var sb strings.Builder
	for i := col; i > 0; {
		if i >= doc.opts.TabSize {
			sb.WriteByte('\t')
			i -= doc.opts.TabSize
		} else {
			sb.WriteByte(' ')
			i--
		}
	}
	sb.WriteString(content[len(blank):])
	return sb.String()
}
