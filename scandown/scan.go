package scandown

import (
	"regexp"
	"strings"
)

// tabStop is the column width of a tab when measuring block indentation.
const tabStop = 4

var alertPattern = regexp.MustCompile(`^\[!(\w+)\]`)

// cursor consumes one line of source, tracking the display column so that
// container indentation may split a tab into virtual spaces.
type cursor struct {
	text string // line text, without its line break
	from int    // source offset of text[0]
	i    int    // next unconsumed byte
	col  int    // column reached; may lie inside a tab at text[i]
}

func (c *cursor) pos() int { return c.from + c.i }
func (c *cursor) end() int { return c.from + len(c.text) }
func (c *cursor) rest() string { return c.text[c.i:] }

func (c *cursor) blank() bool {
	return strings.TrimLeft(c.rest(), " \t") == ""
}

// indent measures, without consuming, the blank run at the cursor: its width
// in columns and the byte index just after it.
func (c *cursor) indent() (cols, j int) {
	col := c.col
	for j = c.i; j < len(c.text); j++ {
		switch c.text[j] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return col - c.col, j
		}
	}
	return col - c.col, j
}

// skip consumes up to cols columns of blank space, splitting a tab if it
// straddles the limit.
func (c *cursor) skip(cols int) {
	limit := c.col + cols
	for c.i < len(c.text) && c.col < limit {
		switch c.text[c.i] {
		case ' ':
			c.col++
			c.i++
		case '\t':
			next := c.col + tabStop - c.col%tabStop
			if next > limit {
				c.col = limit
				return
			}
			c.col = next
			c.i++
		default:
			return
		}
	}
}

// advance consumes n non-blank bytes.
func (c *cursor) advance(n int) {
	c.i += n
	c.col += n
}

// listMarker recognizes a bullet or ordinal list marker at the start of s,
// returning the list type, the delimiter byte, the marker width in bytes, and
// any ordinal value.
func listMarker(s string) (typ Type, delim byte, width, number int) {
	if len(s) == 0 {
		return None, 0, 0, 0
	}
	if isByte(s[0], '-', '+', '*') {
		if len(s) == 1 || isByte(s[1], ' ', '\t') {
			return BulletList, s[0], 1, 0
		}
		return None, 0, 0, 0
	}
	n := ordinal(s)
	if n == 0 || n >= len(s) || !isByte(s[n], '.', ')') {
		return None, 0, 0, 0
	}
	if n+1 < len(s) && !isByte(s[n+1], ' ', '\t') {
		return None, 0, 0, 0
	}
	for _, c := range s[:n] {
		number = number*10 + int(c-'0')
	}
	return OrderedList, s[n], n + 1, number
}

// ordinal returns the width of a leading run of 1 to 9 decimal digits.
func ordinal(s string) (width int) {
	for width < len(s) && s[width] >= '0' && s[width] <= '9' {
		width++
	}
	if width > 9 {
		return 0
	}
	return width
}

// atxHeading returns the level of an ATX heading opening s, or 0.
func atxHeading(s string) (level int) {
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0
	}
	if level < len(s) && !isByte(s[level], ' ', '\t') {
		return 0
	}
	return level
}

// fence recognizes a run of at least min fence bytes opening s.
func fence(s string, min int, marks ...byte) (delim byte, width int) {
	if len(s) == 0 || !isByte(s[0], marks...) {
		return 0, 0
	}
	delim = s[0]
	for width < len(s) && s[width] == delim {
		width++
	}
	if width < min {
		return 0, 0
	}
	return delim, width
}

// openFence recognizes an opening code fence and returns its info string.
func openFence(s string) (delim byte, width int, info string) {
	delim, width = fence(s, 3, '`', '~')
	if delim == 0 {
		return 0, 0, ""
	}
	info = strings.TrimSpace(s[width:])
	if delim == '`' && strings.IndexByte(info, '`') >= 0 {
		return 0, 0, ""
	}
	return delim, width, info
}

// ruler recognizes a thematic break: three or more of the same mark byte,
// optionally separated by blanks, and nothing else.
func ruler(s string, marks ...byte) (rule byte) {
	if len(s) == 0 || !isByte(s[0], marks...) {
		return 0
	}
	rule = s[0]
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case rule:
			n++
		case ' ', '\t':
		default:
			return 0
		}
	}
	if n < 3 {
		return 0
	}
	return rule
}

// setextUnderline recognizes a line of only '=' or only '-' marks.
func setextUnderline(s string) (level int) {
	t := strings.TrimRight(s, " \t")
	if t == "" {
		return 0
	}
	if strings.Trim(t, "=") == "" {
		return 1
	}
	if strings.Trim(t, "-") == "" {
		return 2
	}
	return 0
}

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}
