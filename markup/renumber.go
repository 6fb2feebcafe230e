package markup

import (
	"strconv"

	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

// IndentPredicate tests the leading space count of an ordered list line.
// A nil predicate matches nothing.
type IndentPredicate func(indent int) bool

// NoIndent is the predicate that matches no line.
var NoIndent IndentPredicate

// IndentEq returns a predicate matching lines indented exactly n spaces.
func IndentEq(n int) IndentPredicate {
	return func(indent int) bool { return indent == n }
}

func (pred IndentPredicate) match(indent int) bool {
	return pred != nil && pred(indent)
}

// listLine is an ordered list candidate line: one that starts with spaces,
// decimal digits, and a "." or ")" delimiter.
type listLine struct {
	indent   int
	number   int
	from, to int // document span of the digits
}

func parseListLine(line textedit.Line) (ll listLine, ok bool) {
	m := orderedPattern.FindStringSubmatchIndex(line.Text)
	if m == nil {
		return listLine{}, false
	}
	number, err := strconv.Atoi(line.Text[m[3]:m[4]])
	if err != nil {
		return listLine{}, false
	}
	return listLine{
		indent: m[3] - m[2],
		number: number,
		from:   line.From + m[3],
		to:     line.From + m[4],
	}, true
}

// renumber returns the change that writes number over ll's digits, if it
// differs from what is there.
func (ll listLine) renumber(number int) (textedit.Change, bool) {
	if number == ll.number {
		return textedit.Change{}, false
	}
	return textedit.Change{From: ll.from, To: ll.to, Insert: strconv.Itoa(number)}, true
}

// PreviousNumber scans upward from the line before line for the nearest
// ordered list line whose indentation satisfies match, returning its number.
// Scanning stops, returning 0, at any line that is not an ordered list line,
// or whose indentation satisfies stop.
func PreviousNumber(doc *textedit.Doc, line textedit.Line, match, stop IndentPredicate) int {
	for n := line.Number - 1; n > 0; n-- {
		ll, ok := parseListLine(doc.Line(n))
		if !ok || stop.match(ll.indent) {
			break
		}
		if match.match(ll.indent) {
			return ll.number
		}
	}
	return 0
}

// RenumberFollowing scans downward from the line after line, rewriting the
// number of every ordered list line whose indentation satisfies match so
// that they count up from initial: the first such line becomes initial+1.
// A negative initial means to continue from PreviousNumber. Scanning stops
// as PreviousNumber's does.
func RenumberFollowing(doc *textedit.Doc, line textedit.Line, match, stop IndentPredicate, initial int) []textedit.Change {
	if initial < 0 {
		initial = PreviousNumber(doc, line, match, stop)
	}
	count := initial
	if count < 0 {
		count = 0
	}
	var changes []textedit.Change
	for n := line.Number + 1; n <= doc.Lines(); n++ {
		ll, ok := parseListLine(doc.Line(n))
		if !ok || stop.match(ll.indent) {
			break
		}
		if match.match(ll.indent) {
			count++
			if c, ok := ll.renumber(count); ok {
				changes = append(changes, c)
			}
		}
	}
	return changes
}

// RenumberList rewrites the ListItems following after, among its siblings,
// to count up consecutively from after's own number plus offset. The after
// item itself keeps its number.
func RenumberList(doc *textedit.Doc, after scandown.Node, offset int) []textedit.Change {
	number, _, _, ok := ItemNumber(doc, after)
	if !ok {
		return nil
	}
	return countFrom(doc, after.NextSibling(), number+offset+1)
}

// countFrom numbers the ordered ListItems from item onward, among its
// siblings, consecutively from start. Items without a decimal label are not
// counted.
func countFrom(doc *textedit.Doc, item scandown.Node, start int) []textedit.Change {
	var changes []textedit.Change
	count := start
	for node := item; !node.IsNone(); node = node.NextSibling() {
		if node.Type() != scandown.ListItem {
			continue
		}
		number, from, to, ok := ItemNumber(doc, node)
		if !ok {
			continue
		}
		if count != number {
			changes = append(changes, textedit.Change{From: from, To: to, Insert: strconv.Itoa(count)})
		}
		count++
	}
	return changes
}
