package keyscript

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuotedArgs returns a byte slice with each arg appended separated by a space.
// Any arg that contains a space, or is empty, is quoted with strconv.
func QuotedArgs(args []string) []byte {
	n := len(args)
	for _, arg := range args {
		n += 2 * len(arg)
	}
	b := make([]byte, 0, n)
	return appendQuotedArgs(b, args)
}

func appendQuotedArgs(b []byte, args []string) []byte {
	for i, arg := range args {
		if i > 0 {
			b = append(b, ' ')
		}
		if needsQuote(arg) {
			b = strconv.AppendQuote(b, arg)
		} else {
			b = append(b, arg...)
		}
	}
	return b
}

func needsQuote(arg string) bool {
	if arg == "" || arg[0] == '"' || arg[0] == '\'' || arg[0] == '#' {
		return true
	}
	return strings.IndexFunc(arg, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) >= 0
}

// scanArgs is a bufio.SplitFunc that scans space separated, optionally
// quoted, arg tokens. Quoted tokens retain their quotes.
func scanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	var r rune
	for width := 0; start < len(data); start += width {
		r, width = utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
	}
	if start >= len(data) {
		return len(data), nil, nil
	}

	if r == '"' || r == '\'' {
		q := r
		esc := false
		for width, i := 0, start+1; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if esc {
				esc = false
			} else if r == '\\' {
				esc = true
			} else if r == q {
				return i + width, data[start : i+width], nil
			}
		}
	} else {
		for width, i := 0, start; i < len(data); i += width {
			r, width = utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
		}
	}

	// final, non-terminated, token
	if atEOF {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// unquoteArg removes the quotes around arg, interpreting any escapes within.
func unquoteArg(arg string) (string, bool) {
	if len(arg) == 0 || (arg[0] != '"' && arg[0] != '\'') {
		return arg, true
	}
	q := arg[0]
	arg = arg[1:]
	var buf strings.Builder
	buf.Grow(len(arg))
	for len(arg) > 0 && arg[0] != q {
		r, _, tail, err := strconv.UnquoteChar(arg, q)
		if err != nil {
			return "", false
		}
		buf.WriteRune(r)
		arg = tail
	}
	if arg != string(q) {
		return "", false
	}
	return buf.String(), true
}
