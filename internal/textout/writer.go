// Package textout provides small writer adaptors for command output.
package textout

import (
	"bytes"
	"io"
)

// ErrWriter wraps a writer, tracking its last error, and preventing future
// writes after a non-nil one.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer if Err is nil, retaining any returned error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// Prefixer is a writer that prepends Prefix before every line written
// through it; Prefix may be changed between writes.
type Prefixer struct {
	Prefix string
	To     io.Writer

	mid bool // the last write ended within a line
	buf bytes.Buffer
}

// PrefixWriter returns a writer that prepends prefix before every line
// written through it.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	return &Prefixer{Prefix: prefix, To: w}
}

// Write writes b to To, prefixing every line started within it.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	p.buf.Reset()
	for len(b) > 0 {
		if !p.mid {
			p.buf.WriteString(p.Prefix)
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
		}
		p.buf.Write(line)
		p.mid = line[len(line)-1] != '\n'
		b = b[len(line):]
		n += len(line)
	}
	if _, err := p.buf.WriteTo(p.To); err != nil {
		return 0, err
	}
	return n, nil
}

// Indent returns a writer to w, prefixed by any existing Prefixer prefix
// plus more; the returned restore function undoes the change for a Prefixer.
func Indent(w io.Writer, more string) (io.Writer, func()) {
	if p, ok := w.(*Prefixer); ok {
		old := p.Prefix
		p.Prefix = old + more
		return p, func() { p.Prefix = old }
	}
	return PrefixWriter(more, w), func() {}
}
