// Command scanex reads Markdown on stdin, and prints its block syntax tree,
// followed by the markup context at the end of every line.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jcorbin/mdcont/internal/textout"
	"github.com/jcorbin/mdcont/markup"
	"github.com/jcorbin/mdcont/scandown"
	"github.com/jcorbin/mdcont/textedit"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "enable verbose output")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("scanex: ")

	var src bytes.Buffer
	if _, err := src.ReadFrom(os.Stdin); err != nil {
		log.Fatalf("read error: %v", err)
	}

	out := &textout.ErrWriter{Writer: os.Stdout}
	dump(out, src.String(), verbose)
	if out.Err != nil {
		log.Fatalf("write error: %v", out.Err)
	}
}

func dump(w io.Writer, src string, verbose bool) {
	tree := scandown.Parse(src)
	doc := textedit.NewDoc(src, textedit.Options{})

	verb := "%v"
	if verbose {
		verb = "%+v"
	}

	io.WriteString(w, "# tree\n")
	fmt.Fprintf(w, verb+"\n", tree)

	io.WriteString(w, "\n# contexts\n")
	for n := 1; n <= doc.Lines(); n++ {
		line := doc.Line(n)
		width, _ := fmt.Fprintf(w, "%v. ", n)
		fmt.Fprintf(w, "%q\n", line.Text)

		ctxOut, restore := textout.Indent(w, fmt.Sprintf("%*s", width, ""))
		for _, c := range markup.ContextAt(doc, tree.ResolveInner(line.To, -1)) {
			fmt.Fprintf(ctxOut, verb+"\n", c)
		}
		restore()
	}
}
