package scandown

import "strings"

// block is an open block on the parser stack.
type block struct {
	node  int32
	typ   Type
	delim byte // list bullet or ordinal delimiter; fence byte
	width int  // fence width
	// indent is the content column of a list item, or the indentation of
	// an opening code fence
	indent int
}

type parser struct {
	tree *Tree
	open []block
	cur  cursor

	matched int  // count of open blocks continued by the current line
	opened  bool // whether the current line has opened a new block
}

// Parse parses the block structure of Markdown source text.
//
// Block quotes (and alerts: quotes opened by a "> [!WORD]" line), bullet and
// ordered lists, fenced and indented code, ATX and setext headings, thematic
// breaks, and paragraphs are recognized, following the CommonMark container
// matching strategy; inline structure is not parsed.
//
// A ListItem node starts where its container's content starts on the item's
// first line, so that any indentation before its marker belongs to it. It
// ends at the end of its last non-blank line.
func Parse(src string) *Tree {
	p := parser{tree: &Tree{src: src}}
	root := p.tree.add(-1, Document, 0, len(src))
	p.open = append(p.open, block{node: root, typ: Document})
	for from := 0; from <= len(src); {
		end := strings.IndexByte(src[from:], '\n')
		next := 0
		if end < 0 {
			end = len(src)
			next = end + 1
		} else {
			end += from
			next = end + 1
		}
		p.line(from, strings.TrimSuffix(src[from:end], "\r"))
		from = next
	}
	return p.tree
}

func (p *parser) top() *block { return &p.open[len(p.open)-1] }

// push adds a node under the top block and opens it.
func (p *parser) push(typ Type, from int) *block {
	i := p.tree.add(p.top().node, typ, from, p.cur.end())
	p.open = append(p.open, block{node: i, typ: typ})
	return p.top()
}

// leaf adds a node under the top block without opening it.
func (p *parser) leaf(typ Type, from, to int) int32 {
	return p.tree.add(p.top().node, typ, from, to)
}

func (p *parser) line(from int, text string) {
	p.cur = cursor{text: text, from: from}
	p.opened = false

	// continue open blocks
matchOpen:
	for p.matched = 1; p.matched < len(p.open); p.matched++ {
		b := p.open[p.matched]
		switch b.typ {
		case Blockquote, Alert:
			if !p.quoteMark(b.node) {
				break matchOpen
			}

		case BulletList, OrderedList:
			// continued by their items

		case ListItem:
			if p.cur.blank() {
				continue
			}
			if cols, _ := p.cur.indent(); p.cur.col+cols < b.indent {
				break matchOpen
			}
			p.cur.skip(b.indent - p.cur.col)

		case FencedCode:
			if cols, j := p.cur.indent(); cols < 4 {
				s := p.cur.text[j:]
				if delim, width := fence(s, b.width, b.delim); delim != 0 && strings.TrimSpace(s[width:]) == "" {
					p.tree.add(b.node, CodeMark, p.cur.from+j, p.cur.from+j+width)
					p.tree.extend(b.node, p.cur.end())
					p.open = p.open[:p.matched]
					return
				}
			}
			p.cur.skip(b.indent)
			p.tree.extend(b.node, p.cur.end())
			return

		case CodeBlock:
			if cols, _ := p.cur.indent(); cols >= 4 {
				p.cur.skip(4)
				p.tree.extend(b.node, p.cur.end())
				return
			} else if p.cur.blank() {
				return
			}
			break matchOpen

		case Paragraph:
			// decided after checking for block starts
			break matchOpen
		}
	}

	// open new container blocks
	for !p.cur.blank() {
		cols, j := p.cur.indent()
		if cols >= 4 {
			break
		}
		s := p.cur.text[j:]
		if ruler(s, '-', '_', '*') != 0 {
			break
		}

		if s[0] == '>' {
			typ := Blockquote
			if strings.HasPrefix(s, "> ") && alertPattern.MatchString(s[2:]) {
				typ = Alert
			}
			p.prepare(false)
			p.cur.skip(cols)
			q := p.push(typ, p.cur.pos()).node
			p.quoteMark(q)
			if typ == Alert {
				info := alertPattern.FindString(p.cur.rest())
				p.tree.add(q, AlertInfo, p.cur.pos(), p.cur.pos()+len(info))
				p.cur.advance(len(info))
			}
			continue
		}

		if typ, delim, width, number := listMarker(s); typ != None {
			padCols, k := (&cursor{text: s[width:], col: p.cur.col + cols + width}).indent()
			empty := k == len(s)-width
			if !p.opened && p.top().typ == Paragraph && p.matched == len(p.open)-1 {
				// a new list may only interrupt a paragraph with content,
				// and when ordered only by starting at 1
				if empty || (typ == OrderedList && number != 1) {
					break
				}
			}
			p.openItem(typ, delim, cols, width, padCols, empty)
			continue
		}

		break
	}

	if p.cur.blank() {
		if !p.opened {
			p.open = p.open[:p.matched]
		}
		return
	}

	cols, j := p.cur.indent()
	s := p.cur.text[j:]

	if !p.opened && p.top().typ == Paragraph {
		para := p.top().node
		if p.matched == len(p.open)-1 && cols < 4 {
			if level := setextUnderline(s); level != 0 {
				p.tree.nodes[para].typ = Heading
				p.tree.extend(para, p.cur.end())
				p.open = p.open[:len(p.open)-1]
				return
			}
		}
		if cols >= 4 || !p.interrupts(s) {
			// continuation, lazily when containers were left unmatched
			p.tree.extend(para, p.cur.end())
			return
		}
	}

	p.prepare(false)
	if cols >= 4 {
		p.cur.skip(4)
		p.push(CodeBlock, p.cur.pos())
		return
	}
	p.cur.skip(cols)
	pos := p.cur.pos()

	if atxHeading(s) != 0 {
		p.leaf(Heading, pos, p.cur.end())
	} else if delim, width, info := openFence(s); delim != 0 {
		b := p.push(FencedCode, pos)
		b.delim, b.width, b.indent = delim, width, cols
		p.tree.add(b.node, CodeMark, pos, pos+width)
		if info != "" {
			at := pos + width + strings.Index(s[width:], info)
			p.tree.add(b.node, CodeInfo, at, at+len(info))
		}
	} else if ruler(s, '-', '_', '*') != 0 {
		p.leaf(Ruler, pos, p.cur.end())
	} else {
		p.push(Paragraph, pos)
	}
}

// interrupts returns true if s opens a leaf block that ends a paragraph.
func (p *parser) interrupts(s string) bool {
	if atxHeading(s) != 0 || ruler(s, '-', '_', '*') != 0 {
		return true
	}
	delim, _, _ := openFence(s)
	return delim != 0
}

// prepare closes any blocks left unmatched by the current line, the first
// time that the line opens a new block. Unless a list item is being opened,
// a list left without an open item is closed too.
func (p *parser) prepare(item bool) {
	if !p.opened {
		p.open = p.open[:p.matched]
		p.opened = true
	}
	if !item && p.top().typ.IsList() {
		p.open = p.open[:len(p.open)-1]
	}
	p.matched = len(p.open)
}

// quoteMark consumes a quote marker, and one following space, for an open
// quote block.
func (p *parser) quoteMark(quote int32) bool {
	c := &p.cur
	cols, j := c.indent()
	if cols > 3 || j >= len(c.text) || c.text[j] != '>' {
		return false
	}
	c.skip(cols)
	p.tree.add(quote, QuoteMark, c.pos(), c.pos()+1)
	c.advance(1)
	c.skip(1)
	p.tree.extend(quote, c.end())
	return true
}

// openItem opens a list item, and its list unless the item continues an
// open list of the same type and delimiter.
func (p *parser) openItem(typ Type, delim byte, cols, width, padCols int, empty bool) {
	p.prepare(true)
	c := &p.cur
	base := c.pos()
	if top := p.top(); top.typ.IsList() && (top.typ != typ || top.delim != delim) {
		p.open = p.open[:len(p.open)-1]
	}

	_, j := c.indent()
	if strings.IndexByte(c.text[c.i:j], '\t') >= 0 {
		// tabbed indentation does not divide into marker indent
		base = c.from + j
	}

	if top := p.top(); top.typ != typ {
		list := p.push(typ, base)
		list.delim = delim
	}
	item := p.push(ListItem, base)
	c.skip(cols)
	markerCol := c.col
	p.tree.add(item.node, ListMark, c.pos(), c.pos()+width)
	c.advance(width)
	if empty || padCols > 4 {
		item.indent = markerCol + width + 1
		c.skip(1)
	} else {
		item.indent = markerCol + width + padCols
		c.skip(padCols)
	}
	p.tree.extend(item.node, c.end())
	p.matched = len(p.open)
}
