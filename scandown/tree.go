package scandown

// Type is the semantic meaning of a syntax tree node.
type Type uint8

// Type constants for the block structure recognized by Parse.
const (
	None Type = iota // 0 value is never a parsed node
	Document
	Paragraph
	Heading
	Ruler
	CodeBlock
	FencedCode
	CodeMark
	CodeInfo
	Blockquote
	Alert
	AlertInfo
	QuoteMark
	BulletList
	OrderedList
	ListItem
	ListMark
)

// IsList returns true for the two list container types.
func (t Type) IsList() bool { return t == BulletList || t == OrderedList }

// IsMark returns true for the quote and list marker leaf types.
func (t Type) IsMark() bool { return t == QuoteMark || t == ListMark }

// Tree is a parsed document: an arena of nodes linked by index. Nodes are
// never moved or removed once added, so a Node handle stays valid for as long
// as its Tree is referenced.
type Tree struct {
	src   string
	nodes []node
}

type node struct {
	typ      Type
	from, to int
	parent   int32
	first    int32
	last     int32
	prev     int32
	next     int32
}

// Node is a handle to one node of a Tree; the zero Node is no node.
type Node struct {
	t *Tree
	i int32
}

func (t *Tree) add(parent int32, typ Type, from, to int) int32 {
	i := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		typ:    typ,
		from:   from,
		to:     to,
		parent: parent,
		first:  -1,
		last:   -1,
		prev:   -1,
		next:   -1,
	})
	if parent >= 0 {
		p := &t.nodes[parent]
		if p.last >= 0 {
			t.nodes[p.last].next = i
			t.nodes[i].prev = p.last
		} else {
			p.first = i
		}
		p.last = i
		t.extend(parent, to)
	}
	return i
}

// extend grows node i, and its ancestors, to reach at least to.
func (t *Tree) extend(i int32, to int) {
	for ; i >= 0; i = t.nodes[i].parent {
		if t.nodes[i].to >= to {
			return
		}
		t.nodes[i].to = to
	}
}

func (t *Tree) node(i int32) Node {
	if i < 0 {
		return Node{}
	}
	return Node{t, i}
}

// Source returns the text that the tree was parsed from.
func (t *Tree) Source() string { return t.src }

// Len returns how many nodes are in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the Document node.
func (t *Tree) Root() Node {
	if len(t.nodes) == 0 {
		return Node{}
	}
	return Node{t, 0}
}

// ResolveInner returns the innermost node around pos. When side < 0 a node
// must start before pos and end at or after it; when side > 0 it must start
// at or before pos and end after it; when side == 0 pos must lie strictly
// inside it. The root is returned if no deeper node qualifies.
func (t *Tree) ResolveInner(pos, side int) Node {
	cur := t.Root()
	if cur.IsNone() {
		return cur
	}
descend:
	for {
		for ch := cur.FirstChild(); !ch.IsNone(); ch = ch.NextSibling() {
			if n := ch.get(); aroundSide(side, pos, n.from, n.to) {
				cur = ch
				continue descend
			}
		}
		return cur
	}
}

func aroundSide(side, pos, from, to int) bool {
	switch {
	case side < 0:
		return from < pos && to >= pos
	case side > 0:
		return from <= pos && to > pos
	default:
		return from < pos && to > pos
	}
}

// Walk calls fn for every node in document order, passing its depth below
// the root. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for ch := n.FirstChild(); !ch.IsNone(); ch = ch.NextSibling() {
			walk(ch, depth+1)
		}
	}
	if root := t.Root(); !root.IsNone() {
		walk(root, 0)
	}
}

func (n Node) get() *node { return &n.t.nodes[n.i] }

// IsNone returns true for the zero Node.
func (n Node) IsNone() bool { return n.t == nil }

// Tree returns the tree that the node belongs to.
func (n Node) Tree() *Tree { return n.t }

// Type returns the node type, or None.
func (n Node) Type() Type {
	if n.t == nil {
		return None
	}
	return n.get().typ
}

// From returns the offset where the node starts.
func (n Node) From() int {
	if n.t == nil {
		return 0
	}
	return n.get().from
}

// To returns the offset where the node ends.
func (n Node) To() int {
	if n.t == nil {
		return 0
	}
	return n.get().to
}

// Text returns the source text spanned by the node.
func (n Node) Text() string {
	if n.t == nil {
		return ""
	}
	nd := n.get()
	return n.t.src[nd.from:nd.to]
}

func (n Node) link(f func(nd *node) int32) Node {
	if n.t == nil {
		return Node{}
	}
	return n.t.node(f(n.get()))
}

// Parent returns the node's parent.
func (n Node) Parent() Node { return n.link(func(nd *node) int32 { return nd.parent }) }

// FirstChild returns the node's first child.
func (n Node) FirstChild() Node { return n.link(func(nd *node) int32 { return nd.first }) }

// LastChild returns the node's last child.
func (n Node) LastChild() Node { return n.link(func(nd *node) int32 { return nd.last }) }

// NextSibling returns the node that follows this one under the same parent.
func (n Node) NextSibling() Node { return n.link(func(nd *node) int32 { return nd.next }) }

// PrevSibling returns the node that precedes this one under the same parent.
func (n Node) PrevSibling() Node { return n.link(func(nd *node) int32 { return nd.prev }) }

// Child returns the first child having any of the given types.
func (n Node) Child(types ...Type) Node {
	for ch := n.FirstChild(); !ch.IsNone(); ch = ch.NextSibling() {
		for _, typ := range types {
			if ch.Type() == typ {
				return ch
			}
		}
	}
	return Node{}
}

// Children returns all children of the given type.
func (n Node) Children(typ Type) (nodes []Node) {
	for ch := n.FirstChild(); !ch.IsNone(); ch = ch.NextSibling() {
		if ch.Type() == typ {
			nodes = append(nodes, ch)
		}
	}
	return nodes
}

// ChildBefore returns the last child that starts before pos.
func (n Node) ChildBefore(pos int) Node {
	for ch := n.LastChild(); !ch.IsNone(); ch = ch.PrevSibling() {
		if ch.From() < pos {
			return ch
		}
	}
	return Node{}
}
