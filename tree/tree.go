// Package tree implements the ordered, labeled parse trees that query
// predicates are evaluated against. Nodes own their children; the parent
// link is a non-owning back-reference maintained by the constructors, so
// a tree can be climbed as well as descended without a reference cycle
// owning anything twice.
package tree

import (
	"fmt"
	"strings"
)

// Node is a single node of a parse tree. Interior nodes carry a syntactic
// label and an ordered child list; leaves carry the token itself as their
// label and have no children. Node equality is by identity: two distinct
// nodes with the same label are different nodes.
type Node struct {
	Label    string
	Children []*Node

	parent *Node
	index  int
}

// New builds an interior node with the given label and children, wiring
// each child's parent back-reference.
func New(label string, children ...*Node) *Node {
	n := &Node{Label: label, Children: children}
	for i, c := range children {
		c.parent = n
		c.index = i
	}
	return n
}

// Leaf builds a leaf node holding the given token.
func Leaf(token string) *Node {
	return &Node{Label: token}
}

// Value returns the node's literal value: the label for interior nodes,
// the token for leaves.
func (n *Node) Value() string { return n.Label }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Parent returns the owning node, or nil for the root (and for nodes that
// were never attached to a parent).
func (n *Node) Parent() *Node { return n.parent }

// Index returns the node's child index within its parent. The root's
// index is 0.
func (n *Node) Index() int { return n.index }

// Root returns the top node of the containing tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Position returns the node's path of child indices from its root.
func (n *Node) Position() Position {
	var rev []int
	for cur := n; cur.parent != nil; cur = cur.parent {
		rev = append(rev, cur.index)
	}
	pos := make(Position, len(rev))
	for i, idx := range rev {
		pos[len(rev)-1-i] = idx
	}
	return pos
}

// At resolves a position relative to n, or nil if the path runs off the
// tree.
func (n *Node) At(pos Position) *Node {
	cur := n
	for _, idx := range pos {
		if idx < 0 || idx >= len(cur.Children) {
			return nil
		}
		cur = cur.Children[idx]
	}
	return cur
}

// LeftSibling returns the sibling immediately to the left, or nil.
func (n *Node) LeftSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.Children[n.index-1]
}

// RightSibling returns the sibling immediately to the right, or nil.
func (n *Node) RightSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.Children) {
		return nil
	}
	return n.parent.Children[n.index+1]
}

// Positions returns the positions of every node under n (including n
// itself) in pre-order.
func (n *Node) Positions() []Position {
	var out []Position
	var walk func(cur *Node, pos Position)
	walk = func(cur *Node, pos Position) {
		out = append(out, pos)
		for i, c := range cur.Children {
			child := make(Position, len(pos)+1)
			copy(child, pos)
			child[len(pos)] = i
			walk(c, child)
		}
	}
	walk(n, Position{})
	return out
}

// InteriorPositions returns the pre-order positions of every node under n
// that has at least one child.
func (n *Node) InteriorPositions() []Position {
	var out []Position
	for _, pos := range n.Positions() {
		if !n.At(pos).IsLeaf() {
			out = append(out, pos)
		}
	}
	return out
}

// Leaves returns the terminal yield of the tree, left to right.
func (n *Node) Leaves() []string {
	if n.IsLeaf() {
		return []string{n.Label}
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// String renders the tree in bracketed notation, round-tripping Parse.
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Label
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Label)
	for _, c := range n.Children {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}

// ParseError reports a malformed bracketed tree.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tree: %s at offset %d", e.Msg, e.Offset)
}

// Parse reads a single tree in Penn-treebank bracketed notation, for
// example "(S (NP (DT the) (NN dog)) (VP (VBD ran)))". Trailing content
// after the tree is an error.
func Parse(s string) (*Node, error) {
	p := &treeReader{input: s}
	n, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, &ParseError{Offset: p.pos, Msg: "trailing content after tree"}
	}
	return n, nil
}

// ReadTrees reads a sequence of consecutive bracketed trees, as found in
// treebank corpus files.
func ReadTrees(s string) ([]*Node, error) {
	p := &treeReader{input: s}
	var out []*Node
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return out, nil
		}
		n, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

type treeReader struct {
	input string
	pos   int
}

// isSpace tests the ASCII space characters only, so multi-byte UTF-8
// labels pass through the reader intact.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *treeReader) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *treeReader) parseTree() (*Node, error) {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return nil, &ParseError{Offset: p.pos, Msg: "expected '('"}
	}
	p.pos++

	label := p.readAtom()
	node := &Node{Label: label}

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, &ParseError{Offset: p.pos, Msg: "unexpected end of input, missing ')'"}
		}
		switch p.input[p.pos] {
		case ')':
			p.pos++
			return node, nil
		case '(':
			child, err := p.parseTree()
			if err != nil {
				return nil, err
			}
			child.parent = node
			child.index = len(node.Children)
			node.Children = append(node.Children, child)
		default:
			atom := p.readAtom()
			if atom == "" {
				return nil, &ParseError{Offset: p.pos, Msg: "unexpected character"}
			}
			leaf := &Node{Label: atom, parent: node, index: len(node.Children)}
			node.Children = append(node.Children, leaf)
		}
	}
}

func (p *treeReader) readAtom() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '(' || c == ')' || isSpace(c) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}
