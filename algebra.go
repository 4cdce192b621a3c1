package tgrep

import "github.com/treebank-labs/tgrep/tree"

// Node-set computations backing the relational operators. All of them
// return the empty set when the required structure is absent (no parent,
// no children, no sibling): absence of structure means "no match", never
// an error. Membership tests over these sets compare node identity.

// ancestors returns every node dominating n, nearest first.
func ancestors(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// uniqueAncestors returns the dominating nodes reachable while every
// step climbs out of a sole child, nearest first.
func uniqueAncestors(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for cur := n.Parent(); cur != nil && len(cur.Children) == 1; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// descendants returns every node below n in pre-order, excluding n.
func descendants(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	var walk func(cur *tree.Node)
	walk = func(cur *tree.Node) {
		for _, c := range cur.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// leftmostDescendants returns the chain of first children below n: the
// descendants whose index suffix relative to n is all zeros.
func leftmostDescendants(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for cur := n; len(cur.Children) > 0; {
		cur = cur.Children[0]
		out = append(out, cur)
	}
	return out
}

// rightmostDescendants returns the chain of last children below n, down
// to the lexicographically maximal position under it.
func rightmostDescendants(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for cur := n; len(cur.Children) > 0; {
		cur = cur.Children[len(cur.Children)-1]
		out = append(out, cur)
	}
	return out
}

// uniqueDescendants returns the single path of descent below n: children
// taken while the current node has exactly one child. The final node of
// the chain (the first with zero or several children) is included.
func uniqueDescendants(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for cur := n; len(cur.Children) == 1; {
		cur = cur.Children[0]
		out = append(out, cur)
	}
	return out
}

// crossesBefore reports whether position q lies before position p, with
// each position truncated to the other's length before comparing. A
// strict prefix of p compares equal after truncation, so a node is
// neither before nor after its own ancestors or descendants.
func crossesBefore(q, p tree.Position) bool {
	qt, pt := q, p
	if len(qt) > len(p) {
		qt = qt[:len(p)]
	}
	if len(pt) > len(q) {
		pt = pt[:len(q)]
	}
	return qt.Compare(pt) < 0
}

// before returns every node in n's tree whose terminal yield ends before
// n's begins, in pre-order.
func before(n *tree.Node) []*tree.Node {
	pos := n.Position()
	root := n.Root()
	var out []*tree.Node
	for _, q := range root.Positions() {
		if crossesBefore(q, pos) {
			out = append(out, root.At(q))
		}
	}
	return out
}

// after returns every node in n's tree whose terminal yield starts after
// n's ends, in pre-order.
func after(n *tree.Node) []*tree.Node {
	pos := n.Position()
	root := n.Root()
	var out []*tree.Node
	for _, q := range root.Positions() {
		if crossesBefore(pos, q) {
			out = append(out, root.At(q))
		}
	}
	return out
}

// immediatelyBefore returns the nodes whose last terminal immediately
// precedes n's first terminal: the nearest leftward sibling subtree found
// by climbing from n, plus its rightmost-descendant chain. Empty when n
// is globally leftmost.
func immediatelyBefore(n *tree.Node) []*tree.Node {
	pos := n.Position()
	idx := len(pos) - 1
	for idx >= 0 && pos[idx] == 0 {
		idx--
	}
	if idx < 0 {
		return nil
	}
	q := make(tree.Position, idx+1)
	copy(q, pos[:idx+1])
	q[idx]--
	b := n.Root().At(q)
	return append([]*tree.Node{b}, rightmostDescendants(b)...)
}

// immediatelyAfter returns the nodes whose first terminal immediately
// follows n's last terminal: the nearest rightward sibling subtree found
// by climbing from n, plus its leftmost-descendant chain. Empty when n
// is globally rightmost.
func immediatelyAfter(n *tree.Node) []*tree.Node {
	pos := n.Position()
	cur := n.Parent()
	idx := len(pos) - 1
	for idx >= 0 && pos[idx] == len(cur.Children)-1 {
		idx--
		cur = cur.Parent()
	}
	if idx < 0 {
		return nil
	}
	q := make(tree.Position, idx+1)
	copy(q, pos[:idx+1])
	q[idx]++
	a := n.Root().At(q)
	return append([]*tree.Node{a}, leftmostDescendants(a)...)
}

// containsNode reports set membership by node identity.
func containsNode(nodes []*tree.Node, n *tree.Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
