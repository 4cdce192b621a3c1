package tgrep

import (
	"strconv"

	"github.com/treebank-labs/tgrep/tree"
)

// compileRelation builds the predicate for one relational operator
// applied to a target predicate. The source node is the node under test;
// the target predicate selects the related node. Missing structure (a
// leaf for the child-seeking operators, the root for the parent-seeking
// ones) makes the relation false rather than an error.
func compileRelation(op Token, target Predicate) (Predicate, error) {
	switch op.Value {
	// A < B: B is a child of A.
	case "<":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(n.Children, target, env)
		}, nil

	// A > B: B is the parent of A.
	case ">":
		return func(n *tree.Node, env Env) (bool, error) {
			if n.Parent() == nil {
				return false, nil
			}
			return target(n.Parent(), env)
		}, nil

	// A <, B: B is the first child of A.
	case "<,", "<1":
		return nthChild(1, target), nil

	// A >, B: A is the first child of B.
	case ">,", ">1":
		return nthChildOf(1, target), nil

	// A <' B, A <- B: B is the last child of A.
	case "<'", "<-", "<-1":
		return lastChild(1, target), nil

	// A >' B, A >- B: A is the last child of B.
	case ">'", ">-", ">-1":
		return lastChildOf(1, target), nil

	// A <: B: B is the only child of A.
	case "<:":
		return func(n *tree.Node, env Env) (bool, error) {
			if len(n.Children) != 1 {
				return false, nil
			}
			return target(n.Children[0], env)
		}, nil

	// A >: B: A is the only child of B.
	case ">:":
		return func(n *tree.Node, env Env) (bool, error) {
			p := n.Parent()
			if p == nil || len(p.Children) != 1 {
				return false, nil
			}
			return target(p, env)
		}, nil

	// A << B: B is a descendant of A.
	case "<<":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(descendants(n), target, env)
		}, nil

	// A >> B: B is an ancestor of A.
	case ">>":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(ancestors(n), target, env)
		}, nil

	// A <<, B: B is a leftmost descendant of A.
	case "<<,", "<<1":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(leftmostDescendants(n), target, env)
		}, nil

	// A >>, B: A is a leftmost descendant of B.
	case ">>,":
		return ancestorWith(target, leftmostDescendants), nil

	// A <<' B: B is a rightmost descendant of A.
	case "<<'":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(rightmostDescendants(n), target, env)
		}, nil

	// A >>' B: A is a rightmost descendant of B.
	case ">>'":
		return ancestorWith(target, rightmostDescendants), nil

	// A <<: B: a single path of descent leads from A down to B.
	case "<<:":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(uniqueDescendants(n), target, env)
		}, nil

	// A >>: B: a single path of descent leads from B down to A.
	case ">>:":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(uniqueAncestors(n), target, env)
		}, nil

	// A . B: A's last terminal immediately precedes B's first.
	case ".":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(immediatelyAfter(n), target, env)
		}, nil

	// A , B: A's first terminal immediately follows B's last.
	case ",":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(immediatelyBefore(n), target, env)
		}, nil

	// A .. B: A precedes B.
	case "..":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(after(n), target, env)
		}, nil

	// A ,, B: A follows B.
	case ",,":
		return func(n *tree.Node, env Env) (bool, error) {
			return anyOf(before(n), target, env)
		}, nil

	// A $ B: A and B are distinct children of the same parent.
	case "$", "%":
		return func(n *tree.Node, env Env) (bool, error) {
			p := n.Parent()
			if p == nil {
				return false, nil
			}
			for _, sib := range p.Children {
				if sib == n {
					continue
				}
				ok, err := target(sib, env)
				if err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}, nil

	// A $. B: B is the sister immediately to A's right.
	case "$.", "%.":
		return func(n *tree.Node, env Env) (bool, error) {
			sib := n.RightSibling()
			if sib == nil {
				return false, nil
			}
			return target(sib, env)
		}, nil

	// A $, B: B is the sister immediately to A's left.
	case "$,", "%,":
		return func(n *tree.Node, env Env) (bool, error) {
			sib := n.LeftSibling()
			if sib == nil {
				return false, nil
			}
			return target(sib, env)
		}, nil

	// A $.. B: B is a sister somewhere to A's right.
	case "$..", "%..":
		return func(n *tree.Node, env Env) (bool, error) {
			p := n.Parent()
			if p == nil {
				return false, nil
			}
			return anyOf(p.Children[n.Index()+1:], target, env)
		}, nil

	// A $,, B: B is a sister somewhere to A's left.
	case "$,,", "%,,":
		return func(n *tree.Node, env Env) (bool, error) {
			p := n.Parent()
			if p == nil {
				return false, nil
			}
			return anyOf(p.Children[:n.Index()], target, env)
		}, nil
	}

	// numeric forms: <N, >N, <-N, >-N
	if pred, ok := compileIndexedRelation(op.Value, target); ok {
		return pred, nil
	}

	return nil, &SyntaxError{Offset: op.Position, Msg: "cannot interpret operator " + strconv.Quote(op.Value)}
}

// compileIndexedRelation handles the Nth-child operator family, counted
// from the front (<N, >N) or from the back (<-N, >-N), 1-indexed.
func compileIndexedRelation(op string, target Predicate) (Predicate, bool) {
	switch {
	case len(op) > 2 && op[:2] == "<-" && allDigits(op[2:]):
		nth, _ := strconv.Atoi(op[2:])
		return lastChild(nth, target), true
	case len(op) > 2 && op[:2] == ">-" && allDigits(op[2:]):
		nth, _ := strconv.Atoi(op[2:])
		return lastChildOf(nth, target), true
	case len(op) > 1 && op[0] == '<' && allDigits(op[1:]):
		nth, _ := strconv.Atoi(op[1:])
		return nthChild(nth, target), true
	case len(op) > 1 && op[0] == '>' && allDigits(op[1:]):
		nth, _ := strconv.Atoi(op[1:])
		return nthChildOf(nth, target), true
	}
	return nil, false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// nthChild: the target must match the source's Nth child, first child
// is 1.
func nthChild(nth int, target Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		i := nth - 1
		if i < 0 || i >= len(n.Children) {
			return false, nil
		}
		return target(n.Children[i], env)
	}
}

// nthChildOf: the source must be its parent's Nth child and the target
// must match the parent.
func nthChildOf(nth int, target Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		p := n.Parent()
		i := nth - 1
		if p == nil || i < 0 || i >= len(p.Children) || p.Children[i] != n {
			return false, nil
		}
		return target(p, env)
	}
}

// lastChild: like nthChild but counted from the back, last child is 1.
func lastChild(nth int, target Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		i := len(n.Children) - nth
		if i < 0 || i >= len(n.Children) {
			return false, nil
		}
		return target(n.Children[i], env)
	}
}

// lastChildOf: the source must be its parent's Nth-from-last child and
// the target must match the parent.
func lastChildOf(nth int, target Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		p := n.Parent()
		if p == nil {
			return false, nil
		}
		i := len(p.Children) - nth
		if i < 0 || i >= len(p.Children) || p.Children[i] != n {
			return false, nil
		}
		return target(p, env)
	}
}

// ancestorWith: some ancestor satisfies the target and the source is a
// member of the given descendant family of that ancestor.
func ancestorWith(target Predicate, family func(*tree.Node) []*tree.Node) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		for _, anc := range ancestors(n) {
			ok, err := target(anc, env)
			if err != nil {
				return false, err
			}
			if ok && containsNode(family(anc), n) {
				return true, nil
			}
		}
		return false, nil
	}
}
