package tgrep

import "github.com/treebank-labs/tgrep/tree"

// Env is an immutable macro environment mapping macro names to the
// predicates bound to them. It is fully populated at compile time, before
// any predicate runs, so macro uses may precede their definitions in the
// query text.
type Env map[string]Predicate

// Predicate is a compiled boolean test over a tree node. The macro
// environment is threaded through every invocation; for a fixed
// environment and an unmutated tree a predicate is referentially
// transparent, so compiled predicates can be reused and shared freely.
type Predicate func(n *tree.Node, env Env) (bool, error)

func alwaysTrue(*tree.Node, Env) (bool, error) { return true, nil }

func andPredicate(a, b Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		ok, err := a(n, env)
		if err != nil || !ok {
			return false, err
		}
		return b(n, env)
	}
}

func orPredicate(a, b Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		ok, err := a(n, env)
		if err != nil || ok {
			return ok, err
		}
		return b(n, env)
	}
}

func notPredicate(p Predicate) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		ok, err := p(n, env)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// anyOf tests the predicate against each candidate node in order,
// stopping at the first hit.
func anyOf(nodes []*tree.Node, p Predicate, env Env) (bool, error) {
	for _, n := range nodes {
		ok, err := p(n, env)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// macroUse defers the lookup of a macro name to evaluation time. A
// missing binding surfaces as an UndefinedMacroError the first time the
// branch is actually reached.
func macroUse(name string) Predicate {
	return func(n *tree.Node, env Env) (bool, error) {
		p, ok := env[name]
		if !ok {
			return false, &UndefinedMacroError{Name: name}
		}
		return p(n, env)
	}
}

// CompiledQuery is a reusable compiled query: the top-level predicate
// with its macro environment closed over. A CompiledQuery holds no
// mutable state and may be used concurrently against distinct trees.
type CompiledQuery struct {
	pred Predicate
	env  Env
}

// Match evaluates the query against a single node.
func (q *CompiledQuery) Match(n *tree.Node) (bool, error) {
	return q.pred(n, q.env)
}

// Positions returns the positions under root that match the query, in
// pre-order. Leaf positions are skipped when includeLeaves is false.
func (q *CompiledQuery) Positions(root *tree.Node, includeLeaves bool) ([]tree.Position, error) {
	var candidates []tree.Position
	if includeLeaves {
		candidates = root.Positions()
	} else {
		candidates = root.InteriorPositions()
	}

	var out []tree.Position
	for _, pos := range candidates {
		ok, err := q.Match(root.At(pos))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pos)
		}
	}
	return out, nil
}

// Nodes is like Positions but resolves each matching position to its
// node, in the same order.
func (q *CompiledQuery) Nodes(root *tree.Node, includeLeaves bool) ([]*tree.Node, error) {
	positions, err := q.Positions(root, includeLeaves)
	if err != nil {
		return nil, err
	}
	nodes := make([]*tree.Node, len(positions))
	for i, pos := range positions {
		nodes[i] = root.At(pos)
	}
	return nodes, nil
}
