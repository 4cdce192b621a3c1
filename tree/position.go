package tree

import (
	"strconv"
	"strings"
)

// Position identifies a node within a tree as the path of child indices
// from the root. The root's position is the empty path. Positions are
// unique per node within one tree.
type Position []int

// Equal reports whether p and q are the same path.
func (p Position) Equal(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare orders positions lexicographically by child index. A strict
// prefix compares below any of its extensions, so a node orders before
// everything it dominates.
func (p Position) Compare(q Position) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		switch {
		case p[i] < q[i]:
			return -1
		case p[i] > q[i]:
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// IsPrefixOf reports whether p is a (non-strict) prefix of q.
func (p Position) IsPrefixOf(q Position) bool {
	if len(p) > len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func (p Position) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
