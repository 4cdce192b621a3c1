package tgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treebank-labs/tgrep/tree"
)

func mustParse(t *testing.T, s string) *tree.Node {
	t.Helper()
	root, err := tree.Parse(s)
	require.NoError(t, err)
	return root
}

func labels(nodes []*tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value()
	}
	return out
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	dog := root.At(tree.Position{0, 1, 0})

	assert.Equal(t, []string{"NN", "NP", "S"}, labels(ancestors(dog)))
	assert.Empty(t, ancestors(root))
}

func TestUniqueAncestors(t *testing.T) {
	t.Parallel()

	chain := mustParse(t, "(A (B (C (D x))))")
	x := chain.At(tree.Position{0, 0, 0, 0})
	assert.Equal(t, []string{"D", "C", "B", "A"}, labels(uniqueAncestors(x)))

	// a branching parent stops the climb
	branching := mustParse(t, "(A (B (C x) (E y)))")
	cx := branching.At(tree.Position{0, 0, 0})
	assert.Equal(t, []string{"C"}, labels(uniqueAncestors(cx)))
}

func TestDescendants(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	assert.Equal(t,
		[]string{"NP", "DT", "the", "NN", "dog", "VP", "VBD", "ran"},
		labels(descendants(root)))
	assert.Empty(t, descendants(root.At(tree.Position{0, 0, 0})))
}

func TestLeftmostAndRightmostDescendants(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	assert.Equal(t, []string{"NP", "DT", "the"}, labels(leftmostDescendants(root)))
	assert.Equal(t, []string{"VP", "VBD", "ran"}, labels(rightmostDescendants(root)))

	np := root.At(tree.Position{0})
	assert.Equal(t, []string{"DT", "the"}, labels(leftmostDescendants(np)))
	assert.Equal(t, []string{"NN", "dog"}, labels(rightmostDescendants(np)))
}

func TestUniqueDescendants(t *testing.T) {
	t.Parallel()

	chain := mustParse(t, "(A (B (C (D x))))")
	assert.Equal(t, []string{"B", "C", "D", "x"}, labels(uniqueDescendants(chain)))

	// the chain ends at the first node with more than one child
	forked := mustParse(t, "(A (B (C (D x) (E y))))")
	assert.Equal(t, []string{"B", "C"}, labels(uniqueDescendants(forked)))
}

func TestBeforeAndAfter(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	dog := root.At(tree.Position{0, 1, 0})

	assert.Equal(t, []string{"DT", "the"}, labels(before(dog)))
	assert.Equal(t, []string{"VP", "VBD", "ran"}, labels(after(dog)))

	// ancestors and descendants are neither before nor after
	np := root.At(tree.Position{0})
	assert.Empty(t, before(np))
	assert.Equal(t, []string{"VP", "VBD", "ran"}, labels(after(np)))
}

func TestImmediatelyBeforeAndAfter(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "(S (NP (DT the) (NN dog)) (VP (VBD ran)))")
	dog := root.At(tree.Position{0, 1, 0})
	the := root.At(tree.Position{0, 0, 0})
	vp := root.At(tree.Position{1})

	// dog's next terminal is ran, reached through the VP subtree
	assert.Equal(t, []string{"VP", "VBD", "ran"}, labels(immediatelyAfter(dog)))
	// the's previous terminal does not exist
	assert.Empty(t, immediatelyBefore(the))
	// the globally rightmost subtree has no successor
	assert.Empty(t, immediatelyAfter(vp))

	ran := root.At(tree.Position{1, 0, 0})
	assert.Equal(t, []string{"NP", "NN", "dog"}, labels(immediatelyBefore(ran)))

	assert.Empty(t, immediatelyBefore(root))
	assert.Empty(t, immediatelyAfter(root))
}

func TestCrossesBefore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q, p tree.Position
		want bool
	}{
		{"left divergence", tree.Position{0, 0}, tree.Position{0, 1}, true},
		{"right divergence", tree.Position{1}, tree.Position{0, 1}, false},
		{"prefix is not before its extension", tree.Position{0}, tree.Position{0, 1}, false},
		{"extension is not before its prefix", tree.Position{0, 1}, tree.Position{0}, false},
		{"root against anything", tree.Position{}, tree.Position{1, 0}, false},
		{"shorter divergent path", tree.Position{0}, tree.Position{1, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, crossesBefore(tt.q, tt.p))
		})
	}
}
