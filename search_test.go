package tgrep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treebank-labs/tgrep/tree"
)

const sentence = "(S (NP (DT the) (NN dog)) (VP (VBD ran)))"

func findAll(t *testing.T, treeStr, query string, includeLeaves bool) []tree.Position {
	t.Helper()
	root := mustParse(t, treeStr)
	positions, err := FindPositions(root, query, includeLeaves)
	require.NoError(t, err, "query %q", query)
	return positions
}

func TestWildcardMatchesEveryPosition(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	for _, query := range []string{"*", "__"} {
		positions, err := FindPositions(root, query, true)
		require.NoError(t, err)
		assert.Equal(t, root.Positions(), positions, "query %q", query)
	}

	interior, err := FindPositions(root, "*", false)
	require.NoError(t, err)
	assert.Equal(t, root.InteriorPositions(), interior)
}

func TestNodeLiteralForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []tree.Position
	}{
		{"bare literal", "NP", []tree.Position{{0}}},
		{"leaf literal", "dog", []tree.Position{{0, 1, 0}}},
		{"quoted literal", `"dog"`, []tree.Position{{0, 1, 0}}},
		{"quoted literal no match", `"cat"`, nil},
		{"regex", "/^N/", []tree.Position{{0}, {0, 1}}},
		{"regex searches anywhere", "/og/", []tree.Position{{0, 1, 0}}},
		{"case insensitive string", `i@"DOG"`, []tree.Position{{0, 1, 0}}},
		{"case insensitive regex", "i@/^vb/", []tree.Position{{1, 0}}},
		{"literal disjunction", "NP|VP", []tree.Position{{0}, {1}}},
		{"leaf disjunction", "dog|ran", []tree.Position{{0, 1, 0}, {1, 0, 0}}},
		{"tree position", "N(0,1)", []tree.Position{{0, 1}}},
		{"root tree position", "N()", []tree.Position{{}}},
		{"marked node", "'dog", []tree.Position{{0, 1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findAll(t, sentence, tt.query, true))
		})
	}
}

func TestDominanceOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []tree.Position
	}{
		{"child", "NP < DT", []tree.Position{{0}}},
		{"parent", "* > S", []tree.Position{{0}, {1}}},
		{"first child", "* <, DT", []tree.Position{{0}}},
		{"first child numeric", "* <1 DT", []tree.Position{{0}}},
		{"second child", "* <2 NN", []tree.Position{{0}}},
		{"last child", "* <' NN", []tree.Position{{0}}},
		{"last child dash", "* <- NN", []tree.Position{{0}}},
		{"last child numeric", "* <-1 NN", []tree.Position{{0}}},
		{"second to last child", "* <-2 DT", []tree.Position{{0}}},
		{"is first child of", "* >, NP", []tree.Position{{0, 0}}},
		{"is nth child of", "* >2 NP", []tree.Position{{0, 1}}},
		{"is last child of", "* >' NP", []tree.Position{{0, 1}}},
		{"is last child of dash", "* >- NP", []tree.Position{{0, 1}}},
		{"is second to last child of", "* >-2 NP", []tree.Position{{0, 0}}},
		{"only child", "* <: VBD", []tree.Position{{1}}},
		{"is only child of", "* >: VP", []tree.Position{{1, 0}}},
		{"descendant", "* << dog", []tree.Position{{}, {0}, {0, 1}}},
		{"ancestor", "* >> NP", []tree.Position{{0, 0}, {0, 0, 0}, {0, 1}, {0, 1, 0}}},
		{"leftmost descendant", "* <<, the", []tree.Position{{}, {0}, {0, 0}}},
		{"leftmost descendant numeric", "* <<1 the", []tree.Position{{}, {0}, {0, 0}}},
		{"is leftmost descendant of", "* >>, S", []tree.Position{{0}, {0, 0}, {0, 0, 0}}},
		{"rightmost descendant", "* <<' ran", []tree.Position{{}, {1}, {1, 0}}},
		{"is rightmost descendant of", "* >>' S", []tree.Position{{1}, {1, 0}, {1, 0, 0}}},
		{"out of range child index", "* <5 DT", nil},
		{"zero child index", "* <0 DT", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findAll(t, sentence, tt.query, true))
		})
	}
}

func TestSinglePathDominance(t *testing.T) {
	t.Parallel()

	chain := "(A (B (C (D x))))"
	assert.Equal(t, []tree.Position{{}}, findAll(t, chain, "A <<: D", true))
	assert.Equal(t, []tree.Position{{0, 0, 0}}, findAll(t, chain, "D >>: A", true))

	// a second child anywhere along the chain breaks the single path
	forked := "(A (B (C (D x) (E y))))"
	assert.Empty(t, findAll(t, forked, "A <<: D", true))
	assert.Empty(t, findAll(t, forked, "D >>: A", true))
}

func TestPrecedenceOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []tree.Position
	}{
		{"immediately precedes", "dog . ran", []tree.Position{{0, 1, 0}}},
		{"immediately precedes across levels", "NN . VP", []tree.Position{{0, 1}}},
		{"immediately follows", "ran , dog", []tree.Position{{1, 0, 0}}},
		{"immediately follows across levels", "VP , NN", []tree.Position{{1}}},
		{"precedes", "dog .. ran", []tree.Position{{0, 1, 0}}},
		{"precedes phrase", "NP .. VP", []tree.Position{{0}}},
		{"follows", "ran ,, dog", []tree.Position{{1, 0, 0}}},
		{"follows phrase", "VP ,, NP", []tree.Position{{1}}},
		{"nothing precedes the first terminal", "the , *", nil},
		{"nothing follows the last terminal", "ran . *", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findAll(t, sentence, tt.query, true))
		})
	}
}

func TestSisterhoodOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []tree.Position
	}{
		{"sister", "DT $ NN", []tree.Position{{0, 0}}},
		{"sister percent", "DT % NN", []tree.Position{{0, 0}}},
		{"sister is irreflexive", "DT $ DT", nil},
		{"immediate right sister", "DT $. NN", []tree.Position{{0, 0}}},
		{"immediate right sister percent", "DT %. NN", []tree.Position{{0, 0}}},
		{"immediate left sister", "NN $, DT", []tree.Position{{0, 1}}},
		{"immediate left sister percent", "NN %, DT", []tree.Position{{0, 1}}},
		{"right sister anywhere", "NP $.. VP", []tree.Position{{0}}},
		{"left sister anywhere", "VP $,, NP", []tree.Position{{1}}},
		{"no right sister", "VP $.. *", nil},
		{"no left sister", "NP $,, *", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findAll(t, sentence, tt.query, true))
		})
	}
}

func TestStructuralAbsenceIsFalse(t *testing.T) {
	t.Parallel()

	// leaves have no children, the root has no parent, so the only node
	// with no parent is the root and leaves never dominate anything
	assert.Equal(t, []tree.Position{{}}, findAll(t, sentence, "* !> *", true))
	assert.Empty(t, findAll(t, sentence, "ran < *", true))
	assert.Empty(t, findAll(t, sentence, "S $ *", true))
}

func TestNegationPartitionsPositions(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	total := len(root.Positions())

	relations := []struct {
		pos, neg string
	}{
		{"* < NN", "* !< NN"},
		{"* >> NP", "* !>> NP"},
		{"* . *", "* !. *"},
		{"* $.. *", "* !$.. *"},
		{"* [< DT | < VBD]", "* ![< DT | < VBD]"},
	}

	for _, rel := range relations {
		t.Run(rel.pos, func(t *testing.T) {
			matched, err := FindPositions(root, rel.pos, true)
			require.NoError(t, err)
			negated, err := FindPositions(root, rel.neg, true)
			require.NoError(t, err)

			assert.Len(t, append(matched, negated...), total)
			seen := map[string]bool{}
			for _, p := range append(matched, negated...) {
				assert.False(t, seen[p.String()], "position %s in both sets", p)
				seen[p.String()] = true
			}
		})
	}
}

func TestConjunctionAndDisjunctionLaws(t *testing.T) {
	t.Parallel()

	// A|B is the union, A&B (and bare juxtaposition) the intersection
	union := findAll(t, sentence, "* [< DT | < VBD]", true)
	assert.Equal(t, []tree.Position{{0}, {1}}, union)

	assert.Equal(t, []tree.Position{{0}}, findAll(t, sentence, "* < DT & < NN", true))
	assert.Equal(t, []tree.Position{{0}}, findAll(t, sentence, "* < DT < NN", true))
	assert.Empty(t, findAll(t, sentence, "* < DT & < VBD", true))
}

func TestNegatedBracketGroup(t *testing.T) {
	t.Parallel()

	// negation covers the whole bracketed disjunction
	assert.Empty(t, findAll(t, sentence, "NP ![< DT | < NN]", true))
	assert.Equal(t, []tree.Position{{0}}, findAll(t, sentence, "NP ![< VBD | < XX]", true))
}

func TestRelationDisjunctionVersusNodeDisjunction(t *testing.T) {
	t.Parallel()

	// the pipe joins node expressions when a node follows, relations otherwise
	assert.Equal(t, []tree.Position{{0}, {1}}, findAll(t, sentence, "NP|VP > S", true))
	assert.Equal(t, []tree.Position{{0}}, findAll(t, sentence, "NP < DT | < XX", true))
}

func TestParenthesizedTarget(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []tree.Position{{}}, findAll(t, sentence, "S < (NP $.. VP)", true))
	assert.Equal(t, []tree.Position{{0}}, findAll(t, sentence, "(NP < DT) $.. VP", true))
}

func TestStatementDisjunction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []tree.Position{{0}, {1}}, findAll(t, sentence, "NP ; VP", true))
}

func TestMacroForwardReference(t *testing.T) {
	t.Parallel()

	direct := findAll(t, sentence, "NP < DT", true)

	// definition first, then use
	assert.Equal(t, direct, findAll(t, sentence, "@np NP ; @np < DT", true))
	// use first, then definition
	assert.Equal(t, direct, findAll(t, sentence, "@np < DT ; @np NP", true))
}

func TestMacroLaterDefinitionWins(t *testing.T) {
	t.Parallel()

	got := findAll(t, sentence, "@x VP ; @x NP ; @x < DT", true)
	assert.Equal(t, []tree.Position{{0}}, got)
}

func TestUndefinedMacro(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)

	// compiles fine, fails lazily during evaluation
	q, err := Compile("@missing")
	require.NoError(t, err)

	_, err = q.Positions(root, true)
	require.Error(t, err)
	var uerr *UndefinedMacroError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "missing", uerr.Name)
}

func TestUndefinedMacroBranchNeverReached(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)

	// the undefined branch is only an error if evaluation reaches it
	q, err := Compile("XX < @missing")
	require.NoError(t, err)
	positions, err := q.Positions(root, true)
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestCompileIdempotence(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	const query = "@np /^NP/ ; @np < DT | << ran"

	first, err := FindPositions(root, query, true)
	require.NoError(t, err)
	second, err := FindPositions(root, query, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindNodes(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	nodes, err := FindNodes(root, "/^N/", true)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Same(t, root.At(tree.Position{0}), nodes[0])
	assert.Same(t, root.At(tree.Position{0, 1}), nodes[1])
}

func TestCompiledQueryReuseAcrossTrees(t *testing.T) {
	t.Parallel()

	q, err := Compile("NP < DT")
	require.NoError(t, err)

	first := mustParse(t, sentence)
	second := mustParse(t, "(S (NP (DT a) (NN cat)) (VP (VBD sat)))")

	for _, root := range []*tree.Node{first, second} {
		positions, err := q.Positions(root, true)
		require.NoError(t, err)
		assert.Equal(t, []tree.Position{{0}}, positions)
	}
}

func TestMatchSingleNode(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	q, err := Compile("NP < DT")
	require.NoError(t, err)

	ok, err := q.Match(root.At(tree.Position{0}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.Match(root)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchErrorsPropagate(t *testing.T) {
	t.Parallel()

	root := mustParse(t, sentence)
	_, err := FindPositions(root, "NP <", true)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)

	_, err = FindPositions(root, "* << @nope", true)
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*UndefinedMacroError)))
}
