package tgrep

import "github.com/treebank-labs/tgrep/tree"

// Tokenize scans a query string into its raw tokens. It is a diagnostic
// aid; Compile runs the lexer itself.
func Tokenize(query string) ([]Token, error) {
	return NewLexer(query).Tokenize()
}

// Compile parses a query string into a reusable CompiledQuery. The whole
// string must be consumed by the grammar; anything left over is a
// SyntaxError.
func Compile(query string) (*CompiledQuery, error) {
	return compile(query, nil)
}

// CompileWithMacros compiles a query against a library of named macro
// patterns. Each library pattern is compiled as a single expression and
// bound under its name before the query's own definitions are collected,
// so an in-query definition overrides a library entry of the same name.
func CompileWithMacros(query string, macros map[string]string) (*CompiledQuery, error) {
	return compile(query, macros)
}

func compile(query string, macros map[string]string) (*CompiledQuery, error) {
	env := Env{}
	for name, pattern := range macros {
		pred, err := compileMacroPattern(pattern)
		if err != nil {
			return nil, &SyntaxError{Msg: "macro " + name + ": " + err.Error()}
		}
		env[name] = pred
	}

	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	pred, defs, err := NewParser(tokens).ParseQuery()
	if err != nil {
		return nil, err
	}
	for name, def := range defs {
		env[name] = def
	}
	return &CompiledQuery{pred: pred, env: env}, nil
}

// compileMacroPattern compiles a single library pattern as one
// expression with no statements of its own.
func compileMacroPattern(pattern string) (Predicate, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorf(tok, "unexpected "+tok.Type.String()+" after expression")
	}
	return pred, nil
}

// FindPositions compiles the query and returns every position of the
// tree it matches, in pre-order. Leaf positions are searched only when
// includeLeaves is true.
func FindPositions(root *tree.Node, query string, includeLeaves bool) ([]tree.Position, error) {
	q, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return q.Positions(root, includeLeaves)
}

// FindNodes is like FindPositions but resolves the matching positions to
// their nodes, in the same order.
func FindNodes(root *tree.Node, query string, includeLeaves bool) ([]*tree.Node, error) {
	q, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return q.Nodes(root, includeLeaves)
}
