package tgrep

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/treebank-labs/tgrep/tree"
)

// compileNodeExpr maps a node-valued token to a predicate on the node's
// literal value, ignoring any relation context.
func compileNodeExpr(tok Token) (Predicate, error) {
	if tok.Type == TokenLiteral && (tok.Value == "*" || tok.Value == "__") {
		return alwaysTrue, nil
	}
	matcher, err := compileValueMatcher(tok)
	if err != nil {
		return nil, err
	}
	return func(n *tree.Node, _ Env) (bool, error) {
		return matcher(n.Value()), nil
	}, nil
}

// compileValueMatcher builds the string-level test for a node token.
// The i@ forms lower-case both the pattern and, via the returned matcher,
// the value under test.
func compileValueMatcher(tok Token) (func(string) bool, error) {
	switch tok.Type {
	case TokenLiteral:
		lit := tok.Value
		return func(v string) bool { return v == lit }, nil

	case TokenString:
		lit := unquoteString(tok.Value)
		return func(v string) bool { return v == lit }, nil

	case TokenRegex:
		re, err := compileRegexToken(tok, tok.Value)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil

	case TokenIString:
		lit := strings.ToLower(unquoteString(tok.Value[2:]))
		return func(v string) bool { return strings.ToLower(v) == lit }, nil

	case TokenIRegex:
		re, err := compileRegexToken(tok, strings.ToLower(tok.Value[2:]))
		if err != nil {
			return nil, err
		}
		return func(v string) bool { return re.MatchString(strings.ToLower(v)) }, nil
	}
	return nil, &SyntaxError{Offset: tok.Position, Msg: "expected node expression, got " + tok.Type.String()}
}

// unquoteString strips the surrounding quotes and resolves the \" and \\
// escapes of a quoted node literal.
func unquoteString(raw string) string {
	body := raw[1 : len(raw)-1]
	body = strings.ReplaceAll(body, `\"`, `"`)
	body = strings.ReplaceAll(body, `\\`, `\`)
	return body
}

// compileRegexToken compiles the body of a /.../ literal. The regex only
// needs to search somewhere in the value, so the pattern is used
// unanchored.
func compileRegexToken(tok Token, raw string) (*regexp.Regexp, error) {
	body := raw[1 : len(raw)-1]
	re, err := regexp.Compile(body)
	if err != nil {
		return nil, &SyntaxError{Offset: tok.Position, Msg: "invalid regex: " + err.Error()}
	}
	return re, nil
}

// compileTreePos maps an N(i,j,...) token to a predicate testing the
// node's exact position in its tree.
func compileTreePos(tok Token) (Predicate, error) {
	body := tok.Value[2 : len(tok.Value)-1] // strip "N(" and ")"
	want := tree.Position{}
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, &SyntaxError{Offset: tok.Position, Msg: "invalid tree position literal"}
		}
		want = append(want, idx)
	}
	return func(n *tree.Node, _ Env) (bool, error) {
		return n.Position().Equal(want), nil
	}, nil
}
