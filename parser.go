package tgrep

// Parser consumes tokens produced by the lexer and assembles predicates
// directly: each production returns the compiled predicate for the
// phrase it recognized, so no intermediate syntax tree is built.
//
// Grammar:
//
//	query          := stmt (';' stmt)*              stmt is a macro definition or an expression
//	macroDef       := '@name' expr                  at statement level, when an expression follows
//	expr           := node relations?
//	relations      := relConjunction ('|' relConjunction)*
//	relConjunction := relation ('&'? relation)*
//	relation       := '!'? ('[' relations ']' | operator node)
//	node           := macroUse | '(' expr ')' | treePos | mark? nodeExpr ('|' nodeExpr)*
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new Parser over the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: -1}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) Token {
	if p.current+offset >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: -1}
	}
	return p.tokens[p.current+offset]
}

func (p *Parser) next() Token {
	tok := p.peek()
	p.current++
	return tok
}

func (p *Parser) errorf(tok Token, msg string) error {
	return &SyntaxError{Offset: tok.Position, Msg: msg}
}

// ParseQuery parses a full multi-statement query. Macro definitions from
// every statement are collected into one environment before the query
// runs, so a macro may be used in a statement that precedes its
// definition. The top-level expressions are OR'd together. The entire
// token stream must be consumed.
func (p *Parser) ParseQuery() (Predicate, Env, error) {
	env := Env{}
	var exprs []Predicate

	for {
		if p.startsMacroDef() {
			name, pred, err := p.parseMacroDef()
			if err != nil {
				return nil, nil, err
			}
			// a later definition of the same name wins
			env[name] = pred
		} else {
			pred, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			exprs = append(exprs, pred)
		}
		if p.peek().Type != TokenSemicolon {
			break
		}
		p.next()
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, nil, p.errorf(tok, "unexpected "+tok.Type.String()+" after expression")
	}
	if len(exprs) == 0 {
		return nil, nil, p.errorf(p.peek(), "query has no search expression")
	}

	pred := exprs[0]
	for _, e := range exprs[1:] {
		pred = orPredicate(pred, e)
	}
	return pred, env, nil
}

// startsMacroDef distinguishes a macro definition statement from an
// expression that merely starts with a macro use: a definition is @name
// followed by something that can begin a node, while a use is followed
// by a relation, a separator, or the end of the query.
func (p *Parser) startsMacroDef() bool {
	if p.peek().Type != TokenMacro {
		return false
	}
	switch p.peekAt(1).Type {
	case TokenLiteral, TokenString, TokenRegex, TokenIString, TokenIRegex,
		TokenTreePos, TokenLParen, TokenMacro, TokenMark:
		return true
	}
	return false
}

func (p *Parser) parseMacroDef() (string, Predicate, error) {
	tok := p.next() // TokenMacro
	pred, err := p.parseExpr()
	if err != nil {
		return "", nil, err
	}
	return tok.Value[1:], pred, nil
}

// parseExpr parses node relations? as the conjunction of the node
// predicate and the relation predicate.
func (p *Parser) parseExpr() (Predicate, error) {
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if !p.startsRelation() {
		return node, nil
	}
	rels, err := p.parseRelations()
	if err != nil {
		return nil, err
	}
	return andPredicate(node, rels), nil
}

func (p *Parser) startsRelation() bool {
	switch p.peek().Type {
	case TokenOperator, TokenBang, TokenLBracket:
		return true
	}
	return false
}

// parseRelations parses a |-separated disjunction of relation
// conjunctions, folding left to right.
func (p *Parser) parseRelations() (Predicate, error) {
	pred, err := p.parseRelConjunction()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.next()
		right, err := p.parseRelConjunction()
		if err != nil {
			return nil, err
		}
		pred = orPredicate(pred, right)
	}
	return pred, nil
}

// parseRelConjunction parses one or more relations joined by '&' or by
// bare juxtaposition, folding left to right.
func (p *Parser) parseRelConjunction() (Predicate, error) {
	pred, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	for {
		if p.peek().Type == TokenAnd {
			p.next()
		} else if !p.startsRelation() {
			return pred, nil
		}
		right, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		pred = andPredicate(pred, right)
	}
}

// parseRelation parses a single, optionally negated relation: either a
// bracket-grouped relation disjunction or an operator with its target
// node. Negation applies to the whole group.
func (p *Parser) parseRelation() (Predicate, error) {
	negated := false
	if p.peek().Type == TokenBang {
		p.next()
		negated = true
	}

	var pred Predicate
	switch tok := p.peek(); tok.Type {
	case TokenLBracket:
		p.next()
		inner, err := p.parseRelations()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRBracket {
			return nil, p.errorf(closing, "expected ']'")
		}
		pred = inner

	case TokenOperator:
		p.next()
		target, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		pred, err = compileRelation(tok, target)
		if err != nil {
			return nil, err
		}

	default:
		return nil, p.errorf(tok, "expected relation, got "+tok.Type.String())
	}

	if negated {
		pred = notPredicate(pred)
	}
	return pred, nil
}

// parseNode parses a node term: a macro use, a parenthesized
// sub-expression, a tree position literal, or a possibly |-joined
// disjunction of node expressions.
func (p *Parser) parseNode() (Predicate, error) {
	switch tok := p.peek(); tok.Type {
	case TokenMacro:
		p.next()
		return macroUse(tok.Value[1:]), nil

	case TokenLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, p.errorf(closing, "expected ')'")
		}
		return inner, nil

	case TokenTreePos:
		p.next()
		return compileTreePos(tok)

	case TokenMark:
		// tgrep2 print marker, accepted and ignored
		p.next()
	}

	pred, err := p.parseNodeExpr()
	if err != nil {
		return nil, err
	}
	// node-level disjunction: a|b|c joins plain node expressions only
	for p.peek().Type == TokenOr && isNodeExprToken(p.peekAt(1).Type) {
		p.next()
		right, err := p.parseNodeExpr()
		if err != nil {
			return nil, err
		}
		pred = orPredicate(pred, right)
	}
	return pred, nil
}

func isNodeExprToken(t TokenType) bool {
	switch t {
	case TokenLiteral, TokenString, TokenRegex, TokenIString, TokenIRegex:
		return true
	}
	return false
}

func (p *Parser) parseNodeExpr() (Predicate, error) {
	tok := p.peek()
	if !isNodeExprToken(tok.Type) {
		return nil, p.errorf(tok, "expected node, got "+tok.Type.String())
	}
	p.next()
	return compileNodeExpr(tok)
}
