package tgrep

import "fmt"

// TokenType defines the kinds of tokens produced by the query lexer.
type TokenType int

const (
	TokenLiteral   TokenType = iota // bare node literal, including * and __
	TokenString                     // quoted string, "..." with the quotes kept
	TokenRegex                      // regex literal, /.../ with the slashes kept
	TokenIString                    // case-insensitive string, i@"..."
	TokenIRegex                     // case-insensitive regex, i@/.../
	TokenOperator                   // relation operator such as <, >>', $..
	TokenBang                       // '!'
	TokenAnd                        // '&'
	TokenOr                         // '|'
	TokenSemicolon                  // ';'
	TokenLParen                     // '('
	TokenRParen                     // ')'
	TokenLBracket                   // '['
	TokenRBracket                   // ']'
	TokenMacro                      // macro name, @name
	TokenTreePos                    // tree position literal, N(i,j,...)
	TokenMark                       // apostrophe marking a node for printing
	TokenEOF                        // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenLiteral:
		return "literal"
	case TokenString:
		return "string"
	case TokenRegex:
		return "regex"
	case TokenIString:
		return "istring"
	case TokenIRegex:
		return "iregex"
	case TokenOperator:
		return "operator"
	case TokenBang:
		return "'!'"
	case TokenAnd:
		return "'&'"
	case TokenOr:
		return "'|'"
	case TokenSemicolon:
		return "';'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenMacro:
		return "macro"
	case TokenTreePos:
		return "tree position"
	case TokenMark:
		return "mark"
	case TokenEOF:
		return "end of query"
	}
	return "unknown"
}

// Token is a single lexical token with its type, raw text, and starting
// offset in the query string.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Value, t.Position)
}
