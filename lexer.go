package tgrep

import "strings"

// operator tokens start with one of these characters...
const operatorStart = "$%,.<>"

// ...and continue with these.
const operatorCont = "%,.<>0123456789-':"

// characters that terminate a bare node literal or macro name.
const literalStop = "][ \t\r\n;:.,&|<>()$!@%'^="

// Lexer scans a query string and produces tokens.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer over the given query string.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input and returns the token list,
// terminated by an EOF token. Whitespace separates tokens and '#' starts
// a comment running to the end of the line.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		startPos := l.position
		switch c := l.input[l.position]; {
		case isWhitespace(c):
			l.position++

		case c == '#':
			l.skipComment()

		case c == '"':
			if err := l.lexString(startPos); err != nil {
				return nil, err
			}

		case c == '/':
			if err := l.lexRegex(startPos); err != nil {
				return nil, err
			}

		case c == '!':
			l.addToken(TokenBang, "!", startPos)
			l.position++

		case c == '&':
			l.addToken(TokenAnd, "&", startPos)
			l.position++

		case c == '|':
			l.addToken(TokenOr, "|", startPos)
			l.position++

		case c == ';':
			l.addToken(TokenSemicolon, ";", startPos)
			l.position++

		case c == '(':
			l.addToken(TokenLParen, "(", startPos)
			l.position++

		case c == ')':
			l.addToken(TokenRParen, ")", startPos)
			l.position++

		case c == '[':
			l.addToken(TokenLBracket, "[", startPos)
			l.position++

		case c == ']':
			l.addToken(TokenRBracket, "]", startPos)
			l.position++

		case c == '\'':
			l.addToken(TokenMark, "'", startPos)
			l.position++

		case c == '@':
			if err := l.lexMacro(startPos); err != nil {
				return nil, err
			}

		case strings.IndexByte(operatorStart, c) >= 0:
			l.lexOperator(startPos)

		case l.matchICase():
			if err := l.lexICase(startPos); err != nil {
				return nil, err
			}

		default:
			if err := l.lexLiteral(startPos); err != nil {
				return nil, err
			}
		}
	}

	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

func (l *Lexer) skipComment() {
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.position++
	}
}

// lexString scans a quoted string with \" and \\ escapes and keeps the
// raw text, quotes included.
func (l *Lexer) lexString(startPos int) error {
	l.position++ // opening quote
	for l.position < len(l.input) {
		switch l.input[l.position] {
		case '\\':
			l.position += 2
		case '"':
			l.position++
			l.addToken(TokenString, l.input[startPos:l.position], startPos)
			return nil
		default:
			l.position++
		}
	}
	return &SyntaxError{Offset: startPos, Msg: "unterminated string literal"}
}

// lexRegex scans a /.../ literal, honoring backslash escapes, and keeps
// the raw text, slashes included.
func (l *Lexer) lexRegex(startPos int) error {
	l.position++ // opening slash
	for l.position < len(l.input) {
		switch l.input[l.position] {
		case '\\':
			l.position += 2
		case '/':
			l.position++
			l.addToken(TokenRegex, l.input[startPos:l.position], startPos)
			return nil
		default:
			l.position++
		}
	}
	return &SyntaxError{Offset: startPos, Msg: "unterminated regex literal"}
}

// matchICase reports whether the input at the current position starts a
// case-insensitive literal, i@"..." or i@/.../.
func (l *Lexer) matchICase() bool {
	if l.position+2 >= len(l.input) {
		return false
	}
	if l.input[l.position] != 'i' || l.input[l.position+1] != '@' {
		return false
	}
	c := l.input[l.position+2]
	return c == '"' || c == '/'
}

func (l *Lexer) lexICase(startPos int) error {
	l.position += 2 // "i@"
	if l.input[l.position] == '"' {
		if err := l.lexString(l.position); err != nil {
			return err
		}
	} else {
		if err := l.lexRegex(l.position); err != nil {
			return err
		}
	}
	// rewrite the just-added token to cover the i@ prefix
	last := &l.tokens[len(l.tokens)-1]
	if last.Type == TokenString {
		last.Type = TokenIString
	} else {
		last.Type = TokenIRegex
	}
	last.Value = l.input[startPos:l.position]
	last.Position = startPos
	return nil
}

// lexMacro scans @name. The name must follow the at-sign with no
// intervening whitespace.
func (l *Lexer) lexMacro(startPos int) error {
	l.position++ // '@'
	start := l.position
	for l.position < len(l.input) {
		c := l.input[l.position]
		if isWhitespace(c) || strings.IndexByte(literalStop, c) >= 0 {
			break
		}
		l.position++
	}
	if l.position == start {
		return &SyntaxError{Offset: startPos, Msg: "expected macro name after '@'"}
	}
	l.addToken(TokenMacro, l.input[startPos:l.position], startPos)
	return nil
}

func (l *Lexer) lexOperator(startPos int) {
	l.position++
	for l.position < len(l.input) && strings.IndexByte(operatorCont, l.input[l.position]) >= 0 {
		l.position++
	}
	l.addToken(TokenOperator, l.input[startPos:l.position], startPos)
}

// lexLiteral scans a bare node literal. The literal "N" immediately
// followed by '(' is a tree position literal like N(0,1) and is scanned
// as a single token.
func (l *Lexer) lexLiteral(startPos int) error {
	for l.position < len(l.input) {
		c := l.input[l.position]
		if isWhitespace(c) || strings.IndexByte(literalStop, c) >= 0 {
			break
		}
		l.position++
	}
	if l.position == startPos {
		return &SyntaxError{Offset: startPos, Msg: "unexpected character " + string(l.input[startPos])}
	}
	lit := l.input[startPos:l.position]

	if lit == "N" && l.position < len(l.input) && l.input[l.position] == '(' {
		return l.lexTreePos(startPos)
	}

	l.addToken(TokenLiteral, lit, startPos)
	return nil
}

// lexTreePos scans the remainder of N(i,j,...) after the leading N.
func (l *Lexer) lexTreePos(startPos int) error {
	l.position++ // '('
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == ')':
			l.position++
			l.addToken(TokenTreePos, l.input[startPos:l.position], startPos)
			return nil
		case c >= '0' && c <= '9', c == ',', isWhitespace(c):
			l.position++
		default:
			return &SyntaxError{Offset: l.position, Msg: "invalid character in tree position literal"}
		}
	}
	return &SyntaxError{Offset: startPos, Msg: "unterminated tree position literal"}
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

// isWhitespace tests the ASCII space characters only: treating bytes
// above 0x7F as whitespace would split multi-byte UTF-8 labels.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
