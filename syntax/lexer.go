package syntax

import "strings"

// Lexer turns Harmony source text into tokens.
type Lexer struct {
	input []byte
	pos   int // current reading position in input
	line  int
	col   int
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n < len(l.input) {
		return l.input[l.pos+n]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// twoCharOps maps operators that are a prefix of a longer operator.
var twoCharOps = map[string]TokenType{
	"==": EQ,
	"!=": NOT_EQ,
	"<=": LE,
	">=": GE,
	"**": POWER,
	"->": ARROW,
}

var oneCharOps = map[byte]TokenType{
	'=': ASSIGN,
	'+': PLUS,
	'-': MINUS,
	'!': BANG,
	'*': ASTERISK,
	'/': SLASH,
	'%': PERCENT,
	'?': QUESTION,
	'<': LT,
	'>': GT,
	',': COMMA,
	';': SEMICOLON,
	':': COLON,
	'.': DOT,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
}

// NextToken scans and returns the next token. Once the input is exhausted
// it keeps returning EOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	start := l.position()
	tok := func(t TokenType, lit string) Token {
		return Token{Type: t, Literal: lit, Pos: start, End: l.pos}
	}

	c := l.peek(0)
	if l.pos >= len(l.input) {
		return tok(EOF, "")
	}

	if t, ok := twoCharOps[string([]byte{c, l.peek(1)})]; ok {
		l.advance()
		l.advance()
		return tok(t, string(t))
	}
	if t, ok := oneCharOps[c]; ok {
		l.advance()
		return tok(t, string(c))
	}

	switch {
	case c == '"':
		lit, ok := l.readString()
		if !ok {
			return tok(ILLEGAL, "\"")
		}
		return tok(STRING, lit)
	case isLetter(c):
		lit := l.readIdentifier()
		if kw, ok := keywords[lit]; ok {
			return tok(kw, lit)
		}
		return tok(IDENT, lit)
	case isDigit(c):
		return tok(NUMBER, l.readNumber())
	}

	l.advance()
	return tok(ILLEGAL, string(c))
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		c := l.peek(0)
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.advance()
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.input) && l.peek(0) != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.peek(0)) || isDigit(l.peek(0)) {
		l.advance()
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.peek(0)) {
		l.advance()
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance()
		for isDigit(l.peek(0)) {
			l.advance()
		}
	}
	return string(l.input[start:l.pos])
}

// readString consumes a double-quoted literal and returns its unescaped
// contents. It reports false if the literal is not terminated on its line.
func (l *Lexer) readString() (string, bool) {
	l.advance() // skip opening "
	var b strings.Builder
	for {
		if l.pos >= len(l.input) || l.peek(0) == '\n' {
			return "", false
		}
		c := l.peek(0)
		if c == '"' {
			l.advance()
			return b.String(), true
		}
		if c == '\\' {
			l.advance()
			switch l.peek(0) {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteByte(l.peek(0))
			default:
				b.WriteByte('\\')
				b.WriteByte(l.peek(0))
			}
			l.advance()
			continue
		}
		b.WriteByte(c)
		l.advance()
	}
}
