package syntax

import "fmt"

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"  // track, fibonacci
	NUMBER TokenType = "NUMBER" // 12345, 1.5
	STRING TokenType = "STRING" // "hello"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	POWER    TokenType = "**"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	ARROW    TokenType = "->"
	QUESTION TokenType = "?"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	NOTE        TokenType = "note"
	SONG        TokenType = "song"
	ENCORE      TokenType = "encore"
	PLAY        TokenType = "play"
	COMPOSITION TokenType = "composition"
	DEBUT       TokenType = "debut"
	IF          TokenType = "if"
	ELSE        TokenType = "else"
	WHILE       TokenType = "while"
	FOR         TokenType = "for"
	IN          TokenType = "in"
	BREAK       TokenType = "break"
	HIT         TokenType = "hit"
	SKIP        TokenType = "skip"
	ALBUM       TokenType = "album"
	STREAM      TokenType = "stream"
	LYRICS      TokenType = "lyrics"
	BOOL        TokenType = "bool"
	MUTE        TokenType = "mute"
	ANY         TokenType = "any"
)

var keywords = map[string]TokenType{
	"note":        NOTE,
	"song":        SONG,
	"encore":      ENCORE,
	"play":        PLAY,
	"composition": COMPOSITION,
	"debut":       DEBUT,
	"if":          IF,
	"else":        ELSE,
	"while":       WHILE,
	"for":         FOR,
	"in":          IN,
	"break":       BREAK,
	"hit":         HIT,
	"skip":        SKIP,
	"album":       ALBUM,
	"stream":      STREAM,
	"lyrics":      LYRICS,
	"bool":        BOOL,
	"mute":        MUTE,
	"any":         ANY,
}

// Position is a location in the source text. Line and Column are 1-based;
// Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is one lexeme. Literal holds the source text, except for STRING
// tokens where it holds the unescaped contents.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     int // offset just past the token
}

func (t Token) describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case STRING:
		return "string literal"
	case ILLEGAL:
		return fmt.Sprintf("illegal character %q", t.Literal)
	}
	return fmt.Sprintf("%q", string(t.Type))
}
