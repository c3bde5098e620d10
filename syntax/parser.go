package syntax

import (
	"fmt"
	"strconv"
)

// Error is a syntax error. Parsing stops at the first one.
type Error struct {
	Pos     Position
	Message string

	incomplete bool // input ended before the construct was complete
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// Match is the result of parsing a source text.
type Match struct {
	Program *Program
	err     error
}

// Succeeded reports whether the source text was syntactically valid.
func (m *Match) Succeeded() bool {
	return m != nil && m.err == nil && m.Program != nil
}

// Err returns the syntax error, if any.
func (m *Match) Err() error {
	if m == nil {
		return fmt.Errorf("no parse result")
	}
	return m.err
}

// Parse parses a whole Harmony program. On a syntax error it returns both a
// failed Match and the *Error.
func Parse(src string) (*Match, error) {
	p := &parser{src: []byte(src)}
	p.lexer = NewLexer(p.src)
	p.next()
	p.next()

	prog, err := p.parseProgram()
	if err != nil {
		return &Match{err: err}, err
	}
	return &Match{Program: prog}, nil
}

// IsIncomplete reports whether err was caused by input ending too early,
// which means more lines could still make it valid.
func IsIncomplete(err error) bool {
	serr, ok := err.(*Error)
	return ok && serr.incomplete
}

type parser struct {
	src     []byte
	lexer   *Lexer
	cur     Token
	peek    Token
	prevEnd int // end offset of the last consumed token
}

// bailout carries a syntax error up to parseProgram.
type bailout struct {
	err *Error
}

func (p *parser) next() {
	p.prevEnd = p.cur.End
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *parser) fail(tok Token, expected string) {
	panic(bailout{&Error{
		Pos:        tok.Pos,
		Message:    fmt.Sprintf("Expected %s but got %s", expected, tok.describe()),
		incomplete: tok.Type == EOF,
	}})
}

// expect consumes the current token, which must be of type t.
func (p *parser) expect(t TokenType) Token {
	tok := p.cur
	if tok.Type != t {
		p.fail(tok, fmt.Sprintf("%q", string(t)))
	}
	p.next()
	return tok
}

func (p *parser) spanFrom(start Position) span {
	end := p.prevEnd
	if end < start.Offset {
		end = start.Offset
	}
	return span{pos: start, text: string(p.src[start.Offset:end])}
}

func (p *parser) parseProgram() (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	start := p.cur.Pos
	var stmts []Stmt
	for p.cur.Type != EOF {
		stmts = append(stmts, p.parseStatement())
	}
	return &Program{span: p.spanFrom(start), Statements: stmts}, nil
}

func (p *parser) parseStatement() Stmt {
	start := p.cur.Pos
	switch p.cur.Type {
	case NOTE:
		return p.parseNote()

	case SONG:
		return p.parseFuncDecl()

	case COMPOSITION:
		return p.parseClassDecl()

	case PLAY:
		p.next()
		p.expect(LPAREN)
		arg := p.parseExpression()
		p.expect(RPAREN)
		p.expect(SEMICOLON)
		return &PrintStmt{span: p.spanFrom(start), Arg: arg}

	case IF:
		return p.parseIf()

	case WHILE:
		p.next()
		p.expect(LPAREN)
		cond := p.parseExpression()
		p.expect(RPAREN)
		body := p.parseBlock()
		return &WhileStmt{span: p.spanFrom(start), Cond: cond, Body: body}

	case FOR:
		p.next()
		p.expect(LPAREN)
		v := p.parseIdent()
		p.expect(IN)
		coll := p.parseExpression()
		p.expect(RPAREN)
		body := p.parseBlock()
		return &ForStmt{span: p.spanFrom(start), Var: v, Coll: coll, Body: body}

	case ENCORE:
		p.next()
		var result Expr
		if p.cur.Type != SEMICOLON {
			result = p.parseExpression()
		}
		p.expect(SEMICOLON)
		return &ReturnStmt{span: p.spanFrom(start), Result: result}

	case BREAK:
		p.next()
		p.expect(SEMICOLON)
		return &BreakStmt{span: p.spanFrom(start)}

	case IDENT:
		switch p.peek.Type {
		case DOT:
			target := p.parseIdent()
			p.expect(DOT)
			field := p.parseIdent()
			var value Expr
			if p.cur.Type == ASSIGN {
				p.next()
				value = p.parseExpression()
			}
			p.expect(SEMICOLON)
			return &FieldStmt{span: p.spanFrom(start), Target: target, Field: field, Value: value}
		case ASSIGN:
			target := p.parseIdent()
			p.expect(ASSIGN)
			value := p.parseExpression()
			p.expect(SEMICOLON)
			return &AssignStmt{span: p.spanFrom(start), Target: target, Value: value}
		case LPAREN:
			call := p.parseCall(p.parseIdent())
			p.expect(SEMICOLON)
			return &CallStmt{span: p.spanFrom(start), Call: call}
		}
		p.fail(p.peek, `"=", "." or "("`)
	}

	p.fail(p.cur, "a statement")
	return nil
}

// parseNote parses both `note x: T (= e)?;` and `note x = debut C(args)?;`.
func (p *parser) parseNote() Stmt {
	start := p.cur.Pos
	p.expect(NOTE)
	name := p.parseIdent()

	if p.cur.Type == ASSIGN {
		p.next()
		p.expect(DEBUT)
		class := p.parseIdent()
		var args []Expr
		if p.cur.Type == LPAREN {
			args = p.parseArgs()
		}
		p.expect(SEMICOLON)
		return &NewInstanceDecl{span: p.spanFrom(start), Name: name, Class: class, Args: args}
	}

	p.expect(COLON)
	typ := p.parseType()
	var init Expr
	if p.cur.Type == ASSIGN {
		p.next()
		init = p.parseExpression()
	}
	p.expect(SEMICOLON)
	return &VarDecl{span: p.spanFrom(start), Name: name, Type: typ, Init: init}
}

func (p *parser) parseFuncDecl() Stmt {
	start := p.cur.Pos
	p.expect(SONG)
	name := p.parseIdent()
	p.expect(LPAREN)
	var params []*Param
	for p.cur.Type != RPAREN {
		if len(params) > 0 {
			p.expect(COMMA)
		}
		params = append(params, p.parseParam())
	}
	p.expect(RPAREN)
	p.expect(ARROW)
	result := p.parseType()
	body := p.parseBlock()
	return &FuncDecl{span: p.spanFrom(start), Name: name, Params: params, Result: result, Body: body}
}

func (p *parser) parseParam() *Param {
	start := p.cur.Pos
	if p.cur.Type == NOTE {
		p.next()
	}
	name := p.parseIdent()
	p.expect(COLON)
	typ := p.parseType()
	return &Param{span: p.spanFrom(start), Name: name, Type: typ}
}

func (p *parser) parseClassDecl() Stmt {
	start := p.cur.Pos
	p.expect(COMPOSITION)
	name := p.parseIdent()
	p.expect(LBRACE)
	var fields []*FieldDecl
	for p.cur.Type != RBRACE {
		fstart := p.cur.Pos
		fname := p.parseIdent()
		p.expect(COLON)
		typ := p.parseType()
		var def Expr
		if p.cur.Type == ASSIGN {
			p.next()
			def = p.parseExpression()
		}
		p.expect(SEMICOLON)
		fields = append(fields, &FieldDecl{span: p.spanFrom(fstart), Name: fname, Type: typ, Default: def})
	}
	p.expect(RBRACE)
	return &ClassDecl{span: p.spanFrom(start), Name: name, Fields: fields}
}

func (p *parser) parseIf() *IfStmt {
	start := p.cur.Pos
	p.expect(IF)
	p.expect(LPAREN)
	cond := p.parseExpression()
	p.expect(RPAREN)
	then := p.parseBlock()

	var els Stmt
	if p.cur.Type == ELSE {
		p.next()
		if p.cur.Type == IF {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return &IfStmt{span: p.spanFrom(start), Cond: cond, Then: then, Else: els}
}

func (p *parser) parseBlock() *Block {
	start := p.cur.Pos
	p.expect(LBRACE)
	var stmts []Stmt
	for p.cur.Type != RBRACE {
		if p.cur.Type == EOF {
			p.fail(p.cur, `"}"`)
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(RBRACE)
	return &Block{span: p.spanFrom(start), Statements: stmts}
}

func (p *parser) parseIdent() *Ident {
	tok := p.cur
	if tok.Type != IDENT {
		p.fail(tok, "an identifier")
	}
	p.next()
	return &Ident{span: p.spanFrom(tok.Pos), Name: tok.Literal}
}

func (p *parser) parseType() TypeExpr {
	start := p.cur.Pos
	switch p.cur.Type {
	case STREAM, LYRICS, BOOL, MUTE, ANY:
		name := p.cur.Literal
		p.next()
		return &NamedType{span: p.spanFrom(start), Name: name}
	case ALBUM:
		p.next()
		p.expect(LBRACKET)
		elem := p.parseType()
		p.expect(RBRACKET)
		return &ArrayType{span: p.spanFrom(start), Elem: elem}
	}
	p.fail(p.cur, "a type")
	return nil
}

// precedence returns the binding power of a binary operator, or 0 if the
// token is not one.
func precedence(t TokenType) int {
	switch t {
	case EQ, NOT_EQ, LT, GT, LE, GE:
		return 1
	case PLUS, MINUS:
		return 2
	case ASTERISK, SLASH, PERCENT:
		return 3
	case POWER:
		return 4
	default:
		return 0
	}
}

func (p *parser) parseExpression() Expr {
	start := p.cur.Pos
	cond := p.parseBinary(1)
	if p.cur.Type != QUESTION {
		return cond
	}
	p.next()
	then := p.parseExpression()
	p.expect(COLON)
	els := p.parseExpression()
	return &CondExpr{span: p.spanFrom(start), Cond: cond, Then: then, Else: els}
}

// parseBinary implements precedence climbing. ** is right-associative, the
// rest are left-associative.
func (p *parser) parseBinary(minPrec int) Expr {
	start := p.cur.Pos
	left := p.parseUnary()

	for {
		prec := precedence(p.cur.Type)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.cur
		p.next()

		var right Expr
		if op.Type == POWER {
			right = p.parseBinary(prec)
		} else {
			right = p.parseBinary(prec + 1)
		}
		left = &BinaryExpr{span: p.spanFrom(start), Op: op.Literal, OpPos: op.Pos, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() Expr {
	start := p.cur.Pos
	if p.cur.Type == MINUS || p.cur.Type == BANG {
		op := p.cur.Literal
		p.next()
		operand := p.parseUnary()
		return &UnaryExpr{span: p.spanFrom(start), Op: op, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Expr {
	start := p.cur.Pos
	switch p.cur.Type {
	case NUMBER:
		lit := p.cur.Literal
		value, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.fail(p.cur, "a number")
		}
		p.next()
		return &NumberLit{span: p.spanFrom(start), Value: value}

	case STRING:
		value := p.cur.Literal
		p.next()
		return &StringLit{span: p.spanFrom(start), Value: value}

	case HIT, SKIP:
		value := p.cur.Type == HIT
		p.next()
		return &BoolLit{span: p.spanFrom(start), Value: value}

	case LBRACKET:
		p.next()
		var elems []Expr
		for p.cur.Type != RBRACKET {
			if len(elems) > 0 {
				p.expect(COMMA)
			}
			elems = append(elems, p.parseExpression())
		}
		p.expect(RBRACKET)
		return &ArrayLit{span: p.spanFrom(start), Elements: elems}

	case IDENT:
		id := p.parseIdent()
		switch p.cur.Type {
		case LPAREN:
			return p.parseCall(id)
		case DOT:
			p.next()
			field := p.parseIdent()
			return &FieldExpr{span: p.spanFrom(start), Target: id, Field: field}
		}
		return id

	case LPAREN:
		p.next()
		e := p.parseExpression()
		p.expect(RPAREN)
		return e
	}

	p.fail(p.cur, "an expression")
	return nil
}

func (p *parser) parseCall(callee *Ident) *CallExpr {
	args := p.parseArgs()
	return &CallExpr{span: p.spanFrom(callee.Pos()), Callee: callee, Args: args}
}

func (p *parser) parseArgs() []Expr {
	p.expect(LPAREN)
	var args []Expr
	for p.cur.Type != RPAREN {
		if len(args) > 0 {
			p.expect(COMMA)
		}
		args = append(args, p.parseExpression())
	}
	p.expect(RPAREN)
	return args
}
