package syntax

// Node is a node of the concrete parse tree. Every node knows where it
// starts and which source text it matched.
type Node interface {
	Pos() Position
	Text() string
}

// Stmt is a statement production.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression production.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

type span struct {
	pos  Position
	text string
}

func (s span) Pos() Position { return s.pos }
func (s span) Text() string  { return s.text }

type Program struct {
	span
	Statements []Stmt
}

// Statements

// VarDecl is `note name: Type (= Init)?;`.
type VarDecl struct {
	span
	Name *Ident
	Type TypeExpr
	Init Expr // nil if absent
}

// NewInstanceDecl is `note name = debut Class (Args)?;`.
type NewInstanceDecl struct {
	span
	Name  *Ident
	Class *Ident
	Args  []Expr
}

type Param struct {
	span
	Name *Ident
	Type TypeExpr
}

// FuncDecl is `song name(params) -> Result { ... }`.
type FuncDecl struct {
	span
	Name   *Ident
	Params []*Param
	Result TypeExpr
	Body   *Block
}

type FieldDecl struct {
	span
	Name    *Ident
	Type    TypeExpr
	Default Expr // nil if absent
}

// ClassDecl is `composition Name { field: Type; ... }`.
type ClassDecl struct {
	span
	Name   *Ident
	Fields []*FieldDecl
}

type PrintStmt struct {
	span
	Arg Expr
}

// IfStmt is `if (Cond) Then (else Else)?`. Else is nil, a *Block or an
// *IfStmt.
type IfStmt struct {
	span
	Cond Expr
	Then *Block
	Else Stmt
}

type WhileStmt struct {
	span
	Cond Expr
	Body *Block
}

// ForStmt is `for (Var in Coll) Body`.
type ForStmt struct {
	span
	Var  *Ident
	Coll Expr
	Body *Block
}

type ReturnStmt struct {
	span
	Result Expr // nil for a bare `encore;`
}

type BreakStmt struct {
	span
}

// FieldStmt is `target.field (= Value)?;`.
type FieldStmt struct {
	span
	Target *Ident
	Field  *Ident
	Value  Expr // nil if absent
}

// AssignStmt is `target = Value;`.
type AssignStmt struct {
	span
	Target *Ident
	Value  Expr
}

type CallStmt struct {
	span
	Call *CallExpr
}

type Block struct {
	span
	Statements []Stmt
}

// Expressions

type Ident struct {
	span
	Name string
}

type NumberLit struct {
	span
	Value float64
}

type StringLit struct {
	span
	Value string
}

type BoolLit struct {
	span
	Value bool
}

type ArrayLit struct {
	span
	Elements []Expr
}

type CallExpr struct {
	span
	Callee *Ident
	Args   []Expr
}

// FieldExpr is `target.field` used as a value.
type FieldExpr struct {
	span
	Target *Ident
	Field  *Ident
}

type BinaryExpr struct {
	span
	Op    string
	OpPos Position
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	span
	Op      string
	Operand Expr
}

// CondExpr is `Cond ? Then : Else`.
type CondExpr struct {
	span
	Cond Expr
	Then Expr
	Else Expr
}

// Types

// NamedType is one of the primitive type keywords.
type NamedType struct {
	span
	Name string
}

// ArrayType is `album[Elem]`.
type ArrayType struct {
	span
	Elem TypeExpr
}

func (*VarDecl) stmtNode()         {}
func (*NewInstanceDecl) stmtNode() {}
func (*FuncDecl) stmtNode()        {}
func (*ClassDecl) stmtNode()       {}
func (*PrintStmt) stmtNode()       {}
func (*IfStmt) stmtNode()          {}
func (*WhileStmt) stmtNode()       {}
func (*ForStmt) stmtNode()         {}
func (*ReturnStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()       {}
func (*FieldStmt) stmtNode()       {}
func (*AssignStmt) stmtNode()      {}
func (*CallStmt) stmtNode()        {}
func (*Block) stmtNode()           {}

func (*Ident) exprNode()      {}
func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*ArrayLit) exprNode()   {}
func (*CallExpr) exprNode()   {}
func (*FieldExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*CondExpr) exprNode()   {}

func (*NamedType) typeNode() {}
func (*ArrayType) typeNode() {}
