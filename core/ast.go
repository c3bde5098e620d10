package core

// Node is any node of a decorated Harmony syntax tree.
type Node interface {
	node()
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value. ExprType is never nil in a
// tree returned by the analyzer.
type Expression interface {
	Node
	expressionNode()
	ExprType() Type
}

// Entity is anything a name can be bound to while analyzing.
type Entity interface {
	entity()
}

// Block is a statement list used as a body.
type Block []Statement

// Else is the alternate of an IfStatement: either a Block or a chained
// *IfStatement. A nil Else means there is no alternate.
type Else interface {
	elseNode()
}

type Program struct {
	Statements []Statement
}

// Variable is both a declared variable (or parameter) and a reference to
// one. References copy the ID of the declaration they resolve to.
type Variable struct {
	Name string
	ID   int
	Type Type
}

type VariableDeclaration struct {
	Variable    *Variable
	Initializer Expression // nil if absent
}

type Function struct {
	Name       string
	ID         int
	Parameters []*Variable
	ReturnType Type
	Body       Block
	Type       *FunctionType
}

type FunctionDeclaration struct {
	Fun *Function
}

// FunctionCall calls the function named by Callee, a reference whose type is
// the function's *FunctionType.
type FunctionCall struct {
	Callee *Variable
	Args   []Expression
	Type   Type
}

// CallStatement is a call evaluated for its effect.
type CallStatement struct {
	Call *FunctionCall
}

type ArrayExpression struct {
	Elements []Expression
	Type     *ArrayType
}

type BinaryExpression struct {
	Op    string
	Left  Expression
	Right Expression
	Type  Type
}

type UnaryExpression struct {
	Op      string
	Operand Expression
	Type    Type
}

type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Type       Type
}

type IfStatement struct {
	Test       Expression
	Consequent Block
	Alternate  Else
}

type WhileStatement struct {
	Test Expression
	Body Block
}

type ForStatement struct {
	Iterator   *Variable
	Collection Expression
	Body       Block
}

type ReturnStatement struct {
	Argument Expression // nil for a bare return
}

type BreakStatement struct{}

type PrintStatement struct {
	Expression Expression
}

type ClassDeclaration struct {
	Class *ClassType
}

// NewInstance creates an instance of Class. Fields holds the supplied field
// values in declaration order; it may be shorter than Class.Fields.
type NewInstance struct {
	Class  *ClassType
	Fields []Expression
}

// FieldAccess reads Field of Instance or, when Value is non-nil and the
// node is used as a statement, assigns Value to it.
type FieldAccess struct {
	Instance *Variable
	Field    *Field
	Value    Expression
}

type Assignment struct {
	Target *Variable
	Source Expression
}

type NumberLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

type BooleanLiteral struct {
	Value bool
}

func (*Program) node()               {}
func (*Variable) node()              {}
func (*VariableDeclaration) node()   {}
func (*Function) node()              {}
func (*FunctionDeclaration) node()   {}
func (*FunctionCall) node()          {}
func (*CallStatement) node()         {}
func (*ArrayExpression) node()       {}
func (*BinaryExpression) node()      {}
func (*UnaryExpression) node()       {}
func (*ConditionalExpression) node() {}
func (*IfStatement) node()           {}
func (*WhileStatement) node()        {}
func (*ForStatement) node()          {}
func (*ReturnStatement) node()       {}
func (*BreakStatement) node()        {}
func (*PrintStatement) node()        {}
func (*ClassDeclaration) node()      {}
func (*NewInstance) node()           {}
func (*FieldAccess) node()           {}
func (*Assignment) node()            {}
func (*NumberLiteral) node()         {}
func (*StringLiteral) node()         {}
func (*BooleanLiteral) node()        {}

func (*VariableDeclaration) statementNode() {}
func (*FunctionDeclaration) statementNode() {}
func (*CallStatement) statementNode()       {}
func (*IfStatement) statementNode()         {}
func (*WhileStatement) statementNode()      {}
func (*ForStatement) statementNode()        {}
func (*ReturnStatement) statementNode()     {}
func (*BreakStatement) statementNode()      {}
func (*PrintStatement) statementNode()      {}
func (*ClassDeclaration) statementNode()    {}
func (*FieldAccess) statementNode()         {}
func (*Assignment) statementNode()          {}

func (*Variable) expressionNode()              {}
func (*FunctionCall) expressionNode()          {}
func (*ArrayExpression) expressionNode()       {}
func (*BinaryExpression) expressionNode()      {}
func (*UnaryExpression) expressionNode()       {}
func (*ConditionalExpression) expressionNode() {}
func (*NewInstance) expressionNode()           {}
func (*FieldAccess) expressionNode()           {}
func (*NumberLiteral) expressionNode()         {}
func (*StringLiteral) expressionNode()         {}
func (*BooleanLiteral) expressionNode()        {}

func (v *Variable) ExprType() Type              { return v.Type }
func (c *FunctionCall) ExprType() Type          { return c.Type }
func (a *ArrayExpression) ExprType() Type       { return a.Type }
func (b *BinaryExpression) ExprType() Type      { return b.Type }
func (u *UnaryExpression) ExprType() Type       { return u.Type }
func (c *ConditionalExpression) ExprType() Type { return c.Type }
func (n *NewInstance) ExprType() Type           { return n.Class }
func (f *FieldAccess) ExprType() Type           { return f.Field.Type }
func (*NumberLiteral) ExprType() Type           { return IntType }
func (*StringLiteral) ExprType() Type           { return StringType }
func (*BooleanLiteral) ExprType() Type          { return BooleanType }

func (Block) elseNode()        {}
func (*IfStatement) elseNode() {}

func (*Variable) entity()      {}
func (*Function) entity()      {}
func (*ClassType) entity()     {}
func (*PrimitiveType) entity() {}

func NewProgram(statements ...Statement) *Program {
	return &Program{Statements: statements}
}

func NewVariable(name string, t Type) *Variable {
	return &Variable{Name: name, Type: t}
}

// NewFunction builds a function and derives its FunctionType from the
// parameters and return type.
func NewFunction(name string, params []*Variable, returnType Type, body Block) *Function {
	paramTypes := make([]Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return &Function{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Body:       body,
		Type:       &FunctionType{ParamTypes: paramTypes, ReturnType: returnType},
	}
}

// Ref returns a fresh reference to f, suitable as a call's callee.
func (f *Function) Ref() *Variable {
	return &Variable{Name: f.Name, ID: f.ID, Type: f.Type}
}

// Ref returns a fresh reference node to the declaration v.
func (v *Variable) Ref() *Variable {
	return &Variable{Name: v.Name, ID: v.ID, Type: v.Type}
}

// NewCall builds a call whose type is the callee's declared return type.
// A callee that is not a function yields a call of type any.
func NewCall(callee *Variable, args ...Expression) *FunctionCall {
	var result Type = AnyType
	if ft, ok := callee.Type.(*FunctionType); ok {
		result = ft.ReturnType
	}
	return &FunctionCall{Callee: callee, Args: args, Type: result}
}

// NewArray builds an array literal typed after its first element. An empty
// literal is an array of any.
func NewArray(elements ...Expression) *ArrayExpression {
	var base Type = AnyType
	if len(elements) > 0 {
		base = elements[0].ExprType()
	}
	return &ArrayExpression{Elements: elements, Type: &ArrayType{Base: base}}
}

func NewBinary(op string, left, right Expression, t Type) *BinaryExpression {
	return &BinaryExpression{Op: op, Left: left, Right: right, Type: t}
}

func NewUnary(op string, operand Expression, t Type) *UnaryExpression {
	return &UnaryExpression{Op: op, Operand: operand, Type: t}
}

func NewNumber(v float64) *NumberLiteral {
	return &NumberLiteral{Value: v}
}

func NewString(s string) *StringLiteral {
	return &StringLiteral{Value: s}
}

func NewBoolean(b bool) *BooleanLiteral {
	return &BooleanLiteral{Value: b}
}
