package core

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/nalgeon/be"
)

func sampleProgram() *Program {
	x := &Variable{Name: "x", ID: 2, Type: IntType}
	f := NewFunction("f", []*Variable{x}, IntType, Block{
		&ReturnStatement{Argument: NewBinary("+", x.Ref(), NewNumber(1), IntType)},
	})
	f.ID = 1
	xs := &Variable{Name: "xs", ID: 3, Type: &ArrayType{Base: IntType}}
	it := &Variable{Name: "k", ID: 4, Type: IntType}
	return NewProgram(
		&FunctionDeclaration{Fun: f},
		&VariableDeclaration{Variable: xs, Initializer: NewArray(NewNumber(1), NewNumber(2))},
		&ForStatement{Iterator: it, Collection: xs.Ref(), Body: Block{
			&IfStatement{
				Test:       NewBinary(">", it.Ref(), NewNumber(1), BooleanType),
				Consequent: Block{&BreakStatement{}},
				Alternate: &IfStatement{
					Test:       NewBoolean(true),
					Consequent: Block{&PrintStatement{Expression: NewString("one")}},
					Alternate:  Block{&CallStatement{Call: NewCall(f.Ref(), it.Ref())}},
				},
			},
		}},
	)
}

func TestCloneIsEqual(t *testing.T) {
	p := sampleProgram()
	c := Clone(p)
	if diff := pretty.Diff(p, c); len(diff) > 0 {
		t.Errorf("clone differs:\n%v", diff)
	}
	be.Equal(t, ToSExpr(c), ToSExpr(p))
}

func TestCloneIsDeep(t *testing.T) {
	p := sampleProgram()
	c := Clone(p)

	fc := c.Statements[0].(*FunctionDeclaration)
	fp := p.Statements[0].(*FunctionDeclaration)
	be.True(t, fc.Fun != fp.Fun)
	be.True(t, fc.Fun.Parameters[0] != fp.Fun.Parameters[0])

	ret := fc.Fun.Body[0].(*ReturnStatement)
	ret.Argument.(*BinaryExpression).Op = "-"
	be.Equal(t, fp.Fun.Body[0].(*ReturnStatement).Argument.(*BinaryExpression).Op, "+")

	loop := c.Statements[2].(*ForStatement)
	loop.Body = nil
	be.Equal(t, len(p.Statements[2].(*ForStatement).Body), 1)
}

func TestCloneNil(t *testing.T) {
	be.True(t, Clone(nil) == nil)
	be.True(t, CloneExpression(nil) == nil)
}
