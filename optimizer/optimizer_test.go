package optimizer

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/nalgeon/be"
	"github.com/owendewing/Harmony/core"
)

var x = core.NewVariable("x", core.IntType)

func num(v float64) *core.NumberLiteral { return core.NewNumber(v) }

func bin(op string, l, r core.Expression) *core.BinaryExpression {
	t := core.Type(core.IntType)
	switch op {
	case "<", "<=", "==", "!=", ">=", ">":
		t = core.BooleanType
	}
	return core.NewBinary(op, l, r, t)
}

func neg(e core.Expression) *core.UnaryExpression {
	return core.NewUnary("-", e, core.IntType)
}

func printOf(e core.Expression) *core.PrintStatement {
	return &core.PrintStatement{Expression: e}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input func() core.Expression
		want  core.Expression
	}{
		{"folds +", func() core.Expression { return bin("+", num(8), num(5)) }, num(13)},
		{"folds -", func() core.Expression { return bin("-", num(8), num(5)) }, num(3)},
		{"folds *", func() core.Expression { return bin("*", num(8), num(5)) }, num(40)},
		{"folds /", func() core.Expression { return bin("/", num(8), num(5)) }, num(1.6)},
		{"folds **", func() core.Expression { return bin("**", num(8), num(5)) }, num(32768)},
		{"folds %", func() core.Expression { return bin("%", num(10), num(3)) }, num(1)},
		{"folds <", func() core.Expression { return bin("<", num(5), num(8)) }, core.NewBoolean(true)},
		{"folds <=", func() core.Expression { return bin("<=", num(5), num(8)) }, core.NewBoolean(true)},
		{"folds ==", func() core.Expression { return bin("==", num(5), num(8)) }, core.NewBoolean(false)},
		{"folds !=", func() core.Expression { return bin("!=", num(5), num(8)) }, core.NewBoolean(true)},
		{"folds >=", func() core.Expression { return bin(">=", num(5), num(8)) }, core.NewBoolean(false)},
		{"folds >", func() core.Expression { return bin(">", num(5), num(8)) }, core.NewBoolean(false)},
		{"keeps division by zero", func() core.Expression { return bin("/", num(1), num(0)) }, bin("/", num(1), num(0))},
		{"keeps modulo by zero", func() core.Expression { return bin("%", num(1), num(0)) }, bin("%", num(1), num(0))},
		{"optimizes +0", func() core.Expression { return bin("+", x, num(0)) }, x},
		{"optimizes -0", func() core.Expression { return bin("-", x, num(0)) }, x},
		{"optimizes *1", func() core.Expression { return bin("*", x, num(1)) }, x},
		{"optimizes /1", func() core.Expression { return bin("/", x, num(1)) }, x},
		{"optimizes *0", func() core.Expression { return bin("*", x, num(0)) }, num(0)},
		{"optimizes 0/", func() core.Expression { return bin("/", num(0), x) }, num(0)},
		{"optimizes 0*", func() core.Expression { return bin("*", num(0), x) }, num(0)},
		{"optimizes 0-", func() core.Expression { return bin("-", num(0), x) }, neg(x)},
		{"optimizes 0+", func() core.Expression { return bin("+", num(0), x) }, x},
		{"optimizes 1*", func() core.Expression { return bin("*", num(1), x) }, x},
		{"optimizes 1**", func() core.Expression { return bin("**", num(1), x) }, num(1)},
		{"optimizes **0", func() core.Expression { return bin("**", x, num(0)) }, num(1)},
		{"keeps x-y", func() core.Expression { return bin("-", x, x) }, bin("-", x, x)},
		{"folds negation", func() core.Expression { return neg(num(8)) }, num(-8)},
		{"keeps negated variable", func() core.Expression { return neg(x) }, neg(x)},
		{"keeps not", func() core.Expression {
			return core.NewUnary("!", core.NewBoolean(true), core.BooleanType)
		}, core.NewUnary("!", core.NewBoolean(true), core.BooleanType)},
		{"folds nested", func() core.Expression {
			return bin("*", bin("+", num(1), num(2)), bin("-", x, num(0)))
		}, bin("*", num(3), x)},
		{"selects conditional consequent", func() core.Expression {
			return &core.ConditionalExpression{Test: core.NewBoolean(true), Consequent: num(1), Alternate: num(2), Type: core.IntType}
		}, num(1)},
		{"selects conditional alternate", func() core.Expression {
			return &core.ConditionalExpression{Test: bin(">", num(1), num(2)), Consequent: num(1), Alternate: num(2), Type: core.IntType}
		}, num(2)},
		{"optimizes array elements", func() core.Expression {
			return core.NewArray(num(1), bin("+", num(2), num(3)), num(4))
		}, core.NewArray(num(1), num(5), num(4))},
		{"optimizes call arguments", func() core.Expression {
			f := core.NewFunction("f", []*core.Variable{core.NewVariable("a", core.IntType)}, core.IntType, nil)
			return core.NewCall(f.Ref(), bin("*", x, num(1)))
		}, core.NewCall(core.NewFunction("f", []*core.Variable{core.NewVariable("a", core.IntType)}, core.IntType, nil).Ref(), x)},
		{"optimizes instance fields", func() core.Expression {
			class := &core.ClassType{Name: "T", Fields: []*core.Field{{Name: "a", Type: core.IntType}}}
			return &core.NewInstance{Class: class, Fields: []core.Expression{bin("+", num(1), num(1))}}
		}, &core.NewInstance{Class: &core.ClassType{Name: "T"}, Fields: []core.Expression{num(2)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expression(tt.input())
			be.Err(t, err, nil)
			be.Equal(t, core.ToSExpr(got), core.ToSExpr(tt.want))
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name  string
		input func() core.Statement
		want  []core.Statement
	}{
		{"if true", func() core.Statement {
			return &core.IfStatement{Test: core.NewBoolean(true), Consequent: core.Block{printOf(x)}, Alternate: core.Block{}}
		}, []core.Statement{printOf(x)}},
		{"if false", func() core.Statement {
			return &core.IfStatement{Test: core.NewBoolean(false), Consequent: core.Block{}, Alternate: core.Block{printOf(x)}}
		}, []core.Statement{printOf(x)}},
		{"if false without alternate", func() core.Statement {
			return &core.IfStatement{Test: core.NewBoolean(false), Consequent: core.Block{printOf(x)}}
		}, []core.Statement{}},
		{"if false with chained if", func() core.Statement {
			return &core.IfStatement{
				Test:       core.NewBoolean(false),
				Consequent: core.Block{printOf(num(1))},
				Alternate:  &core.IfStatement{Test: bin("<", x, num(2)), Consequent: core.Block{printOf(num(2))}},
			}
		}, []core.Statement{&core.IfStatement{Test: bin("<", x, num(2)), Consequent: core.Block{printOf(num(2))}}}},
		{"folded comparison selects branch", func() core.Statement {
			return &core.IfStatement{Test: bin("<", num(3), num(4)), Consequent: core.Block{printOf(num(3))}, Alternate: core.Block{printOf(num(4))}}
		}, []core.Statement{printOf(num(3))}},
		{"dead chained branch", func() core.Statement {
			return &core.IfStatement{
				Test:       bin("<", x, num(2)),
				Consequent: core.Block{printOf(num(1))},
				Alternate:  &core.IfStatement{Test: core.NewBoolean(true), Consequent: core.Block{printOf(num(2))}},
			}
		}, []core.Statement{&core.IfStatement{
			Test:       bin("<", x, num(2)),
			Consequent: core.Block{printOf(num(1))},
			Alternate:  core.Block{printOf(num(2))},
		}}},
		{"while false", func() core.Statement {
			return &core.WhileStatement{Test: core.NewBoolean(false), Body: core.Block{printOf(x)}}
		}, []core.Statement{}},
		{"while body", func() core.Statement {
			return &core.WhileStatement{Test: bin("<", x, num(1)), Body: core.Block{printOf(bin("+", num(1), num(1)))}}
		}, []core.Statement{&core.WhileStatement{Test: bin("<", x, num(1)), Body: core.Block{printOf(num(2))}}}},
		{"for over empty array", func() core.Statement {
			return &core.ForStatement{Iterator: x, Collection: core.NewArray(), Body: core.Block{printOf(x)}}
		}, []core.Statement{}},
		{"return", func() core.Statement {
			return &core.ReturnStatement{Argument: bin("+", num(1), num(1))}
		}, []core.Statement{&core.ReturnStatement{Argument: num(2)}}},
		{"assignment", func() core.Statement {
			return &core.Assignment{Target: x, Source: bin("*", num(0), x)}
		}, []core.Statement{&core.Assignment{Target: x, Source: num(0)}}},
		{"declaration", func() core.Statement {
			return &core.VariableDeclaration{Variable: x, Initializer: neg(num(3))}
		}, []core.Statement{&core.VariableDeclaration{Variable: x, Initializer: num(-3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Statement(tt.input())
			be.Err(t, err, nil)
			be.Equal(t, len(got), len(tt.want))
			for i := range got {
				be.Equal(t, core.ToSExpr(got[i]), core.ToSExpr(tt.want[i]))
			}
		})
	}
}

func intFun(body ...core.Statement) *core.FunctionDeclaration {
	return &core.FunctionDeclaration{Fun: core.NewFunction("f", nil, core.IntType, body)}
}

func TestProgram(t *testing.T) {
	p := core.NewProgram(
		intFun(&core.ReturnStatement{Argument: bin("+", num(1), num(1))}),
		&core.WhileStatement{Test: core.NewBoolean(false), Body: core.Block{printOf(x)}},
		printOf(x),
	)
	want := core.NewProgram(
		intFun(&core.ReturnStatement{Argument: num(2)}),
		printOf(x),
	)

	got, err := Optimize(p)
	be.Err(t, err, nil)
	be.True(t, got == p)
	be.Equal(t, core.ToSExpr(got), core.ToSExpr(want))
}

func TestClassDefaults(t *testing.T) {
	class := &core.ClassType{Name: "T", Fields: []*core.Field{
		{Name: "a", Type: core.IntType, Default: bin("**", num(2), num(3))},
	}}
	_, err := Optimize(core.NewProgram(&core.ClassDeclaration{Class: class}))
	be.Err(t, err, nil)
	be.Equal(t, core.ToSExpr(class.Fields[0].Default), "(number 8)")
}

func TestIdempotent(t *testing.T) {
	build := func() *core.Program {
		y := core.NewVariable("y", core.IntType)
		return core.NewProgram(
			&core.VariableDeclaration{Variable: y, Initializer: bin("-", num(0), bin("*", y.Ref(), num(1)))},
			&core.IfStatement{
				Test:       bin("<", y.Ref(), num(3)),
				Consequent: core.Block{printOf(bin("+", num(0), y.Ref()))},
				Alternate: &core.IfStatement{
					Test:       bin("==", num(1), num(1)),
					Consequent: core.Block{printOf(neg(num(4)))},
				},
			},
			&core.ForStatement{Iterator: core.NewVariable("k", core.IntType), Collection: core.NewArray(num(1)), Body: core.Block{}},
		)
	}

	once, err := Optimize(build())
	be.Err(t, err, nil)
	snapshot := core.Clone(once)

	twice, err := Optimize(once)
	be.Err(t, err, nil)

	diff := pretty.Diff(snapshot, twice)
	if len(diff) > 0 {
		t.Errorf("second optimization changed the tree:\n%v", diff)
	}
	be.Equal(t, core.ToSExpr(twice), core.ToSExpr(snapshot))
}

func TestSharedSubtree(t *testing.T) {
	shared := printOf(x)
	p := core.NewProgram(shared, shared)

	_, err := Optimize(p)
	be.True(t, errors.Is(err, ErrRevisited))
}

func TestCyclicTree(t *testing.T) {
	loop := &core.WhileStatement{Test: bin("<", x, num(1))}
	loop.Body = core.Block{loop}

	_, err := Statement(loop)
	be.True(t, errors.Is(err, ErrRevisited))
}

func TestSharedExpression(t *testing.T) {
	sum := bin("+", x, x)
	_, err := Expression(bin("*", sum, sum))
	be.True(t, errors.Is(err, ErrRevisited))
}
