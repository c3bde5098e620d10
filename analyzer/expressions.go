package analyzer

import (
	"fmt"

	"github.com/owendewing/Harmony/core"
	"github.com/owendewing/Harmony/syntax"
)

func (a *analyzer) expression(e syntax.Expr) (core.Expression, error) {
	switch e := e.(type) {
	case *syntax.NumberLit:
		return core.NewNumber(e.Value), nil
	case *syntax.StringLit:
		return core.NewString(e.Value), nil
	case *syntax.BoolLit:
		return core.NewBoolean(e.Value), nil
	case *syntax.Ident:
		return a.identifier(e)
	case *syntax.ArrayLit:
		return a.arrayLit(e)
	case *syntax.CallExpr:
		return a.call(e)
	case *syntax.FieldExpr:
		return a.fieldAccess(e.Target, e.Field, nil)
	case *syntax.BinaryExpr:
		return a.binary(e)
	case *syntax.UnaryExpr:
		return a.unary(e)
	case *syntax.CondExpr:
		return a.conditional(e)
	}
	panic(fmt.Sprintf("analyzer: unexpected expression %T", e))
}

func (a *analyzer) identifier(id *syntax.Ident) (core.Expression, error) {
	entity, err := a.mustBeDeclared(id)
	if err != nil {
		return nil, err
	}
	switch entity := entity.(type) {
	case *core.Variable:
		return entity.Ref(), nil
	case *core.Function:
		return entity.Ref(), nil
	}
	return nil, errorf(TypeError, id.Pos(), "Expected a variable")
}

func (a *analyzer) arrayLit(lit *syntax.ArrayLit) (core.Expression, error) {
	elems := make([]core.Expression, len(lit.Elements))
	for i, el := range lit.Elements {
		e, err := a.expression(el)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	// Empty elements take the type of the first element that has one.
	first := 0
	for first < len(elems)-1 && isEmptyArray(elems[first]) {
		first++
	}
	for i, e := range elems {
		if i == first {
			continue
		}
		if err := mustHaveSameType(elems[first], e, lit.Pos()); err != nil {
			return nil, err
		}
	}
	return core.NewArray(elems...), nil
}

func (a *analyzer) call(c *syntax.CallExpr) (*core.FunctionCall, error) {
	entity, err := a.mustBeDeclared(c.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := entity.(*core.Function)
	if !ok {
		return nil, errorf(CallError, c.Callee.Pos(), "Expected a function")
	}
	if len(c.Args) != len(fn.Parameters) {
		return nil, errorf(CallError, c.Pos(), "Expected %d argument(s) but got %d",
			len(fn.Parameters), len(c.Args))
	}

	args := make([]core.Expression, len(c.Args))
	for i, arg := range c.Args {
		e, err := a.expression(arg)
		if err != nil {
			return nil, err
		}
		if err := mustBeAssignable(e, fn.Parameters[i].Type, arg); err != nil {
			return nil, err
		}
		args[i] = e
	}
	return core.NewCall(fn.Ref(), args...), nil
}

func (a *analyzer) binary(b *syntax.BinaryExpr) (core.Expression, error) {
	left, err := a.expression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.expression(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "<", "<=", ">", ">=":
		if err := mustHaveSameType(left, right, b.OpPos); err != nil {
			return nil, err
		}
		if err := mustBeNumeric(left, b.Left); err != nil {
			return nil, err
		}
		return core.NewBinary(b.Op, left, right, core.BooleanType), nil

	case "==", "!=":
		if err := mustHaveSameType(left, right, b.OpPos); err != nil {
			return nil, err
		}
		return core.NewBinary(b.Op, left, right, core.BooleanType), nil

	case "+", "-":
		concat := b.Op == "+" && left.ExprType() == core.StringType
		if !concat {
			if err := mustBeNumeric(left, b.Left); err != nil {
				return nil, err
			}
		}
		if err := mustHaveSameType(left, right, b.OpPos); err != nil {
			return nil, err
		}
		return core.NewBinary(b.Op, left, right, left.ExprType()), nil

	case "*", "/", "%", "**":
		if err := mustBeNumeric(left, b.Left); err != nil {
			return nil, err
		}
		if err := mustBeNumeric(right, b.Right); err != nil {
			return nil, err
		}
		return core.NewBinary(b.Op, left, right, core.IntType), nil
	}
	panic(fmt.Sprintf("analyzer: unexpected operator %q", b.Op))
}

func (a *analyzer) unary(u *syntax.UnaryExpr) (core.Expression, error) {
	operand, err := a.expression(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "-":
		if err := mustBeNumeric(operand, u.Operand); err != nil {
			return nil, err
		}
		return core.NewUnary("-", operand, core.IntType), nil
	case "!":
		if err := mustBeBoolean(operand, u.Operand); err != nil {
			return nil, err
		}
		return core.NewUnary("!", operand, core.BooleanType), nil
	}
	panic(fmt.Sprintf("analyzer: unexpected operator %q", u.Op))
}

func (a *analyzer) conditional(c *syntax.CondExpr) (core.Expression, error) {
	test, err := a.expression(c.Cond)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, c.Cond); err != nil {
		return nil, err
	}
	consequent, err := a.expression(c.Then)
	if err != nil {
		return nil, err
	}
	alternate, err := a.expression(c.Else)
	if err != nil {
		return nil, err
	}
	if err := mustHaveSameType(consequent, alternate, c.Else.Pos()); err != nil {
		return nil, err
	}
	return &core.ConditionalExpression{
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
		Type:       consequent.ExprType(),
	}, nil
}
