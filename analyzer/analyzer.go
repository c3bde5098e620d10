// Package analyzer checks a parsed Harmony program and builds its
// decorated syntax tree.
package analyzer

import (
	"fmt"

	"github.com/owendewing/Harmony/core"
	"github.com/owendewing/Harmony/scope"
	"github.com/owendewing/Harmony/syntax"
)

// Analyze resolves names and checks types in a successful parse, returning
// the decorated tree or the first *Error found.
func Analyze(m *syntax.Match) (*core.Program, error) {
	if !m.Succeeded() {
		return nil, fmt.Errorf("cannot analyze a failed parse: %w", m.Err())
	}
	a := &analyzer{ctx: scope.NewRoot()}
	return a.program(m.Program)
}

type analyzer struct {
	ctx    *scope.Context
	nextID int
}

// newID numbers declarations in the order they are met.
func (a *analyzer) newID() int {
	a.nextID++
	return a.nextID
}

func (a *analyzer) program(p *syntax.Program) (*core.Program, error) {
	stmts, err := a.statements(p.Statements)
	if err != nil {
		return nil, err
	}
	return core.NewProgram(stmts...), nil
}

func (a *analyzer) declareVariable(name string, t core.Type) *core.Variable {
	v := core.NewVariable(name, t)
	v.ID = a.newID()
	a.ctx.Add(name, v)
	return v
}

func (a *analyzer) resolveType(t syntax.TypeExpr) core.Type {
	switch t := t.(type) {
	case *syntax.NamedType:
		switch t.Name {
		case "stream":
			return core.IntType
		case "lyrics":
			return core.StringType
		case "bool":
			return core.BooleanType
		case "mute":
			return core.VoidType
		case "any":
			return core.AnyType
		}
	case *syntax.ArrayType:
		return &core.ArrayType{Base: a.resolveType(t.Elem)}
	}
	panic(fmt.Sprintf("analyzer: unexpected type annotation %T", t))
}

// Checks. Each returns nil when the condition holds.

func (a *analyzer) mustNotBeDeclared(id *syntax.Ident) error {
	if a.ctx.Lookup(id.Name) != nil {
		return errorf(DeclarationError, id.Pos(), "%s is already declared", id.Name)
	}
	return nil
}

func (a *analyzer) mustBeDeclared(id *syntax.Ident) (core.Entity, error) {
	e := a.ctx.Lookup(id.Name)
	if e == nil {
		return nil, errorf(DeclarationError, id.Pos(), "%s is not declared", id.Name)
	}
	return e, nil
}

func mustBeNumeric(e core.Expression, at syntax.Node) error {
	if !core.IsNumeric(e.ExprType()) {
		return errorf(TypeError, at.Pos(), "Expected a number")
	}
	return nil
}

func mustBeBoolean(e core.Expression, at syntax.Node) error {
	if e.ExprType() != core.BooleanType {
		return errorf(TypeError, at.Pos(), "Expected a boolean")
	}
	return nil
}

func mustHaveSameType(e1, e2 core.Expression, pos syntax.Position) error {
	fitEmptyArray(e1, e2.ExprType())
	fitEmptyArray(e2, e1.ExprType())
	if !core.Equivalent(e1.ExprType(), e2.ExprType()) {
		return errorf(TypeError, pos, "Incompatible types")
	}
	return nil
}

func mustBeAssignable(e core.Expression, to core.Type, at syntax.Node) error {
	fitEmptyArray(e, to)
	if !core.Assignable(e.ExprType(), to) {
		return errorf(TypeError, at.Pos(), "Cannot assign a %s to a %s",
			core.Describe(e.ExprType()), core.Describe(to))
	}
	return nil
}

// fitEmptyArray gives an empty array literal, or a conditional choosing
// between empty literals, the array type it is being checked against.
func fitEmptyArray(e core.Expression, t core.Type) {
	at, ok := t.(*core.ArrayType)
	if !ok || !isEmptyArray(e) {
		return
	}
	switch e := e.(type) {
	case *core.ArrayExpression:
		e.Type = at
	case *core.ConditionalExpression:
		fitEmptyArray(e.Consequent, at)
		fitEmptyArray(e.Alternate, at)
		e.Type = at
	}
}

func isEmptyArray(e core.Expression) bool {
	switch e := e.(type) {
	case *core.ArrayExpression:
		return len(e.Elements) == 0
	case *core.ConditionalExpression:
		return isEmptyArray(e.Consequent) && isEmptyArray(e.Alternate)
	}
	return false
}
