// Package optimizer rewrites a decorated Harmony tree with constant folding
// and dead-code elimination. Nodes are rewritten in place.
package optimizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/owendewing/Harmony/core"
)

// ErrRevisited is returned when the same node is reached twice, which means
// the tree has a shared or cyclic subtree.
var ErrRevisited = errors.New("node reached twice")

// Optimize rewrites p and returns it.
func Optimize(p *core.Program) (*core.Program, error) {
	o := newOptimizer()
	if o.enter(p) {
		p.Statements = o.statements(p.Statements)
	}
	return p, o.err
}

// Expression rewrites a single expression tree.
func Expression(e core.Expression) (core.Expression, error) {
	o := newOptimizer()
	result := o.expression(e)
	return result, o.err
}

// Statement rewrites a single statement, which may become any number of
// statements (zero when it is dead).
func Statement(s core.Statement) ([]core.Statement, error) {
	o := newOptimizer()
	result := o.statement(s)
	return result, o.err
}

type optimizer struct {
	seen map[core.Node]bool
	err  error
}

func newOptimizer() *optimizer {
	return &optimizer{seen: map[core.Node]bool{}}
}

// enter marks n as visited. It reports false, and records ErrRevisited, if
// n was visited before or an error is already pending.
func (o *optimizer) enter(n core.Node) bool {
	if o.err != nil {
		return false
	}
	if o.seen[n] {
		o.err = fmt.Errorf("optimizer: %w: %T", ErrRevisited, n)
		return false
	}
	o.seen[n] = true
	return true
}

func (o *optimizer) statements(stmts []core.Statement) []core.Statement {
	result := make([]core.Statement, 0, len(stmts))
	for _, s := range stmts {
		result = append(result, o.statement(s)...)
	}
	return result
}

func (o *optimizer) block(b core.Block) core.Block {
	return core.Block(o.statements(b))
}

func (o *optimizer) statement(s core.Statement) []core.Statement {
	if !o.enter(s) {
		return []core.Statement{s}
	}

	switch s := s.(type) {
	case *core.VariableDeclaration:
		if s.Initializer != nil {
			s.Initializer = o.expression(s.Initializer)
		}

	case *core.FunctionDeclaration:
		if o.enter(s.Fun) {
			s.Fun.Body = o.block(s.Fun.Body)
		}

	case *core.ClassDeclaration:
		for _, f := range s.Class.Fields {
			if f.Default != nil {
				f.Default = o.expression(f.Default)
			}
		}

	case *core.CallStatement:
		s.Call = o.call(s.Call)

	case *core.PrintStatement:
		s.Expression = o.expression(s.Expression)

	case *core.ReturnStatement:
		if s.Argument != nil {
			s.Argument = o.expression(s.Argument)
		}

	case *core.Assignment:
		s.Source = o.expression(s.Source)

	case *core.FieldAccess:
		if s.Value != nil {
			s.Value = o.expression(s.Value)
		}

	case *core.IfStatement:
		return o.ifStatement(s)

	case *core.WhileStatement:
		s.Test = o.expression(s.Test)
		if isBoolean(s.Test, false) {
			return nil
		}
		s.Body = o.block(s.Body)

	case *core.ForStatement:
		s.Collection = o.expression(s.Collection)
		s.Body = o.block(s.Body)
		if arr, ok := s.Collection.(*core.ArrayExpression); ok && len(arr.Elements) == 0 {
			return nil
		}
	}
	return []core.Statement{s}
}

func (o *optimizer) ifStatement(s *core.IfStatement) []core.Statement {
	s.Test = o.expression(s.Test)
	s.Consequent = o.block(s.Consequent)

	switch alt := s.Alternate.(type) {
	case core.Block:
		s.Alternate = o.block(alt)
	case *core.IfStatement:
		chain := o.statement(alt)
		if next, ok := onlyIf(chain); ok {
			s.Alternate = next
		} else if len(chain) > 0 {
			s.Alternate = core.Block(chain)
		} else {
			s.Alternate = nil
		}
	}

	if b, ok := s.Test.(*core.BooleanLiteral); ok {
		if b.Value {
			return s.Consequent
		}
		switch alt := s.Alternate.(type) {
		case core.Block:
			return alt
		case *core.IfStatement:
			return []core.Statement{alt}
		}
		return nil
	}
	return []core.Statement{s}
}

func (o *optimizer) call(c *core.FunctionCall) *core.FunctionCall {
	if o.enter(c) {
		o.expressions(c.Args)
	}
	return c
}

func (o *optimizer) expressions(exprs []core.Expression) {
	for i, e := range exprs {
		exprs[i] = o.expression(e)
	}
}

func (o *optimizer) expression(e core.Expression) core.Expression {
	if e == nil {
		return nil
	}
	// Variables are leaves that are never rewritten; hand-built trees
	// commonly share them.
	if _, ok := e.(*core.Variable); ok {
		return e
	}
	if !o.enter(e) {
		return e
	}

	switch e := e.(type) {
	case *core.BinaryExpression:
		e.Left = o.expression(e.Left)
		e.Right = o.expression(e.Right)
		return binary(e)

	case *core.UnaryExpression:
		e.Operand = o.expression(e.Operand)
		if n, ok := e.Operand.(*core.NumberLiteral); ok && e.Op == "-" {
			return core.NewNumber(-n.Value)
		}

	case *core.ConditionalExpression:
		e.Test = o.expression(e.Test)
		e.Consequent = o.expression(e.Consequent)
		e.Alternate = o.expression(e.Alternate)
		if b, ok := e.Test.(*core.BooleanLiteral); ok {
			if b.Value {
				return e.Consequent
			}
			return e.Alternate
		}

	case *core.FunctionCall:
		o.expressions(e.Args)

	case *core.ArrayExpression:
		o.expressions(e.Elements)

	case *core.NewInstance:
		o.expressions(e.Fields)

	case *core.FieldAccess:
		if e.Value != nil {
			e.Value = o.expression(e.Value)
		}
	}
	return e
}

// binary folds e once its operands have been optimized.
func binary(e *core.BinaryExpression) core.Expression {
	l, lok := e.Left.(*core.NumberLiteral)
	r, rok := e.Right.(*core.NumberLiteral)
	if lok && rok {
		if folded := fold(e.Op, l.Value, r.Value); folded != nil {
			return folded
		}
		return e
	}

	op := e.Op
	switch {
	case isNumber(e.Right, 0) && (op == "+" || op == "-"):
		return e.Left
	case isNumber(e.Right, 1) && (op == "*" || op == "/"):
		return e.Left
	case isNumber(e.Left, 0) && op == "+":
		return e.Right
	case isNumber(e.Left, 0) && op == "-":
		return core.NewUnary("-", e.Right, core.IntType)
	case isNumber(e.Left, 1) && op == "*":
		return e.Right
	case isNumber(e.Left, 0) && (op == "*" || op == "/"):
		return core.NewNumber(0)
	case isNumber(e.Left, 1) && op == "**":
		return core.NewNumber(1)
	case isNumber(e.Right, 0) && op == "**":
		return core.NewNumber(1)
	case isNumber(e.Right, 0) && op == "*":
		return core.NewNumber(0)
	}
	return e
}

// fold evaluates x op y, or returns nil when the operation must be left
// for run time.
func fold(op string, x, y float64) core.Expression {
	switch op {
	case "+":
		return core.NewNumber(x + y)
	case "-":
		return core.NewNumber(x - y)
	case "*":
		return core.NewNumber(x * y)
	case "/":
		if y == 0 {
			return nil
		}
		return core.NewNumber(x / y)
	case "%":
		if y == 0 {
			return nil
		}
		return core.NewNumber(math.Mod(x, y))
	case "**":
		return core.NewNumber(math.Pow(x, y))
	case "<":
		return core.NewBoolean(x < y)
	case "<=":
		return core.NewBoolean(x <= y)
	case "==":
		return core.NewBoolean(x == y)
	case "!=":
		return core.NewBoolean(x != y)
	case ">=":
		return core.NewBoolean(x >= y)
	case ">":
		return core.NewBoolean(x > y)
	}
	return nil
}

// onlyIf returns the statement of a one-statement list that is an if.
func onlyIf(stmts []core.Statement) (*core.IfStatement, bool) {
	if len(stmts) != 1 {
		return nil, false
	}
	s, ok := stmts[0].(*core.IfStatement)
	return s, ok
}

func isNumber(e core.Expression, v float64) bool {
	n, ok := e.(*core.NumberLiteral)
	return ok && n.Value == v
}

func isBoolean(e core.Expression, v bool) bool {
	b, ok := e.(*core.BooleanLiteral)
	return ok && b.Value == v
}
