// Package generator translates a decorated Harmony tree to JavaScript.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/owendewing/Harmony/core"
)

// Generate returns the JavaScript for p, one statement per line. It does
// not modify p.
func Generate(p *core.Program) string {
	g := &generator{names: map[nameKey]int{}}
	g.statements(p.Statements)
	return strings.Join(g.lines, "\n")
}

// nameKey identifies a declaration. Hand-built trees may leave ID at 0, in
// which case the name alone is the key.
type nameKey struct {
	id   int
	name string
}

type generator struct {
	lines []string
	depth int
	names map[nameKey]int
}

// targetName suffixes name with a number unique to its declaration, so
// that Harmony names never clash with each other or with JavaScript
// keywords.
func (g *generator) targetName(name string, id int) string {
	key := nameKey{id: id, name: name}
	n, ok := g.names[key]
	if !ok {
		n = len(g.names) + 1
		g.names[key] = n
	}
	return fmt.Sprintf("%s_%d", name, n)
}

func (g *generator) emit(format string, args ...interface{}) {
	g.lines = append(g.lines, strings.Repeat("  ", g.depth)+fmt.Sprintf(format, args...))
}

func (g *generator) block(stmts []core.Statement) {
	g.depth++
	g.statements(stmts)
	g.depth--
}

func (g *generator) statements(stmts []core.Statement) {
	for _, s := range stmts {
		g.statement(s)
	}
}

func (g *generator) statement(s core.Statement) {
	switch s := s.(type) {
	case *core.VariableDeclaration:
		v := s.Variable
		name := g.targetName(v.Name, v.ID)
		init := zeroValue(v.Type)
		if s.Initializer != nil {
			init = g.expression(s.Initializer)
		}
		g.emit("let %s = %s;", name, init)

	case *core.FunctionDeclaration:
		fn := s.Fun
		name := g.targetName(fn.Name, fn.ID)
		params := make([]string, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = g.targetName(p.Name, p.ID)
		}
		g.emit("function %s(%s) {", name, strings.Join(params, ", "))
		g.block(fn.Body)
		g.emit("}")

	case *core.ClassDeclaration:
		g.class(s.Class)

	case *core.CallStatement:
		g.emit("%s;", g.expression(s.Call))

	case *core.PrintStatement:
		g.emit("console.log(%s);", g.expression(s.Expression))

	case *core.ReturnStatement:
		if s.Argument == nil {
			g.emit("return;")
		} else {
			g.emit("return %s;", g.expression(s.Argument))
		}

	case *core.BreakStatement:
		g.emit("break;")

	case *core.Assignment:
		g.emit("%s = %s;", g.expression(s.Target), g.expression(s.Source))

	case *core.FieldAccess:
		target := g.fieldAccess(s)
		if s.Value == nil {
			g.emit("%s;", target)
		} else {
			g.emit("%s = %s;", target, g.expression(s.Value))
		}

	case *core.IfStatement:
		g.ifStatement(s)

	case *core.WhileStatement:
		g.emit("while (%s) {", g.expression(s.Test))
		g.block(s.Body)
		g.emit("}")

	case *core.ForStatement:
		it := s.Iterator
		g.emit("for (let %s of %s) {", g.targetName(it.Name, it.ID), g.expression(s.Collection))
		g.block(s.Body)
		g.emit("}")

	default:
		panic(fmt.Sprintf("generator: unexpected statement %T", s))
	}
}

// ifStatement renders an else-if chain flat: each chained if starts on the
// line after the previous "} else".
func (g *generator) ifStatement(s *core.IfStatement) {
	g.emit("if (%s) {", g.expression(s.Test))
	g.block(s.Consequent)
	switch alt := s.Alternate.(type) {
	case nil:
		g.emit("}")
	case *core.IfStatement:
		g.emit("} else")
		g.ifStatement(alt)
	case core.Block:
		g.emit("} else {")
		g.block(alt)
		g.emit("}")
	}
}

// class renders a composition as a class whose constructor takes every
// field in order, defaulting to the declared default or the zero value.
func (g *generator) class(c *core.ClassType) {
	name := g.targetName(c.Name, c.ID)
	params := make([]string, len(c.Fields))
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = g.targetName(f.Name, f.ID)
		def := zeroValue(f.Type)
		if f.Default != nil {
			def = g.expression(f.Default)
		}
		params[i] = names[i] + " = " + def
	}

	g.emit("class %s {", name)
	g.depth++
	g.emit("constructor(%s) {", strings.Join(params, ", "))
	g.depth++
	for _, name := range names {
		g.emit("this.%s = %s;", name, name)
	}
	g.depth--
	g.emit("}")
	g.depth--
	g.emit("}")
}

func (g *generator) fieldAccess(f *core.FieldAccess) string {
	return g.expression(f.Instance) + "." + g.targetName(f.Field.Name, f.Field.ID)
}

func (g *generator) expressions(exprs []core.Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = g.expression(e)
	}
	return strings.Join(parts, sep)
}

func (g *generator) expression(e core.Expression) string {
	switch e := e.(type) {
	case *core.Variable:
		return g.targetName(e.Name, e.ID)
	case *core.NumberLiteral:
		return core.FormatNumber(e.Value)
	case *core.StringLiteral:
		return quote(e.Value)
	case *core.BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *core.BinaryExpression:
		left := g.expression(e.Left)
		// JavaScript rejects a unary minus directly before **.
		if e.Op == "**" && strings.HasPrefix(left, "-") {
			left = "(" + left + ")"
		}
		return fmt.Sprintf("(%s %s %s)", left, operator(e.Op), g.expression(e.Right))
	case *core.UnaryExpression:
		operand := g.expression(e.Operand)
		if strings.HasPrefix(operand, e.Op) {
			return "(" + e.Op + " " + operand + ")"
		}
		return "(" + e.Op + operand + ")"
	case *core.ConditionalExpression:
		return fmt.Sprintf("(%s ? %s : %s)",
			g.expression(e.Test), g.expression(e.Consequent), g.expression(e.Alternate))
	case *core.ArrayExpression:
		return "[" + g.expressions(e.Elements, ",") + "]"
	case *core.FunctionCall:
		return g.expression(e.Callee) + "(" + g.expressions(e.Args, ", ") + ")"
	case *core.NewInstance:
		return "new " + g.targetName(e.Class.Name, e.Class.ID) + "(" + g.expressions(e.Fields, ", ") + ")"
	case *core.FieldAccess:
		return g.fieldAccess(e)
	}
	panic(fmt.Sprintf("generator: unexpected expression %T", e))
}

func operator(op string) string {
	switch op {
	case "==":
		return "==="
	case "!=":
		return "!=="
	}
	return op
}

// zeroValue is what a declaration without an initializer starts as.
func zeroValue(t core.Type) string {
	switch t {
	case core.IntType:
		return "0"
	case core.StringType:
		return `""`
	case core.BooleanType:
		return "false"
	}
	if _, ok := t.(*core.ArrayType); ok {
		return "[]"
	}
	return "null"
}

// quote renders s as a JavaScript string literal.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
