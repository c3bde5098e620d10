package core

import (
	"math"
	"strconv"
	"strings"
)

// ToSExpr converts a node to its s-expression representation. Expressions
// carry their type right after the head symbol, e.g.
// (binary "+" stream (number 1) (var "x" stream)).
func ToSExpr(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// TypeToSExpr converts a type to its s-expression representation.
func TypeToSExpr(t Type) string {
	switch t := t.(type) {
	case *PrimitiveType:
		return t.Keyword
	case *ArrayType:
		return "(array " + TypeToSExpr(t.Base) + ")"
	case *FunctionType:
		params := make([]string, len(t.ParamTypes))
		for i, p := range t.ParamTypes {
			params[i] = TypeToSExpr(p)
		}
		return "(fun (" + strings.Join(params, " ") + ") " + TypeToSExpr(t.ReturnType) + ")"
	case *ClassType:
		return "(class " + t.Name + ")"
	default:
		return "nil"
	}
}

// FormatNumber renders a number literal in its shortest decimal form.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeList(b *strings.Builder, head string, parts ...func()) {
	b.WriteString("(" + head)
	for _, part := range parts {
		b.WriteByte(' ')
		part()
	}
	b.WriteByte(')')
}

func writeBlock(b *strings.Builder, block Block) {
	b.WriteString("(block")
	for _, s := range block {
		b.WriteByte(' ')
		writeNode(b, s)
	}
	b.WriteByte(')')
}

func writeExprs(b *strings.Builder, exprs []Expression) {
	for _, e := range exprs {
		b.WriteByte(' ')
		writeNode(b, e)
	}
}

func writeNode(b *strings.Builder, node Node) {
	str := func(s string) func() { return func() { b.WriteString(s) } }
	sub := func(n Node) func() { return func() { writeNode(b, n) } }

	switch n := node.(type) {
	case *Program:
		b.WriteString("(program")
		for _, s := range n.Statements {
			b.WriteByte(' ')
			writeNode(b, s)
		}
		b.WriteByte(')')
	case *Variable:
		writeList(b, "var", str(strconv.Quote(n.Name)), str(TypeToSExpr(n.Type)))
	case *VariableDeclaration:
		if n.Initializer == nil {
			writeList(b, "let", sub(n.Variable))
		} else {
			writeList(b, "let", sub(n.Variable), sub(n.Initializer))
		}
	case *Function:
		b.WriteString("(function " + strconv.Quote(n.Name) + " " + TypeToSExpr(n.Type) + " (params")
		for _, p := range n.Parameters {
			b.WriteByte(' ')
			writeNode(b, p)
		}
		b.WriteString(") ")
		writeBlock(b, n.Body)
		b.WriteByte(')')
	case *FunctionDeclaration:
		writeNode(b, n.Fun)
	case *FunctionCall:
		b.WriteString("(call " + TypeToSExpr(n.Type) + " ")
		writeNode(b, n.Callee)
		writeExprs(b, n.Args)
		b.WriteByte(')')
	case *CallStatement:
		writeList(b, "call-stmt", sub(n.Call))
	case *ArrayExpression:
		b.WriteString("(array " + TypeToSExpr(n.Type))
		writeExprs(b, n.Elements)
		b.WriteByte(')')
	case *BinaryExpression:
		writeList(b, "binary", str(strconv.Quote(n.Op)), str(TypeToSExpr(n.Type)), sub(n.Left), sub(n.Right))
	case *UnaryExpression:
		writeList(b, "unary", str(strconv.Quote(n.Op)), str(TypeToSExpr(n.Type)), sub(n.Operand))
	case *ConditionalExpression:
		writeList(b, "cond", str(TypeToSExpr(n.Type)), sub(n.Test), sub(n.Consequent), sub(n.Alternate))
	case *IfStatement:
		b.WriteString("(if ")
		writeNode(b, n.Test)
		b.WriteByte(' ')
		writeBlock(b, n.Consequent)
		switch alt := n.Alternate.(type) {
		case Block:
			b.WriteByte(' ')
			writeBlock(b, alt)
		case *IfStatement:
			b.WriteByte(' ')
			writeNode(b, alt)
		}
		b.WriteByte(')')
	case *WhileStatement:
		b.WriteString("(while ")
		writeNode(b, n.Test)
		b.WriteByte(' ')
		writeBlock(b, n.Body)
		b.WriteByte(')')
	case *ForStatement:
		b.WriteString("(for ")
		writeNode(b, n.Iterator)
		b.WriteByte(' ')
		writeNode(b, n.Collection)
		b.WriteByte(' ')
		writeBlock(b, n.Body)
		b.WriteByte(')')
	case *ReturnStatement:
		if n.Argument == nil {
			b.WriteString("(return)")
		} else {
			writeList(b, "return", sub(n.Argument))
		}
	case *BreakStatement:
		b.WriteString("(break)")
	case *PrintStatement:
		writeList(b, "print", sub(n.Expression))
	case *ClassDeclaration:
		b.WriteString("(class " + strconv.Quote(n.Class.Name))
		for _, f := range n.Class.Fields {
			b.WriteString(" (field " + strconv.Quote(f.Name) + " " + TypeToSExpr(f.Type))
			if f.Default != nil {
				b.WriteByte(' ')
				writeNode(b, f.Default)
			}
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *NewInstance:
		b.WriteString("(new " + TypeToSExpr(n.Class))
		writeExprs(b, n.Fields)
		b.WriteByte(')')
	case *FieldAccess:
		if n.Value == nil {
			writeList(b, "field-access", str(TypeToSExpr(n.Field.Type)), sub(n.Instance), str(strconv.Quote(n.Field.Name)))
		} else {
			writeList(b, "field-access", str(TypeToSExpr(n.Field.Type)), sub(n.Instance), str(strconv.Quote(n.Field.Name)), sub(n.Value))
		}
	case *Assignment:
		writeList(b, "assign", sub(n.Target), sub(n.Source))
	case *NumberLiteral:
		writeList(b, "number", str(FormatNumber(n.Value)))
	case *StringLiteral:
		writeList(b, "string", str(strconv.Quote(n.Value)))
	case *BooleanLiteral:
		writeList(b, "boolean", str(strconv.FormatBool(n.Value)))
	default:
		b.WriteString("nil")
	}
}
