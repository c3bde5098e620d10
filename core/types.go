package core

import "strings"

// Type describes the static type of an expression or declaration.
type Type interface {
	typeNode()
}

// PrimitiveType is one of the built-in scalar types. There is exactly one
// instance per kind, so primitives compare by identity.
type PrimitiveType struct {
	Keyword string
}

// ArrayType is album[Base].
type ArrayType struct {
	Base Type
}

// FunctionType is the signature of a declared function.
type FunctionType struct {
	ParamTypes []Type
	ReturnType Type
}

// ClassType is a composition. Classes are nominal: two class types are
// equivalent only if they are the same *ClassType.
type ClassType struct {
	Name   string
	ID     int
	Fields []*Field
}

// Field is one typed member of a ClassType. Default is nil when the
// declaration has no initializer.
type Field struct {
	Name    string
	ID      int
	Type    Type
	Default Expression
}

func (*PrimitiveType) typeNode() {}
func (*ArrayType) typeNode()     {}
func (*FunctionType) typeNode()  {}
func (*ClassType) typeNode()     {}

var (
	IntType     = &PrimitiveType{Keyword: "stream"}
	BooleanType = &PrimitiveType{Keyword: "bool"}
	StringType  = &PrimitiveType{Keyword: "lyrics"}
	VoidType    = &PrimitiveType{Keyword: "mute"}
	AnyType     = &PrimitiveType{Keyword: "any"}
)

// StandardLibrary returns a fresh copy of the names every root scope starts
// with.
func StandardLibrary() map[string]Entity {
	return map[string]Entity{
		"int":    IntType,
		"bool":   BooleanType,
		"string": StringType,
		"void":   VoidType,
		"any":    AnyType,
	}
}

// Field returns the field called name, or nil.
func (c *ClassType) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Equivalent reports whether a and b denote the same type. Primitives and
// classes compare by identity, arrays structurally and functions by
// signature.
func Equivalent(a, b Type) bool {
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && Equivalent(a.Base, b.Base)
	case *FunctionType:
		b, ok := b.(*FunctionType)
		if !ok || len(a.ParamTypes) != len(b.ParamTypes) {
			return false
		}
		for i := range a.ParamTypes {
			if !Equivalent(a.ParamTypes[i], b.ParamTypes[i]) {
				return false
			}
		}
		return Equivalent(a.ReturnType, b.ReturnType)
	}
	return false
}

// Assignable reports whether a value of type from may be stored in a
// location of type to.
func Assignable(from, to Type) bool {
	return to == AnyType || Equivalent(from, to)
}

// IsNumeric reports whether t is the number type.
func IsNumeric(t Type) bool {
	return t == IntType
}

// Describe renders t the way error messages spell types.
func Describe(t Type) string {
	switch t := t.(type) {
	case *PrimitiveType:
		return t.Keyword
	case *ArrayType:
		return "[" + Describe(t.Base) + "]"
	case *FunctionType:
		params := make([]string, len(t.ParamTypes))
		for i, p := range t.ParamTypes {
			params[i] = Describe(p)
		}
		return "(" + strings.Join(params, ", ") + ") -> " + Describe(t.ReturnType)
	case *ClassType:
		return t.Name
	case nil:
		return "<nil>"
	}
	return "<unknown>"
}
