package core

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestEquivalent(t *testing.T) {
	track := &ClassType{Name: "Track"}
	sameShape := &ClassType{Name: "Track"}

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same primitive", IntType, IntType, true},
		{"different primitives", IntType, StringType, false},
		{"arrays by element", &ArrayType{Base: IntType}, &ArrayType{Base: IntType}, true},
		{"nested arrays", &ArrayType{Base: &ArrayType{Base: BooleanType}}, &ArrayType{Base: &ArrayType{Base: BooleanType}}, true},
		{"arrays of different elements", &ArrayType{Base: IntType}, &ArrayType{Base: StringType}, false},
		{"array and primitive", &ArrayType{Base: IntType}, IntType, false},
		{"same class", track, track, true},
		{"classes are nominal", track, sameShape, false},
		{"functions by signature",
			&FunctionType{ParamTypes: []Type{IntType}, ReturnType: BooleanType},
			&FunctionType{ParamTypes: []Type{IntType}, ReturnType: BooleanType}, true},
		{"functions with different arity",
			&FunctionType{ParamTypes: []Type{IntType}, ReturnType: VoidType},
			&FunctionType{ReturnType: VoidType}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, Equivalent(tt.a, tt.b), tt.want)
			be.Equal(t, Equivalent(tt.b, tt.a), tt.want)
		})
	}
}

func TestAssignable(t *testing.T) {
	be.True(t, Assignable(IntType, AnyType))
	be.True(t, Assignable(&ArrayType{Base: StringType}, AnyType))
	be.True(t, !Assignable(AnyType, IntType))
	be.True(t, Assignable(&ArrayType{Base: IntType}, &ArrayType{Base: IntType}))
	be.True(t, !Assignable(BooleanType, IntType))
}

func TestDescribe(t *testing.T) {
	be.Equal(t, Describe(IntType), "stream")
	be.Equal(t, Describe(&ArrayType{Base: StringType}), "[lyrics]")
	be.Equal(t, Describe(&FunctionType{ReturnType: IntType}), "() -> stream")
	be.Equal(t, Describe(&FunctionType{ParamTypes: []Type{IntType, BooleanType}, ReturnType: VoidType}), "(stream, bool) -> mute")
	be.Equal(t, Describe(&ClassType{Name: "Track"}), "Track")
	be.Equal(t, Describe(nil), "<nil>")
}

func TestClassField(t *testing.T) {
	title := &Field{Name: "title", Type: StringType}
	c := &ClassType{Name: "Track", Fields: []*Field{title}}
	be.Equal(t, c.Field("title"), title)
	be.True(t, c.Field("plays") == nil)
}

func TestStandardLibraryIsFresh(t *testing.T) {
	a := StandardLibrary()
	a["int"] = StringType
	be.Equal(t, StandardLibrary()["int"], Entity(IntType))
}

func TestConstructors(t *testing.T) {
	x := NewVariable("x", IntType)
	f := NewFunction("f", []*Variable{x}, BooleanType, nil)
	be.Equal(t, Describe(f.Type), "(stream) -> bool")

	call := NewCall(f.Ref(), NewNumber(1))
	be.Equal(t, call.ExprType(), Type(BooleanType))
	be.Equal(t, NewCall(x.Ref()).ExprType(), Type(AnyType))

	be.Equal(t, Describe(NewArray().ExprType()), "[any]")
	be.Equal(t, Describe(NewArray(NewString("a")).ExprType()), "[lyrics]")
	be.True(t, x.Ref() != x)
}
