package scope

import (
	"testing"

	"github.com/nalgeon/be"
	"github.com/owendewing/Harmony/core"
)

func TestRootHasStandardLibrary(t *testing.T) {
	c := NewRoot()
	be.Equal(t, c.Lookup("int"), core.Entity(core.IntType))
	be.Equal(t, c.Lookup("string"), core.Entity(core.StringType))
	be.Equal(t, c.Lookup("any"), core.Entity(core.AnyType))
	be.Equal(t, c.Lookup("x"), nil)
	be.Equal(t, c.Depth(), 1)
	be.Equal(t, c.InLoop(), false)
	be.True(t, c.Function() == nil)
}

func TestLookupWalksOutward(t *testing.T) {
	c := NewRoot()
	outer := core.NewVariable("x", core.IntType)
	c.Add("x", outer)

	c.EnterLoop()
	be.Equal(t, c.Lookup("x"), core.Entity(outer))

	inner := core.NewVariable("x", core.StringType)
	c.Add("x", inner)
	be.Equal(t, c.Lookup("x"), core.Entity(inner))

	c.Leave()
	be.Equal(t, c.Lookup("x"), core.Entity(outer))
}

func TestFramesAreDiscarded(t *testing.T) {
	c := NewRoot()
	c.EnterLoop()
	c.Add("y", core.NewVariable("y", core.BooleanType))
	c.Leave()
	be.Equal(t, c.Lookup("y"), nil)

	c.EnterLoop()
	be.Equal(t, c.Lookup("y"), nil)
}

func TestFlagsAreInherited(t *testing.T) {
	c := NewRoot()
	fn := core.NewFunction("f", nil, core.VoidType, nil)

	c.EnterLoop()
	be.True(t, c.InLoop())

	c.EnterFunction(fn)
	be.Equal(t, c.InLoop(), false)
	be.True(t, c.Function() == fn)

	c.EnterLoop()
	be.True(t, c.InLoop())
	be.True(t, c.Function() == fn)
	be.Equal(t, c.Depth(), 4)

	c.Leave()
	c.Leave()
	be.True(t, c.InLoop())
	be.True(t, c.Function() == nil)
}

func TestLeavingRootPanics(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	NewRoot().Leave()
}
