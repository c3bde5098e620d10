// Package scope is the symbol table used while analyzing a Harmony program.
package scope

import "github.com/owendewing/Harmony/core"

// frame is one lexical scope. inLoop and function are inherited by the
// frames pushed above it unless overridden.
type frame struct {
	locals   map[string]core.Entity
	inLoop   bool
	function *core.Function
}

// Context is a living stack of scopes. Frames are pushed when a function
// or loop body is entered and popped when it ends; the root frame holds
// the standard library.
type Context struct {
	frames []*frame
}

// NewRoot returns a context holding only the root scope.
func NewRoot() *Context {
	return &Context{frames: []*frame{{locals: core.StandardLibrary()}}}
}

func (c *Context) top() *frame {
	return c.frames[len(c.frames)-1]
}

// Add binds name in the innermost scope. It does not check for duplicates.
func (c *Context) Add(name string, e core.Entity) {
	c.top().locals[name] = e
}

// Lookup returns the entity bound to name in the innermost scope that has
// it, or nil when not found.
func (c *Context) Lookup(name string) core.Entity {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if e, ok := c.frames[i].locals[name]; ok {
			return e
		}
	}
	return nil
}

func (c *Context) push(inLoop bool, fn *core.Function) {
	c.frames = append(c.frames, &frame{
		locals:   map[string]core.Entity{},
		inLoop:   inLoop,
		function: fn,
	})
}

// EnterFunction pushes the scope of fn's body. Loops outside the function
// do not make break legal inside it.
func (c *Context) EnterFunction(fn *core.Function) {
	c.push(false, fn)
}

// EnterLoop pushes the scope of a loop body.
func (c *Context) EnterLoop() {
	c.push(true, c.top().function)
}

// Leave pops the innermost scope. Leaving the root is a bug in the caller.
func (c *Context) Leave() {
	if len(c.frames) == 1 {
		panic("scope: leaving the root scope")
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// InLoop reports whether break is legal here.
func (c *Context) InLoop() bool {
	return c.top().inLoop
}

// Function returns the enclosing function, or nil at top level.
func (c *Context) Function() *core.Function {
	return c.top().function
}

// Depth is the number of scopes on the stack, 1 for the root alone.
func (c *Context) Depth() int {
	return len(c.frames)
}
