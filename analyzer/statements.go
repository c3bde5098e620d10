package analyzer

import (
	"fmt"

	"github.com/owendewing/Harmony/core"
	"github.com/owendewing/Harmony/syntax"
)

func (a *analyzer) statements(stmts []syntax.Stmt) ([]core.Statement, error) {
	result := make([]core.Statement, 0, len(stmts))
	for _, s := range stmts {
		stmt, err := a.statement(s)
		if err != nil {
			return nil, err
		}
		result = append(result, stmt)
	}
	return result, nil
}

func (a *analyzer) block(b *syntax.Block) (core.Block, error) {
	stmts, err := a.statements(b.Statements)
	if err != nil {
		return nil, err
	}
	return core.Block(stmts), nil
}

func (a *analyzer) statement(s syntax.Stmt) (core.Statement, error) {
	switch s := s.(type) {
	case *syntax.VarDecl:
		return a.varDecl(s)
	case *syntax.NewInstanceDecl:
		return a.newInstanceDecl(s)
	case *syntax.FuncDecl:
		return a.funcDecl(s)
	case *syntax.ClassDecl:
		return a.classDecl(s)
	case *syntax.PrintStmt:
		e, err := a.expression(s.Arg)
		if err != nil {
			return nil, err
		}
		return &core.PrintStatement{Expression: e}, nil
	case *syntax.IfStmt:
		return a.ifStmt(s)
	case *syntax.WhileStmt:
		return a.whileStmt(s)
	case *syntax.ForStmt:
		return a.forStmt(s)
	case *syntax.ReturnStmt:
		return a.returnStmt(s)
	case *syntax.BreakStmt:
		if !a.ctx.InLoop() {
			return nil, errorf(ScopeError, s.Pos(), "Break can only appear in a loop")
		}
		return &core.BreakStatement{}, nil
	case *syntax.FieldStmt:
		return a.fieldAccess(s.Target, s.Field, s.Value)
	case *syntax.AssignStmt:
		return a.assignStmt(s)
	case *syntax.CallStmt:
		call, err := a.call(s.Call)
		if err != nil {
			return nil, err
		}
		return &core.CallStatement{Call: call}, nil
	}
	panic(fmt.Sprintf("analyzer: unexpected statement %T", s))
}

func (a *analyzer) varDecl(d *syntax.VarDecl) (core.Statement, error) {
	t := a.resolveType(d.Type)

	var init core.Expression
	if d.Init != nil {
		var err error
		init, err = a.expression(d.Init)
		if err != nil {
			return nil, err
		}
	}
	if err := a.mustNotBeDeclared(d.Name); err != nil {
		return nil, err
	}
	if init != nil {
		if err := mustBeAssignable(init, t, d.Init); err != nil {
			return nil, err
		}
	}

	v := a.declareVariable(d.Name.Name, t)
	return &core.VariableDeclaration{Variable: v, Initializer: init}, nil
}

func (a *analyzer) newInstanceDecl(d *syntax.NewInstanceDecl) (core.Statement, error) {
	entity, err := a.mustBeDeclared(d.Class)
	if err != nil {
		return nil, err
	}
	class, ok := entity.(*core.ClassType)
	if !ok {
		return nil, errorf(TypeError, d.Class.Pos(), "Expected a class")
	}
	if err := a.mustNotBeDeclared(d.Name); err != nil {
		return nil, err
	}
	if len(d.Args) > len(class.Fields) {
		return nil, errorf(TypeError, d.Args[len(class.Fields)].Pos(), "Too many field values")
	}

	values := make([]core.Expression, len(d.Args))
	for i, arg := range d.Args {
		e, err := a.expression(arg)
		if err != nil {
			return nil, err
		}
		if err := mustBeAssignable(e, class.Fields[i].Type, arg); err != nil {
			return nil, err
		}
		values[i] = e
	}

	v := a.declareVariable(d.Name.Name, class)
	return &core.VariableDeclaration{
		Variable:    v,
		Initializer: &core.NewInstance{Class: class, Fields: values},
	}, nil
}

func (a *analyzer) funcDecl(d *syntax.FuncDecl) (core.Statement, error) {
	if err := a.mustNotBeDeclared(d.Name); err != nil {
		return nil, err
	}

	id := a.newID()
	params := make([]*core.Variable, len(d.Params))
	for i, p := range d.Params {
		params[i] = core.NewVariable(p.Name.Name, a.resolveType(p.Type))
	}
	fn := core.NewFunction(d.Name.Name, params, a.resolveType(d.Result), nil)
	fn.ID = id

	// Added before the body so the function can call itself.
	a.ctx.Add(fn.Name, fn)

	a.ctx.EnterFunction(fn)
	defer a.ctx.Leave()

	for i, p := range d.Params {
		if err := a.mustNotBeDeclared(p.Name); err != nil {
			return nil, err
		}
		params[i].ID = a.newID()
		a.ctx.Add(p.Name.Name, params[i])
	}

	body, err := a.block(d.Body)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return &core.FunctionDeclaration{Fun: fn}, nil
}

func (a *analyzer) classDecl(d *syntax.ClassDecl) (core.Statement, error) {
	if err := a.mustNotBeDeclared(d.Name); err != nil {
		return nil, err
	}

	class := &core.ClassType{Name: d.Name.Name, ID: a.newID()}
	for _, fd := range d.Fields {
		if class.Field(fd.Name.Name) != nil {
			return nil, errorf(DeclarationError, fd.Name.Pos(), "Field %s is already declared", fd.Name.Name)
		}
		field := &core.Field{Name: fd.Name.Name, ID: a.newID(), Type: a.resolveType(fd.Type)}
		if fd.Default != nil {
			def, err := a.expression(fd.Default)
			if err != nil {
				return nil, err
			}
			if err := mustBeAssignable(def, field.Type, fd.Default); err != nil {
				return nil, err
			}
			field.Default = def
		}
		class.Fields = append(class.Fields, field)
	}

	a.ctx.Add(class.Name, class)
	return &core.ClassDeclaration{Class: class}, nil
}

func (a *analyzer) ifStmt(s *syntax.IfStmt) (*core.IfStatement, error) {
	test, err := a.expression(s.Cond)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, s.Cond); err != nil {
		return nil, err
	}
	consequent, err := a.block(s.Then)
	if err != nil {
		return nil, err
	}

	result := &core.IfStatement{Test: test, Consequent: consequent}
	switch alt := s.Else.(type) {
	case nil:
	case *syntax.Block:
		b, err := a.block(alt)
		if err != nil {
			return nil, err
		}
		result.Alternate = b
	case *syntax.IfStmt:
		chained, err := a.ifStmt(alt)
		if err != nil {
			return nil, err
		}
		result.Alternate = chained
	default:
		panic(fmt.Sprintf("analyzer: unexpected else branch %T", alt))
	}
	return result, nil
}

func (a *analyzer) whileStmt(s *syntax.WhileStmt) (core.Statement, error) {
	test, err := a.expression(s.Cond)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, s.Cond); err != nil {
		return nil, err
	}

	a.ctx.EnterLoop()
	defer a.ctx.Leave()
	body, err := a.block(s.Body)
	if err != nil {
		return nil, err
	}
	return &core.WhileStatement{Test: test, Body: body}, nil
}

func (a *analyzer) forStmt(s *syntax.ForStmt) (core.Statement, error) {
	coll, err := a.expression(s.Coll)
	if err != nil {
		return nil, err
	}
	arr, ok := coll.ExprType().(*core.ArrayType)
	if !ok {
		return nil, errorf(TypeError, s.Coll.Pos(), "Expected an array")
	}
	if err := a.mustNotBeDeclared(s.Var); err != nil {
		return nil, err
	}

	a.ctx.EnterLoop()
	defer a.ctx.Leave()
	iterator := a.declareVariable(s.Var.Name, arr.Base)
	body, err := a.block(s.Body)
	if err != nil {
		return nil, err
	}
	return &core.ForStatement{Iterator: iterator, Collection: coll, Body: body}, nil
}

func (a *analyzer) returnStmt(s *syntax.ReturnStmt) (core.Statement, error) {
	fn := a.ctx.Function()
	if fn == nil {
		return nil, errorf(ScopeError, s.Pos(), "Return can only appear inside a function")
	}
	if s.Result == nil {
		return &core.ReturnStatement{}, nil
	}

	e, err := a.expression(s.Result)
	if err != nil {
		return nil, err
	}
	if err := mustBeAssignable(e, fn.ReturnType, s.Result); err != nil {
		return nil, err
	}
	return &core.ReturnStatement{Argument: e}, nil
}

func (a *analyzer) assignStmt(s *syntax.AssignStmt) (core.Statement, error) {
	entity, err := a.mustBeDeclared(s.Target)
	if err != nil {
		return nil, err
	}
	v, ok := entity.(*core.Variable)
	if !ok {
		return nil, errorf(TypeError, s.Target.Pos(), "Expected a variable")
	}
	source, err := a.expression(s.Value)
	if err != nil {
		return nil, err
	}
	if err := mustBeAssignable(source, v.Type, s.Value); err != nil {
		return nil, err
	}
	return &core.Assignment{Target: v.Ref(), Source: source}, nil
}

// fieldAccess handles both `t.f` and `t.f = value`. value may be nil.
func (a *analyzer) fieldAccess(target, name *syntax.Ident, value syntax.Expr) (*core.FieldAccess, error) {
	entity, err := a.mustBeDeclared(target)
	if err != nil {
		return nil, err
	}
	v, ok := entity.(*core.Variable)
	if !ok {
		return nil, errorf(TypeError, target.Pos(), "Expected a class instance")
	}
	class, ok := v.Type.(*core.ClassType)
	if !ok {
		return nil, errorf(TypeError, target.Pos(), "Expected a class instance")
	}
	field := class.Field(name.Name)
	if field == nil {
		return nil, errorf(DeclarationError, name.Pos(), "No such field %s", name.Name)
	}

	result := &core.FieldAccess{Instance: v.Ref(), Field: field}
	if value != nil {
		e, err := a.expression(value)
		if err != nil {
			return nil, err
		}
		if err := mustBeAssignable(e, field.Type, value); err != nil {
			return nil, err
		}
		result.Value = e
	}
	return result, nil
}
