package core

// Clone returns a structural deep copy of p. Nodes are copied; type
// descriptors (including class types and their field defaults) are shared,
// since they are immutable once analysis completes.
func Clone(p *Program) *Program {
	if p == nil {
		return nil
	}
	return &Program{Statements: cloneBlock(p.Statements)}
}

func cloneBlock(stmts []Statement) []Statement {
	if stmts == nil {
		return nil
	}
	out := make([]Statement, len(stmts))
	for i, s := range stmts {
		out[i] = CloneStatement(s)
	}
	return out
}

func cloneExprs(exprs []Expression) []Expression {
	if exprs == nil {
		return nil
	}
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpression(e)
	}
	return out
}

func cloneVariable(v *Variable) *Variable {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// CloneStatement returns a deep copy of s.
func CloneStatement(s Statement) Statement {
	switch s := s.(type) {
	case *VariableDeclaration:
		return &VariableDeclaration{Variable: cloneVariable(s.Variable), Initializer: CloneExpression(s.Initializer)}
	case *FunctionDeclaration:
		params := make([]*Variable, len(s.Fun.Parameters))
		for i, p := range s.Fun.Parameters {
			params[i] = cloneVariable(p)
		}
		fun := *s.Fun
		fun.Parameters = params
		fun.Body = cloneBlock(s.Fun.Body)
		return &FunctionDeclaration{Fun: &fun}
	case *CallStatement:
		return &CallStatement{Call: CloneExpression(s.Call).(*FunctionCall)}
	case *IfStatement:
		c := &IfStatement{Test: CloneExpression(s.Test), Consequent: cloneBlock(s.Consequent)}
		switch alt := s.Alternate.(type) {
		case Block:
			c.Alternate = Block(cloneBlock(alt))
		case *IfStatement:
			c.Alternate = CloneStatement(alt).(*IfStatement)
		}
		return c
	case *WhileStatement:
		return &WhileStatement{Test: CloneExpression(s.Test), Body: cloneBlock(s.Body)}
	case *ForStatement:
		return &ForStatement{Iterator: cloneVariable(s.Iterator), Collection: CloneExpression(s.Collection), Body: cloneBlock(s.Body)}
	case *ReturnStatement:
		return &ReturnStatement{Argument: CloneExpression(s.Argument)}
	case *BreakStatement:
		return &BreakStatement{}
	case *PrintStatement:
		return &PrintStatement{Expression: CloneExpression(s.Expression)}
	case *ClassDeclaration:
		return &ClassDeclaration{Class: s.Class}
	case *FieldAccess:
		return CloneExpression(s).(*FieldAccess)
	case *Assignment:
		return &Assignment{Target: cloneVariable(s.Target), Source: CloneExpression(s.Source)}
	}
	return s
}

// CloneExpression returns a deep copy of e. A nil expression clones to nil.
func CloneExpression(e Expression) Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *Variable:
		return cloneVariable(e)
	case *FunctionCall:
		return &FunctionCall{Callee: cloneVariable(e.Callee), Args: cloneExprs(e.Args), Type: e.Type}
	case *ArrayExpression:
		return &ArrayExpression{Elements: cloneExprs(e.Elements), Type: e.Type}
	case *BinaryExpression:
		return &BinaryExpression{Op: e.Op, Left: CloneExpression(e.Left), Right: CloneExpression(e.Right), Type: e.Type}
	case *UnaryExpression:
		return &UnaryExpression{Op: e.Op, Operand: CloneExpression(e.Operand), Type: e.Type}
	case *ConditionalExpression:
		return &ConditionalExpression{
			Test:       CloneExpression(e.Test),
			Consequent: CloneExpression(e.Consequent),
			Alternate:  CloneExpression(e.Alternate),
			Type:       e.Type,
		}
	case *NewInstance:
		return &NewInstance{Class: e.Class, Fields: cloneExprs(e.Fields)}
	case *FieldAccess:
		return &FieldAccess{Instance: cloneVariable(e.Instance), Field: e.Field, Value: CloneExpression(e.Value)}
	case *NumberLiteral:
		return &NumberLiteral{Value: e.Value}
	case *StringLiteral:
		return &StringLiteral{Value: e.Value}
	case *BooleanLiteral:
		return &BooleanLiteral{Value: e.Value}
	}
	return e
}
