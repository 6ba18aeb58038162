package ast

// ExprVisitor is a closure-record visitor over Expression, the single
// walker surface this package exposes. The type checker is the
// production consumer; every field must be set for WalkExpr to dispatch
// (a nil field panics on the matching node, which is preferable to
// silently skipping a case).
type ExprVisitor struct {
	Literal      func(*Literal) any
	Identifier   func(*Identifier) any
	Binary       func(*Binary) any
	Unary        func(*Unary) any
	ArrayAccess  func(*ArrayAccess) any
	FieldAccess  func(*FieldAccess) any
	FunctionCall func(*FunctionCall) any
}

// WalkExpr dispatches e to the matching closure in v and returns its
// result.
func WalkExpr(e Expression, v ExprVisitor) any {
	switch n := e.(type) {
	case *Literal:
		return v.Literal(n)
	case *Identifier:
		return v.Identifier(n)
	case *Binary:
		return v.Binary(n)
	case *Unary:
		return v.Unary(n)
	case *ArrayAccess:
		return v.ArrayAccess(n)
	case *FieldAccess:
		return v.FieldAccess(n)
	case *FunctionCall:
		return v.FunctionCall(n)
	default:
		panic("ast: unhandled Expression type in WalkExpr")
	}
}

// StmtVisitor is the statement analog of ExprVisitor.
type StmtVisitor struct {
	VariableDeclaration func(*VariableDeclaration)
	ConstantDeclaration func(*ConstantDeclaration)
	Assignment          func(*Assignment)
	If                  func(*IfStatement)
	While               func(*WhileStatement)
	ForRange            func(*ForRangeStatement)
	ForEach             func(*ForEachStatement)
	Function            func(*FunctionDeclaration)
	Procedure           func(*ProcedureDeclaration)
	Return              func(*ReturnStatement)
	Break               func(*BreakStatement)
	ExpressionStatement func(*ExpressionStatement)
}

// WalkStmt dispatches s to the matching closure in v.
func WalkStmt(s Statement, v StmtVisitor) {
	switch n := s.(type) {
	case *VariableDeclaration:
		v.VariableDeclaration(n)
	case *ConstantDeclaration:
		v.ConstantDeclaration(n)
	case *Assignment:
		v.Assignment(n)
	case *IfStatement:
		v.If(n)
	case *WhileStatement:
		v.While(n)
	case *ForRangeStatement:
		v.ForRange(n)
	case *ForEachStatement:
		v.ForEach(n)
	case *FunctionDeclaration:
		v.Function(n)
	case *ProcedureDeclaration:
		v.Procedure(n)
	case *ReturnStatement:
		v.Return(n)
	case *BreakStatement:
		v.Break(n)
	case *ExpressionStatement:
		v.ExpressionStatement(n)
	default:
		panic("ast: unhandled Statement type in WalkStmt")
	}
}
