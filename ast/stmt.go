package ast

import (
	"fmt"
	"strings"

	"github.com/felangkit/felangkit/token"
)

// Parameter is a single function/procedure parameter.
type Parameter struct {
	Name string
	Type TypeExpr
	Pos  token.Position
}

// VariableDeclaration declares a mutable binding, with an optional
// initializer.
type VariableDeclaration struct {
	Name        string
	Type        TypeExpr
	Initializer Expression // nil if absent
	Pos         token.Position
}

func (d *VariableDeclaration) stmtNode()                {}
func (d *VariableDeclaration) Position() token.Position { return d.Pos }
func (d *VariableDeclaration) String() string {
	if d.Initializer != nil {
		return fmt.Sprintf("variable %s: %s ← %s", d.Name, d.Type.String(), d.Initializer.String())
	}
	return fmt.Sprintf("variable %s: %s", d.Name, d.Type.String())
}

// ConstantDeclaration declares an immutable binding; the initializer is
// mandatory.
type ConstantDeclaration struct {
	Name        string
	Type        TypeExpr
	Initializer Expression
	Pos         token.Position
}

func (d *ConstantDeclaration) stmtNode()                {}
func (d *ConstantDeclaration) Position() token.Position { return d.Pos }
func (d *ConstantDeclaration) String() string {
	return fmt.Sprintf("constant %s: %s ← %s", d.Name, d.Type.String(), d.Initializer.String())
}

// Assignment writes Value into Target, which must denote a variable,
// array element, or record field (validated by the checker).
type Assignment struct {
	Target Expression
	Value  Expression
	Pos    token.Position
}

func (a *Assignment) stmtNode()                {}
func (a *Assignment) Position() token.Position { return a.Pos }
func (a *Assignment) String() string           { return fmt.Sprintf("%s ← %s", a.Target.String(), a.Value.String()) }

// IfStatement is a conditional with an optional else branch.
type IfStatement struct {
	Condition Expression
	Then      []Statement
	Else      []Statement // nil if absent
	Pos       token.Position
}

func (s *IfStatement) stmtNode()                {}
func (s *IfStatement) Position() token.Position { return s.Pos }
func (s *IfStatement) String() string {
	return fmt.Sprintf("if %s then ... end if", s.Condition.String())
}

// WhileStatement is a pre-test loop.
type WhileStatement struct {
	Condition Expression
	Body      []Statement
	Pos       token.Position
}

func (s *WhileStatement) stmtNode()                {}
func (s *WhileStatement) Position() token.Position { return s.Pos }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s do ... end while", s.Condition.String())
}

// ForRangeStatement is the numeric form: for Variable <- Start to End
// (step Step)? do Body end for.
type ForRangeStatement struct {
	Variable string
	Start    Expression
	End      Expression
	Step     Expression // nil if absent
	Body     []Statement
	Pos      token.Position
}

func (s *ForRangeStatement) stmtNode()                {}
func (s *ForRangeStatement) Position() token.Position { return s.Pos }
func (s *ForRangeStatement) String() string {
	return fmt.Sprintf("for %s ← %s to %s do ... end for", s.Variable, s.Start.String(), s.End.String())
}

// ForEachStatement is the collection form: for Variable in Iterable do
// Body end for.
type ForEachStatement struct {
	Variable string
	Iterable Expression
	Body     []Statement
	Pos      token.Position
}

func (s *ForEachStatement) stmtNode()                {}
func (s *ForEachStatement) Position() token.Position { return s.Pos }
func (s *ForEachStatement) String() string {
	return fmt.Sprintf("for %s in %s do ... end for", s.Variable, s.Iterable.String())
}

// FunctionDeclaration declares a named function with a non-void return
// type.
type FunctionDeclaration struct {
	Name       string
	Parameters []Parameter
	ReturnType TypeExpr
	Locals     []*VariableDeclaration
	Body       []Statement
	Pos        token.Position
}

func (d *FunctionDeclaration) stmtNode()                {}
func (d *FunctionDeclaration) Position() token.Position { return d.Pos }
func (d *FunctionDeclaration) String() string {
	return fmt.Sprintf("function %s(%s): %s", d.Name, paramList(d.Parameters), d.ReturnType.String())
}

// ProcedureDeclaration declares a named procedure (no return value).
type ProcedureDeclaration struct {
	Name       string
	Parameters []Parameter
	Locals     []*VariableDeclaration
	Body       []Statement
	Pos        token.Position
}

func (d *ProcedureDeclaration) stmtNode()                {}
func (d *ProcedureDeclaration) Position() token.Position { return d.Pos }
func (d *ProcedureDeclaration) String() string {
	return fmt.Sprintf("procedure %s(%s)", d.Name, paramList(d.Parameters))
}

func paramList(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.String())
	}
	return strings.Join(parts, ", ")
}

// ReturnStatement optionally carries a value.
type ReturnStatement struct {
	Value Expression // nil if absent
	Pos   token.Position
}

func (s *ReturnStatement) stmtNode()                {}
func (s *ReturnStatement) Position() token.Position { return s.Pos }
func (s *ReturnStatement) String() string {
	if s.Value != nil {
		return fmt.Sprintf("return %s", s.Value.String())
	}
	return "return"
}

// BreakStatement exits the innermost loop.
type BreakStatement struct {
	Pos token.Position
}

func (s *BreakStatement) stmtNode()                {}
func (s *BreakStatement) Position() token.Position { return s.Pos }
func (s *BreakStatement) String() string           { return "break" }

// ExpressionStatement evaluates an expression for its side effects (a
// standalone function call).
type ExpressionStatement struct {
	Expr Expression
	Pos  token.Position
}

func (s *ExpressionStatement) stmtNode()                {}
func (s *ExpressionStatement) Position() token.Position { return s.Pos }
func (s *ExpressionStatement) String() string           { return s.Expr.String() }
