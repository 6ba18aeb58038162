package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/token"
)

func pos() token.Position { return token.Position{Line: 1, Column: 1} }

func TestLiteralString(t *testing.T) {
	require.Equal(t, "42", (&Literal{Value: IntegerValue(42), Pos: pos()}).String())
	require.Equal(t, "true", (&Literal{Value: BooleanValue(true), Pos: pos()}).String())
	require.Equal(t, `"hi"`, (&Literal{Value: StringValue("hi"), Pos: pos()}).String())
}

func TestBinaryString(t *testing.T) {
	left := &Identifier{Name: "a", Pos: pos()}
	right := &Identifier{Name: "b", Pos: pos()}
	b := &Binary{Op: Add, Left: left, Right: right, Pos: pos()}
	require.Equal(t, "(a + b)", b.String())
}

func TestUnaryString(t *testing.T) {
	u := &Unary{Op: UnaryNot, Operand: &Identifier{Name: "flag", Pos: pos()}, Pos: pos()}
	require.Equal(t, "(notflag)", u.String())
}

func TestArrayAccessString(t *testing.T) {
	a := &ArrayAccess{
		Array:   &Identifier{Name: "arr", Pos: pos()},
		Indices: []Expression{&Literal{Value: IntegerValue(0), Pos: pos()}, &Literal{Value: IntegerValue(1), Pos: pos()}},
		Pos:     pos(),
	}
	require.Equal(t, "arr[0, 1]", a.String())
}

func TestFieldAccessString(t *testing.T) {
	f := &FieldAccess{Record: &Identifier{Name: "p", Pos: pos()}, Field: "x", Pos: pos()}
	require.Equal(t, "p.x", f.String())
}

func TestFunctionCallString(t *testing.T) {
	c := &FunctionCall{Name: "add", Arguments: []Expression{&Literal{Value: IntegerValue(1), Pos: pos()}}, Pos: pos()}
	require.Equal(t, "add(1)", c.String())
}

func TestStatementStrings(t *testing.T) {
	intType := &PrimitiveTypeExpr{Kind: token.IntegerType, Pos: pos()}

	decl := &VariableDeclaration{Name: "x", Type: intType, Initializer: &Literal{Value: IntegerValue(1), Pos: pos()}, Pos: pos()}
	require.Equal(t, "variable x: INTEGER_TYPE ← 1", decl.String())

	bareDecl := &VariableDeclaration{Name: "y", Type: intType, Pos: pos()}
	require.Equal(t, "variable y: INTEGER_TYPE", bareDecl.String())

	constDecl := &ConstantDeclaration{Name: "PI", Type: intType, Initializer: &Literal{Value: IntegerValue(3), Pos: pos()}, Pos: pos()}
	require.Equal(t, "constant PI: INTEGER_TYPE ← 3", constDecl.String())

	assign := &Assignment{Target: &Identifier{Name: "x", Pos: pos()}, Value: &Literal{Value: IntegerValue(2), Pos: pos()}, Pos: pos()}
	require.Equal(t, "x ← 2", assign.String())

	brk := &BreakStatement{Pos: pos()}
	require.Equal(t, "break", brk.String())

	ret := &ReturnStatement{Pos: pos()}
	require.Equal(t, "return", ret.String())

	retVal := &ReturnStatement{Value: &Literal{Value: IntegerValue(1), Pos: pos()}, Pos: pos()}
	require.Equal(t, "return 1", retVal.String())
}

func TestTypeExprStrings(t *testing.T) {
	elem := &PrimitiveTypeExpr{Kind: token.IntegerType, Pos: pos()}
	unconstrained := &ArrayTypeExpr{Element: elem, Pos: pos()}
	require.Equal(t, "array of INTEGER_TYPE", unconstrained.String())

	dimmed := &ArrayTypeExpr{Element: elem, Dimensions: []int{2, 3}, Pos: pos()}
	require.Equal(t, "array[2,3] of INTEGER_TYPE", dimmed.String())

	rec := &RecordTypeExpr{Name: "Point", Pos: pos()}
	require.Equal(t, "record Point", rec.String())
}

func TestWalkExprDispatchesToMatchingClosure(t *testing.T) {
	var got string
	v := ExprVisitor{
		Literal:      func(l *Literal) any { got = "literal"; return nil },
		Identifier:   func(i *Identifier) any { got = "identifier"; return nil },
		Binary:       func(b *Binary) any { got = "binary"; return nil },
		Unary:        func(u *Unary) any { got = "unary"; return nil },
		ArrayAccess:  func(a *ArrayAccess) any { got = "arrayAccess"; return nil },
		FieldAccess:  func(f *FieldAccess) any { got = "fieldAccess"; return nil },
		FunctionCall: func(c *FunctionCall) any { got = "functionCall"; return nil },
	}

	WalkExpr(&Literal{Pos: pos()}, v)
	require.Equal(t, "literal", got)

	WalkExpr(&Identifier{Pos: pos()}, v)
	require.Equal(t, "identifier", got)

	WalkExpr(&FunctionCall{Pos: pos()}, v)
	require.Equal(t, "functionCall", got)
}

func TestWalkStmtDispatchesToMatchingClosure(t *testing.T) {
	var got string
	v := StmtVisitor{
		VariableDeclaration: func(*VariableDeclaration) { got = "vardecl" },
		ConstantDeclaration: func(*ConstantDeclaration) { got = "constdecl" },
		Assignment:          func(*Assignment) { got = "assignment" },
		If:                  func(*IfStatement) { got = "if" },
		While:                func(*WhileStatement) { got = "while" },
		ForRange:             func(*ForRangeStatement) { got = "forrange" },
		ForEach:              func(*ForEachStatement) { got = "foreach" },
		Function:             func(*FunctionDeclaration) { got = "function" },
		Procedure:            func(*ProcedureDeclaration) { got = "procedure" },
		Return:               func(*ReturnStatement) { got = "return" },
		Break:                func(*BreakStatement) { got = "break" },
		ExpressionStatement:  func(*ExpressionStatement) { got = "exprstmt" },
	}

	WalkStmt(&BreakStatement{Pos: pos()}, v)
	require.Equal(t, "break", got)

	WalkStmt(&ReturnStatement{Pos: pos()}, v)
	require.Equal(t, "return", got)

	WalkStmt(&ForEachStatement{Pos: pos()}, v)
	require.Equal(t, "foreach", got)
}
