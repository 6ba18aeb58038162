// Package checker implements FeLangKit's type checker: a visitor over
// the AST that resolves every expression's type, enforces assignability,
// and reports semantic diagnostics into the same closed taxonomy the
// lexer and parser use. Traversal dispatches through the closure-record
// walkers exposed by ast.ExprVisitor/ast.StmtVisitor.
package checker

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/symboltable"
	"github.com/felangkit/felangkit/token"
)

// Checker walks a parsed program, populating a symboltable.Table and
// collecting diagnostics as it goes. A Checker is single-use: construct
// one per analysis run with New.
type Checker struct {
	table       *symboltable.Table
	diagnostics []diagnostic.Diagnostic

	// recordTypes is the registry type expressions naming `record NAME`
	// resolve against. The grammar this checker validates has no
	// record-declaration statement, so this starts empty; a reference to
	// a name not in it reports unknownType and resolves to the absorbing
	// error type.
	recordTypes map[string]*fetype.Type

	exprVisitor ast.ExprVisitor
	stmtVisitor ast.StmtVisitor
}

// New constructs a Checker with a fresh symbol table (built-ins
// pre-declared).
func New() *Checker {
	c := &Checker{
		table:       symboltable.New(),
		recordTypes: make(map[string]*fetype.Type),
	}
	c.exprVisitor = ast.ExprVisitor{
		Literal:      c.typeOfLiteral,
		Identifier:   c.typeOfIdentifier,
		Binary:       c.typeOfBinary,
		Unary:        c.typeOfUnary,
		ArrayAccess:  c.typeOfArrayAccess,
		FieldAccess:  c.typeOfFieldAccess,
		FunctionCall: c.typeOfFunctionCall,
	}
	c.stmtVisitor = ast.StmtVisitor{
		VariableDeclaration: c.checkVariableDeclaration,
		ConstantDeclaration: c.checkConstantDeclaration,
		Assignment:          c.checkAssignment,
		If:                  c.checkIf,
		While:                c.checkWhile,
		ForRange:            c.checkForRange,
		ForEach:              c.checkForEach,
		Function:            c.checkFunctionDeclaration,
		Procedure:           c.checkProcedureDeclaration,
		Return:              c.checkReturn,
		Break:               c.checkBreak,
		ExpressionStatement: c.checkExpressionStatement,
	}
	return c
}

// Table returns the symbol table the checker has been populating.
func (c *Checker) Table() *symboltable.Table { return c.table }

// Diagnostics returns every diagnostic collected so far.
func (c *Checker) Diagnostics() []diagnostic.Diagnostic { return c.diagnostics }

func (c *Checker) report(d diagnostic.Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Check type-checks a top-level statement list (a whole program) in the
// global scope, returning every diagnostic produced.
func (c *Checker) Check(stmts []ast.Statement) []diagnostic.Diagnostic {
	c.diagnostics = append(c.diagnostics, detectConstantCycles(stmts)...)
	c.checkBlock(stmts)
	return c.diagnostics
}

// TypeOf resolves e's type, dispatching through ast.WalkExpr. It is
// exported for callers (tests, the pipeline driver) that want a type
// without re-running a full Check.
func (c *Checker) TypeOf(e ast.Expression) *fetype.Type {
	return ast.WalkExpr(e, c.exprVisitor).(*fetype.Type)
}

func (c *Checker) checkStmt(s ast.Statement) {
	ast.WalkStmt(s, c.stmtVisitor)
}

// checkBlock type-checks every statement in stmts in order, flagging
// the first statement after one whose control flow always exits the
// block (return/break, or an if/else where both branches do) as
// unreachable. Statements are still checked after that point so other
// diagnostics in dead code still surface.
func (c *Checker) checkBlock(stmts []ast.Statement) {
	terminatedAt := -1
	for i, s := range stmts {
		if terminatedAt >= 0 && i == terminatedAt+1 {
			c.report(diagnostic.NewUnreachableCode(s.Position()))
		}
		c.checkStmt(s)
		if terminatedAt < 0 && stmtTerminates(s) {
			terminatedAt = i
		}
	}
}

// stmtTerminates reports whether executing s always exits the
// enclosing statement list (via return, break, or an if/else whose
// branches both terminate).
func stmtTerminates(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.BreakStatement:
		return true
	case *ast.IfStatement:
		if v.Else == nil {
			return false
		}
		return blockTerminates(v.Then) && blockTerminates(v.Else)
	default:
		return false
	}
}

func blockTerminates(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	return stmtTerminates(stmts[len(stmts)-1])
}

// resolveTypeExpr converts the parser's TypeExpr surface into a fetype.Type.
func (c *Checker) resolveTypeExpr(t ast.TypeExpr) *fetype.Type {
	switch v := t.(type) {
	case *ast.PrimitiveTypeExpr:
		return primitiveFromKind(v)
	case *ast.ArrayTypeExpr:
		elem := c.resolveTypeExpr(v.Element)
		dims := make([]uint32, len(v.Dimensions))
		for i, d := range v.Dimensions {
			dims[i] = uint32(d)
		}
		return fetype.NewArray(elem, dims)
	case *ast.RecordTypeExpr:
		if rt, ok := c.recordTypes[v.Name]; ok {
			return rt
		}
		c.report(diagnostic.NewUnknownType(v.Pos, v.Name))
		return fetype.PrimError()
	default:
		return fetype.PrimError()
	}
}

func primitiveFromKind(p *ast.PrimitiveTypeExpr) *fetype.Type {
	switch p.Kind {
	case token.IntegerType:
		return fetype.PrimInteger()
	case token.RealType:
		return fetype.PrimReal()
	case token.CharacterType:
		return fetype.PrimCharacter()
	case token.StringType:
		return fetype.PrimString()
	case token.BooleanType:
		return fetype.PrimBoolean()
	default:
		return fetype.PrimError()
	}
}
