package checker

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/symboltable"
)

func (c *Checker) declare(sym symboltable.Symbol) {
	switch c.table.Declare(sym) {
	case symboltable.ErrVariableAlreadyDeclared:
		c.report(diagnostic.NewVariableAlreadyDeclared(sym.Position, sym.Name))
	case symboltable.ErrFunctionAlreadyDeclared:
		c.report(diagnostic.NewFunctionAlreadyDeclared(sym.Position, sym.Name))
	}
}

func (c *Checker) checkVariableDeclaration(d *ast.VariableDeclaration) {
	declared := c.resolveTypeExpr(d.Type)
	initialized := d.Initializer != nil
	if d.Initializer != nil {
		initType := c.TypeOf(d.Initializer)
		if !assignable(initType, declared) {
			c.report(diagnostic.NewTypeMismatch(d.Initializer.Position(), declared.String(), initType.String()))
		}
	}
	c.declare(symboltable.Symbol{
		Name: d.Name, Type: declared, Kind: symboltable.VariableSymbol,
		Position: d.Pos, IsInitialized: initialized,
	})
}

func (c *Checker) checkConstantDeclaration(d *ast.ConstantDeclaration) {
	declared := c.resolveTypeExpr(d.Type)
	initType := c.TypeOf(d.Initializer)
	if !assignable(initType, declared) {
		c.report(diagnostic.NewTypeMismatch(d.Initializer.Position(), declared.String(), initType.String()))
	}
	c.declare(symboltable.Symbol{
		Name: d.Name, Type: declared, Kind: symboltable.ConstantSymbol,
		Position: d.Pos, IsInitialized: true,
	})
}

func (c *Checker) checkAssignment(a *ast.Assignment) {
	rhsType := c.TypeOf(a.Value)

	switch target := a.Target.(type) {
	case *ast.Identifier:
		sym, ok := c.table.Lookup(target.Name)
		if !ok {
			c.report(diagnostic.NewUndeclaredVariable(target.Pos, target.Name))
			return
		}
		if sym.Kind == symboltable.ConstantSymbol {
			c.report(diagnostic.NewConstantReassignment(a.Pos, target.Name))
		}
		if !assignable(rhsType, sym.Type) {
			c.report(diagnostic.NewTypeMismatch(a.Pos, sym.Type.String(), rhsType.String()))
		}
		c.table.MarkAsInitialized(target.Name, a.Pos)
	default:
		targetType := c.TypeOf(a.Target)
		if !assignable(rhsType, targetType) {
			c.report(diagnostic.NewTypeMismatch(a.Pos, targetType.String(), rhsType.String()))
		}
	}
}

func (c *Checker) checkCondition(cond ast.Expression) {
	t := c.TypeOf(cond)
	if t.Kind != fetype.Boolean && !t.IsAbsorbing() {
		c.report(diagnostic.NewTypeMismatch(cond.Position(), fetype.PrimBoolean().String(), t.String()))
	}
}

func (c *Checker) checkIf(s *ast.IfStatement) {
	c.checkCondition(s.Condition)
	c.checkScopedBlock(symboltable.BlockScope, s.Then)
	if s.Else != nil {
		c.checkScopedBlock(symboltable.BlockScope, s.Else)
	}
}

func (c *Checker) checkWhile(s *ast.WhileStatement) {
	c.checkCondition(s.Condition)
	c.checkScopedBlock(symboltable.LoopScope, s.Body)
}

func (c *Checker) checkForRange(s *ast.ForRangeStatement) {
	c.checkIntegerExpr(s.Start)
	c.checkIntegerExpr(s.End)
	if s.Step != nil {
		c.checkIntegerExpr(s.Step)
	}

	c.table.PushScope(symboltable.LoopScope)
	c.declare(symboltable.Symbol{
		Name: s.Variable, Type: fetype.PrimInteger(), Kind: symboltable.VariableSymbol,
		Position: s.Pos, IsInitialized: true,
	})
	c.checkBlock(s.Body)
	c.table.PopScope()
}

func (c *Checker) checkIntegerExpr(e ast.Expression) {
	t := c.TypeOf(e)
	if t.Kind != fetype.Integer && !t.IsAbsorbing() {
		c.report(diagnostic.NewTypeMismatch(e.Position(), fetype.PrimInteger().String(), t.String()))
	}
}

func (c *Checker) checkForEach(s *ast.ForEachStatement) {
	iterType := c.TypeOf(s.Iterable)
	var elemType *fetype.Type
	switch {
	case iterType.IsAbsorbing():
		elemType = fetype.PrimError()
	case iterType.Kind == fetype.Array:
		elemType = iterType.Element
	case iterType.Kind == fetype.String:
		elemType = fetype.PrimCharacter()
	default:
		c.report(diagnostic.NewTypeMismatch(s.Iterable.Position(), fetype.NewArray(fetype.PrimUnknown(), nil).String(), iterType.String()))
		elemType = fetype.PrimError()
	}

	c.table.PushScope(symboltable.LoopScope)
	c.declare(symboltable.Symbol{
		Name: s.Variable, Type: elemType, Kind: symboltable.VariableSymbol,
		Position: s.Pos, IsInitialized: true,
	})
	c.checkBlock(s.Body)
	c.table.PopScope()
}

func (c *Checker) checkBreak(s *ast.BreakStatement) {
	if !c.table.IsInLoop() {
		c.report(diagnostic.NewBreakOutsideLoop(s.Pos))
	}
}

func (c *Checker) checkReturn(s *ast.ReturnStatement) {
	if !c.table.IsInFunction() {
		c.report(diagnostic.NewReturnOutsideFunction(s.Pos))
		if s.Value != nil {
			c.TypeOf(s.Value)
		}
		return
	}

	name, returnType, _ := c.table.CurrentFunction()
	if returnType == nil {
		if s.Value != nil {
			c.report(diagnostic.NewVoidFunctionReturnsValue(s.Pos, name))
			c.TypeOf(s.Value)
		}
		return
	}

	if s.Value == nil {
		c.report(diagnostic.NewReturnTypeMismatch(s.Pos, name, returnType.String(), "void"))
		return
	}
	valueType := c.TypeOf(s.Value)
	if !assignable(valueType, returnType) {
		c.report(diagnostic.NewReturnTypeMismatch(s.Pos, name, returnType.String(), valueType.String()))
	}
}

func (c *Checker) checkExpressionStatement(s *ast.ExpressionStatement) {
	c.TypeOf(s.Expr)
}

// checkScopedBlock pushes kind, checks stmts, and pops — for block
// constructs (if/while bodies) that do not need PushFunctionScope's
// extra bookkeeping.
func (c *Checker) checkScopedBlock(kind symboltable.ScopeKind, stmts []ast.Statement) {
	c.table.PushScope(kind)
	c.checkBlock(stmts)
	c.table.PopScope()
}

func (c *Checker) checkFunctionDeclaration(d *ast.FunctionDeclaration) {
	returnType := c.resolveTypeExpr(d.ReturnType)
	paramTypes := c.resolveParamTypes(d.Parameters)
	c.declare(symboltable.Symbol{
		Name: d.Name, Type: fetype.NewFunction(paramTypes, returnType),
		Kind: symboltable.FunctionSymbol, Position: d.Pos, IsInitialized: true,
	})

	c.table.PushFunctionScope(d.Name, returnType)
	c.declareParameters(d.Parameters, paramTypes)
	for _, local := range d.Locals {
		c.checkVariableDeclaration(local)
	}
	c.checkBlock(d.Body)
	if !blockTerminates(d.Body) {
		c.report(diagnostic.NewMissingReturnStatement(d.Pos, d.Name))
	}
	c.table.PopScope()
}

func (c *Checker) checkProcedureDeclaration(d *ast.ProcedureDeclaration) {
	paramTypes := c.resolveParamTypes(d.Parameters)
	c.declare(symboltable.Symbol{
		Name: d.Name, Type: fetype.NewFunction(paramTypes, nil),
		Kind: symboltable.ProcedureSymbol, Position: d.Pos, IsInitialized: true,
	})

	c.table.PushFunctionScope(d.Name, nil)
	c.declareParameters(d.Parameters, paramTypes)
	for _, local := range d.Locals {
		c.checkVariableDeclaration(local)
	}
	c.checkBlock(d.Body)
	c.table.PopScope()
}

func (c *Checker) declareParameters(params []ast.Parameter, types []*fetype.Type) {
	for i, p := range params {
		c.declare(symboltable.Symbol{
			Name: p.Name, Type: types[i], Kind: symboltable.ParameterSymbol,
			Position: p.Pos, IsInitialized: true,
		})
	}
}

func (c *Checker) resolveParamTypes(params []ast.Parameter) []*fetype.Type {
	out := make([]*fetype.Type, len(params))
	for i, p := range params {
		out[i] = c.resolveTypeExpr(p.Type)
	}
	return out
}
