package checker

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/token"
)

func (c *Checker) typeOfLiteral(n *ast.Literal) any {
	switch n.Value.(type) {
	case ast.IntegerValue:
		return fetype.PrimInteger()
	case ast.RealValue:
		return fetype.PrimReal()
	case ast.StringValue:
		return fetype.PrimString()
	case ast.CharacterValue:
		return fetype.PrimCharacter()
	case ast.BooleanValue:
		return fetype.PrimBoolean()
	default:
		return fetype.PrimError()
	}
}

func (c *Checker) typeOfIdentifier(n *ast.Identifier) any {
	sym, ok := c.table.Lookup(n.Name)
	if !ok {
		c.report(diagnostic.NewUndeclaredVariable(n.Pos, n.Name))
		return fetype.PrimError()
	}
	c.table.MarkAsUsed(n.Name, n.Pos)
	if !sym.IsInitialized {
		c.report(diagnostic.NewVariableNotInitialized(n.Pos, n.Name))
	}
	return sym.Type
}

func (c *Checker) typeOfBinary(n *ast.Binary) any {
	left := c.TypeOf(n.Left)
	right := c.TypeOf(n.Right)
	if left.IsAbsorbing() || right.IsAbsorbing() {
		return fetype.PrimError()
	}

	switch n.Op {
	case ast.Add:
		if isTextual(left) || isTextual(right) {
			// `+` between string/character operands is concatenation; the
			// node's operator is rewritten so downstream consumers see the
			// resolved semantics.
			n.Op = ast.Concatenate
			return fetype.PrimString()
		}
		return c.checkNumericBinary(n.Pos, left, right, "+")
	case ast.Concatenate:
		return fetype.PrimString()
	case ast.Subtract, ast.Multiply:
		return c.checkNumericBinary(n.Pos, left, right, n.Op.String())
	case ast.Divide:
		if !left.IsNumeric() || !right.IsNumeric() {
			c.report(diagnostic.NewIncompatibleTypes(n.Pos, left.String(), right.String(), "/"))
			return fetype.PrimError()
		}
		return fetype.PrimReal()
	case ast.Modulo:
		if left.Kind != fetype.Integer || right.Kind != fetype.Integer {
			c.report(diagnostic.NewIncompatibleTypes(n.Pos, left.String(), right.String(), "modulo"))
			return fetype.PrimError()
		}
		return fetype.PrimInteger()
	case ast.Equal, ast.NotEqual:
		if (left.IsNumeric() && right.IsNumeric()) || left.Equal(right) {
			return fetype.PrimBoolean()
		}
		c.report(diagnostic.NewIncompatibleTypes(n.Pos, left.String(), right.String(), n.Op.String()))
		return fetype.PrimError()
	case ast.Less, ast.LessEqual, ast.Greater, ast.GreaterEqual:
		if !left.IsNumeric() || !right.IsNumeric() {
			c.report(diagnostic.NewIncompatibleTypes(n.Pos, left.String(), right.String(), n.Op.String()))
			return fetype.PrimError()
		}
		return fetype.PrimBoolean()
	case ast.LogicalAnd, ast.LogicalOr:
		if left.Kind != fetype.Boolean {
			c.report(diagnostic.NewTypeMismatch(n.Left.Position(), fetype.PrimBoolean().String(), left.String()))
		}
		if right.Kind != fetype.Boolean {
			c.report(diagnostic.NewTypeMismatch(n.Right.Position(), fetype.PrimBoolean().String(), right.String()))
		}
		return fetype.PrimBoolean()
	default:
		return fetype.PrimError()
	}
}

func isTextual(t *fetype.Type) bool {
	return t.Kind == fetype.String || t.Kind == fetype.Character
}

// checkNumericBinary enforces the "+ - *" domain: both operands
// numeric, result real if either is real, else integer.
func (c *Checker) checkNumericBinary(pos token.Position, left, right *fetype.Type, op string) *fetype.Type {
	if !left.IsNumeric() || !right.IsNumeric() {
		c.report(diagnostic.NewIncompatibleTypes(pos, left.String(), right.String(), op))
		return fetype.PrimError()
	}
	if left.Kind == fetype.Real || right.Kind == fetype.Real {
		return fetype.PrimReal()
	}
	return fetype.PrimInteger()
}

func (c *Checker) typeOfUnary(n *ast.Unary) any {
	operand := c.TypeOf(n.Operand)
	if operand.IsAbsorbing() {
		return fetype.PrimError()
	}
	switch n.Op {
	case ast.UnaryNot:
		if operand.Kind != fetype.Boolean {
			c.report(diagnostic.NewTypeMismatch(n.Pos, fetype.PrimBoolean().String(), operand.String()))
			return fetype.PrimError()
		}
		return fetype.PrimBoolean()
	case ast.UnaryPlus, ast.UnaryMinus:
		if !operand.IsNumeric() {
			c.report(diagnostic.NewTypeMismatch(n.Pos, "numeric", operand.String()))
			return fetype.PrimError()
		}
		return operand
	default:
		return fetype.PrimError()
	}
}

func (c *Checker) typeOfArrayAccess(n *ast.ArrayAccess) any {
	target := c.TypeOf(n.Array)
	var element *fetype.Type
	switch {
	case target.IsAbsorbing():
		element = fetype.PrimError()
	case target.Kind == fetype.Array:
		element = target.Element
	case target.Kind == fetype.String:
		element = fetype.PrimCharacter()
	default:
		c.report(diagnostic.NewInvalidArrayAccess(n.Pos))
		element = fetype.PrimError()
	}
	for _, idx := range n.Indices {
		idxType := c.TypeOf(idx)
		if idxType.Kind != fetype.Integer && !idxType.IsAbsorbing() {
			c.report(diagnostic.NewArrayIndexTypeMismatch(idx.Position(), fetype.PrimInteger().String(), idxType.String()))
		}
	}
	return element
}

func (c *Checker) typeOfFieldAccess(n *ast.FieldAccess) any {
	target := c.TypeOf(n.Record)
	if target.IsAbsorbing() {
		return fetype.PrimError()
	}
	if target.Kind != fetype.Record {
		c.report(diagnostic.NewInvalidFieldAccess(n.Pos))
		return fetype.PrimError()
	}
	for _, f := range target.Fields {
		if f.Name == n.Field {
			return f.Type
		}
	}
	c.report(diagnostic.NewUndeclaredField(n.Pos, n.Field, target.Name))
	return fetype.PrimError()
}

func (c *Checker) typeOfFunctionCall(n *ast.FunctionCall) any {
	sym, ok := c.table.Lookup(n.Name)
	if !ok || sym.Type == nil || sym.Type.Kind != fetype.Function {
		c.report(diagnostic.NewUndeclaredFunction(n.Pos, n.Name))
		for _, a := range n.Arguments {
			c.TypeOf(a)
		}
		return fetype.PrimError()
	}
	c.table.MarkAsUsed(n.Name, n.Pos)

	sig := sym.Type
	if len(n.Arguments) != len(sig.Parameters) {
		c.report(diagnostic.NewIncorrectArgumentCount(n.Pos, n.Name, len(sig.Parameters), len(n.Arguments)))
	}
	limit := len(n.Arguments)
	if len(sig.Parameters) < limit {
		limit = len(sig.Parameters)
	}
	for i := 0; i < limit; i++ {
		argType := c.TypeOf(n.Arguments[i])
		if i < len(sig.Parameters) && !assignable(argType, sig.Parameters[i]) {
			c.report(diagnostic.NewArgumentTypeMismatch(n.Arguments[i].Position(), n.Name, i, sig.Parameters[i].String(), argType.String()))
		}
	}
	for i := limit; i < len(n.Arguments); i++ {
		c.TypeOf(n.Arguments[i])
	}

	if sig.ReturnType != nil {
		return sig.ReturnType
	}
	return fetype.PrimError()
}
