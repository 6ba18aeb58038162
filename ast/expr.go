package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felangkit/felangkit/token"
)

// LiteralValue is the sum type of constant values a Literal expression
// can carry.
type LiteralValue interface {
	isLiteralValue()
	String() string
}

type IntegerValue int64

func (IntegerValue) isLiteralValue()  {}
func (v IntegerValue) String() string { return strconv.FormatInt(int64(v), 10) }

type RealValue float64

func (RealValue) isLiteralValue()  {}
func (v RealValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

type StringValue string

func (StringValue) isLiteralValue()  {}
func (v StringValue) String() string { return strconv.Quote(string(v)) }

type CharacterValue rune

func (CharacterValue) isLiteralValue()  {}
func (v CharacterValue) String() string { return strconv.QuoteRune(rune(v)) }

type BooleanValue bool

func (BooleanValue) isLiteralValue()  {}
func (v BooleanValue) String() string { return strconv.FormatBool(bool(v)) }

// Literal is a constant expression.
type Literal struct {
	Value LiteralValue
	Pos   token.Position
}

func (l *Literal) exprNode()                 {}
func (l *Literal) Position() token.Position  { return l.Pos }
func (l *Literal) String() string            { return l.Value.String() }

// Identifier references a declared variable, constant, parameter, or
// function/procedure name.
type Identifier struct {
	Name string
	Pos  token.Position
}

func (i *Identifier) exprNode()                {}
func (i *Identifier) Position() token.Position { return i.Pos }
func (i *Identifier) String() string           { return i.Name }

// BinaryOp enumerates the binary operators a Binary expression can carry.
type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulo
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	LogicalAnd
	LogicalOr
	Concatenate
)

var binaryOpSymbols = map[BinaryOp]string{
	Add: "+", Subtract: "-", Multiply: "*", Divide: "/", Modulo: "%",
	Equal: "=", NotEqual: "≠", Less: "<", LessEqual: "≦", Greater: ">", GreaterEqual: "≧",
	LogicalAnd: "and", LogicalOr: "or", Concatenate: "+",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// Binary is a binary operator expression.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	Pos   token.Position
}

func (b *Binary) exprNode()                 {}
func (b *Binary) Position() token.Position  { return b.Pos }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

// UnaryOp enumerates the unary operators a Unary expression can carry.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

var unaryOpSymbols = map[UnaryOp]string{UnaryPlus: "+", UnaryMinus: "-", UnaryNot: "not"}

func (op UnaryOp) String() string { return unaryOpSymbols[op] }

// Unary is a prefix unary operator expression.
type Unary struct {
	Op      UnaryOp
	Operand Expression
	Pos     token.Position
}

func (u *Unary) exprNode()                {}
func (u *Unary) Position() token.Position { return u.Pos }
func (u *Unary) String() string           { return fmt.Sprintf("(%s%s)", u.Op.String(), u.Operand.String()) }

// ArrayAccess indexes an array or string with one or more indices.
type ArrayAccess struct {
	Array   Expression
	Indices []Expression
	Pos     token.Position
}

func (a *ArrayAccess) exprNode()                {}
func (a *ArrayAccess) Position() token.Position { return a.Pos }
func (a *ArrayAccess) String() string {
	parts := make([]string, len(a.Indices))
	for i, idx := range a.Indices {
		parts[i] = idx.String()
	}
	return fmt.Sprintf("%s[%s]", a.Array.String(), strings.Join(parts, ", "))
}

// FieldAccess reads a field from a record-typed expression.
type FieldAccess struct {
	Record Expression
	Field  string
	Pos    token.Position
}

func (f *FieldAccess) exprNode()                {}
func (f *FieldAccess) Position() token.Position { return f.Pos }
func (f *FieldAccess) String() string           { return fmt.Sprintf("%s.%s", f.Record.String(), f.Field) }

// FunctionCall invokes a named function or procedure.
type FunctionCall struct {
	Name      string
	Arguments []Expression
	Pos       token.Position
}

func (c *FunctionCall) exprNode()                {}
func (c *FunctionCall) Position() token.Position { return c.Pos }
func (c *FunctionCall) String() string {
	parts := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}
