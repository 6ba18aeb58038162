// Package ast defines the immutable abstract syntax produced by the
// expression and statement parsers: expressions, statements, and the
// syntactic type references that appear in declarations. Every node
// carries the position of its first token.
package ast

import "github.com/felangkit/felangkit/token"

// Node is implemented by every expression, statement, and type
// expression node.
type Node interface {
	Position() token.Position
	String() string
}

// Expression is the sum type of expression nodes: Literal, Identifier,
// Binary, Unary, ArrayAccess, FieldAccess, FunctionCall.
type Expression interface {
	Node
	exprNode()
}

// Statement is the sum type of statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// TypeExpr is the syntactic type reference that appears after ':' in a
// declaration, before the checker resolves it to an fetype.Type.
type TypeExpr interface {
	Node
	typeExprNode()
}
