package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felangkit/felangkit/token"
)

// PrimitiveTypeExpr names a primitive type keyword.
type PrimitiveTypeExpr struct {
	Kind token.Kind // one of the *Type kinds in package token
	Pos  token.Position
}

func (p *PrimitiveTypeExpr) typeExprNode()          {}
func (p *PrimitiveTypeExpr) Position() token.Position { return p.Pos }
func (p *PrimitiveTypeExpr) String() string           { return p.Kind.String() }

// ArrayTypeExpr is "array of T" with an optional dimension list.
// Dimensions is empty for an unconstrained array.
type ArrayTypeExpr struct {
	Element    TypeExpr
	Dimensions []int
	Pos        token.Position
}

func (a *ArrayTypeExpr) typeExprNode()          {}
func (a *ArrayTypeExpr) Position() token.Position { return a.Pos }
func (a *ArrayTypeExpr) String() string {
	if len(a.Dimensions) == 0 {
		return fmt.Sprintf("array of %s", a.Element.String())
	}
	dims := make([]string, len(a.Dimensions))
	for i, d := range a.Dimensions {
		dims[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("array[%s] of %s", strings.Join(dims, ","), a.Element.String())
}

// RecordTypeExpr names a record type by its declared name.
type RecordTypeExpr struct {
	Name string
	Pos  token.Position
}

func (r *RecordTypeExpr) typeExprNode()          {}
func (r *RecordTypeExpr) Position() token.Position { return r.Pos }
func (r *RecordTypeExpr) String() string           { return fmt.Sprintf("record %s", r.Name) }
