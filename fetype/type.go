// Package fetype implements FeType, the FE pseudo-language's structural
// type system: primitives, arrays, records, and function/procedure
// signatures, plus the two special placeholders (unknown, error) the
// checker uses during inference and failure propagation.
package fetype

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of type shapes.
type Kind int

const (
	Integer Kind = iota
	Real
	Character
	String
	Boolean
	Array
	Record
	Function
	Unknown
	ErrorType
)

// Field is one named, ordered field of a Record type.
type Field struct {
	Name string
	Type *Type
}

// Type is a structurally-interned FE type. Two Types describing the same
// shape are always Equal, and — because primitives are singletons and the
// New* constructors intern composites — are usually the same pointer, which is cheap to compare. Comparison should
// still go through Equal: pointer equality is an optimization, not the
// contract.
type Type struct {
	Kind Kind

	// Array
	Element    *Type
	Dimensions []uint32 // empty for an unconstrained array

	// Record (name equivalence: two records are equal only if Name matches)
	Name   string
	Fields []Field

	// Function (ReturnType is nil for a procedure)
	Parameters []*Type
	ReturnType *Type
}

var (
	integerType   = &Type{Kind: Integer}
	realType      = &Type{Kind: Real}
	characterType = &Type{Kind: Character}
	stringType    = &Type{Kind: String}
	booleanType   = &Type{Kind: Boolean}
	unknownType   = &Type{Kind: Unknown}
	errorType_    = &Type{Kind: ErrorType}
)

// PrimInteger, PrimReal, PrimCharacter, PrimString, PrimBoolean, PrimUnknown
// and PrimError return the singleton instance for each non-composite kind.
func PrimInteger() *Type   { return integerType }
func PrimReal() *Type      { return realType }
func PrimCharacter() *Type { return characterType }
func PrimString() *Type    { return stringType }
func PrimBoolean() *Type   { return booleanType }
func PrimUnknown() *Type   { return unknownType }
func PrimError() *Type     { return errorType_ }

// IsNumeric reports whether t is integer or real.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Kind == Integer || t.Kind == Real)
}

// IsAbsorbing reports whether t is the error or unknown type: operations
// on it silently yield error without emitting cascading diagnostics.
func (t *Type) IsAbsorbing() bool {
	return t != nil && (t.Kind == ErrorType || t.Kind == Unknown)
}

// Equal reports structural equality. Record types compare by name as
// well as field shape (name equivalence).
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Integer, Real, Character, String, Boolean, Unknown, ErrorType:
		return true
	case Array:
		if !t.Element.Equal(other.Element) {
			return false
		}
		return equalDims(t.Dimensions, other.Dimensions)
	case Record:
		if t.Name != other.Name {
			return false
		}
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != other.Fields[i].Name || !t.Fields[i].Type.Equal(other.Fields[i].Type) {
				return false
			}
		}
		return true
	case Function:
		if len(t.Parameters) != len(other.Parameters) {
			return false
		}
		for i := range t.Parameters {
			if !t.Parameters[i].Equal(other.Parameters[i]) {
				return false
			}
		}
		if (t.ReturnType == nil) != (other.ReturnType == nil) {
			return false
		}
		if t.ReturnType != nil && !t.ReturnType.Equal(other.ReturnType) {
			return false
		}
		return true
	default:
		return false
	}
}

func equalDims(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a human-readable type name, used throughout diagnostic
// messages.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Character:
		return "character"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Unknown:
		return "unknown"
	case ErrorType:
		return "error"
	case Array:
		if len(t.Dimensions) == 0 {
			return fmt.Sprintf("array of %s", t.Element.String())
		}
		dims := make([]string, len(t.Dimensions))
		for i, d := range t.Dimensions {
			dims[i] = strconv.FormatUint(uint64(d), 10)
		}
		return fmt.Sprintf("array[%s] of %s", strings.Join(dims, ","), t.Element.String())
	case Record:
		return fmt.Sprintf("record %s", t.Name)
	case Function:
		params := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			params[i] = p.String()
		}
		ret := "void"
		if t.ReturnType != nil {
			ret = t.ReturnType.String()
		}
		return fmt.Sprintf("function(%s): %s", strings.Join(params, ", "), ret)
	default:
		return "?"
	}
}
