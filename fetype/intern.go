package fetype

import (
	"strconv"
	"strings"
	"sync"
)

// interner deduplicates structurally-identical composite types so that
// repeated construction of, say, "array of integer" returns the same
// *Type pointer. An RWMutex guards a plain map, read-mostly after
// warmup.
type interner struct {
	mu    sync.RWMutex
	table map[string]*Type
}

var global = &interner{table: make(map[string]*Type)}

func (i *interner) intern(key string, build func() *Type) *Type {
	i.mu.RLock()
	if t, ok := i.table[key]; ok {
		i.mu.RUnlock()
		return t
	}
	i.mu.RUnlock()

	i.mu.Lock()
	defer i.mu.Unlock()
	if t, ok := i.table[key]; ok {
		return t
	}
	t := build()
	i.table[key] = t
	return t
}

// NewArray interns an array type over element with the given dimensions
// (nil/empty for an unconstrained array).
func NewArray(element *Type, dimensions []uint32) *Type {
	key := "array(" + element.internKey() + ")[" + joinDims(dimensions) + "]"
	return global.intern(key, func() *Type {
		return &Type{Kind: Array, Element: element, Dimensions: dimensions}
	})
}

// NewRecord interns a record type. Records compare by name, so the key
// is name-qualified even though the field shape is also embedded.
func NewRecord(name string, fields []Field) *Type {
	var b strings.Builder
	b.WriteString("record(")
	b.WriteString(name)
	b.WriteByte(')')
	for _, f := range fields {
		b.WriteByte(';')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Type.internKey())
	}
	return global.intern(b.String(), func() *Type {
		return &Type{Kind: Record, Name: name, Fields: fields}
	})
}

// NewFunction interns a function/procedure signature. returnType is nil
// for a procedure.
func NewFunction(parameters []*Type, returnType *Type) *Type {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range parameters {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.internKey())
	}
	b.WriteString(")->")
	if returnType != nil {
		b.WriteString(returnType.internKey())
	} else {
		b.WriteString("void")
	}
	return global.intern(b.String(), func() *Type {
		return &Type{Kind: Function, Parameters: parameters, ReturnType: returnType}
	})
}

func joinDims(dims []uint32) string {
	var b strings.Builder
	for i, d := range dims {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(d), 10))
	}
	return b.String()
}

// internKey is a stable structural signature used as a map key; it is
// intentionally not the same thing as String() (which is for humans).
func (t *Type) internKey() string {
	if t == nil {
		return "nil"
	}
	switch t.Kind {
	case Integer, Real, Character, String, Boolean, Unknown, ErrorType:
		return t.String()
	case Array:
		return "array(" + t.Element.internKey() + ")[" + joinDims(t.Dimensions) + "]"
	case Record:
		var b strings.Builder
		b.WriteString("record(")
		b.WriteString(t.Name)
		b.WriteByte(')')
		for _, f := range t.Fields {
			b.WriteByte(';')
			b.WriteString(f.Name)
			b.WriteByte(':')
			b.WriteString(f.Type.internKey())
		}
		return b.String()
	case Function:
		var b strings.Builder
		b.WriteString("func(")
		for i, p := range t.Parameters {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.internKey())
		}
		b.WriteString(")->")
		if t.ReturnType != nil {
			b.WriteString(t.ReturnType.internKey())
		} else {
			b.WriteString("void")
		}
		return b.String()
	default:
		return "?"
	}
}
