// Package symboltable implements FeLangKit's scope tree: lexical
// scopes, declaration/lookup, and use/initialization tracking for the
// type checker. All mutation goes through an RWMutex, so concurrent
// readers and a single writer are safe.
package symboltable

import (
	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/token"
)

// SymbolKind is the closed set of symbol roles.
type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	ConstantSymbol
	ParameterSymbol
	FunctionSymbol
	ProcedureSymbol
	TypeSymbol
)

// Symbol is one declared name.
type Symbol struct {
	Name          string
	Type          *fetype.Type
	Kind          SymbolKind
	Position      token.Position
	IsInitialized bool
	IsUsed        bool
}

// ScopeKind distinguishes the four scope shapes the checker reasons
// about: global, function/procedure body, loop body, and a plain
// nested block.
type ScopeKind int

const (
	GlobalScope ScopeKind = iota
	FunctionScope
	LoopScope
	BlockScope
)

// ScopeID addresses a scope stably; scopes are never relocated, so an
// ID obtained from PushScope remains valid for the lifetime of the
// table.
type ScopeID int
