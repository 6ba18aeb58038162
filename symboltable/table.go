package symboltable

import (
	"sync"

	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/token"
)

// Err is the closed set of declaration/lookup failures the table
// reports; callers translate these into diagnostic.Diagnostic values,
// keeping this package free of a dependency on the diagnostic package.
type Err int

const (
	ErrNone Err = iota
	ErrVariableAlreadyDeclared
	ErrFunctionAlreadyDeclared
	ErrUndeclaredVariable
)

// Table owns the scope tree and the live scope stack, guarded by an
// RWMutex: concurrent readers, one writer at a time.
type Table struct {
	mu     sync.RWMutex
	scopes []*scope // index == ScopeID
	stack  []ScopeID
	nextID ScopeID
}

// New constructs a Table with the global scope already pushed and the
// built-in functions pre-declared in it.
func New() *Table {
	t := &Table{}
	global := newScope(0, GlobalScope, 0, false)
	t.scopes = append(t.scopes, global)
	t.stack = []ScopeID{0}
	t.nextID = 1
	t.declareBuiltins(global)
	return t
}

func (t *Table) declareBuiltins(global *scope) {
	str := fetype.PrimString()
	real := fetype.PrimReal()
	unknown := fetype.PrimUnknown()

	builtins := []struct {
		name   string
		params []*fetype.Type
		ret    *fetype.Type
	}{
		{"readLine", nil, str},
		{"writeLine", []*fetype.Type{unknown}, nil},
		{"write", []*fetype.Type{unknown}, nil},
		{"toString", []*fetype.Type{unknown}, str},
		{"toInteger", []*fetype.Type{str}, fetype.PrimInteger()},
		{"toReal", []*fetype.Type{str}, real},
		{"sqrt", []*fetype.Type{real}, real},
		{"abs", []*fetype.Type{real}, real},
	}
	for _, b := range builtins {
		kind := FunctionSymbol
		if b.ret == nil {
			kind = ProcedureSymbol
		}
		// IsUsed starts false like any declaration; built-ins stay out of
		// unused sweeps via GetUnusedSymbols' kind-based exclusion.
		global.declare(&Symbol{
			Name:          b.name,
			Type:          fetype.NewFunction(b.params, b.ret),
			Kind:          kind,
			IsInitialized: true,
		})
	}
}

func (t *Table) current() *scope {
	return t.scopes[t.stack[len(t.stack)-1]]
}

// PushScope creates a child of the current scope, pushes it onto the
// stack, and returns its stable ID.
func (t *Table) PushScope(kind ScopeKind) ScopeID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	s := newScope(id, kind, t.current().id, true)
	t.scopes = append(t.scopes, s)
	t.stack = append(t.stack, id)
	return id
}

// PushFunctionScope is PushScope specialized for function/procedure
// bodies, recording the name and declared return type (nil for a
// procedure) so CurrentFunction can answer without re-walking the AST.
func (t *Table) PushFunctionScope(name string, returnType *fetype.Type) ScopeID {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	s := newScope(id, FunctionScope, t.current().id, true)
	s.functionName = name
	s.functionReturnType = returnType
	t.scopes = append(t.scopes, s)
	t.stack = append(t.stack, id)
	return id
}

// PopScope pops the current scope, returning its ID, or (0, false) if
// the current scope is the global scope (which can never be popped).
func (t *Table) PopScope() (ScopeID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.stack) <= 1 {
		return 0, false
	}
	id := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return id, true
}

// Declare adds sym to the current scope. Duplicate names within the
// same scope are rejected; shadowing a parent-scope symbol is allowed.
func (t *Table) Declare(sym Symbol) Err {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.current()
	if !cur.declare(&sym) {
		existing, _ := cur.get(sym.Name)
		if existing.Kind == FunctionSymbol || existing.Kind == ProcedureSymbol {
			return ErrFunctionAlreadyDeclared
		}
		return ErrVariableAlreadyDeclared
	}
	return ErrNone
}

// Lookup walks the parent chain starting at the current scope.
func (t *Table) Lookup(name string) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookupLocked(name)
}

func (t *Table) lookupLocked(name string) (Symbol, bool) {
	id := t.stack[len(t.stack)-1]
	for {
		s := t.scopes[id]
		if sym, ok := s.get(name); ok {
			return *sym, true
		}
		if !s.hasParent {
			return Symbol{}, false
		}
		id = s.parent
	}
}

// ExistsInCurrentScope reports whether name is declared directly in
// the current scope (parents are not consulted).
func (t *Table) ExistsInCurrentScope(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.current().get(name)
	return ok
}

// MarkAsUsed flags the nearest declaration of name as used, walking
// the parent chain. It reports ErrUndeclaredVariable if no such symbol
// exists.
func (t *Table) MarkAsUsed(name string, _ token.Position) Err {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sym := t.findLocked(name); sym != nil {
		sym.IsUsed = true
		return ErrNone
	}
	return ErrUndeclaredVariable
}

// MarkAsInitialized flags the nearest declaration of name as
// initialized.
func (t *Table) MarkAsInitialized(name string, _ token.Position) Err {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sym := t.findLocked(name); sym != nil {
		sym.IsInitialized = true
		return ErrNone
	}
	return ErrUndeclaredVariable
}

// findLocked returns the live *Symbol (not a copy) for mutation by
// MarkAsUsed/MarkAsInitialized. Callers must hold mu.
func (t *Table) findLocked(name string) *Symbol {
	id := t.stack[len(t.stack)-1]
	for {
		s := t.scopes[id]
		if sym, ok := s.symbols[name]; ok {
			return sym
		}
		if !s.hasParent {
			return nil
		}
		id = s.parent
	}
}

// GetSymbols returns a snapshot copy of every symbol declared directly
// in scopeID, in declaration order.
func (t *Table) GetSymbols(scopeID ScopeID) []Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(scopeID) >= len(t.scopes) {
		return nil
	}
	syms := t.scopes[scopeID].ordered()
	out := make([]Symbol, len(syms))
	for i, s := range syms {
		out[i] = *s
	}
	return out
}

// GetUnusedSymbols returns every variable/constant/parameter across all
// scopes that was declared but never used. Functions, procedures, and
// built-ins are excluded by policy: unused-function detection is never
// performed, even when error correlation is on.
func (t *Table) GetUnusedSymbols() []Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Symbol
	for _, s := range t.scopes {
		for _, sym := range s.ordered() {
			if sym.IsUsed {
				continue
			}
			switch sym.Kind {
			case VariableSymbol, ConstantSymbol, ParameterSymbol:
				out = append(out, *sym)
			}
		}
	}
	return out
}

// IsInFunction reports whether any scope on the current stack is a
// function scope.
func (t *Table) IsInFunction() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.stack {
		if t.scopes[id].kind == FunctionScope {
			return true
		}
	}
	return false
}

// IsInLoop reports whether any scope on the current stack is a loop
// scope.
func (t *Table) IsInLoop() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.stack {
		if t.scopes[id].kind == LoopScope {
			return true
		}
	}
	return false
}

// CurrentFunction returns the name and declared return type (nil for a
// procedure) of the nearest enclosing function scope, or ok=false if
// none is on the stack.
func (t *Table) CurrentFunction() (name string, returnType *fetype.Type, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.stack) - 1; i >= 0; i-- {
		s := t.scopes[t.stack[i]]
		if s.kind == FunctionScope {
			return s.functionName, s.functionReturnType, true
		}
	}
	return "", nil, false
}

// KnownNames implements diagnostic.NameSource, returning every name
// visible from the current scope stack (used for "did you mean"
// suggestions).
func (t *Table) KnownNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	id := t.stack[len(t.stack)-1]
	for {
		s := t.scopes[id]
		for _, name := range s.names {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
		if !s.hasParent {
			break
		}
		id = s.parent
	}
	return out
}
