package symboltable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/fetype"
	"github.com/felangkit/felangkit/token"
)

func TestBuiltinsPreDeclared(t *testing.T) {
	tab := New()
	for _, name := range []string{"readLine", "writeLine", "write", "toString", "toInteger", "toReal", "sqrt", "abs"} {
		sym, ok := tab.Lookup(name)
		require.True(t, ok, "expected builtin %q to be declared", name)
		assert.False(t, sym.IsUsed)
		assert.True(t, sym.IsInitialized)
	}
	assert.Empty(t, tab.GetUnusedSymbols(), "builtins are exempt from unused sweeps even before any use")
}

func TestDeclareRejectsDuplicateInSameScope(t *testing.T) {
	tab := New()
	err := tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimInteger()})
	require.Equal(t, ErrNone, err)

	err = tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimInteger()})
	assert.Equal(t, ErrVariableAlreadyDeclared, err)
}

func TestDeclareDuplicateFunctionReportsFunctionKind(t *testing.T) {
	tab := New()
	err := tab.Declare(Symbol{Name: "f", Kind: FunctionSymbol, Type: fetype.NewFunction(nil, fetype.PrimInteger())})
	require.Equal(t, ErrNone, err)

	err = tab.Declare(Symbol{Name: "f", Kind: FunctionSymbol, Type: fetype.NewFunction(nil, fetype.PrimInteger())})
	assert.Equal(t, ErrFunctionAlreadyDeclared, err)
}

func TestShadowingAllowedAcrossScopes(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	tab.PushScope(BlockScope)
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimString()}))

	sym, ok := tab.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, fetype.PrimString(), sym.Type)

	id, ok := tab.PopScope()
	require.True(t, ok)
	assert.NotZero(t, id)

	sym, ok = tab.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, fetype.PrimInteger(), sym.Type)
}

func TestLookupWalksParentChain(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "outer", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	tab.PushScope(BlockScope)
	_, ok := tab.Lookup("outer")
	assert.True(t, ok)

	_, ok = tab.Lookup("doesNotExist")
	assert.False(t, ok)
}

func TestExistsInCurrentScopeIgnoresParents(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "outer", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	tab.PushScope(BlockScope)
	assert.False(t, tab.ExistsInCurrentScope("outer"))
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "inner", Kind: VariableSymbol, Type: fetype.PrimInteger()}))
	assert.True(t, tab.ExistsInCurrentScope("inner"))
}

func TestPopScopeRefusesToPopGlobal(t *testing.T) {
	tab := New()
	_, ok := tab.PopScope()
	assert.False(t, ok)
}

func TestMarkAsUsedAndInitialized(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	sym, _ := tab.Lookup("x")
	assert.False(t, sym.IsUsed)
	assert.False(t, sym.IsInitialized)

	require.Equal(t, ErrNone, tab.MarkAsUsed("x", sym.Position))
	require.Equal(t, ErrNone, tab.MarkAsInitialized("x", sym.Position))

	sym, _ = tab.Lookup("x")
	assert.True(t, sym.IsUsed)
	assert.True(t, sym.IsInitialized)
}

func TestMarkAsUsedUndeclaredReportsError(t *testing.T) {
	tab := New()
	err := tab.MarkAsUsed("nope", token.Position{})
	assert.Equal(t, ErrUndeclaredVariable, err)
}

func TestGetUnusedSymbolsExcludesFunctionsAndBuiltins(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "used", Kind: VariableSymbol, Type: fetype.PrimInteger()}))
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "unused", Kind: VariableSymbol, Type: fetype.PrimInteger()}))
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "f", Kind: FunctionSymbol, Type: fetype.NewFunction(nil, fetype.PrimInteger())}))

	sym, _ := tab.Lookup("used")
	require.Equal(t, ErrNone, tab.MarkAsUsed("used", sym.Position))

	unused := tab.GetUnusedSymbols()
	names := make([]string, len(unused))
	for i, s := range unused {
		names[i] = s.Name
	}
	assert.Contains(t, names, "unused")
	assert.NotContains(t, names, "used")
	assert.NotContains(t, names, "f")
	for _, b := range []string{"readLine", "writeLine", "write", "toString", "toInteger", "toReal", "sqrt", "abs"} {
		assert.NotContains(t, names, b)
	}
}

func TestIsInFunctionAndIsInLoop(t *testing.T) {
	tab := New()
	assert.False(t, tab.IsInFunction())
	assert.False(t, tab.IsInLoop())

	tab.PushFunctionScope("f", fetype.PrimInteger())
	assert.True(t, tab.IsInFunction())
	assert.False(t, tab.IsInLoop())

	tab.PushScope(LoopScope)
	assert.True(t, tab.IsInFunction())
	assert.True(t, tab.IsInLoop())
}

func TestCurrentFunctionFindsNearestEnclosing(t *testing.T) {
	tab := New()
	_, _, ok := tab.CurrentFunction()
	assert.False(t, ok)

	tab.PushFunctionScope("add", fetype.PrimInteger())
	tab.PushScope(BlockScope)

	name, ret, ok := tab.CurrentFunction()
	require.True(t, ok)
	assert.Equal(t, "add", name)
	assert.Equal(t, fetype.PrimInteger(), ret)
}

func TestKnownNamesDeduplicatesAcrossScopes(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "outer", Kind: VariableSymbol, Type: fetype.PrimInteger()}))
	tab.PushScope(BlockScope)
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "outer", Kind: VariableSymbol, Type: fetype.PrimString()}))
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "inner", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	names := tab.KnownNames()
	count := 0
	for _, n := range names {
		if n == "outer" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, names, "inner")
	assert.Contains(t, names, "readLine")
}

func TestConcurrentReadsDoNotRace(t *testing.T) {
	tab := New()
	require.Equal(t, ErrNone, tab.Declare(Symbol{Name: "x", Kind: VariableSymbol, Type: fetype.PrimInteger()}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tab.Lookup("x")
			tab.GetUnusedSymbols()
			tab.KnownNames()
		}()
	}
	wg.Wait()
}
