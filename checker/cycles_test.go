package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/lexer"
	"github.com/felangkit/felangkit/parser"
)

func TestDetectConstantCyclesDirectSelfReference(t *testing.T) {
	toks, _ := lexer.Tokenize("定数 a: 整数型 ← a")
	p := parser.New(toks)
	stmts := p.ParseStatements()
	require.Empty(t, p.Diagnostics())

	diags := detectConstantCycles(stmts)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CyclicDependency, diags[0].Kind)
}

func TestDetectConstantCyclesMutualReference(t *testing.T) {
	toks, _ := lexer.Tokenize("定数 a: 整数型 ← b\n定数 b: 整数型 ← a")
	p := parser.New(toks)
	stmts := p.ParseStatements()
	require.Empty(t, p.Diagnostics())

	diags := detectConstantCycles(stmts)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CyclicDependency, diags[0].Kind)
}

func TestDetectConstantCyclesNoFalsePositiveOnChain(t *testing.T) {
	toks, _ := lexer.Tokenize("定数 a: 整数型 ← 1\n定数 b: 整数型 ← a\n定数 c: 整数型 ← b")
	p := parser.New(toks)
	stmts := p.ParseStatements()
	require.Empty(t, p.Diagnostics())

	diags := detectConstantCycles(stmts)
	assert.Empty(t, diags)
}

func TestCheckReportsCyclicDependencyThroughCheck(t *testing.T) {
	c := New()
	toks, _ := lexer.Tokenize("定数 a: 整数型 ← a")
	p := parser.New(toks)
	stmts := p.ParseStatements()
	require.Empty(t, p.Diagnostics())

	diags := c.Check(stmts)
	found := false
	for _, d := range diags {
		if d.Kind == diagnostic.CyclicDependency {
			found = true
		}
	}
	assert.True(t, found)
}
