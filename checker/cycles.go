package checker

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
)

// detectConstantCycles finds constants whose initializers depend,
// transitively, on themselves: a coloring depth-first search over the
// dependency graph built from top-level constant declarations. A
// visiting set marks the current path; a path slice reconstructs the
// cycle for the diagnostic.
func detectConstantCycles(stmts []ast.Statement) []diagnostic.Diagnostic {
	var order []string
	decls := make(map[string]*ast.ConstantDeclaration)
	for _, s := range stmts {
		if d, ok := s.(*ast.ConstantDeclaration); ok {
			if _, exists := decls[d.Name]; !exists {
				order = append(order, d.Name)
			}
			decls[d.Name] = d
		}
	}

	var diags []diagnostic.Diagnostic
	visiting := make(map[string]bool)
	done := make(map[string]bool)

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		if done[name] {
			return
		}
		if visiting[name] {
			start := 0
			for i, p := range path {
				if p == name {
					start = i
					break
				}
			}
			chain := append(append([]string{}, path[start:]...), name)
			diags = append(diags, diagnostic.NewCyclicDependency(decls[chain[0]].Pos, chain))
			for _, n := range chain {
				done[n] = true
			}
			return
		}

		decl, ok := decls[name]
		if !ok {
			return
		}
		visiting[name] = true
		nextPath := append(append([]string{}, path...), name)
		for _, ref := range referencedNames(decl.Initializer) {
			visit(ref, nextPath)
		}
		delete(visiting, name)
		done[name] = true
	}

	for _, name := range order {
		visit(name, nil)
	}
	return diags
}

// referencedNames collects every identifier an expression reads,
// including through calls, indices, and field accesses.
func referencedNames(e ast.Expression) []string {
	var names []string
	var visit func(ast.Expression)
	visit = func(e ast.Expression) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *ast.Identifier:
			names = append(names, n.Name)
		case *ast.Binary:
			visit(n.Left)
			visit(n.Right)
		case *ast.Unary:
			visit(n.Operand)
		case *ast.ArrayAccess:
			visit(n.Array)
			for _, idx := range n.Indices {
				visit(idx)
			}
		case *ast.FieldAccess:
			visit(n.Record)
		case *ast.FunctionCall:
			for _, a := range n.Arguments {
				visit(a)
			}
		}
	}
	visit(e)
	return names
}
