package cfa_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/cfa"
)

// signature flattens an Analysis into a sorted multiset of per-node
// descriptors: source line (or annotation), plus each out-edge's label and
// the line/annotation of its target. Node identities differ between runs;
// this label-structure does not.
func signature(a *cfa.Analysis) []string {
	var sigs []string
	for _, n := range a.Nodes() {
		var b strings.Builder
		b.WriteString(nodeKey(n.ASTRef, n.Annotation))
		var edges []string
		for label := range a.EdgeLabels(n) {
			target, _ := a.Edge(n, label)
			edges = append(edges, fmt.Sprintf("%s->%s", label, nodeKey(target.ASTRef, target.Annotation)))
		}
		sort.Strings(edges)
		b.WriteString("[" + strings.Join(edges, ",") + "]")
		sigs = append(sigs, b.String())
	}
	sort.Strings(sigs)
	return sigs
}

func nodeKey(ref any, annotation string) string {
	if annotation != "" {
		return annotation
	}
	if n, ok := ref.(ast.Node); ok {
		return fmt.Sprintf("%T@%d", ref, n.Line())
	}
	return "<dummy>"
}

// TestRerunProducesIsomorphicGraph locks in the round-trip property: two
// analyses of the same AST build graphs with identical label structure,
// even though every node pointer differs.
func TestRerunProducesIsomorphicGraph(t *testing.T) {
	fn := &ast.FunctionDef{
		Pos:  ast.Pos{LineNo: 1},
		Name: "f",
		Body: []ast.Stmt{
			&ast.Try{
				Pos:  ast.Pos{LineNo: 2},
				Body: []ast.Stmt{&ast.ExprStmt{Pos: ast.Pos{LineNo: 3}, Value: &ast.Opaque{Pos: ast.Pos{LineNo: 3}, Kind: "Call"}}},
				Handlers: []*ast.ExceptHandler{
					{
						Pos:  ast.Pos{LineNo: 4},
						Type: &ast.Opaque{Pos: ast.Pos{LineNo: 4}, Kind: "Name"},
						Body: []ast.Stmt{&ast.Continue{Pos: ast.Pos{LineNo: 5}}},
					},
				},
				Finalbody: []ast.Stmt{&ast.ExprStmt{Pos: ast.Pos{LineNo: 6}, Value: &ast.Opaque{Pos: ast.Pos{LineNo: 6}, Kind: "Call"}}},
			},
		},
	}
	loop := &ast.FunctionDef{
		Pos:  ast.Pos{LineNo: 1},
		Name: "g",
		Body: []ast.Stmt{
			&ast.While{
				Pos:  ast.Pos{LineNo: 2},
				Test: &ast.Opaque{Pos: ast.Pos{LineNo: 2}, Kind: "Name"},
				Body: fn.Body,
			},
		},
	}

	first := mustAnalyseFunction(t, loop)
	second := mustAnalyseFunction(t, loop)

	a, b := signature(first), signature(second)
	if len(a) != len(b) {
		t.Fatalf("node counts differ between runs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("graphs differ at signature %d:\n  %s\n  %s", i, a[i], b[i])
		}
	}
}
