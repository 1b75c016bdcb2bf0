// Package lint hosts diagnostics built on top of package cfa. The first of
// these, RedundantReturns, flags a bare "return" that jumps exactly where
// control would have fallen anyway, so the statement changes nothing.
package lint

import (
	"sort"

	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/cfa"
)

// Diagnostic is one reported finding, with a line number and a short,
// stable message suitable for a linter's text output.
type Diagnostic struct {
	Line    int
	Message string
}

// RedundantReturns reports every redundant bare return the analysis found,
// in source order. A return nested in a loop body is never flagged: there,
// falling through continues the loop rather than leaving the function, so
// the return does real work.
func RedundantReturns(a *cfa.Analysis) []Diagnostic {
	var diags []Diagnostic
	for _, n := range a.RedundantReturns() {
		ref, ok := n.ASTRef.(ast.Node)
		if !ok {
			continue
		}
		diags = append(diags, Diagnostic{Line: ref.Line(), Message: "redundant return"})
	}
	sort.Slice(diags, func(i, j int) bool { return diags[i].Line < diags[j].Line })
	return diags
}

// CheckFunction analyses a single function or coroutine and reports its
// redundant returns. This is the per-function unit a plugin-style caller
// loops over.
func CheckFunction(fn ast.Coroutine) ([]Diagnostic, error) {
	analysis, err := cfa.AnalyseFunction(fn)
	if err != nil {
		return nil, err
	}
	return RedundantReturns(analysis), nil
}
