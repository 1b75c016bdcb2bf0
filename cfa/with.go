package cfa

import (
	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/graph"
)

// analyseWith builds the subgraph for with/async with. The context manager
// protocol's own exception handling is opaque to this analysis — entering
// the block can always raise, same as any other statement — so the body is
// simply the enter-branch and there is no else.
func (a *analyser) analyseWith(stmt ast.Stmt, body []ast.Stmt, next *graph.Node) *graph.Node {
	return a.astNode(stmt, map[graph.Label]*graph.Node{
		graph.Enter: a.analyseStatements(body, next),
		graph.Error: a.raiseTarget(),
	})
}
