package cfa

import (
	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/graph"
)

// analyseLoop builds the control-flow subgraph shared by for, async for and
// while: a dummy node stands in for "go to the next iteration" while the
// body is analysed, then gets collapsed onto the loop's own entry node once
// that node exists — this is what closes the cycle.
//
// stmt is the loop statement itself (used as the AST back-reference for the
// loop node); body/orelse are its clauses. while's test-folding path is
// handled separately in analyseWhile since for/async-for have no foldable
// condition to speak of.
func (a *analyser) analyseLoop(stmt ast.Stmt, body, orelse []ast.Stmt, next *graph.Node) *graph.Node {
	dummy := a.dummyNode()
	var bodyNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{
		ctxBreak:    next,
		ctxContinue: dummy,
	}, func() {
		bodyNode = a.analyseStatements(body, dummy)
	})

	elseNode := a.analyseStatements(orelse, next)
	loopNode := a.astNode(stmt, map[graph.Label]*graph.Node{
		graph.Enter: bodyNode,
		graph.Else:  elseNode,
		graph.Error: a.raiseTarget(),
	})

	if err := a.g.CollapseNode(dummy, loopNode); err != nil {
		panic(err)
	}
	return loopNode
}

// analyseWhile is analyseLoop plus constant folding of the while condition:
// a constant-true while never takes the else branch (and has no error edge
// from the test), a constant-false while never enters the body.
func (a *analyser) analyseWhile(s *ast.While, next *graph.Node) *graph.Node {
	elseNode := a.analyseStatements(s.Orelse, next)

	dummy := a.dummyNode()
	var bodyNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{
		ctxBreak:    next,
		ctxContinue: dummy,
	}, func() {
		bodyNode = a.analyseStatements(s.Body, dummy)
	})

	edges := map[graph.Label]*graph.Node{}
	if value, ok := foldConstant(s.Test); ok {
		if truthy(value) {
			edges[graph.Enter] = bodyNode
		} else {
			edges[graph.Else] = elseNode
		}
	} else {
		edges[graph.Enter] = bodyNode
		edges[graph.Else] = elseNode
		edges[graph.Error] = a.raiseTarget()
	}

	loopNode := a.astNode(s, edges)
	if err := a.g.CollapseNode(dummy, loopNode); err != nil {
		panic(err)
	}
	return loopNode
}
