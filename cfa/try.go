package cfa

import (
	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/graph"
)

// analyseTryExcept builds the try/except/else part of a Try statement, as
// though its finally clause were not present. Handlers are processed back
// to front so each one's "does not match" edge threads into the next
// (or, for the first handler evaluated, into the ambient raise target).
func (a *analyser) analyseTryExcept(s *ast.Try, next *graph.Node) *graph.Node {
	raiseNode := a.raiseTarget()
	for i := len(s.Handlers) - 1; i >= 0; i-- {
		h := s.Handlers[i]
		matchNode := a.analyseStatements(h.Body, next)
		if h.Type == nil {
			// A bare "except:" always matches; it can never fall through
			// to a later handler or to the ambient raise.
			raiseNode = matchNode
		} else {
			raiseNode = a.astNode(h.Type, map[graph.Label]*graph.Node{
				graph.Enter: matchNode,
				graph.Else:  raiseNode,
				graph.Error: a.raiseTarget(),
			})
		}
	}

	elseNode := a.analyseStatements(s.Orelse, next)

	var bodyNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{ctxRaise: raiseNode}, func() {
		bodyNode = a.analyseStatements(s.Body, elseNode)
	})

	return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: bodyNode})
}

// analyseTry builds the full try/except/else/finally statement. A finally
// clause can be entered by up to six different routes — falling off the
// end of the try/except/else, a return (with or without value), a raise, or
// a break/continue out of an enclosing loop — and each route leaves the
// finally block towards a different destination. Building one finally-body
// copy per route unconditionally would multiply finally's size by up to
// six; instead:
//
//  1. Build the finally-body copy that continues to next up front, whether
//     or not it is reached, and route every context role equal to next
//     into it.
//  2. Build one dummy per distinct context target that differs from next,
//     and analyse the try/except/else against those dummies.
//  3. For each dummy actually reached, build the one finally-body copy it
//     needs and collapse the dummy onto it. Dummies never reached are
//     deleted instead.
func (a *analyser) analyseTry(s *ast.Try, next *graph.Node) *graph.Node {
	finallyNode := a.analyseStatements(s.Finalbody, next)

	dummyNodes := make(map[*graph.Node]*graph.Node)
	for _, node := range a.ctx {
		if node == next {
			continue
		}
		if _, ok := dummyNodes[node]; !ok {
			dummyNodes[node] = a.dummyNode()
		}
	}

	targetNodes := make(map[contextLabel]*graph.Node, len(a.ctx))
	for label, node := range a.ctx {
		if node == next {
			targetNodes[label] = finallyNode
		} else {
			targetNodes[label] = dummyNodes[node]
		}
	}

	var entryNode *graph.Node
	a.withContext(targetNodes, func() {
		entryNode = a.analyseTryExcept(s, finallyNode)
	})

	for endNode, dummy := range dummyNodes {
		if endNode == next || a.hasParents(dummy) {
			finallyCopy := a.analyseStatements(s.Finalbody, endNode)
			if err := a.g.CollapseNode(dummy, finallyCopy); err != nil {
				panic(err)
			}
		} else {
			if err := a.g.RemoveNode(dummy); err != nil {
				panic(err)
			}
		}
	}

	return entryNode
}
