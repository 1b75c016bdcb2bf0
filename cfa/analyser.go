// Package cfa builds an intra-procedural control-flow graph for a single
// function, class or module body, given its statements as an ast.Stmt tree.
//
// Construction walks each statement list back to front, threading the
// "next" node through the walk instead of building a linear IR first, and
// uses a small scoped context (raise/break/continue/leave/return targets)
// to let interior statements like `break` or `raise` reach the right
// destination without the caller passing it explicitly.
package cfa

import (
	"fmt"

	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/graph"
)

// analyser holds the mutable state of one control-flow construction: the
// graph under construction and the current context. Each of the three
// package-level Analyse* entry points creates and discards its own
// analyser, so graphs from separate calls never share state.
type analyser struct {
	g   *graph.Graph
	ctx map[contextLabel]*graph.Node

	// redundantReturns collects bare "return" nodes whose jump target is the
	// very node control would have fallen to anyway. Only the construction
	// pass can see this: the supplied next is not recoverable from the
	// finished graph.
	redundantReturns []*graph.Node
}

func newAnalyser() *analyser {
	return &analyser{
		g:   graph.NewGraph(),
		ctx: make(map[contextLabel]*graph.Node),
	}
}

// annotatedNode creates and inserts a synthetic node carrying a short
// textual role (e.g. "<leave>") with the given out-edges.
func (a *analyser) annotatedNode(annotation string, edges map[graph.Label]*graph.Node) *graph.Node {
	n := graph.NewAnnotatedNode(annotation)
	if err := a.g.AddNode(n, edges); err != nil {
		panic(fmt.Errorf("cfa: internal: annotatedNode(%q): %w", annotation, err))
	}
	return n
}

// astNode creates and inserts a node wrapping an AST back-reference with
// the given out-edges. ref is typically the ast.Stmt being analysed, but
// for except-handler match nodes it is the handler's type expression.
func (a *analyser) astNode(ref any, edges map[graph.Label]*graph.Node) *graph.Node {
	n := graph.NewASTNode(ref)
	if err := a.g.AddNode(n, edges); err != nil {
		panic(fmt.Errorf("cfa: internal: astNode: %w", err))
	}
	return n
}

// dummyNode creates an edgeless placeholder destined for CollapseNode.
func (a *analyser) dummyNode() *graph.Node {
	n := graph.NewNode()
	if err := a.g.AddNode(n, nil); err != nil {
		panic(fmt.Errorf("cfa: internal: dummyNode: %w", err))
	}
	return n
}

func (a *analyser) hasParents(n *graph.Node) bool {
	return a.g.HasParents(n)
}

// sideEffecting builds the node for any statement whose only possible
// outcomes are "completes normally" and "raises" — the overwhelming
// majority of statement kinds.
func (a *analyser) sideEffecting(stmt ast.Stmt, next *graph.Node) *graph.Node {
	return a.astNode(stmt, map[graph.Label]*graph.Node{
		graph.Next:  next,
		graph.Error: a.raiseTarget(),
	})
}

// analyseStatements walks stmts from last to first, threading next through
// the walk so each statement's successor is already known by the time it is
// analysed. This avoids ever materialising an intermediate linear form.
func (a *analyser) analyseStatements(stmts []ast.Stmt, next *graph.Node) *graph.Node {
	for i := len(stmts) - 1; i >= 0; i-- {
		next = a.analyseStmt(stmts[i], next)
	}
	return next
}

// analyseStmt dispatches a single statement to its handler. The switch
// covers every concrete type package ast defines; the default case is
// unreachable under normal use since ast.Stmt's marker method keeps the
// implementing set closed to that package.
func (a *analyser) analyseStmt(stmt ast.Stmt, next *graph.Node) *graph.Node {
	switch s := stmt.(type) {
	case *ast.Pass:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: next})
	case *ast.Global:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: next})
	case *ast.Nonlocal:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: next})
	case *ast.Break:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: a.breakTarget()})
	case *ast.Continue:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Next: a.continueTarget()})
	case *ast.Import:
		return a.sideEffecting(s, next)
	case *ast.ImportFrom:
		return a.sideEffecting(s, next)
	case *ast.Assign:
		return a.sideEffecting(s, next)
	case *ast.AugAssign:
		return a.sideEffecting(s, next)
	case *ast.AnnAssign:
		return a.sideEffecting(s, next)
	case *ast.Delete:
		return a.sideEffecting(s, next)
	case *ast.ExprStmt:
		return a.sideEffecting(s, next)
	case *ast.FunctionDef:
		return a.sideEffecting(s, next)
	case *ast.AsyncFunctionDef:
		return a.sideEffecting(s, next)
	case *ast.ClassDef:
		return a.sideEffecting(s, next)
	case *ast.Assert:
		return a.analyseAssert(s, next)
	case *ast.Return:
		return a.analyseReturn(s, next)
	case *ast.Raise:
		return a.astNode(s, map[graph.Label]*graph.Node{graph.Error: a.raiseTarget()})
	case *ast.If:
		return a.analyseIf(s, next)
	case *ast.While:
		return a.analyseWhile(s, next)
	case *ast.For:
		return a.analyseLoop(s, s.Body, s.Orelse, next)
	case *ast.AsyncFor:
		return a.analyseLoop(s, s.Body, s.Orelse, next)
	case *ast.Try:
		return a.analyseTry(s, next)
	case *ast.With:
		return a.analyseWith(s, s.Body, next)
	case *ast.AsyncWith:
		return a.analyseWith(s, s.Body, next)
	default:
		panic(&UnsupportedStatementError{Line: stmt.Line(), Type: fmt.Sprintf("%T", stmt)})
	}
}

// analyseAssert folds statement.test when possible: a constant-true test
// has no way to raise, a constant-false test has no way to continue.
func (a *analyser) analyseAssert(s *ast.Assert, next *graph.Node) *graph.Node {
	edges := map[graph.Label]*graph.Node{}
	if value, ok := foldConstant(s.Test); ok {
		if truthy(value) {
			edges[graph.Next] = next
		} else {
			edges[graph.Error] = a.raiseTarget()
		}
	} else {
		edges[graph.Next] = next
		edges[graph.Error] = a.raiseTarget()
	}
	return a.astNode(s, edges)
}

// analyseReturn routes a bare return to the leave target and a
// value-carrying return to the return target. No constant folding is
// applied to the returned value: "return <constant>" still gets an error
// edge. Folding applies only at if, while and assert.
func (a *analyser) analyseReturn(s *ast.Return, next *graph.Node) *graph.Node {
	if s.Value == nil {
		leave := a.leaveTarget()
		n := a.astNode(s, map[graph.Label]*graph.Node{graph.Next: leave})
		if next == leave {
			a.redundantReturns = append(a.redundantReturns, n)
		}
		return n
	}
	return a.astNode(s, map[graph.Label]*graph.Node{
		graph.Next:  a.returnTarget(),
		graph.Error: a.raiseTarget(),
	})
}

// analyseIf folds statement.test when possible. Both branches are always
// analysed and inserted into the graph, even when constant folding proves
// one of them unreachable, because a caller inspecting the resulting
// Analysis still needs a node for every statement in the source.
func (a *analyser) analyseIf(s *ast.If, next *graph.Node) *graph.Node {
	ifBranch := a.analyseStatements(s.Body, next)
	elseBranch := a.analyseStatements(s.Orelse, next)

	edges := map[graph.Label]*graph.Node{}
	if value, ok := foldConstant(s.Test); ok {
		if truthy(value) {
			edges[graph.Enter] = ifBranch
		} else {
			edges[graph.Else] = elseBranch
		}
	} else {
		edges[graph.Enter] = ifBranch
		edges[graph.Else] = elseBranch
		edges[graph.Error] = a.raiseTarget()
	}
	return a.astNode(s, edges)
}
