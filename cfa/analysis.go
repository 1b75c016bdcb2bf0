package cfa

import (
	"fmt"

	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/graph"
)

// Analysis is the result of analysing a function, coroutine, class or
// module body: the control-flow graph plus the handful of named nodes a
// caller needs to start walking it.
type Analysis struct {
	g *graph.Graph

	// EntryNode is the first node reached on entering the analysed unit.
	// Always present.
	EntryNode *graph.Node

	// LeaveNode is reached by falling off the end of the body or by a bare
	// "return". Nil if nothing reaches it.
	LeaveNode *graph.Node

	// RaiseNode is reached by any statement that can propagate an
	// exception out of the analysed unit. Nil if nothing reaches it.
	RaiseNode *graph.Node

	// ReturnNode is reached by a value-carrying "return". Nil for classes
	// and modules, and for functions with no such return.
	ReturnNode *graph.Node

	redundantReturns []*graph.Node
}

// Nodes returns every node in the underlying graph.
func (r *Analysis) Nodes() []*graph.Node { return r.g.Nodes() }

// Edge returns the target of the out-edge labelled label from n.
func (r *Analysis) Edge(n *graph.Node, label graph.Label) (*graph.Node, bool) {
	return r.g.Edge(n, label)
}

// EdgeLabels returns the set of out-edge labels present on n.
func (r *Analysis) EdgeLabels(n *graph.Node) map[graph.Label]struct{} {
	return r.g.EdgeLabels(n)
}

// EdgesTo returns every (source, label) pair with an edge targeting n.
func (r *Analysis) EdgesTo(n *graph.Node) []graph.EdgeSource {
	return r.g.EdgesTo(n)
}

// RedundantReturns returns the nodes of every bare "return" statement that
// jumps exactly where control would have fallen anyway. Order is the order
// of analysis (statement lists are walked back to front); callers wanting
// source order should sort by the node's AST line. Whether a return is
// redundant depends on the next node supplied during construction, which
// the finished graph no longer records, so this is captured while building
// rather than derived afterwards.
func (r *Analysis) RedundantReturns() []*graph.Node {
	out := make([]*graph.Node, len(r.redundantReturns))
	copy(out, r.redundantReturns)
	return out
}

// recoverAnalysisError turns a panic raised during graph construction
// (an *UnsupportedStatementError, a *contextError, or a wrapped graph
// invariant violation) into a returned error, so a malformed-AST caller
// gets a normal Go error value instead of a crashed process.
func recoverAnalysisError(errp *error) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = err
			return
		}
		*errp = fmt.Errorf("cfa: %v", r)
	}
}

func (a *analyser) finish(entryNode *graph.Node, leaveNode, raiseNode, returnNode *graph.Node) *Analysis {
	result := &Analysis{g: a.g, EntryNode: entryNode, redundantReturns: a.redundantReturns}

	a.annotatedNode("<start>", map[graph.Label]*graph.Node{graph.Enter: entryNode})

	if leaveNode != nil {
		if a.hasParents(leaveNode) {
			result.LeaveNode = leaveNode
		} else if err := a.g.RemoveNode(leaveNode); err != nil {
			panic(err)
		}
	}
	if raiseNode != nil {
		if a.hasParents(raiseNode) {
			result.RaiseNode = raiseNode
		} else if err := a.g.RemoveNode(raiseNode); err != nil {
			panic(err)
		}
	}
	if returnNode != nil {
		if a.hasParents(returnNode) {
			result.ReturnNode = returnNode
		} else if err := a.g.RemoveNode(returnNode); err != nil {
			panic(err)
		}
	}
	return result
}

// AnalyseFunction constructs a control-flow graph for a function or
// coroutine body. fn may be an *ast.FunctionDef or *ast.AsyncFunctionDef.
func AnalyseFunction(fn ast.Coroutine) (result *Analysis, err error) {
	defer recoverAnalysisError(&err)

	a := newAnalyser()
	leaveNode := a.annotatedNode("<leave>", nil)
	raiseNode := a.annotatedNode("<raise>", nil)
	returnNode := a.annotatedNode("<return>", nil)

	var entryNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{
		ctxLeave:  leaveNode,
		ctxRaise:  raiseNode,
		ctxReturn: returnNode,
	}, func() {
		entryNode = a.analyseStatements(fn.FuncBody(), leaveNode)
	})

	return a.finish(entryNode, leaveNode, raiseNode, returnNode), nil
}

// AnalyseClass constructs a control-flow graph for a class body. A class
// body has no return target: a "return" statement is not valid there, so
// only "raise" is tracked alongside ordinary completion.
func AnalyseClass(class *ast.ClassDef) (result *Analysis, err error) {
	defer recoverAnalysisError(&err)

	a := newAnalyser()
	leaveNode := a.annotatedNode("<leave>", nil)
	raiseNode := a.annotatedNode("<raise>", nil)

	var entryNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{ctxRaise: raiseNode}, func() {
		entryNode = a.analyseStatements(class.Body, leaveNode)
	})

	return a.finish(entryNode, leaveNode, raiseNode, nil), nil
}

// AnalyseModule constructs a control-flow graph for a module body.
func AnalyseModule(module *ast.Module) (result *Analysis, err error) {
	defer recoverAnalysisError(&err)

	a := newAnalyser()
	leaveNode := a.annotatedNode("<leave>", nil)
	raiseNode := a.annotatedNode("<raise>", nil)

	var entryNode *graph.Node
	a.withContext(map[contextLabel]*graph.Node{ctxRaise: raiseNode}, func() {
		entryNode = a.analyseStatements(module.Body, leaveNode)
	})

	return a.finish(entryNode, leaveNode, raiseNode, nil), nil
}
