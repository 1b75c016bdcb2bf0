// Package graph_test verifies Graph method-level contracts: the node set,
// edge set and back-edge index stay consistent through AddNode, RemoveNode,
// and CollapseNode.
package graph_test

import (
	"testing"

	"github.com/katalvlaran/cfa/graph"
)

// TestGraph_AddNode_Basic verifies plain insertion, duplicate rejection, and
// edge wiring.
//
// Stage 1: add an isolated node.
// Stage 2: re-add the same node -> ErrDuplicateNode.
// Stage 3: add a second node with a next-edge to the first.
// Stage 4: add a node with a missing target -> ErrMissingTarget.
// Stage 5: add a node with an edge to itself -> ErrSelfLoopInAdd.
func TestGraph_AddNode_Basic(t *testing.T) {
	g := graph.NewGraph()

	// Stage 1
	a := graph.NewAnnotatedNode("<leave>")
	MustErrorNil(t, g.AddNode(a, nil), "AddNode(a)")
	if !g.Contains(a) {
		t.Fatalf("expected graph to contain a")
	}

	// Stage 2
	MustErrorIs(t, g.AddNode(a, nil), graph.ErrDuplicateNode, "AddNode(a) duplicate")

	// Stage 3
	b := graph.NewAnnotatedNode("<start>")
	MustErrorNil(t, g.AddNode(b, map[graph.Label]*graph.Node{graph.Enter: a}), "AddNode(b, enter->a)")
	target, ok := g.Edge(b, graph.Enter)
	if !ok || target != a {
		t.Fatalf("expected b.enter == a, got %v, ok=%v", target, ok)
	}

	// Stage 4
	c := graph.NewNode()
	missing := graph.NewNode()
	MustErrorIs(t, g.AddNode(c, map[graph.Label]*graph.Node{graph.Next: missing}), graph.ErrMissingTarget, "AddNode(c, next->missing)")
	if g.Contains(c) {
		t.Fatalf("a failed AddNode must not leave the node behind")
	}

	// Stage 5
	d := graph.NewNode()
	err := g.AddNode(d, map[graph.Label]*graph.Node{graph.Next: d})
	MustErrorIs(t, err, graph.ErrSelfLoopInAdd, "AddNode(d, next->d)")
}

// TestGraph_AddNode_MultipleDistinctLabels verifies that several edges with
// distinct labels can be wired in one AddNode call. Duplicate labels need no
// runtime rejection: the edge-set parameter is a map keyed by label, so the
// uniqueness invariant is enforced by the type.
func TestGraph_AddNode_MultipleDistinctLabels(t *testing.T) {
	g := graph.NewGraph()
	body := graph.NewNode()
	orelse := graph.NewNode()
	MustErrorNil(t, g.AddNode(body, nil), "AddNode(body)")
	MustErrorNil(t, g.AddNode(orelse, nil), "AddNode(orelse)")

	ifNode := graph.NewNode()
	err := g.AddNode(ifNode, map[graph.Label]*graph.Node{
		graph.Enter: body,
		graph.Else:  orelse,
	})
	MustErrorNil(t, err, "AddNode(ifNode, enter+else)")

	labels := g.EdgeLabels(ifNode)
	if _, ok := labels[graph.Enter]; !ok {
		t.Fatalf("expected enter label present")
	}
	if _, ok := labels[graph.Else]; !ok {
		t.Fatalf("expected else label present")
	}
}

// TestGraph_RemoveNode_IsolationRequired verifies RemoveNode's isolation
// contract.
func TestGraph_RemoveNode_IsolationRequired(t *testing.T) {
	g := graph.NewGraph()
	leave := graph.NewAnnotatedNode("<leave>")
	MustErrorNil(t, g.AddNode(leave, nil), "AddNode(leave)")

	stmt := graph.NewNode()
	MustErrorNil(t, g.AddNode(stmt, map[graph.Label]*graph.Node{graph.Next: leave}), "AddNode(stmt)")

	// leave has a back edge now; removal must fail.
	MustErrorIs(t, g.RemoveNode(leave), graph.ErrNotIsolated, "RemoveNode(leave) with predecessor")

	// A node with no edges at all (never reached) can be removed.
	never := graph.NewAnnotatedNode("<raise>")
	MustErrorNil(t, g.AddNode(never, nil), "AddNode(never)")
	MustErrorNil(t, g.RemoveNode(never), "RemoveNode(never) isolated")
	if g.Contains(never) {
		t.Fatalf("expected never to be removed")
	}

	// Removing an absent node is an error.
	MustErrorIs(t, g.RemoveNode(never), graph.ErrNotPresent, "RemoveNode(never) again")
}

// TestGraph_CollapseNode_ClosesLoop mirrors the loop-closing pattern from
// cfa: a dummy node stands in for "next iteration", body statements target
// it, and collapsing the dummy onto the real loop node closes the cycle
// loop -> body -> loop.
func TestGraph_CollapseNode_ClosesLoop(t *testing.T) {
	g := graph.NewGraph()

	after := graph.NewNode()
	MustErrorNil(t, g.AddNode(after, nil), "AddNode(after)")

	dummy := graph.NewNode()
	MustErrorNil(t, g.AddNode(dummy, nil), "AddNode(dummy)")

	// body statement whose "next" is the dummy (closes the loop iteration).
	body := graph.NewNode()
	MustErrorNil(t, g.AddNode(body, map[graph.Label]*graph.Node{graph.Next: dummy}), "AddNode(body)")

	// loop node: enter -> body, else -> after. Note the loop node itself
	// does not exist yet when dummy was created, as in the real algorithm.
	loop := graph.NewNode()
	MustErrorNil(t, g.AddNode(loop, map[graph.Label]*graph.Node{
		graph.Enter: body,
		graph.Else:  after,
	}), "AddNode(loop)")

	MustErrorNil(t, g.CollapseNode(dummy, loop), "CollapseNode(dummy, loop)")

	if g.Contains(dummy) {
		t.Fatalf("expected dummy to be removed after collapse")
	}
	target, ok := g.Edge(body, graph.Next)
	if !ok || target != loop {
		t.Fatalf("expected body.next == loop (cycle closed via collapse), got %v ok=%v", target, ok)
	}
}

// TestGraph_CollapseNode_Validation verifies the remaining CollapseNode
// error paths: dummy with outward edges, dummy == target, absent nodes.
func TestGraph_CollapseNode_Validation(t *testing.T) {
	g := graph.NewGraph()
	a := graph.NewNode()
	MustErrorNil(t, g.AddNode(a, nil), "AddNode(a)")

	notDummy := graph.NewNode()
	MustErrorNil(t, g.AddNode(notDummy, map[graph.Label]*graph.Node{graph.Next: a}), "AddNode(notDummy)")
	MustErrorIs(t, g.CollapseNode(notDummy, a), graph.ErrDummyHasEdges, "CollapseNode(notDummy has edges)")

	dummy := graph.NewNode()
	MustErrorNil(t, g.AddNode(dummy, nil), "AddNode(dummy)")
	MustErrorIs(t, g.CollapseNode(dummy, dummy), graph.ErrCollapseSelf, "CollapseNode(dummy, dummy)")

	ghost := &graph.Node{}
	MustErrorIs(t, g.CollapseNode(ghost, a), graph.ErrNotPresent, "CollapseNode(ghost, a)")
	MustErrorIs(t, g.CollapseNode(dummy, ghost), graph.ErrNotPresent, "CollapseNode(dummy, ghost)")
}

// TestGraph_BackedgesAreExactInverse locks in the index invariant:
// (s, l) in EdgesTo(t) iff Edge(s, l) == t.
func TestGraph_BackedgesAreExactInverse(t *testing.T) {
	g := graph.NewGraph()
	leave := graph.NewAnnotatedNode("<leave>")
	raise := graph.NewAnnotatedNode("<raise>")
	MustErrorNil(t, g.AddNode(leave, nil), "AddNode(leave)")
	MustErrorNil(t, g.AddNode(raise, nil), "AddNode(raise)")

	stmt := graph.NewNode()
	MustErrorNil(t, g.AddNode(stmt, map[graph.Label]*graph.Node{
		graph.Next:  leave,
		graph.Error: raise,
	}), "AddNode(stmt)")

	for _, target := range []*graph.Node{leave, raise} {
		for _, be := range g.EdgesTo(target) {
			got, ok := g.Edge(be.Source, be.Label)
			if !ok || got != target {
				t.Fatalf("backedge (%v,%v) does not match forward edge", be.Source, be.Label)
			}
		}
	}

	for _, n := range []*graph.Node{stmt, leave, raise} {
		for label := range g.EdgeLabels(n) {
			target, _ := g.Edge(n, label)
			found := false
			for _, be := range g.EdgesTo(target) {
				if be.Source == n && be.Label == label {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("forward edge (%v,%v)->%v missing matching backedge", n, label, target)
			}
		}
	}
}
