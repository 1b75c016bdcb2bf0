// File: methods.go
// Role: the three graph mutators — AddNode, RemoveNode, CollapseNode — the
// complete set of operations that may change graph topology. See doc.go for
// why the vocabulary is deliberately this small.
package graph

import "fmt"

// AddNode inserts n into the graph, together with edges to already-present
// target nodes.
//
// Steps:
//  1. Reject a node already present (ErrDuplicateNode).
//  2. Validate every (label, target) pair: target == n is ErrSelfLoopInAdd,
//     a target not in the graph is ErrMissingTarget. Nothing is mutated
//     until the whole edge set has passed. Duplicate labels cannot occur:
//     the edge-set type is a map keyed by label.
//  3. Register n and link each forward edge with its matching back-edge.
//
// Complexity: O(len(edges)). Concurrency: write lock on muNodes and muEdges.
func (g *Graph) AddNode(n *Node, edges map[Label]*Node) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if _, exists := g.nodes[n]; exists {
		return fmt.Errorf("AddNode: %w", ErrDuplicateNode)
	}
	for label, target := range edges {
		if target == n {
			return fmt.Errorf("AddNode: edge %q: %w", label, ErrSelfLoopInAdd)
		}
		if _, ok := g.nodes[target]; !ok {
			return fmt.Errorf("AddNode: target for edge %q: %w", label, ErrMissingTarget)
		}
	}

	g.nodes[n] = struct{}{}
	g.edges[n] = make(map[Label]*Node, len(edges))
	if _, ok := g.backedges[n]; !ok {
		g.backedges[n] = make(map[backedge]struct{})
	}
	for label, target := range edges {
		g.edges[n][label] = target
		if _, ok := g.backedges[target]; !ok {
			g.backedges[target] = make(map[backedge]struct{})
		}
		g.backedges[target][backedge{source: n, label: label}] = struct{}{}
	}

	return nil
}

// RemoveNode deletes an isolated node — one with no forward edges and no
// back edges. Used to prune synthetic terminal nodes that ended up with no
// predecessors once analysis has finished.
//
// Complexity: O(1). Concurrency: write lock on muNodes and muEdges.
func (g *Graph) RemoveNode(n *Node) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if _, ok := g.nodes[n]; !ok {
		return fmt.Errorf("RemoveNode: %w", ErrNotPresent)
	}
	if len(g.edges[n]) > 0 {
		return fmt.Errorf("RemoveNode: has forward edges: %w", ErrNotIsolated)
	}
	if len(g.backedges[n]) > 0 {
		return fmt.Errorf("RemoveNode: has back edges: %w", ErrNotIsolated)
	}

	delete(g.nodes, n)
	delete(g.edges, n)
	delete(g.backedges, n)

	return nil
}

// CollapseNode rewrites every incoming edge of dummy to target instead, then
// removes dummy. dummy must have no outgoing edges. This is the sole
// mechanism by which a cycle can be introduced into the graph — see the
// loop-closing use in the cfa package.
//
// Steps:
//  1. Validate both nodes present, dummy has no outward edges, dummy != target.
//  2. For each (source, label) -> dummy back-edge: redirect it to target.
//  3. Remove dummy (now isolated).
//
// Complexity: O(in-degree of dummy). Concurrency: write lock on muNodes and
// muEdges for the whole operation, so the rewrite is atomic with respect to
// readers.
func (g *Graph) CollapseNode(dummy, target *Node) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.muEdges.Lock()
	defer g.muEdges.Unlock()

	if _, ok := g.nodes[dummy]; !ok {
		return fmt.Errorf("CollapseNode: dummy: %w", ErrNotPresent)
	}
	if _, ok := g.nodes[target]; !ok {
		return fmt.Errorf("CollapseNode: target: %w", ErrNotPresent)
	}
	if len(g.edges[dummy]) > 0 {
		return fmt.Errorf("CollapseNode: %w", ErrDummyHasEdges)
	}
	if dummy == target {
		return fmt.Errorf("CollapseNode: %w", ErrCollapseSelf)
	}

	for be := range g.backedges[dummy] {
		delete(g.edges[be.source], be.label)
		g.edges[be.source][be.label] = target
		if _, ok := g.backedges[target]; !ok {
			g.backedges[target] = make(map[backedge]struct{})
		}
		g.backedges[target][backedge{source: be.source, label: be.label}] = struct{}{}
	}

	delete(g.nodes, dummy)
	delete(g.edges, dummy)
	delete(g.backedges, dummy)

	return nil
}
