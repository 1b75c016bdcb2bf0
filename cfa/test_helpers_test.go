package cfa_test

import (
	"testing"

	"github.com/katalvlaran/cfa/graph"
)

// mustReach fails the test unless target is in nodes, a reachable set as
// returned by Analysis.Reachable.
func mustReach(t *testing.T, nodes map[*graph.Node]bool, target *graph.Node, context string) {
	t.Helper()
	if !nodes[target] {
		t.Fatalf("%s: expected %v to be reachable", context, target)
	}
}

// mustNotCarryAnnotation fails the test if any exposed node still carries
// the given synthetic annotation; pruned terminals must leave no trace.
func mustNotCarryAnnotation(t *testing.T, nodes []*graph.Node, annotation string, context string) {
	t.Helper()
	for _, n := range nodes {
		if n.Annotation == annotation {
			t.Fatalf("%s: expected %s node to have been pruned, but it is still present", context, annotation)
		}
	}
}
