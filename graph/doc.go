// Package graph provides the labelled directed multigraph that underlies a
// control-flow graph: a set of Node values, and for each node, a mapping
// from edge Label to target Node.
//
// Conceptually this is very similar to a DFA graph for a regular expression.
// It consists of:
//
//   - a set of nodes
//   - for each node, a set of edge labels
//   - for each node and edge label, a target node
//
// The set of operations that can mutate the graph is deliberately small:
//
//   - a new node can be added, together with edges to existing nodes
//   - an isolated node can be removed
//   - a node with no outgoing edges can be identified with (collapsed onto)
//     another node
//
// Parallel edges with distinct labels, and self-loops arising from collapse,
// are permitted. Nodes are identity tokens (*Node, compared by pointer):
// two Node values are never equal unless they are the same pointer, no
// matter what payloads they carry.
//
// Locking model: muNodes guards the node set, muEdges guards the forward and
// back edge maps. Mutation methods take the write lock for the state they
// touch; query methods take the matching read lock. A Graph under
// construction by a single goroutine (the normal case — see the cfa package)
// never contends; the split exists so that a finished, read-only Graph can
// be traversed by multiple goroutines at once.
package graph
