// File: errors.go
// Role: sentinel errors for the graph package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are never wrapped with formatted strings at definition site.
//   - AddNode/RemoveNode/CollapseNode attach call-site context with
//     fmt.Errorf("...: %w", ...) at the point of failure.
package graph

import "errors"

// ErrDuplicateNode indicates AddNode was called with a node already present
// in the graph.
// Usage: if errors.Is(err, ErrDuplicateNode) { /* node already built */ }.
var ErrDuplicateNode = errors.New("graph: node already present")

// ErrMissingTarget indicates AddNode was given an edge target that is not
// yet a member of the graph.
// Usage: if errors.Is(err, ErrMissingTarget) { /* add target node first */ }.
var ErrMissingTarget = errors.New("graph: edge target not present")

// ErrSelfLoopInAdd indicates AddNode was given an edge whose target is the
// node being added. Self-loops may only arise later, via CollapseNode.
// Usage: if errors.Is(err, ErrSelfLoopInAdd) { /* route through a dummy node */ }.
var ErrSelfLoopInAdd = errors.New("graph: self-loop not allowed in AddNode")

// ErrNotPresent indicates RemoveNode or CollapseNode referenced a node that
// is not a member of the graph.
// Usage: if errors.Is(err, ErrNotPresent) { /* stale node reference */ }.
var ErrNotPresent = errors.New("graph: node not present")

// ErrNotIsolated indicates RemoveNode was called on a node that still has
// forward or back edges.
// Usage: if errors.Is(err, ErrNotIsolated) { /* remove edges first */ }.
var ErrNotIsolated = errors.New("graph: node is not isolated")

// ErrDummyHasEdges indicates CollapseNode was asked to collapse a node that
// has outgoing edges of its own; only true dummy (edge-less) nodes may be
// collapsed.
// Usage: if errors.Is(err, ErrDummyHasEdges) { /* the wrong node was passed */ }.
var ErrDummyHasEdges = errors.New("graph: dummy node has outward edges")

// ErrCollapseSelf indicates CollapseNode was asked to collapse a node onto
// itself.
// Usage: if errors.Is(err, ErrCollapseSelf) { /* dummy and target must differ */ }.
var ErrCollapseSelf = errors.New("graph: dummy and target must be distinct")
