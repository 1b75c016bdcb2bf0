package cfa

import "github.com/katalvlaran/cfa/graph"

// walker encapsulates mutable breadth-first traversal state over a
// constructed Analysis's graph, keyed by node identity rather than by a
// string vertex ID.
type walker struct {
	a       *Analysis
	queue   []*graph.Node
	visited map[*graph.Node]bool
}

// Reachable returns the set of nodes reachable from r.EntryNode by
// following any out-edge regardless of label. This is the traversal the
// package's own tests use to confirm every node a construction pass adds is
// actually wired into the graph; it is exported because a caller building
// an unreachable-code detector on top of Analysis needs the same walk.
func (r *Analysis) Reachable() map[*graph.Node]bool {
	w := &walker{
		a:       r,
		queue:   []*graph.Node{r.EntryNode},
		visited: map[*graph.Node]bool{r.EntryNode: true},
	}
	w.loop()
	return w.visited
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		n := w.queue[0]
		w.queue = w.queue[1:]
		for label := range w.a.EdgeLabels(n) {
			target, ok := w.a.Edge(n, label)
			if !ok || w.visited[target] {
				continue
			}
			w.visited[target] = true
			w.queue = append(w.queue, target)
		}
	}
}
