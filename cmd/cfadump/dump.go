package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfa/ast"
	"github.com/katalvlaran/cfa/cfa"
	"github.com/katalvlaran/cfa/graph"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <fixture.json>",
		Short: "Build a module's control-flow graph and print its nodes and edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			module, err := loadModule(args[0])
			if err != nil {
				return err
			}
			analysis, err := cfa.AnalyseModule(module)
			if err != nil {
				return fmt.Errorf("cfadump: analyse %s: %w", args[0], err)
			}
			dbg.Printf("analysed %s: %d node(s)", args[0], len(analysis.Nodes()))
			return printAnalysis(cmd, analysis, cfg)
		},
	}
	return cmd
}

// dumpLabelOrder fixes the order edges are visited and printed in, so two
// runs over the same fixture always produce the same dump.
var dumpLabelOrder = []graph.Label{graph.Next, graph.Enter, graph.Else, graph.Error}

// orderedNodes returns every node of the analysis in a deterministic order:
// a depth-first walk from EntryNode following edges in dumpLabelOrder, then
// any nodes the walk did not reach (the <start> node, dead branches kept for
// coverage), sorted by AST line, annotation and type name.
func orderedNodes(analysis *cfa.Analysis) []*graph.Node {
	var out []*graph.Node
	seen := make(map[*graph.Node]bool)

	var visit func(n *graph.Node)
	visit = func(n *graph.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
		for _, label := range dumpLabelOrder {
			if target, ok := analysis.Edge(n, label); ok {
				visit(target)
			}
		}
	}
	visit(analysis.EntryNode)

	var rest []*graph.Node
	for _, n := range analysis.Nodes() {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if a, b := nodeSortLine(rest[i]), nodeSortLine(rest[j]); a != b {
			return a < b
		}
		return nodeLabel(rest[i]) < nodeLabel(rest[j])
	})
	return append(out, rest...)
}

func nodeSortLine(n *graph.Node) int {
	if ref, ok := n.ASTRef.(ast.Node); ok {
		return ref.Line()
	}
	return 0
}

func printAnalysis(cmd *cobra.Command, analysis *cfa.Analysis, cfg Config) error {
	nodes := orderedNodes(analysis)
	index := make(map[*graph.Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	if cfg.Format == "json" {
		return printAnalysisJSON(cmd, analysis, cfg, nodes, index)
	}

	for i, n := range nodes {
		if !cfg.IncludeSynthetic && n.ASTRef == nil {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", i, nodeLabel(n))
		for _, label := range dumpLabelOrder {
			if target, ok := analysis.Edge(n, label); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s -> #%d\n", label, index[target])
			}
		}
	}
	return nil
}

// nodeDump is the JSON shape of one dumped node. Edge map keys are the edge
// labels; encoding/json sorts map keys, so the output stays deterministic.
type nodeDump struct {
	ID    int            `json:"id"`
	Label string         `json:"label"`
	Line  int            `json:"line,omitempty"`
	Edges map[string]int `json:"edges,omitempty"`
}

func printAnalysisJSON(cmd *cobra.Command, analysis *cfa.Analysis, cfg Config, nodes []*graph.Node, index map[*graph.Node]int) error {
	dump := make([]nodeDump, 0, len(nodes))
	for i, n := range nodes {
		if !cfg.IncludeSynthetic && n.ASTRef == nil {
			continue
		}
		d := nodeDump{ID: i, Label: nodeLabel(n), Line: nodeSortLine(n)}
		for _, label := range dumpLabelOrder {
			if target, ok := analysis.Edge(n, label); ok {
				if d.Edges == nil {
					d.Edges = make(map[string]int)
				}
				d.Edges[string(label)] = index[target]
			}
		}
		dump = append(dump, d)
	}
	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("cfadump: encode dump: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func nodeLabel(n *graph.Node) string {
	if n.Annotation != "" {
		return n.Annotation
	}
	if n.ASTRef != nil {
		return fmt.Sprintf("%T", n.ASTRef)
	}
	return "<dummy>"
}
