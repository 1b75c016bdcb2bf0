// Command cfadump loads a JSON AST fixture, builds its control-flow graph,
// and either dumps the graph as text or JSON or runs the redundant-return
// lint over every top-level function the fixture defines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfadump",
		Short: "Inspect control-flow graphs built from JSON AST fixtures",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a cfadump.yaml config file")
	root.AddCommand(newDumpCmd(), newLintCmd())
	return root
}
