package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfa/lint"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <fixture.json>",
		Short: "Report redundant return statements in every top-level function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := loadModule(args[0])
			if err != nil {
				return err
			}
			fns := topLevelFunctions(module)
			if len(fns) == 0 {
				warn.Printf("%s: no top-level function definitions found", args[0])
			}
			total := 0
			for _, fn := range fns {
				diags, err := lint.CheckFunction(fn)
				if err != nil {
					return fmt.Errorf("cfadump: analyse %s: %w", fn.FuncName(), err)
				}
				for _, d := range diags {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s (%s)\n", args[0], d.Line, d.Message, fn.FuncName())
					total++
				}
			}
			dbg.Printf("%d diagnostic(s) across %d function(s)", total, len(fns))
			return nil
		},
	}
	return cmd
}
