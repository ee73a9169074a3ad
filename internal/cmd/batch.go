package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/patrol/internal/scenario"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE.hcl",
	Short: "Solve every scenario in an HCL file and check expectations",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	scenarios, err := scenario.LoadFile(a.ctx, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failed := 0
	for _, res := range scenario.Run(a.ctx, a.svc, scenarios) {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", res.Scenario.Name, res.Err)
		case len(res.Mismatch) > 0:
			failed++
			fmt.Fprintf(w, "FAIL %s: %s\n", res.Scenario.Name, strings.Join(res.Mismatch, "; "))
		default:
			fmt.Fprintf(w, "ok   %s: visited=%d obstructions=%d\n",
				res.Scenario.Name, res.Report.Visited, res.Report.Obstructions)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	return nil
}
