package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"svw.info/patrol/internal/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a random patrol map",
	RunE:  runGenerate,
}

var (
	genWidth   int
	genHeight  int
	genDensity float64
	genSeed    int64
)

func init() {
	generateCmd.Flags().IntVar(&genWidth, "width", 10, "map width")
	generateCmd.Flags().IntVar(&genHeight, "height", 10, "map height")
	generateCmd.Flags().Float64Var(&genDensity, "density", 0.1, "obstacle probability per cell, in [0,1)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = time based)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, _, err := a.svc.Generate(a.ctx, seed, domain.GenerateOptions{
		Width:   genWidth,
		Height:  genHeight,
		Density: genDensity,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), g.String())
	return err
}
