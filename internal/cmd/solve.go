package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
	"svw.info/patrol/internal/logging"
	"svw.info/patrol/internal/render"
)

var solveCmd = &cobra.Command{
	Use:   "solve [FILE...]",
	Short: "Count visited cells and loop-inducing obstructions",
	Long: `Solve reads one map per file ("-" or no argument reads stdin) and prints
the number of distinct cells the guard visits (part a) and the number of
single-cell obstructions that trap it in a loop (part b).`,
	RunE: runSolve,
}

var (
	solvePart   string // a, b or both
	solveFormat string // text, json or yaml
	solveShow   bool   // draw the map
	solveSave   bool   // persist a report
)

func init() {
	solveCmd.Flags().StringVar(&solvePart, "part", "both", "which answer to print: a|b|both")
	solveCmd.Flags().StringVarP(&solveFormat, "format", "f", "text", "output format: text|json|yaml")
	solveCmd.Flags().BoolVar(&solveShow, "show", false, "draw the map with the path and obstruction spots")
	solveCmd.Flags().BoolVar(&solveSave, "save", false, "save a report to the data directory")
	solveCmd.Flags().String("color", "auto", "map colors: auto|always|never")
	_ = viper.BindPFlag("render.color", solveCmd.Flags().Lookup("color"))
	rootCmd.AddCommand(solveCmd)
}

// solveResult is one file's answers.
type solveResult struct {
	File         string            `json:"file" yaml:"file"`
	Visited      *int              `json:"visited,omitempty" yaml:"visited,omitempty"`
	Obstructions *int              `json:"obstructions,omitempty" yaml:"obstructions,omitempty"`
	Loops        []domain.Position `json:"loops,omitempty" yaml:"loops,omitempty"`
	ReportID     string            `json:"reportId,omitempty" yaml:"report_id,omitempty"`

	path []domain.Position
	grid string
}

func runSolve(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	wantA, wantB, err := parsePart(solvePart)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	results := make([]solveResult, 0, len(args))
	for _, name := range args {
		text, err := readInput(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}
		res, err := a.solveOne(name, text, wantA, wantB)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, res)
	}
	return a.writeResults(cmd.OutOrStdout(), results)
}

func parsePart(p string) (a, b bool, err error) {
	switch strings.ToLower(p) {
	case "a", "1":
		return true, false, nil
	case "b", "2":
		return false, true, nil
	case "both", "":
		return true, true, nil
	}
	return false, false, fmt.Errorf("unknown part %q (want a, b or both)", p)
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}

func (a *app) solveOne(name, text string, wantA, wantB bool) (solveResult, error) {
	logger := logging.FromContext(a.ctx)
	res := solveResult{File: name, grid: text}

	if wantA {
		out, st, err := a.svc.Patrol(a.ctx, text)
		if err != nil {
			return res, err
		}
		n := len(out.Visited)
		res.Visited, res.path = &n, out.Visited
		logger.Debug("patrol done", "file", name, "visited", n, "steps", st.Steps, "dur", st.Duration.Round(time.Microsecond))
	}
	if wantB {
		loops, st, err := a.svc.Obstructions(a.ctx, text)
		if err != nil {
			return res, err
		}
		n := len(loops)
		res.Obstructions, res.Loops = &n, loops
		logger.Debug("obstructions done", "file", name, "count", n, "trials", st.Trials, "dur", st.Duration.Round(time.Millisecond))
	}
	if solveSave {
		rep, err := a.svc.Solve(a.ctx, filepath.Base(name), text)
		if err != nil {
			return res, err
		}
		rep.CreatedAt = time.Now().UnixNano()
		rep.ID = strconv.FormatInt(rep.CreatedAt, 10)
		if err := a.svc.Save(a.ctx, rep); err != nil {
			return res, fmt.Errorf("save report: %w", err)
		}
		res.ReportID = rep.ID
		logger.Info("report saved", "id", rep.ID, "dir", a.cfg.Storage.Dir)
	}
	return res, nil
}

func (a *app) writeResults(w io.Writer, results []solveResult) error {
	switch strings.ToLower(solveFormat) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", solveFormat)
	}

	color := render.ColorEnabled(a.cfg.Render.Color, w)
	for _, r := range results {
		prefix := ""
		if len(results) > 1 {
			prefix = r.File + ": "
		}
		if r.Visited != nil {
			fmt.Fprintf(w, "%s%d\n", prefix, *r.Visited)
		}
		if r.Obstructions != nil {
			fmt.Fprintf(w, "%s%d\n", prefix, *r.Obstructions)
		}
		if solveShow {
			g, err := grid.Parse(r.grid)
			if err != nil {
				return err
			}
			fmt.Fprint(w, render.Map(g, r.path, r.Loops, color))
		}
	}
	return nil
}
