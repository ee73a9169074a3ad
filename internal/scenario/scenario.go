// Package scenario loads batches of named patrol maps from HCL files and
// checks their answers against optional expectations.
//
// A file holds any number of scenario blocks:
//
//	scenario "example" {
//	  file                = "maps/example.txt"
//	  expect_visited      = 41
//	  expect_obstructions = 6
//	}
//
//	scenario "inline" {
//	  grid = <<EOT
//	..#
//	.^.
//	EOT
//	}
//
// Exactly one of file or grid must be set; relative file paths resolve
// against the directory of the HCL file.
package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/logging"
)

// Scenario is one named map with optional expected answers.
type Scenario struct {
	Name               string
	Grid               string
	ExpectVisited      *int
	ExpectObstructions *int
}

type block struct {
	Name               string  `hcl:"name,label"`
	File               *string `hcl:"file,optional"`
	Grid               *string `hcl:"grid,optional"`
	ExpectVisited      *int    `hcl:"expect_visited,optional"`
	ExpectObstructions *int    `hcl:"expect_obstructions,optional"`
}

type fileRoot struct {
	Scenarios []*block `hcl:"scenario,block"`
	Remain    hcl.Body `hcl:",remain"`
}

// LoadFile parses the HCL file at path.
func LoadFile(ctx context.Context, path string) ([]Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, src, path, filepath.Dir(path))
}

// Parse decodes HCL source. filename is used in diagnostics; baseDir
// anchors relative file attributes.
func Parse(ctx context.Context, src []byte, filename, baseDir string) ([]Scenario, error) {
	logger := logging.FromContext(ctx)

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	seen := make(map[string]bool, len(root.Scenarios))
	out := make([]Scenario, 0, len(root.Scenarios))
	for _, b := range root.Scenarios {
		if seen[b.Name] {
			return nil, fmt.Errorf("%s: duplicate scenario %q", filename, b.Name)
		}
		seen[b.Name] = true

		s := Scenario{Name: b.Name, ExpectVisited: b.ExpectVisited, ExpectObstructions: b.ExpectObstructions}
		switch {
		case b.File != nil && b.Grid != nil:
			return nil, fmt.Errorf("scenario %q: set either file or grid, not both", b.Name)
		case b.Grid != nil:
			s.Grid = *b.Grid
		case b.File != nil:
			p := *b.File
			if !filepath.IsAbs(p) {
				p = filepath.Join(baseDir, p)
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", b.Name, err)
			}
			s.Grid = string(data)
		default:
			return nil, fmt.Errorf("scenario %q: file or grid is required", b.Name)
		}
		out = append(out, s)
	}
	logger.Debug("scenarios loaded", "file", filename, "count", len(out))
	return out, nil
}

// Solver answers both patrol questions for a map.
type Solver interface {
	Solve(ctx context.Context, name, text string) (*domain.Report, error)
}

// Result pairs a scenario with its report and any mismatch.
type Result struct {
	Scenario Scenario
	Report   *domain.Report
	Err      error
	Mismatch []string
}

// Passed reports whether the scenario solved and met its expectations.
func (r Result) Passed() bool { return r.Err == nil && len(r.Mismatch) == 0 }

// Run solves each scenario in order. It stops early only when ctx is done.
func Run(ctx context.Context, s Solver, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			results = append(results, Result{Scenario: sc, Err: ctx.Err()})
			continue
		}
		rep, err := s.Solve(ctx, sc.Name, sc.Grid)
		res := Result{Scenario: sc, Report: rep, Err: err}
		if err == nil {
			if sc.ExpectVisited != nil && *sc.ExpectVisited != rep.Visited {
				res.Mismatch = append(res.Mismatch, fmt.Sprintf("visited = %d, want %d", rep.Visited, *sc.ExpectVisited))
			}
			if sc.ExpectObstructions != nil && *sc.ExpectObstructions != rep.Obstructions {
				res.Mismatch = append(res.Mismatch, fmt.Sprintf("obstructions = %d, want %d", rep.Obstructions, *sc.ExpectObstructions))
			}
		}
		results = append(results, res)
	}
	return results
}
