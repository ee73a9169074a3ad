package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/patrol/internal/domain"
)

const batch = `
scenario "inline" {
  grid = <<EOT
..#
.^.
EOT
  expect_visited = 2
}

scenario "from-file" {
  file                = "edge.txt"
  expect_visited      = 1
  expect_obstructions = 0
}
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edge.txt"), []byte("^..\n...\n"), 0o644))
	path := filepath.Join(dir, "batch.hcl")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o644))

	got, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "inline", got[0].Name)
	assert.Equal(t, "..#\n.^.\n", got[0].Grid)
	require.NotNil(t, got[0].ExpectVisited)
	assert.Equal(t, 2, *got[0].ExpectVisited)
	assert.Nil(t, got[0].ExpectObstructions)

	assert.Equal(t, "from-file", got[1].Name)
	assert.Equal(t, "^..\n...\n", got[1].Grid)
	assert.Equal(t, 0, *got[1].ExpectObstructions)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":    `scenario "x" {`,
		"no source": `scenario "x" {}`,
		"both": `scenario "x" {
  grid = "^"
  file = "a.txt"
}`,
		"duplicate": `scenario "x" { grid = "^" }
scenario "x" { grid = "^" }`,
		"missing file": `scenario "x" { file = "nope.txt" }`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(src), "test.hcl", t.TempDir())
			assert.Error(t, err)
		})
	}
}

type fakeSolver map[string]*domain.Report

func (f fakeSolver) Solve(_ context.Context, name, _ string) (*domain.Report, error) {
	if r, ok := f[name]; ok {
		return r, nil
	}
	return nil, domain.ErrMissingStart
}

func TestRun(t *testing.T) {
	one, six := 1, 6
	scenarios := []Scenario{
		{Name: "ok", ExpectVisited: &one},
		{Name: "wrong", ExpectObstructions: &six},
		{Name: "broken"},
	}
	solver := fakeSolver{
		"ok":    {Visited: 1},
		"wrong": {Visited: 41, Obstructions: 5},
	}

	res := Run(context.Background(), solver, scenarios)
	require.Len(t, res, 3)
	assert.True(t, res[0].Passed())
	assert.False(t, res[1].Passed())
	assert.Equal(t, []string{"obstructions = 5, want 6"}, res[1].Mismatch)
	assert.False(t, res[2].Passed())
	assert.True(t, errors.Is(res[2].Err, domain.ErrMissingStart))
}
