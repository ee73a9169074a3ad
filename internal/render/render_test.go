package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
)

func TestMapPlain(t *testing.T) {
	g, err := grid.Parse(".#.\n.^#\n...")
	require.NoError(t, err)

	visited := []domain.Position{{X: 1, Y: 1}, {X: 1, Y: 2}}
	loops := []domain.Position{{X: 0, Y: 0}}
	got := Map(g, visited, loops, false)
	assert.Equal(t, "O#.\n.^#\n.X.\n", got)
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ColorEnabled("always", &buf))
	assert.False(t, ColorEnabled("never", &buf))
	assert.False(t, ColorEnabled("auto", &buf), "a buffer is not a terminal")
}
