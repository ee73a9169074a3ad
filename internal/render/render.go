// Package render draws a patrol map for terminals.
package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
)

// Glyphs used on top of the raw map.
const (
	VisitedGlyph     = 'X'
	ObstructionGlyph = 'O'
)

// Styles colours each kind of cell.
type Styles struct {
	Obstacle    lipgloss.Style
	Visited     lipgloss.Style
	Start       lipgloss.Style
	Obstruction lipgloss.Style
	Open        lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Obstacle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Visited:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
		Start:       lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		Obstruction: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		Open:        lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	}
}

// ColorEnabled resolves a render.color setting of auto, always or never
// against the writer the map will be printed to.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Map draws g with the visited path marked X and loop-inducing obstruction
// spots marked O. The start marker is kept as is.
func Map(g *grid.Grid, visited, loops []domain.Position, color bool) string {
	styles := DefaultStyles()
	w, h := g.Bounds()
	overlay := make(map[domain.Position]rune, len(visited)+len(loops))
	for _, p := range visited {
		overlay[p] = VisitedGlyph
	}
	for _, p := range loops {
		overlay[p] = ObstructionGlyph
	}
	start, hasStart := g.FindStart()

	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := domain.Position{X: x, Y: y}
			ch, style := rune(g.Glyph(p)), styles.Open
			switch {
			case hasStart && p == start.Pos:
				style = styles.Start
			case g.At(p) == domain.Blocked:
				style = styles.Obstacle
			case overlay[p] == ObstructionGlyph:
				ch, style = ObstructionGlyph, styles.Obstruction
			case overlay[p] == VisitedGlyph:
				ch, style = VisitedGlyph, styles.Visited
			}
			if color {
				sb.WriteString(style.Render(string(ch)))
			} else {
				sb.WriteRune(ch)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
