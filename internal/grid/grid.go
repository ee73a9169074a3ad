// Package grid holds the immutable patrol map and cheap single-cell override
// views used for obstruction trials.
package grid

import (
	"strings"

	"svw.info/patrol/internal/domain"
)

// View is a read-only map the simulator walks. Callers must check Contains
// before calling At.
type View interface {
	Bounds() (width, height int)
	Contains(p domain.Position) bool
	At(p domain.Position) domain.CellKind
	WithOverride(p domain.Position, k domain.CellKind) View
}

// Grid is a rectangular map of glyphs. It is never mutated after Parse.
type Grid struct {
	width  int
	height int
	cells  []byte // row-major, width*height
}

// Bounds returns the effective width and height.
func (g *Grid) Bounds() (int, int) { return g.width, g.height }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p domain.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// At returns the kind of the cell at p. It panics when p is out of range.
func (g *Grid) At(p domain.Position) domain.CellKind {
	if g.glyph(p) == '#' {
		return domain.Blocked
	}
	return domain.Open
}

// Glyph returns the raw character at p.
func (g *Grid) Glyph(p domain.Position) byte { return g.glyph(p) }

func (g *Grid) glyph(p domain.Position) byte {
	if !g.Contains(p) {
		panic("grid: position " + p.String() + " out of range")
	}
	return g.cells[p.Y*g.width+p.X]
}

// WithOverride returns a view identical to g except for one cell.
func (g *Grid) WithOverride(p domain.Position, k domain.CellKind) View {
	return Override{base: g, pos: p, kind: k}
}

// FindStart scans row-major for the first direction marker.
func (g *Grid) FindStart() (domain.GuardState, bool) {
	for i, c := range g.cells {
		if d, ok := domain.DirectionFromGlyph(c); ok {
			return domain.GuardState{
				Pos: domain.Position{X: i % g.width, Y: i / g.width},
				Dir: d,
			}, true
		}
	}
	return domain.GuardState{}, false
}

// OpenCells returns every open position in row-major order.
func (g *Grid) OpenCells() []domain.Position {
	out := make([]domain.Position, 0, len(g.cells))
	for i, c := range g.cells {
		if c != '#' {
			out = append(out, domain.Position{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// String renders the grid back to text, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		sb.Write(g.cells[y*g.width : (y+1)*g.width])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Override is a View that replaces the kind of one cell of an underlying view.
type Override struct {
	base View
	pos  domain.Position
	kind domain.CellKind
}

func (o Override) Bounds() (int, int) { return o.base.Bounds() }

func (o Override) Contains(p domain.Position) bool { return o.base.Contains(p) }

func (o Override) At(p domain.Position) domain.CellKind {
	if p == o.pos {
		return o.kind
	}
	return o.base.At(p)
}

func (o Override) WithOverride(p domain.Position, k domain.CellKind) View {
	return Override{base: o, pos: p, kind: k}
}
