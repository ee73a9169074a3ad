package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
	"svw.info/patrol/internal/ports"
)

// RandomGenerator scatters obstacles uniformly and drops the guard on a
// random open cell facing a random direction.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator { return &RandomGenerator{} }

// Generate builds a map from seed. The same seed and options always produce
// the same map.
func (g *RandomGenerator) Generate(ctx context.Context, seed int64, opts domain.GenerateOptions) (*grid.Grid, ports.Stats, error) {
	start := time.Now()
	if opts.Width < 1 || opts.Height < 1 {
		return nil, ports.Stats{}, fmt.Errorf("%w: size %dx%d", domain.ErrMalformedGrid, opts.Width, opts.Height)
	}
	if opts.Density < 0 || opts.Density >= 1 {
		return nil, ports.Stats{}, fmt.Errorf("density %v out of range [0,1)", opts.Density)
	}
	rng := rand.New(rand.NewSource(seed))

	cells := make([][]byte, opts.Height)
	var open []domain.Position
	for y := range cells {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{}, err
		}
		row := make([]byte, opts.Width)
		for x := range row {
			if rng.Float64() < opts.Density {
				row[x] = '#'
				continue
			}
			row[x] = '.'
			open = append(open, domain.Position{X: x, Y: y})
		}
		cells[y] = row
	}
	// a map with no open cell still needs somewhere to stand
	if len(open) == 0 {
		p := domain.Position{X: rng.Intn(opts.Width), Y: rng.Intn(opts.Height)}
		open = append(open, p)
	}
	at := open[rng.Intn(len(open))]
	cells[at.Y][at.X] = domain.Directions[rng.Intn(len(domain.Directions))].Glyph()

	var sb strings.Builder
	for _, row := range cells {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	out, err := grid.Parse(sb.String())
	if err != nil {
		return nil, ports.Stats{}, err
	}
	return out, ports.Stats{Duration: time.Since(start)}, nil
}
