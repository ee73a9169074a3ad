package patrol

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
	"svw.info/patrol/internal/logging"
	"svw.info/patrol/internal/ports"
)

// Enumerator counts single-cell obstructions that turn an exiting patrol into
// a loop. Trials share the base grid read-only and run in parallel.
type Enumerator struct {
	Simulator ports.Simulator
	Strategy  domain.Strategy
	Workers   int // <= 0 means GOMAXPROCS
}

// NewEnumerator wires an enumerator around the given simulator.
func NewEnumerator(sim ports.Simulator, strategy domain.Strategy, workers int) *Enumerator {
	return &Enumerator{Simulator: sim, Strategy: strategy, Workers: workers}
}

// Candidates lists the cells an obstruction may be placed on. The start cell
// is never a candidate. With StrategyPath only cells the unobstructed guard
// walks into are proposed, in the order it first reaches them; an obstruction
// anywhere else is never touched before the guard would leave.
func (e *Enumerator) Candidates(g *grid.Grid, start domain.GuardState, baseline domain.Outcome) []domain.Position {
	if e.Strategy == domain.StrategyBrute {
		open := g.OpenCells()
		out := open[:0]
		for _, p := range open {
			if p != start.Pos {
				out = append(out, p)
			}
		}
		return out
	}
	out := make([]domain.Position, 0, len(baseline.Visited))
	for _, p := range baseline.Visited {
		if p != start.Pos {
			out = append(out, p)
		}
	}
	return out
}

// Enumerate returns the loop-inducing obstruction positions in candidate order.
// It fails with domain.ErrNoExit when the guard loops without any added
// obstruction.
func (e *Enumerator) Enumerate(ctx context.Context, g *grid.Grid, start domain.GuardState) ([]domain.Position, ports.Stats, error) {
	return e.EnumerateFrom(ctx, g, start, e.Simulator.Simulate(g, start))
}

// EnumerateFrom is Enumerate with the unobstructed outcome already computed.
func (e *Enumerator) EnumerateFrom(ctx context.Context, g *grid.Grid, start domain.GuardState, baseline domain.Outcome) ([]domain.Position, ports.Stats, error) {
	begin := time.Now()
	logger := logging.FromContext(ctx)

	if baseline.Looped() {
		return nil, ports.Stats{Steps: baseline.Steps, Duration: time.Since(begin)}, domain.ErrNoExit
	}
	cands := e.Candidates(g, start, baseline)

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger.Debug("enumerating obstructions",
		"strategy", e.Strategy,
		"candidates", len(cands),
		"workers", workers,
	)

	hits := make([]bool, len(cands))
	steps := make([]int, len(cands))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range cands {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out := e.Simulator.Simulate(g.WithOverride(c, domain.Blocked), start)
			hits[i] = out.Looped()
			steps[i] = out.Steps
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, ports.Stats{Trials: len(cands), Duration: time.Since(begin)}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ports.Stats{Trials: len(cands), Duration: time.Since(begin)}, err
	}

	st := ports.Stats{Steps: baseline.Steps, Trials: len(cands)}
	var loops []domain.Position
	for i, hit := range hits {
		st.Steps += steps[i]
		if hit {
			loops = append(loops, cands[i])
		}
	}
	st.Duration = time.Since(begin)
	logger.Debug("enumeration done", "loops", len(loops), "dur", st.Duration.Round(time.Millisecond))
	return loops, st, nil
}
