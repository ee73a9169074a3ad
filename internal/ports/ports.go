package ports

import (
	"context"
	"time"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Steps    int
	Trials   int
	Duration time.Duration
}

// Simulator walks the patrol rule over a view until the guard exits or loops.
type Simulator interface {
	Simulate(v grid.View, start domain.GuardState) domain.Outcome
}

// Enumerator finds the single-cell obstructions that trap the guard in a loop.
type Enumerator interface {
	Enumerate(ctx context.Context, g *grid.Grid, start domain.GuardState) (loops []domain.Position, st Stats, err error)
	// EnumerateFrom reuses an unobstructed outcome the caller already has.
	EnumerateFrom(ctx context.Context, g *grid.Grid, start domain.GuardState, baseline domain.Outcome) (loops []domain.Position, st Stats, err error)
}

// Generator creates random patrol maps.
type Generator interface {
	Generate(ctx context.Context, seed int64, opts domain.GenerateOptions) (*grid.Grid, Stats, error)
}

// Validator reports non-fatal problems in raw grid text.
type Validator interface {
	Validate(ctx context.Context, text string) (ok bool, issues []domain.Issue, err error)
}

// Storage persists and retrieves reports as JSON.
type Storage interface {
	Save(ctx context.Context, r *domain.Report) error
	Load(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context) ([]domain.ReportMeta, error)
}
