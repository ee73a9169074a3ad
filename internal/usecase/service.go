package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
	"svw.info/patrol/internal/ports"
)

type Service struct {
	Simulator  ports.Simulator
	Enumerator ports.Enumerator
	Generator  ports.Generator
	Validator  ports.Validator
	Storage    ports.Storage
	Strategy   domain.Strategy
}

func NewService(sim ports.Simulator, e ports.Enumerator, g ports.Generator, v ports.Validator, st ports.Storage) *Service {
	return &Service{Simulator: sim, Enumerator: e, Generator: g, Validator: v, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Load parses map text and locates the guard.
func Load(text string) (*grid.Grid, domain.GuardState, error) {
	g, err := grid.Parse(text)
	if err != nil {
		return nil, domain.GuardState{}, err
	}
	start, ok := g.FindStart()
	if !ok {
		return nil, domain.GuardState{}, domain.ErrMissingStart
	}
	return g, start, nil
}

// Patrol runs the unobstructed guard and returns the exit outcome.
func (u *Service) Patrol(ctx context.Context, text string) (domain.Outcome, ports.Stats, error) {
	if u.Simulator == nil {
		return domain.Outcome{}, ports.Stats{}, errNotConfigured
	}
	begin := time.Now()
	g, start, err := Load(text)
	if err != nil {
		return domain.Outcome{}, ports.Stats{}, err
	}
	out := u.Simulator.Simulate(g, start)
	stats := ports.Stats{Steps: out.Steps, Duration: time.Since(begin)}
	if out.Looped() {
		return out, stats, domain.ErrNoExit
	}
	return out, stats, nil
}

// Obstructions returns the positions where one extra obstacle traps the guard.
func (u *Service) Obstructions(ctx context.Context, text string) ([]domain.Position, ports.Stats, error) {
	if u.Enumerator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	g, start, err := Load(text)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	return u.Enumerator.Enumerate(ctx, g, start)
}

// Solve answers both questions and packs them into a report.
func (u *Service) Solve(ctx context.Context, name, text string) (*domain.Report, error) {
	if u.Simulator == nil || u.Enumerator == nil {
		return nil, errNotConfigured
	}
	begin := time.Now()
	g, start, err := Load(text)
	if err != nil {
		return nil, err
	}
	out := u.Simulator.Simulate(g, start)
	if out.Looped() {
		return nil, domain.ErrNoExit
	}
	loops, st, err := u.Enumerator.EnumerateFrom(ctx, g, start, out)
	if err != nil {
		return nil, fmt.Errorf("enumerate obstructions: %w", err)
	}
	w, h := g.Bounds()
	return &domain.Report{
		Name:         name,
		Grid:         g.String(),
		Width:        w,
		Height:       h,
		Start:        start,
		Visited:      len(out.Visited),
		Obstructions: len(loops),
		Loops:        loops,
		Strategy:     u.Strategy,
		Trials:       st.Trials,
		DurationMs:   time.Since(begin).Milliseconds(),
	}, nil
}

func (u *Service) Validate(ctx context.Context, text string) (bool, []domain.Issue, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, text)
}

func (u *Service) Generate(ctx context.Context, seed int64, opts domain.GenerateOptions) (*grid.Grid, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, opts)
}

// Persistence
func (u *Service) Save(ctx context.Context, r *domain.Report) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, r)
}
func (u *Service) LoadReport(ctx context.Context, id string) (*domain.Report, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.ReportMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
