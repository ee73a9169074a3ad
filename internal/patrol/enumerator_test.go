package patrol

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/generator"
)

var exampleLoops = []domain.Position{
	{X: 3, Y: 6}, {X: 6, Y: 7}, {X: 7, Y: 7}, {X: 1, Y: 8}, {X: 3, Y: 8}, {X: 7, Y: 9},
}

var sortPositions = cmpopts.SortSlices(func(a, b domain.Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})

func TestEnumerateExample(t *testing.T) {
	g, start := mustParse(t, example)
	for _, strategy := range []domain.Strategy{domain.StrategyPath, domain.StrategyBrute} {
		t.Run(string(strategy), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			e := NewEnumerator(NewSimulator(), strategy, 4)
			loops, st, err := e.Enumerate(ctx, g, start)
			if err != nil {
				t.Fatalf("Enumerate failed: %v", err)
			}
			if len(loops) != 6 {
				t.Fatalf("loops = %d, want 6", len(loops))
			}
			if diff := cmp.Diff(exampleLoops, loops, sortPositions); diff != "" {
				t.Fatalf("loop positions mismatch (-want +got):\n%s", diff)
			}
			if st.Trials == 0 {
				t.Fatal("no trials recorded")
			}
		})
	}
}

func TestCandidatesExcludeStart(t *testing.T) {
	g, start := mustParse(t, example)
	baseline := NewSimulator().Simulate(g, start)

	path := NewEnumerator(NewSimulator(), domain.StrategyPath, 1).Candidates(g, start, baseline)
	if len(path) != 40 {
		t.Fatalf("path candidates = %d, want 40", len(path))
	}
	brute := NewEnumerator(NewSimulator(), domain.StrategyBrute, 1).Candidates(g, start, baseline)
	if len(brute) != 100-8-1 {
		t.Fatalf("brute candidates = %d, want %d", len(brute), 100-8-1)
	}
	for _, p := range append(path, brute...) {
		if p == start.Pos {
			t.Fatalf("start %v proposed as candidate", p)
		}
		if g.At(p) == domain.Blocked {
			t.Fatalf("blocked cell %v proposed as candidate", p)
		}
	}
}

func TestEnumerateStrategiesAgree(t *testing.T) {
	gen := generator.NewRandomGenerator()
	sim := NewSimulator()
	path := NewEnumerator(sim, domain.StrategyPath, 0)
	brute := NewEnumerator(sim, domain.StrategyBrute, 0)

	checked := 0
	for seed := int64(1); seed <= 40; seed++ {
		t.Run(fmt.Sprintf("seed%d", seed), func(t *testing.T) {
			ctx := context.Background()
			g, _, err := gen.Generate(ctx, seed, domain.GenerateOptions{Width: 12, Height: 10, Density: 0.15})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			start, _ := g.FindStart()
			baseline := sim.Simulate(g, start)
			if baseline.Looped() {
				if _, _, err := path.Enumerate(ctx, g, start); !errors.Is(err, domain.ErrNoExit) {
					t.Fatalf("looping baseline err = %v, want ErrNoExit", err)
				}
				return
			}
			checked++
			a, _, err := path.Enumerate(ctx, g, start)
			if err != nil {
				t.Fatalf("path Enumerate failed: %v", err)
			}
			b, _, err := brute.Enumerate(ctx, g, start)
			if err != nil {
				t.Fatalf("brute Enumerate failed: %v", err)
			}
			if diff := cmp.Diff(a, b, sortPositions, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("strategies disagree (-path +brute):\n%s\n%s", diff, g)
			}
			if len(a) > len(baseline.Visited)-1 {
				t.Fatalf("loops = %d exceeds path cells %d", len(a), len(baseline.Visited)-1)
			}
		})
	}
	if checked == 0 {
		t.Fatal("no generated map had an exiting baseline")
	}
}

func TestEnumerateNoExit(t *testing.T) {
	g, start := mustParse(t, loopMap)
	_, _, err := NewEnumerator(NewSimulator(), domain.StrategyPath, 1).Enumerate(context.Background(), g, start)
	if !errors.Is(err, domain.ErrNoExit) {
		t.Fatalf("err = %v, want ErrNoExit", err)
	}
}

func TestEnumerateCanceled(t *testing.T) {
	g, start := mustParse(t, example)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewEnumerator(NewSimulator(), domain.StrategyBrute, 2).Enumerate(ctx, g, start)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
