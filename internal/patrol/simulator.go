// Package patrol runs the guard's movement rule and searches for obstruction
// placements that trap it in a loop.
package patrol

import (
	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
)

// Simulator executes the patrol rule. The zero value is ready to use.
type Simulator struct{}

func NewSimulator() *Simulator { return &Simulator{} }

// Simulate walks from start until the next step leaves the view or a guard
// state repeats. A state is recorded before every step, including right after
// a turn, since a turn alone can reproduce an earlier state.
func (s *Simulator) Simulate(v grid.View, start domain.GuardState) domain.Outcome {
	w, h := v.Bounds()
	// seen holds one bit per direction for every cell.
	seen := make([]uint8, w*h)
	entered := make([]bool, w*h)
	idx := func(p domain.Position) int { return p.Y*w + p.X }

	pos, dir := start.Pos, start.Dir
	visited := []domain.Position{pos}
	entered[idx(pos)] = true
	steps := 0

	for {
		i, bit := idx(pos), uint8(1)<<dir
		if seen[i]&bit != 0 {
			return domain.Outcome{
				Kind:    domain.Looped,
				Visited: visited,
				State:   domain.GuardState{Pos: pos, Dir: dir},
				Steps:   steps,
			}
		}
		seen[i] |= bit

		next := pos.Step(dir)
		if !v.Contains(next) {
			return domain.Outcome{
				Kind:    domain.Exited,
				Visited: visited,
				State:   domain.GuardState{Pos: pos, Dir: dir},
				Steps:   steps,
			}
		}
		if v.At(next) == domain.Blocked {
			dir = dir.TurnRight()
			continue
		}
		pos = next
		steps++
		if j := idx(pos); !entered[j] {
			entered[j] = true
			visited = append(visited, pos)
		}
	}
}
