package domain

import "fmt"

// Position is a zero-based cell coordinate; x grows rightward, y downward.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Step returns the neighbour of p in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// GuardState is the unit of cycle detection.
type GuardState struct {
	Pos Position  `json:"pos" yaml:"pos"`
	Dir Direction `json:"dir" yaml:"dir"`
}

// Outcome is the result of one patrol simulation. Visited holds the distinct
// positions in the order they were first entered, starting with the start cell.
// State is the state at which the run ended: the last cell before leaving the
// grid, or the repeated state for a loop.
type Outcome struct {
	Kind    Termination `json:"kind"`
	Visited []Position  `json:"visited,omitempty"`
	State   GuardState  `json:"state"`
	Steps   int         `json:"steps"`
}

// Exited reports whether the guard left the grid.
func (o Outcome) Exited() bool { return o.Kind == Exited }

// Looped reports whether a guard state repeated.
func (o Outcome) Looped() bool { return o.Kind == Looped }

// Issue is a non-fatal observation about an input grid.
type Issue struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Report is a solved patrol with metadata, suitable for persistence.
type Report struct {
	ID           string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string     `json:"name,omitempty" yaml:"name,omitempty"`
	Grid         string     `json:"grid" yaml:"grid"`
	Width        int        `json:"width" yaml:"width"`
	Height       int        `json:"height" yaml:"height"`
	Start        GuardState `json:"start" yaml:"start"`
	Visited      int        `json:"visited" yaml:"visited"`
	Obstructions int        `json:"obstructions" yaml:"obstructions"`
	Loops        []Position `json:"loops,omitempty" yaml:"loops,omitempty"`
	Strategy     Strategy   `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Trials       int        `json:"trials,omitempty" yaml:"trials,omitempty"`
	DurationMs   int64      `json:"durationMs,omitempty" yaml:"duration_ms,omitempty"`
	CreatedAt    int64      `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// ReportMeta is a lightweight listing entry.
type ReportMeta struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Visited      int    `json:"visited"`
	Obstructions int    `json:"obstructions"`
	CreatedAt    int64  `json:"createdAt"`
}

// GenerateOptions shapes a random grid.
type GenerateOptions struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Density float64 `json:"density"`
}
