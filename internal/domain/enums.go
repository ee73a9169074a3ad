package domain

import "fmt"

// Direction is one of the four unit steps the guard can face.
// Values are ordered clockwise so that turning right is an increment.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all directions in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the (dx, dy) unit vector for d. y grows downward.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default:
		return -1, 0
	}
}

// TurnRight rotates d by 90 degrees clockwise.
func (d Direction) TurnRight() Direction { return (d + 1) % 4 }

// Glyph returns the start-marker character for d.
func (d Direction) Glyph() byte {
	switch d {
	case Up:
		return '^'
	case Right:
		return '>'
	case Down:
		return 'v'
	default:
		return '<'
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "left"
	}
}

// DirectionFromGlyph maps a start marker to its direction.
func DirectionFromGlyph(c byte) (Direction, bool) {
	switch c {
	case '^':
		return Up, true
	case '>':
		return Right, true
	case 'v':
		return Down, true
	case '<':
		return Left, true
	}
	return 0, false
}

// ParseDirection accepts a direction name or marker glyph.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up", "^":
		return Up, true
	case "right", ">":
		return Right, true
	case "down", "v":
		return Down, true
	case "left", "<":
		return Left, true
	}
	return 0, false
}

// CellKind tells whether the guard can step onto a cell.
type CellKind uint8

const (
	Open CellKind = iota
	Blocked
)

func (k CellKind) String() string {
	if k == Blocked {
		return "blocked"
	}
	return "open"
}

// Termination tags how a simulation ended.
type Termination uint8

const (
	Exited Termination = iota
	Looped
)

func (t Termination) String() string {
	if t == Looped {
		return "looped"
	}
	return "exited"
}

// MarshalText lets outcomes serialize the tag by name.
func (t Termination) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Strategy selects how obstruction candidates are proposed.
type Strategy string

const (
	// StrategyPath proposes only cells on the unobstructed route.
	StrategyPath Strategy = "path"
	// StrategyBrute proposes every open cell except the start.
	StrategyBrute Strategy = "brute"
)

// ParseStrategy normalizes a strategy name; empty means StrategyPath.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case "", StrategyPath:
		return StrategyPath, true
	case StrategyBrute:
		return StrategyBrute, true
	}
	return "", false
}

// MarshalText encodes d by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts a direction name or marker glyph.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("unknown direction %q", b)
	}
	*d = v
	return nil
}
