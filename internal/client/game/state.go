// Package game is the client-side snake: a pure per-tick transition over an
// immutable State, and an Engine that drives it on a fixed ticker.
package game

// GridSize is the side of the square playing field, in cells.
const GridSize = 20

// Point is a grid cell or, for directions, a unit step.
type Point struct{ X, Y int }

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// InGrid reports whether p lies on the playing field.
func (p Point) InGrid() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// Directions. Y grows downwards.
var (
	Stop  = Point{}
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

// Start is where every game begins.
var Start = Point{X: 9, Y: 9}

// Rand is the randomness the game needs; *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// State is one frame of a game. It is treated as immutable: Tick returns
// a new State and never modifies its input.
type State struct {
	Snake     []Point // head first
	Food      Point
	Direction Point
	Score     int
}

// NewState returns the opening position with food at a random cell.
func NewState(rng Rand) State {
	return State{
		Snake: []Point{Start},
		Food:  randomCell(rng),
	}
}

// Head is the first snake cell.
func (s State) Head() Point {
	return s.Snake[0]
}

// Waiting reports whether the snake has not started moving yet.
func (s State) Waiting() bool {
	return s.Direction == Stop
}

// Occupies reports whether p is part of the snake.
func (s State) Occupies(p Point) bool {
	for _, c := range s.Snake {
		if c == p {
			return true
		}
	}
	return false
}

// Restart returns a fresh opening position. The food stays where it is.
func (s State) Restart() State {
	return State{
		Snake: []Point{Start},
		Food:  s.Food,
	}
}

// randomCell picks any cell uniformly. The snake is not excluded, so food
// can appear under the body.
func randomCell(rng Rand) Point {
	return Point{X: rng.Intn(GridSize), Y: rng.Intn(GridSize)}
}
