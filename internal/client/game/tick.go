package game

// Outcome tells the driver what a tick did.
type Outcome int

const (
	// Waiting: no direction yet, nothing moved.
	Waiting Outcome = iota
	Moved
	Ate
	Died
)

func (o Outcome) String() string {
	switch o {
	case Waiting:
		return "waiting"
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// Turn applies a direction request to the current direction. Only turns
// onto the perpendicular axis are accepted; from standstill any direction
// is. The result reports whether req was taken.
func Turn(current, req Point) (Point, bool) {
	switch req {
	case Up, Down:
		if current.Y == 0 {
			return req, true
		}
	case Left, Right:
		if current.X == 0 {
			return req, true
		}
	}
	return current, false
}

// Tick advances s by one step. input is the latched direction request
// (Stop for none). On Died the returned state is s with the accepted
// direction; the caller decides what happens next.
func Tick(s State, input Point, rng Rand) (State, Outcome) {
	next := s
	if input != Stop {
		next.Direction, _ = Turn(s.Direction, input)
	}

	if next.Direction == Stop {
		return next, Waiting
	}

	head := s.Head().Add(next.Direction)

	// collisions are checked against the body before it moves, tail included
	if !head.InGrid() || s.Occupies(head) {
		return next, Died
	}

	ate := head == s.Food

	size := len(s.Snake)
	if ate {
		size++
	}
	snake := make([]Point, 0, size)
	snake = append(snake, head)
	snake = append(snake, s.Snake[:size-1]...)
	next.Snake = snake

	if ate {
		next.Score++
		next.Food = randomCell(rng)
		return next, Ate
	}
	return next, Moved
}
