package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/logging"
)

const (
	DefaultTickInterval  = 200 * time.Millisecond
	defaultSubmitTimeout = 5 * time.Second
)

// Phase is where the engine is in its lifecycle. GameOver is held for the
// single frame that shows a finished game before the restart.
type Phase int

const (
	Idle Phase = iota
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Submitter receives the final score of every finished game.
type Submitter interface {
	Submit(ctx context.Context, score int) error
}

// View is a consistent snapshot for rendering.
type View struct {
	State     State
	Phase     Phase
	HighScore int
	LastScore int
	Games     int
}

type Option func(*Engine)

func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithRenderer is called after every tick with a fresh View.
func WithRenderer(fn func(View)) Option {
	return func(e *Engine) { e.render = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.log = l.With("module", "engine") }
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(e *Engine) { e.submitTimeout = d }
}

// WithHighScore seeds the local high score, e.g. from the login response.
func WithHighScore(n int) Option {
	return func(e *Engine) { e.highScore = n }
}

// Engine drives Tick on a fixed interval. Steering and ticking are
// serialized by one mutex, so the game behaves as if single-threaded.
type Engine struct {
	mu        sync.Mutex
	state     State
	pending   Point
	phase     Phase
	highScore int
	lastScore int
	games     int

	interval      time.Duration
	rng           Rand
	submitter     Submitter
	submitTimeout time.Duration
	render        func(View)
	log           logging.Logger

	submissions sync.WaitGroup
}

// NewEngine builds an idle engine. A nil submitter plays offline.
func NewEngine(sub Submitter, opts ...Option) *Engine {
	e := &Engine{
		interval:      DefaultTickInterval,
		submitter:     sub,
		submitTimeout: defaultSubmitTimeout,
		render:        func(View) {},
		log:           logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.state = NewState(e.rng)
	return e
}

// Steer latches a direction request. The last request before a tick wins;
// whether it is legal is decided at the tick.
func (e *Engine) Steer(dir Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = dir
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Step runs one tick. On death the final frame is rendered with phase
// GameOver, the score is submitted in the background, the local high score
// is updated and a new game starts.
func (e *Engine) Step() Outcome {
	e.mu.Lock()

	next, outcome := Tick(e.state, e.pending, e.rng)
	e.pending = Stop

	if outcome != Died {
		e.state = next
		view := e.viewLocked()
		e.mu.Unlock()

		e.render(view)
		return outcome
	}

	prev := e.phase
	e.phase = GameOver
	e.state = next
	e.lastScore = next.Score
	e.games++
	if next.Score > e.highScore {
		e.highScore = next.Score
	}
	e.submit(next.Score)
	over := e.viewLocked()
	e.mu.Unlock()

	e.render(over)

	e.mu.Lock()
	e.state = e.state.Restart()
	e.phase = prev
	view := e.viewLocked()
	e.mu.Unlock()

	e.render(view)
	return outcome
}

// Run ticks until ctx is done. After a death the ticker restarts so the
// new game gets a full first interval.
func (e *Engine) Run(ctx context.Context) {
	e.mu.Lock()
	e.phase = Running
	view := e.viewLocked()
	e.mu.Unlock()
	e.render(view)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.mu.Lock()
			e.phase = Idle
			e.mu.Unlock()
			return
		case <-ticker.C:
			if e.Step() == Died {
				ticker.Reset(e.interval)
			}
		}
	}
}

// Wait blocks until every background submission has finished.
func (e *Engine) Wait() {
	e.submissions.Wait()
}

// submit hands score to the submitter without blocking the tick.
// Failures are logged and dropped. Must be called with e.mu held.
func (e *Engine) submit(score int) {
	if e.submitter == nil {
		return
	}

	e.submissions.Add(1)
	go func() {
		defer e.submissions.Done()

		ctx, cancel := context.WithTimeout(context.Background(), e.submitTimeout)
		defer cancel()

		if err := e.submitter.Submit(ctx, score); err != nil {
			e.log.Warn(ctx, "score submission failed", "score", score, "error", err)
			return
		}
		e.log.Debug(ctx, "score submitted", "score", score)
	}()
}

func (e *Engine) viewLocked() View {
	return View{
		State:     e.state,
		Phase:     e.phase,
		HighScore: e.highScore,
		LastScore: e.lastScore,
		Games:     e.games,
	}
}
