package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/snakeboard/internal/client/game"
	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/common"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// Terminal seams, swapped in tests.
var (
	isTerminal  = term.IsTerminal
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
)

// submitFunc adapts a function to game.Submitter.
type submitFunc func(ctx context.Context, score int) error

func (f submitFunc) Submit(ctx context.Context, score int) error { return f(ctx, score) }

// Play runs games until the user presses q. While logged in every finished
// game is submitted; the leaderboard beside the grid is refetched whenever
// the server announces a score update.
func (a *App) Play(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return errNotTerminal
	}
	oldState, err := makeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = restoreTerm(fd, oldState) }()

	fmt.Fprint(a.out, ansiHideCursor)
	defer fmt.Fprint(a.out, ansiShowCursor)

	a.playSession(ctx, a.in)
	return nil
}

// playSession drives one engine from key input until a quit key or the end
// of input.
func (a *App) playSession(ctx context.Context, in io.Reader) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	player, highScore := a.email, a.highScore
	a.mu.Unlock()

	var sink game.Submitter
	if player != "" {
		sink = submitFunc(a.api.SubmitScore)
	}

	board := &boardCache{}
	var drawMu sync.Mutex
	draw := func(v game.View) {
		drawMu.Lock()
		defer drawMu.Unlock()
		fmt.Fprint(a.out, renderFrame(v, board.lines(), player))
	}

	eng := game.NewEngine(sink,
		game.WithInterval(a.config.TickInterval),
		game.WithLogger(a.log),
		game.WithHighScore(highScore),
		game.WithRenderer(draw),
	)

	a.refreshBoard(ctx, board)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.sub.Run(ctx, func(ev models.Event) {
			if ev.Type != common.EventScoreUpdate {
				return
			}
			a.refreshBoard(ctx, board)
			draw(eng.Snapshot())
		})
	}()
	go func() {
		defer wg.Done()
		eng.Run(ctx)
	}()

	readKeys(in, eng)

	cancel()
	wg.Wait()
	eng.Wait()

	v := eng.Snapshot()
	if player != "" {
		a.mu.Lock()
		if v.HighScore > a.highScore {
			a.highScore = v.HighScore
		}
		a.mu.Unlock()
	}
	fmt.Fprintf(a.out, "\r\nGames played: %d, best: %d\r\n", v.Games, v.HighScore)
}

// readKeys steers eng until a quit key, EOF or a read error.
func readKeys(in io.Reader, eng *game.Engine) {
	buf := make([]byte, 32)
	for {
		n, err := in.Read(buf)
		for _, k := range parseKeys(buf[:n]) {
			if k.Quit {
				return
			}
			eng.Steer(k.Dir)
		}
		if err != nil {
			return
		}
	}
}
