package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/models"
)

const leaderboardTimeout = 3 * time.Second

// Leaderboard prints the current top players.
func (a *App) Leaderboard(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, leaderboardTimeout)
	defer cancel()

	rows, err := a.api.Leaderboard(ctx)
	if err != nil {
		return err
	}

	for _, line := range leaderboardLines(rows) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func leaderboardLines(rows []models.LeaderboardRow) []string {
	lines := []string{"Leaderboard"}
	if len(rows) == 0 {
		return append(lines, "  (no scores yet)")
	}

	width := 0
	for _, r := range rows {
		if len(r.Email) > width {
			width = len(r.Email)
		}
	}
	for i, r := range rows {
		lines = append(lines, fmt.Sprintf("%2d. %-*s %5d", i+1, width, r.Email, r.HighScore))
	}
	return lines
}

// boardCache holds the last leaderboard fetched during a game.
type boardCache struct {
	mu   sync.Mutex
	rows []models.LeaderboardRow
	err  bool
}

func (b *boardCache) set(rows []models.LeaderboardRow) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = rows
	b.err = false
}

func (b *boardCache) fail() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = true
}

func (b *boardCache) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := leaderboardLines(b.rows)
	if b.err {
		lines[0] += " (offline)"
	}
	return lines
}

// refreshBoard refetches the leaderboard into cache.
func (a *App) refreshBoard(ctx context.Context, cache *boardCache) {
	ctx, cancel := context.WithTimeout(ctx, leaderboardTimeout)
	defer cancel()

	rows, err := a.api.Leaderboard(ctx)
	if err != nil {
		a.log.Debug(ctx, "leaderboard refresh failed", "error", err)
		cache.fail()
		return
	}
	cache.set(rows)
}
