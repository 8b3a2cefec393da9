package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/dbx"
	"github.com/dmitrijs2005/snakeboard/internal/server/models"
	"github.com/dmitrijs2005/snakeboard/internal/server/repositories/repomanager"
)

// Notifier fans an event out to realtime subscribers. Delivery is best effort.
type Notifier interface {
	Broadcast(event string)
}

// Authenticator resolves a session token to its session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// ScoreService records finished games and serves the leaderboard.
type ScoreService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	auth            Authenticator
	notifier        Notifier
	leaderboardSize int
}

func NewScoreService(db *sql.DB, m repomanager.RepositoryManager, a Authenticator, n Notifier) *ScoreService {
	return &ScoreService{
		db:              db,
		repomanager:     m,
		auth:            a,
		notifier:        n,
		leaderboardSize: common.LeaderboardSize,
	}
}

// SubmitScore records score for the session behind token. The stored high
// score is raised only if score beats it. A negative score never does, so it
// is recorded as a no-op. Every recorded submission is announced to
// subscribers, improved or not. Reports whether it improved.
func (s *ScoreService) SubmitScore(ctx context.Context, token string, score int) (bool, error) {
	session, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return false, err
	}

	var improved bool
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.GetUserByID(ctx, session.UserID); err != nil {
			return err
		}
		if score < 0 {
			return nil
		}
		var err error
		improved, err = repo.UpdateHighScore(ctx, session.UserID, score)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("%w: error updating high score: %v", common.ErrorInternal, err)
	}

	s.notifier.Broadcast(common.EventScoreUpdate)

	return improved, nil
}

// Leaderboard returns the top players by high score. Never nil.
func (s *ScoreService) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	rows, err := s.repomanager.Users(s.db).TopScores(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading leaderboard: %v", common.ErrorInternal, err)
	}
	if rows == nil {
		rows = []models.LeaderboardRow{}
	}
	return rows, nil
}
