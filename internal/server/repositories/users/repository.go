package users

import (
	"context"

	"github.com/dmitrijs2005/snakeboard/internal/server/models"
)

// Repository is the credential store. HighScore is only ever raised
// through UpdateHighScore.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateHighScore(ctx context.Context, id int64, score int) (bool, error)
	TopScores(ctx context.Context, limit int) ([]models.LeaderboardRow, error)
}
