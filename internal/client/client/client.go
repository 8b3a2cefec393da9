package client

import (
	"context"

	"github.com/dmitrijs2005/snakeboard/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*models.Session, error)
	SubmitScore(ctx context.Context, score int) error
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}
