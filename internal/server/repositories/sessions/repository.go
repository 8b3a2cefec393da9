package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/server/models"
)

// Repository stores server-side login sessions.
type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
