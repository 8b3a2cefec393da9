package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/dbx"
	"github.com/dmitrijs2005/snakeboard/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: dbx.Bind(db, dialect)}
}

func (r *SQLRepository) Create(ctx context.Context, s *models.Session) error {

	query :=
		`INSERT INTO sessions (id, user_id, expires_at, created_at)
		 VALUES (?, ?, ?, ?)`

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, dbx.ToMillis(s.Expires), dbx.ToMillis(s.CreatedAt))

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) Find(ctx context.Context, id string) (*models.Session, error) {

	query :=
		`SELECT id, user_id, expires_at, created_at FROM sessions
		 WHERE id = ?`

	s := &models.Session{}
	var expires, created int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &expires, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.Expires = dbx.FromMillis(expires)
	s.CreatedAt = dbx.FromMillis(created)

	return s, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {

	query := `DELETE FROM sessions WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// DeleteExpired purges sessions whose expiry is at or before now and
// returns how many were removed.
func (r *SQLRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {

	query := `DELETE FROM sessions WHERE expires_at <= ?`

	res, err := r.db.ExecContext(ctx, query, dbx.ToMillis(now))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
