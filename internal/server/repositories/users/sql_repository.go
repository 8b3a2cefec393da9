package users

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

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id, high_score`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, dbx.ToMillis(user.CreatedAt)).Scan(&user.ID, &user.HighScore)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password, high_score, created_at FROM users
		 WHERE email = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, email, password, high_score, created_at FROM users
		 WHERE id = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var createdAt int64

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.HighScore, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = dbx.FromMillis(createdAt)
	return user, nil
}

// UpdateHighScore raises the stored high score to score when score is
// strictly greater. The comparison happens in the UPDATE itself, so
// concurrent submissions cannot lower it. Reports whether a row changed.
func (r *SQLRepository) UpdateHighScore(ctx context.Context, id int64, score int) (bool, error) {
	query :=
		`UPDATE users SET high_score = ?
		 WHERE id = ? AND high_score < ?`

	res, err := r.db.ExecContext(ctx, query, score, id, score)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *SQLRepository) TopScores(ctx context.Context, limit int) ([]models.LeaderboardRow, error) {
	query :=
		`SELECT email, high_score FROM users
		 ORDER BY high_score DESC, id ASC
		 LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.LeaderboardRow{}
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.Email, &row.HighScore); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
