// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, session authentication and
// logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/server/auth"
	"github.com/dmitrijs2005/snakeboard/internal/server/config"
	"github.com/dmitrijs2005/snakeboard/internal/server/models"
	"github.com/dmitrijs2005/snakeboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token     string
	HighScore int
	Expires   time.Time
}

// UserService provides account and session operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials, open a session and sign a token for it
// - Authenticate: resolve a token to a live session
// - Logout: close the session behind a token
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	bcryptCost              int
	now                     func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		bcryptCost:              cost,
		now:                     time.Now,
	}
}

// Register creates a new user. Empty email or password is a validation
// error; a taken email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.ErrorValidation
		}
		return nil, fmt.Errorf("%w: error hashing password: %v", common.ErrorInternal, err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash), CreatedAt: s.now().UTC()}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, opens a session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt work as a real mismatch
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error loading user: %v", common.ErrorInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	now := s.now().UTC()
	sessions := s.repomanager.Sessions(s.db)

	// expired sessions are purged lazily; failure here must not block login
	_, _ = sessions.DeleteExpired(ctx, now)

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Expires:   now.Add(s.sessionValidityDuration),
		CreatedAt: now,
	}
	if err := sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: error creating session: %v", common.ErrorInternal, err)
	}

	token, err := auth.GenerateToken(session.ID, user.ID, s.jwtSecret, session.Expires)
	if err != nil {
		return nil, fmt.Errorf("%w: error signing token: %v", common.ErrorInternal, err)
	}

	return &LoginResult{Token: token, HighScore: user.HighScore, Expires: session.Expires}, nil
}

// Authenticate resolves token to its session. Any failure to do so,
// short of a storage error, is common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Sessions(s.db)
	session, err := repo.Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: error loading session: %v", common.ErrorInternal, err)
	}

	if session.UserID != claims.UserID {
		return nil, common.ErrorUnauthorized
	}

	if session.Expired(s.now()) {
		_ = repo.Delete(ctx, session.ID)
		return nil, common.ErrorUnauthorized
	}

	return session, nil
}

// Logout deletes the session behind token. Tokens that do not verify are
// ignored: there is nothing to close.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	if err := s.repomanager.Sessions(s.db).Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("%w: error deleting session: %v", common.ErrorInternal, err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		secret, err := common.MakeRandHexString(16)
		if err != nil {
			secret = "snakeboard"
		}
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	})
	return s.dummyHash
}
