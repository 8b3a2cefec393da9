// Package httpapi exposes the account, score and leaderboard operations
// over HTTP+JSON, and mounts the realtime websocket channel.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/logging"
	"github.com/dmitrijs2005/snakeboard/internal/server/models"
	"github.com/dmitrijs2005/snakeboard/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type ScoreService interface {
	SubmitScore(ctx context.Context, token string, score int) (bool, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
}

// Realtime is the websocket side: a handler for subscribers, a count for
// health output, and Close for shutdown.
type Realtime interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
	Count() int
	Close()
}

type HTTPServer struct {
	address string
	users   UserService
	scores  ScoreService
	hub     Realtime
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ss ScoreService, hub Realtime) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		scores:  ss,
		hub:     hub,
	}
}

// Handler builds the routing tree. CORS wraps the router so that
// preflight requests are answered before method matching.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/score", s.handleScore).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.hub.ServeWS).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return allowCORS(r)
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully and disconnects websocket subscribers. The same cleanup runs
// when accepting fails, before the error is returned.
func (s *HTTPServer) Serve(ctx context.Context, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		// hijacked websocket connections are not tracked by Shutdown
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-stopped
		return err
	}

	<-stopped
	return nil
}
