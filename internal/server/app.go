// Package server wires the snake server together: storage, services, the
// realtime hub and the HTTP transport, plus signal-driven graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/logging"
	"github.com/dmitrijs2005/snakeboard/internal/server/config"
	"github.com/dmitrijs2005/snakeboard/internal/server/httpapi"
	"github.com/dmitrijs2005/snakeboard/internal/server/notify"
	"github.com/dmitrijs2005/snakeboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snakeboard/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	hub          *notify.Hub
	userService  *services.UserService
	scoreService *services.ScoreService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "No secret key configured, generated one; sessions will not survive a restart")
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hub := notify.NewHub(logger)
	us := services.NewUserService(db, m, c)
	ss := services.NewScoreService(db, m, us, hub)

	logger.Info(ctx, "Storage ready", "dialect", string(m.Dialect()))

	return &App{config: c, logger: logger, db: db, hub: hub, userService: us, scoreService: ss}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.scoreService, app.hub)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
