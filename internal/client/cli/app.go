package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/client"
	"github.com/dmitrijs2005/snakeboard/internal/client/config"
	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	onlineCheckInterval = 10 * time.Second
	pingTimeout         = 3 * time.Second
)

// subscriber is the realtime side of the server connection.
type subscriber interface {
	Run(ctx context.Context, onEvent func(models.Event))
}

type App struct {
	config *config.Config
	api    client.Client
	sub    subscriber
	log    logging.Logger

	reader *bufio.Reader
	in     io.Reader
	out    io.Writer

	mu        sync.Mutex
	email     string
	highScore int
	Mode      Mode
}

func NewApp(c *config.Config) (*App, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	api, err := client.NewHTTPClient(c.ServerURL, 0)
	if err != nil {
		return nil, err
	}

	sub, err := client.NewSubscriber(c.ServerURL, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    api,
		sub:    sub,
		log:    logger.With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		in:     os.Stdin,
		out:    os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to snakeboard (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		if err := a.Logout(ctx); err != nil {
			a.log.Debug(ctx, "logout on exit", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email != ""
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.email != "" {
		s = a.email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
