package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/config"
	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/logging"
)

type fakeAPI struct {
	mu sync.Mutex

	regEmail, regPass string
	regErr            error

	loginEmail, loginPass string
	loginResp             *models.Session
	loginErr              error

	scores   []int
	scoreErr error

	rows     []models.LeaderboardRow
	boardErr error
	boards   int

	logoutCalls int
	logoutErr   error

	pingErr error
}

func (f *fakeAPI) Register(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regEmail, f.regPass = email, password
	return f.regErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginEmail, f.loginPass = email, password
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) SubmitScore(_ context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, score)
	return f.scoreErr
}

func (f *fakeAPI) Leaderboard(context.Context) ([]models.LeaderboardRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards++
	return f.rows, f.boardErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) submitted() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.scores...)
}

func (f *fakeAPI) boardCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boards
}

// fakeSub fires the queued events once and then waits for ctx.
type fakeSub struct {
	events []models.Event
}

func (f *fakeSub) Run(ctx context.Context, onEvent func(models.Event)) {
	for _, ev := range f.events {
		onEvent(ev)
	}
	<-ctx.Done()
}

// syncBuffer is written by the render goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestApp(api *fakeAPI, input string) (*App, *syncBuffer) {
	out := &syncBuffer{}
	return &App{
		config: &config.Config{TickInterval: 5 * time.Millisecond},
		api:    api,
		sub:    &fakeSub{},
		log:    logging.NewNopLogger(),
		reader: bufio.NewReader(strings.NewReader(input)),
		in:     strings.NewReader(""),
		out:    out,
	}, out
}
