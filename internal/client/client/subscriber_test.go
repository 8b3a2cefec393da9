package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventServer upgrades /ws and pushes every value sent on frames.
func eventServer(t *testing.T, frames <-chan models.Event) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for ev := range frames {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type eventLog struct {
	mu     sync.Mutex
	events []models.Event
}

func (l *eventLog) add(ev models.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func TestNewSubscriber_URL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://127.0.0.1:3000", "ws://127.0.0.1:3000/ws"},
		{"https://snake.example.com/", "wss://snake.example.com/ws"},
		{"http://host/base", "ws://host/base/ws"},
	}
	for _, tt := range tests {
		s, err := NewSubscriber(tt.in, logging.NewNopLogger())
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.url)
	}

	_, err := NewSubscriber("nope", logging.NewNopLogger())
	assert.Error(t, err)
}

func TestSubscriber_ListenDeliversEvents(t *testing.T) {
	frames := make(chan models.Event, 2)
	srv := eventServer(t, frames)

	s, err := NewSubscriber(srv.URL, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got eventLog
	done := make(chan error, 1)
	go func() { done <- s.Listen(ctx, got.add) }()

	frames <- models.Event{Type: common.EventScoreUpdate}
	frames <- models.Event{Type: common.EventScoreUpdate}

	require.Eventually(t, func() bool { return got.len() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, common.EventScoreUpdate, got.events[0].Type)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
	close(frames)
}

func TestSubscriber_ListenServerGone(t *testing.T) {
	frames := make(chan models.Event)
	srv := eventServer(t, frames)

	s, err := NewSubscriber(srv.URL, logging.NewNopLogger())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Listen(context.Background(), func(models.Event) {}) }()

	// closing the channel makes the handler return and drop the connection
	time.Sleep(50 * time.Millisecond)
	close(frames)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, common.ErrUnavailable)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not notice the closed connection")
	}
}

func TestSubscriber_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s, err := NewSubscriber(url, logging.NewNopLogger())
	require.NoError(t, err)

	err = s.Listen(context.Background(), func(models.Event) {})
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestSubscriber_RunReconnects(t *testing.T) {
	var mu sync.Mutex
	dials := 0
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mu.Lock()
		dials++
		mu.Unlock()
		_ = conn.WriteJSON(models.Event{Type: common.EventScoreUpdate})
		conn.Close()
	}))
	defer srv.Close()

	s, err := NewSubscriber(srv.URL, logging.NewNopLogger())
	require.NoError(t, err)
	s.retry = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var got eventLog
	done := make(chan struct{})
	go func() {
		s.Run(ctx, got.add)
		close(done)
	}()

	require.Eventually(t, func() bool { return got.len() >= 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, dials, 2)
}
