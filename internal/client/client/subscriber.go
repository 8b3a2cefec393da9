package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/common"
	"github.com/dmitrijs2005/snakeboard/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout    = 5 * time.Second
	defaultRetryBackoff = 2 * time.Second
)

// Subscriber receives realtime events from the server's /ws endpoint.
type Subscriber struct {
	url    string
	dialer *websocket.Dialer
	retry  time.Duration
	log    logging.Logger
}

// NewSubscriber derives the websocket address from serverURL
// (http -> ws, https -> wss).
func NewSubscriber(serverURL string, l logging.Logger) (*Subscriber, error) {
	u, err := parseServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	ws := *u
	if u.Scheme == "https" {
		ws.Scheme = "wss"
	} else {
		ws.Scheme = "ws"
	}
	ws.Path = u.Path + "/ws"

	return &Subscriber{
		url:    ws.String(),
		dialer: &websocket.Dialer{Proxy: http.ProxyFromEnvironment, HandshakeTimeout: handshakeTimeout},
		retry:  defaultRetryBackoff,
		log:    l.With("module", "subscriber"),
	}, nil
}

// Listen dials once and calls onEvent for every frame until ctx is done or
// the connection fails. It returns nil when ctx ends the subscription.
func (s *Subscriber) Listen(ctx context.Context, onEvent func(models.Event)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	s.log.Debug(ctx, "subscribed", "url", s.url)

	for {
		var ev models.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
		}
		onEvent(ev)
	}
}

// Run keeps a subscription alive until ctx is done, redialling after a
// pause whenever the connection drops.
func (s *Subscriber) Run(ctx context.Context, onEvent func(models.Event)) {
	for {
		err := s.Listen(ctx, onEvent)
		if ctx.Err() != nil {
			return
		}
		s.log.Debug(ctx, "subscription lost", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retry):
		}
	}
}
