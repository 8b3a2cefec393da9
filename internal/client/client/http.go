package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/snakeboard/internal/client/models"
	"github.com/dmitrijs2005/snakeboard/internal/common"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type scoreRequest struct {
	Score int `json:"score"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message   string `json:"message"`
	HighScore int    `json:"highScore"`
	Token     string `json:"token"`
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the server at serverURL, e.g.
// "http://127.0.0.1:3000". A non-positive timeout uses the default.
func NewHTTPClient(serverURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := parseServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func parseServerURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(s, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", s)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", s)
	}
	return u, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", credentials{Email: email, Password: password}, nil)
}

// Login authenticates and remembers the session token for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	c.setToken(resp.Token)
	return &models.Session{Email: email, Token: resp.Token, HighScore: resp.HighScore}, nil
}

func (c *HTTPClient) SubmitScore(ctx context.Context, score int) error {
	return c.do(ctx, http.MethodPost, "/api/score", scoreRequest{Score: score}, nil)
}

func (c *HTTPClient) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	rows := make([]models.LeaderboardRow, 0)
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Logout ends the server session. The local token is dropped even when the
// request fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	defer c.setToken("")
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) LoggedIn() bool {
	return c.getToken() != ""
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

func (c *HTTPClient) getToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if t := c.getToken(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var m messageResponse
		if json.Unmarshal(data, &m) == nil {
			apiErr.Message = m.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: unexpected response: %v", common.ErrorInternal, err)
	}
	return nil
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, common.ErrUnavailable)
}
