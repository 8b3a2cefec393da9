package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/snakeboard/internal/common"
)

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type scoreRequest struct {
	Score *int `json:"score"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message   string `json:"message"`
	HighScore int    `json:"highScore"`
	Token     string `json:"token"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Subscribers int    `json:"subscribers"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	u, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeMessage(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, common.ErrAlreadyExists):
			writeMessage(w, http.StatusBadRequest, "User exists")
		default:
			s.logger.Error(ctx, "register", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	writeMessage(w, http.StatusOK, "Registered")
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	res, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.logger.Error(ctx, "login", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal error")
		return
	}

	setSessionCookie(w, r, res.Token, res.Expires)
	writeJSON(w, http.StatusOK, loginResponse{Message: "Logged in", HighScore: res.HighScore, Token: res.Token})
}

func (s *HTTPServer) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// an unreadable or absent score is recorded without touching the high score
	score := -1
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err == nil && req.Score != nil {
		score = *req.Score
	}

	improved, err := s.scores.SubmitScore(ctx, tokenFromRequest(r), score)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Not logged in")
		case errors.Is(err, common.ErrorNotFound):
			writeMessage(w, http.StatusInternalServerError, "User not found")
		default:
			s.logger.Error(ctx, "submit score", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	s.logger.Debug(ctx, "Score recorded", "score", score, "improved", improved)
	writeMessage(w, http.StatusOK, "Score recorded")
}

func (s *HTTPServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := s.scores.Leaderboard(ctx)
	if err != nil {
		s.logger.Error(ctx, "leaderboard", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.users.Logout(ctx, tokenFromRequest(r)); err != nil {
		s.logger.Error(ctx, "logout", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal error")
		return
	}

	clearSessionCookie(w, r)
	writeMessage(w, http.StatusOK, "Logged out")
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Subscribers: s.hub.Count()})
}

// --- helpers below ---

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
