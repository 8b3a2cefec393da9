package models

import "time"

// Session links an opaque session ID to a logged-in user.
type Session struct {
	ID        string
	UserID    int64
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.Expires)
}
