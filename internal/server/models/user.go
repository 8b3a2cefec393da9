package models

import "time"

// User is a registered player. HighScore only ever increases.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	HighScore    int
	CreatedAt    time.Time
}
