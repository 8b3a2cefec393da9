// Package common contains shared constants and sentinel errors used across
// snakeboard components.
package common

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "snake_session"

	// EventScoreUpdate is broadcast on the realtime channel after every
	// score submission. It carries no payload.
	EventScoreUpdate = "scoreUpdate"

	// LeaderboardSize is the number of rows returned by the leaderboard.
	LeaderboardSize = 10
)
