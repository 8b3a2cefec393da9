// Package models holds the data the terminal client receives from the server.
package models

// LeaderboardRow is one line of the public leaderboard.
type LeaderboardRow struct {
	Email     string `json:"email"`
	HighScore int    `json:"highScore"`
}

// Event is a realtime notification frame.
type Event struct {
	Type string `json:"type"`
}

// Session is what a successful login leaves the client with.
type Session struct {
	Email     string
	Token     string
	HighScore int
}
