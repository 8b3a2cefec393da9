package models

// LeaderboardRow is one line of the leaderboard, derived from users.
type LeaderboardRow struct {
	Email     string `json:"email"`
	HighScore int    `json:"highScore"`
}
