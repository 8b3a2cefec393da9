// Package cli provides the interactive snakeboard terminal client.
//
// It wires configuration, the HTTP API client, the realtime subscriber and
// the game engine behind a small REPL. Typical flow: register or log in,
// play (the board is drawn with ANSI escapes while the terminal is in raw
// mode), and watch the leaderboard refresh whenever anyone submits a score.
//
// Commands:
//   - register / login / logout
//   - play (arrows or WASD to steer, q to leave)
//   - leaderboard
//   - help / exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
