package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Play(ctx context.Context) error
	Leaderboard(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, when ctx is done, or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - play           play without recording scores
//	  - leaderboard    show the top players
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - play           play; every finished game is submitted
//	  - leaderboard    show the top players
//	  - logout         end the session
//	  - exit | quit    leave the program
//
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("snake %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		var cmdErr error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn("Available commands: (p)lay, (l)eaderboard, logout, exit")
			} else {
				printlnFn("Available commands: register, login, (p)lay, (l)eaderboard, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "p", "play":
			cmdErr = a.Play(ctx)

		case "l", "lb", "leaderboard":
			cmdErr = a.Leaderboard(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
	}
}
