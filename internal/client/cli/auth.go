package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/snakeboard/internal/client/client"
	"github.com/dmitrijs2005/snakeboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadyLoggedIn = errors.New("already logged in, log out first")

// Register prompts for an email and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

// Login prompts for credentials, opens a session and remembers the
// server-side high score.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.email = s.Email
	a.highScore = s.HighScore
	a.mu.Unlock()
	a.setMode(ModeOnline)

	fmt.Fprintf(a.out, "Logged in. High score: %d\n", s.HighScore)
	return nil
}

// Logout ends the server session. Local state is cleared even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)

	a.mu.Lock()
	a.email = ""
	a.highScore = 0
	a.mu.Unlock()

	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// describeError turns a command error into a line for the user.
func describeError(err error) string {
	switch {
	case client.IsUnavailable(err):
		return "Server unavailable, try again later"
	case errors.Is(err, common.ErrAlreadyExists):
		return "User exists"
	case errors.Is(err, common.ErrorUnauthorized):
		return "Invalid credentials or session expired"
	case errors.Is(err, common.ErrorValidation):
		return "Email and password are required"
	case errors.Is(err, errNotTerminal):
		return "play needs an interactive terminal"
	default:
		return "Error: " + err.Error()
	}
}
