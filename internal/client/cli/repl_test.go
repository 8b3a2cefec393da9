package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	playErr  error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Play(ctx context.Context) error {
	f.calls = append(f.calls, "play")
	return f.playErr
}
func (f *fakeExec) Leaderboard(ctx context.Context) error {
	f.calls = append(f.calls, "leaderboard")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Commands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"",
		"p",
		"PLAY",
		"lb",
		"leaderboard",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"register", "login", "play", "play", "leaderboard", "leaderboard", "logout"}, exec.calls)
	assert.Contains(t, *out, "snake (status)> ")
	assert.Contains(t, *out, "Available commands: register, login, (p)lay, (l)eaderboard, exit")
	assert.Contains(t, *out, "Available commands: (p)lay, (l)eaderboard, logout, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_EOFStops(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register")))
	assert.Equal(t, []string{"register"}, exec.calls)
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{playErr: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("play\nquit\n")))
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_CanceledContext(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\n")))
	assert.Empty(t, exec.calls)
}
