package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/snakeboard/internal/client/game"
)

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"

	cellEmpty = " ."
	cellHead  = " @"
	cellBody  = " o"
	cellFood  = " *"

	boardGap = "   "
)

// renderFrame draws one screen: status line, the walled grid with the
// leaderboard beside it, and a hint line. Lines end in \r\n because the
// terminal is in raw mode.
func renderFrame(v game.View, board []string, player string) string {
	var sb strings.Builder
	sb.WriteString(ansiHome)
	sb.WriteString(ansiClear)

	who := "guest (scores are not recorded)"
	if player != "" {
		who = player
	}
	fmt.Fprintf(&sb, "%s  Score: %d  High: %d  Games: %d\r\n", who, v.State.Score, v.HighScore, v.Games)

	grid := gridLines(v.State)
	width := len(grid[0])
	rows := len(grid)
	if len(board) > rows {
		rows = len(board)
	}
	for i := 0; i < rows; i++ {
		left := strings.Repeat(" ", width)
		if i < len(grid) {
			left = grid[i]
		}
		right := ""
		if i < len(board) {
			right = boardGap + board[i]
		}
		sb.WriteString(strings.TrimRight(left+right, " "))
		sb.WriteString("\r\n")
	}

	sb.WriteString(hintLine(v))
	sb.WriteString("\r\n")
	return sb.String()
}

func gridLines(s game.State) []string {
	border := "+" + strings.Repeat("-", game.GridSize*len(cellEmpty)+1) + "+"

	lines := make([]string, 0, game.GridSize+2)
	lines = append(lines, border)
	for y := 0; y < game.GridSize; y++ {
		var row strings.Builder
		row.WriteString("|")
		for x := 0; x < game.GridSize; x++ {
			row.WriteString(cellAt(s, game.Point{X: x, Y: y}))
		}
		row.WriteString(" |")
		lines = append(lines, row.String())
	}
	return append(lines, border)
}

func cellAt(s game.State, p game.Point) string {
	switch {
	case len(s.Snake) > 0 && s.Head() == p:
		return cellHead
	case s.Occupies(p):
		return cellBody
	case s.Food == p:
		return cellFood
	}
	return cellEmpty
}

func hintLine(v game.View) string {
	if v.Phase == game.GameOver {
		return fmt.Sprintf("Game over! Score: %d", v.LastScore)
	}
	if !v.State.Waiting() {
		return "arrows/WASD steer, q quits"
	}
	if v.Games > 0 {
		return fmt.Sprintf("Game over! Score: %d. Press a direction to play again, q to quit", v.LastScore)
	}
	return "Press an arrow key or WASD to start, q to quit"
}
