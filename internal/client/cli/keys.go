package cli

import "github.com/dmitrijs2005/snakeboard/internal/client/game"

// keyAction is what one keypress means during play.
type keyAction struct {
	Quit bool
	Dir  game.Point
}

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyEsc   = 0x1b
)

// parseKeys decodes raw terminal input. Arrow keys arrive as ESC [ X or
// ESC O X; letters steer WASD style. Anything else is ignored.
func parseKeys(b []byte) []keyAction {
	var out []keyAction
	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case 'q', 'Q', keyCtrlC, keyCtrlD:
			out = append(out, keyAction{Quit: true})
		case 'w', 'W':
			out = append(out, keyAction{Dir: game.Up})
		case 's', 'S':
			out = append(out, keyAction{Dir: game.Down})
		case 'a', 'A':
			out = append(out, keyAction{Dir: game.Left})
		case 'd', 'D':
			out = append(out, keyAction{Dir: game.Right})
		case keyEsc:
			if i+2 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
				if dir, ok := arrowDir(b[i+2]); ok {
					out = append(out, keyAction{Dir: dir})
				}
				i += 2
			}
		}
	}
	return out
}

func arrowDir(c byte) (game.Point, bool) {
	switch c {
	case 'A':
		return game.Up, true
	case 'B':
		return game.Down, true
	case 'C':
		return game.Right, true
	case 'D':
		return game.Left, true
	}
	return game.Stop, false
}
