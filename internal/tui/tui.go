// Package tui renders rounds to a terminal and runs the interactive prompt.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/robalobadob/termle/internal/game"
)

const (
	clearScreen = "\033[H\033[2J"
	letters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Width needed to print the keyboard beside the grid.
	sideBySideWidth = 48
)

// Keyboard rows as [start, end) letter ranges, printed beside grid rows 1..4.
var keyboardRows = [...][2]int{{0, 7}, {7, 14}, {14, 21}, {21, 26}}

var keyboardIndent = [...]string{"  ", "  ", "  ", "     "}

var exclaims = [game.MaxAttempts]string{
	"IMPOSSIBLE",
	"UNREAL",
	"AMAZING",
	"IMPRESSIVE",
	"DECENT",
	"PHEWW",
}

const banner = ` _     _  _______  ______    ______   ___      _______
| | _ | ||       ||    _ |  |      | |   |    |       |
| || || ||   _   ||   | ||  |  _    ||   |    |    ___|
|       ||  | |  ||   |_||_ | | |   ||   |    |   |___
|       ||  |_|  ||    __  || |_|   ||   |___ |    ___|
|   _   ||       ||   |  | ||       ||       ||   |___
|__| |__||_______||___|  |_||______| |_______||_______|
`

var (
	styleCorrect = color.Style{color.FgBlack, color.BgGreen}
	stylePresent = color.Style{color.FgBlack, color.BgYellow}
	styleAbsent  = color.Style{color.FgBlack, color.BgWhite}
	styleUnused  = color.Style{color.BgBlack}
)

// Options controls how frames are drawn.
type Options struct {
	Plain bool // bracket markers instead of ANSI colors
	Clear bool // clear the screen before each frame
	Width int  // terminal width; 0 means unknown (assume wide)
}

// Renderer draws the grid, keyboard and messages to out.
type Renderer struct {
	out  io.Writer
	opts Options
}

// New creates a renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	return &Renderer{out: out, opts: opts}
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or 0 if it cannot be determined.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Intro prints the banner.
func (t *Renderer) Intro() {
	fmt.Fprintf(t.out, "%s\n Welcome to Wordle!\n\n\n", banner)
}

// Outro prints the farewell line.
func (t *Renderer) Outro() {
	fmt.Fprint(t.out, "\nThanks for playing Wordle!\n\n\n")
}

// Prompt asks for the next guess.
func (t *Renderer) Prompt() {
	fmt.Fprint(t.out, "Enter your guess: ")
}

// Reject explains a refused guess.
func (t *Renderer) Reject(err error) {
	switch {
	case errors.Is(err, game.ErrAlreadyGuessed):
		fmt.Fprintln(t.out, "Word previously guessed !!!")
	case errors.Is(err, game.ErrRoundFinished):
		fmt.Fprintln(t.out, "Round is over !!!")
	default:
		fmt.Fprintln(t.out, "Word not valid !!!")
	}
}

// Result prints the win or loss line for a finished round.
func (t *Renderer) Result(o game.Outcome, answer string) {
	switch o.State {
	case game.StateWon:
		fmt.Fprintf(t.out, "%s!! YOU WON !!! Answer is [%s].\n", exclaims[o.Attempts-1], answer)
	case game.StateLost:
		fmt.Fprintf(t.out, "SORRY YOU LOST :( Answer is [%s].\n", answer)
	}
}

// Render draws one frame: six grid rows with the keyboard beside (or below,
// on narrow terminals), then the remaining-guesses line while in play.
func (t *Renderer) Render(attempts []game.Attempt, kb game.Keyboard, outcome game.Outcome) {
	var b strings.Builder
	if t.opts.Clear {
		b.WriteString(clearScreen)
	}

	beside := t.opts.Width == 0 || t.opts.Width >= sideBySideWidth
	for row := 0; row < game.MaxAttempts; row++ {
		if row < len(attempts) {
			for i := 0; i < game.WordLength; i++ {
				b.WriteString(t.tile(attempts[row].Guess[i], attempts[row].Marks[i]))
			}
		} else {
			for i := 0; i < game.WordLength; i++ {
				b.WriteString(t.emptyTile())
			}
		}
		if k := row - 1; beside && k >= 0 && k < len(keyboardRows) {
			b.WriteString(keyboardIndent[k])
			t.keyRow(&b, kb, keyboardRows[k])
		}
		b.WriteByte('\n')
	}
	if !beside {
		b.WriteByte('\n')
		for k := range keyboardRows {
			t.keyRow(&b, kb, keyboardRows[k])
			b.WriteByte('\n')
		}
	}
	if !outcome.Finished() {
		fmt.Fprintf(&b, "\nGuesses left: %d\n", game.MaxAttempts-outcome.Attempts)
	}
	io.WriteString(t.out, b.String())
}

func (t *Renderer) keyRow(b *strings.Builder, kb game.Keyboard, span [2]int) {
	for i := span[0]; i < span[1]; i++ {
		b.WriteString(t.key(letters[i], kb.Status(letters[i])))
	}
}

func (t *Renderer) tile(c byte, s game.LetterStatus) string {
	if t.opts.Plain {
		switch s {
		case game.Correct:
			return fmt.Sprintf("[%c] ", c)
		case game.Present:
			return fmt.Sprintf("(%c) ", c)
		default:
			return fmt.Sprintf(" %c  ", c)
		}
	}
	switch s {
	case game.Correct:
		return styleCorrect.Sprintf(" %c |", c)
	case game.Present:
		return stylePresent.Sprintf(" %c |", c)
	default:
		return styleAbsent.Sprintf(" %c |", c)
	}
}

func (t *Renderer) emptyTile() string {
	if t.opts.Plain {
		return " _  "
	}
	return styleAbsent.Sprint("   |")
}

func (t *Renderer) key(c byte, s game.KeyStatus) string {
	if t.opts.Plain {
		switch s {
		case game.KeyCorrect:
			return fmt.Sprintf("[%c]", c)
		case game.KeyPresent:
			return fmt.Sprintf("(%c)", c)
		case game.KeyAbsent:
			return fmt.Sprintf(" %c ", c+('a'-'A'))
		default:
			return fmt.Sprintf(" %c ", c)
		}
	}
	switch s {
	case game.KeyCorrect:
		return styleCorrect.Sprintf(" %c ", c)
	case game.KeyPresent:
		return stylePresent.Sprintf(" %c ", c)
	case game.KeyAbsent:
		return styleAbsent.Sprintf(" %c ", c)
	default:
		return styleUnused.Sprintf(" %c ", c)
	}
}
