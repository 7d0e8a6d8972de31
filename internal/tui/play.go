package tui

import (
	"bufio"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termle/internal/game"
)

// Play drives round to completion with guesses read from in, one
// whitespace-separated word at a time. Rejected guesses are reported and
// re-prompted. End of input stops the loop with the round still in play.
func Play(in io.Reader, ui *Renderer, round *game.Round) (game.Outcome, error) {
	ui.Render(round.Attempts(), round.Keyboard(), round.Outcome())

	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	for !round.Outcome().Finished() {
		ui.Prompt()
		if !sc.Scan() {
			log.Debug().Int("attempts", round.Outcome().Attempts).Msg("input closed")
			return round.Outcome(), sc.Err()
		}
		upd, err := round.SubmitGuess(sc.Text())
		if err != nil {
			log.Debug().Err(err).Str("input", sc.Text()).Msg("guess rejected")
			ui.Reject(err)
			continue
		}
		log.Debug().
			Str("guess", upd.Attempt.Guess).
			Stringer("state", upd.Outcome.State).
			Int("attempts", upd.Outcome.Attempts).
			Msg("guess accepted")
		ui.Render(round.Attempts(), round.Keyboard(), upd.Outcome)
	}

	ui.Result(round.Outcome(), round.Answer())
	return round.Outcome(), nil
}
