// Round engine for a single game.
// Responsibilities:
//   - Create rounds with a validated answer (random unless fixed).
//   - Normalize, validate and score guesses.
//   - Aggregate keyboard feedback monotonically across guesses.
//   - Track state transitions: playing → won/lost.
//
// A Round is not safe for concurrent use; its owner serializes access.
package game

import (
	"fmt"
	"strings"
)

// WordSource supplies answers and the guess dictionary.
type WordSource interface {
	// PickAnswer returns a random answer word.
	PickAnswer() string
	// IsValidGuess reports dictionary membership of an uppercase word.
	IsValidGuess(word string) bool
}

// Round holds the state of one game.
type Round struct {
	answer   string
	dict     WordSource
	score    Scorer
	attempts []Attempt
	keyboard Keyboard
	outcome  Outcome
}

// Option configures a Round at construction.
type Option func(*Round)

// WithScorer replaces the default Evaluate scoring.
func WithScorer(s Scorer) Option {
	return func(r *Round) {
		if s != nil {
			r.score = s
		}
	}
}

// New starts a round against src.
// If withAnswer is empty, the answer is picked from src. A fixed answer is
// normalized and must itself be a valid guess.
func New(src WordSource, withAnswer string, opts ...Option) (*Round, error) {
	ans := Normalize(withAnswer)
	if ans == "" {
		ans = Normalize(src.PickAnswer())
	}
	if !IsWord(ans) || !src.IsValidGuess(ans) {
		return nil, fmt.Errorf("game: invalid answer %q", ans)
	}
	r := &Round{
		answer:   ans,
		dict:     src,
		score:    Evaluate,
		attempts: make([]Attempt, 0, MaxAttempts),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// SubmitGuess validates and scores a guess, mutating the round.
//
// Rejections, checked in this order, return a RejectReason and leave the
// round untouched:
//   - ErrRoundFinished: the round is already won or lost.
//   - ErrMalformedInput: not WordLength letters A–Z after normalization.
//   - ErrInvalidWord: not in the dictionary.
//   - ErrAlreadyGuessed: accepted earlier in this round.
//
// State transitions:
//   - guess equals the answer → won.
//   - else MaxAttempts reached → lost.
func (r *Round) SubmitGuess(guess string) (RoundUpdate, error) {
	if r.outcome.Finished() {
		return RoundUpdate{}, ErrRoundFinished
	}
	guess = Normalize(guess)
	if !IsWord(guess) {
		return RoundUpdate{}, ErrMalformedInput
	}
	if !r.dict.IsValidGuess(guess) {
		return RoundUpdate{}, ErrInvalidWord
	}
	if r.Guessed(guess) {
		return RoundUpdate{}, ErrAlreadyGuessed
	}

	at := Attempt{Guess: guess, Marks: r.score(r.answer, guess)}

	r.attempts = append(r.attempts, at)
	for i := 0; i < WordLength; i++ {
		r.keyboard.Upgrade(guess[i], at.Marks[i].Key())
	}

	n := len(r.attempts)
	switch {
	case guess == r.answer:
		r.outcome = Outcome{State: StateWon, Attempts: n}
	case n >= MaxAttempts:
		r.outcome = Outcome{State: StateLost, Attempts: n}
	default:
		r.outcome = Outcome{State: StatePlaying, Attempts: n}
	}
	return RoundUpdate{Attempt: at, Outcome: r.outcome}, nil
}

// Guessed reports whether word was already accepted this round.
func (r *Round) Guessed(word string) bool {
	word = Normalize(word)
	for _, a := range r.attempts {
		if a.Guess == word {
			return true
		}
	}
	return false
}

// Answer returns the secret word.
func (r *Round) Answer() string { return r.answer }

// Attempts returns a copy of the accepted attempts in submission order.
func (r *Round) Attempts() []Attempt {
	out := make([]Attempt, len(r.attempts))
	copy(out, r.attempts)
	return out
}

// Keyboard returns the aggregated keyboard status.
func (r *Round) Keyboard() Keyboard { return r.keyboard }

// Outcome returns the current outcome.
func (r *Round) Outcome() Outcome { return r.outcome }

// Normalize trims surrounding whitespace and uppercases s.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsWord reports whether s is exactly WordLength uppercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
