// Core type definitions for the round engine.
// Defines:
//   - LetterStatus / Marks: per-tile result of one guess.
//   - KeyStatus / Keyboard: best feedback seen so far per letter.
//   - Attempt, Outcome, RoundUpdate: what a round records and reports.

package game

import "fmt"

const (
	WordLength  = 5 // letters per word
	MaxAttempts = 6 // accepted guesses per round
	alphabet    = 26
)

// LetterStatus is the evaluation result for a single tile.
type LetterStatus uint8

const (
	Absent  LetterStatus = iota // letter not credited anywhere in the answer
	Present                     // letter in the answer, different position
	Correct                     // letter in the answer at this position
)

var letterStatusNames = [...]string{
	Absent:  "absent",
	Present: "present",
	Correct: "correct",
}

func (s LetterStatus) String() string {
	if int(s) < len(letterStatusNames) {
		return letterStatusNames[s]
	}
	return fmt.Sprintf("LetterStatus(%d)", uint8(s))
}

// MarshalText encodes the status by name ("absent"/"present"/"correct").
func (s LetterStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Key maps a tile status onto the keyboard ordering.
func (s LetterStatus) Key() KeyStatus {
	switch s {
	case Correct:
		return KeyCorrect
	case Present:
		return KeyPresent
	default:
		return KeyAbsent
	}
}

// Marks is the ordered per-position result of one guess.
type Marks [WordLength]LetterStatus

// Solved reports whether every tile is Correct.
func (m Marks) Solved() bool {
	for _, s := range m {
		if s != Correct {
			return false
		}
	}
	return true
}

// KeyStatus is the aggregated status of one keyboard letter.
// The ordering is significant: KeyUnused < KeyAbsent < KeyPresent < KeyCorrect.
type KeyStatus uint8

const (
	KeyUnused KeyStatus = iota
	KeyAbsent
	KeyPresent
	KeyCorrect
)

var keyStatusNames = [...]string{
	KeyUnused:  "unused",
	KeyAbsent:  "absent",
	KeyPresent: "present",
	KeyCorrect: "correct",
}

func (s KeyStatus) String() string {
	if int(s) < len(keyStatusNames) {
		return keyStatusNames[s]
	}
	return fmt.Sprintf("KeyStatus(%d)", uint8(s))
}

// MarshalText encodes the status by name.
func (s KeyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Keyboard holds one KeyStatus per letter A–Z.
// Statuses only ever move up; see Upgrade.
type Keyboard [alphabet]KeyStatus

// Status returns the status of an uppercase letter, KeyUnused for anything else.
func (k Keyboard) Status(letter byte) KeyStatus {
	if letter < 'A' || letter > 'Z' {
		return KeyUnused
	}
	return k[letter-'A']
}

// Upgrade raises the letter's status to s if s ranks higher.
// It reports whether the status changed.
func (k *Keyboard) Upgrade(letter byte, s KeyStatus) bool {
	if letter < 'A' || letter > 'Z' {
		return false
	}
	i := letter - 'A'
	if s <= k[i] {
		return false
	}
	k[i] = s
	return true
}

// Attempt is one accepted guess together with its marks.
type Attempt struct {
	Guess string
	Marks Marks
}

// State is the coarse phase of a round.
type State uint8

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

var stateNames = [...]string{
	StatePlaying: "playing",
	StateWon:     "won",
	StateLost:    "lost",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// MarshalText encodes the state as "playing", "won" or "lost".
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the state of a round plus the number of attempts made so far.
// For StateWon, Attempts is the winning attempt number.
type Outcome struct {
	State    State
	Attempts int
}

// Finished reports whether the round has been won or lost.
func (o Outcome) Finished() bool { return o.State != StatePlaying }

// RoundUpdate is returned for every accepted guess.
type RoundUpdate struct {
	Attempt Attempt
	Outcome Outcome
}
