package game

// RejectReason explains why SubmitGuess refused a guess.
// A rejected guess never changes the round.
type RejectReason uint8

const (
	ErrInvalidWord    RejectReason = iota + 1 // not in the guess dictionary
	ErrAlreadyGuessed                         // accepted earlier this round
	ErrRoundFinished                          // round already won or lost
	ErrMalformedInput                         // wrong length or non-letters
)

func (r RejectReason) Error() string {
	switch r {
	case ErrInvalidWord:
		return "not in word list"
	case ErrAlreadyGuessed:
		return "already guessed"
	case ErrRoundFinished:
		return "round finished"
	case ErrMalformedInput:
		return "invalid guess"
	}
	return "rejected"
}

// Is lets errors.Is(ErrMalformedInput, ErrInvalidWord) hold, so callers that
// only report "invalid word" need a single check.
func (r RejectReason) Is(target error) bool {
	t, ok := target.(RejectReason)
	return ok && r == ErrMalformedInput && t == ErrInvalidWord
}
