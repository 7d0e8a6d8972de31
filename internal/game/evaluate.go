package game

import "fmt"

// Scorer computes the marks for guess against answer.
// Both arguments must already be valid uppercase words of WordLength letters.
type Scorer func(answer, guess string) Marks

// Scoring policy names accepted by ScorerByName.
const (
	ScoringCount    = "count"
	ScoringStandard = "standard"
)

// Evaluate scores a guess with the count-comparison rule.
//
// Exact matches are Correct. Any other tile is Present only when its letter
// occurs in the answer at all and occurs the same number of times in the
// answer as in the whole guess; otherwise it is Absent. Repeated letters are
// therefore either all credited or all refused, e.g. ALLOY/LOLLY leaves both
// unmatched L's Absent (2 in the answer, 3 in the guess).
func Evaluate(answer, guess string) Marks {
	var res Marks
	for i := 0; i < WordLength; i++ {
		if guess[i] == answer[i] {
			res[i] = Correct
		}
	}
	for i := 0; i < WordLength; i++ {
		if res[i] == Correct {
			continue
		}
		c := guess[i]
		a, b := countByte(answer, c), countByte(guess, c)
		if a > 0 && a == b {
			res[i] = Present
		} else {
			res[i] = Absent
		}
	}
	return res
}

// EvaluateStandard implements the usual two-pass Wordle scoring.
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count the answer letters left unmatched.
//
// Pass 2:
//   - Walking left to right, a non-correct guess letter becomes Present while
//     unmatched copies remain, consuming one each time; otherwise Absent.
func EvaluateStandard(answer, guess string) Marks {
	var res Marks
	var counts [alphabet]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == answer[i] {
			res[i] = Correct
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// ScorerByName resolves a scoring policy name. The empty name means ScoringCount.
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", ScoringCount:
		return Evaluate, nil
	case ScoringStandard:
		return EvaluateStandard, nil
	}
	return nil, fmt.Errorf("game: unknown scoring policy %q", name)
}

func countByte(s string, c byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			n++
		}
	}
	return n
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'A') }
