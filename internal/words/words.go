// Provides word list management for the round engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     embedded lists in the assets package.
//   - Keep the allowed set a superset of the answers.
//   - Implement game.WordSource (PickAnswer, IsValidGuess).
//
// Loading behavior (Load):
//  1. answersPath and allowedPath both set: read each file.
//  2. only allowedPath set: that file serves as both lists.
//  3. neither set: embedded assets/answers.txt and assets/allowed.txt.
//
// Words are kept uppercase; anything that is not exactly five letters A–Z
// after trimming is dropped.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/termle/assets"
	"github.com/robalobadob/termle/internal/game"
)

// ErrNoAnswers is returned when the answer list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Source is an immutable pair of word lists.
type Source struct {
	answers []string
	allowed mapset.Set[string] // answers ∪ extra guesses
}

var _ game.WordSource = (*Source)(nil)

// New builds a Source from in-memory lists. Entries are normalized and
// filtered; answers are always added to the allowed set.
func New(answers, allowed []string) (*Source, error) {
	s := &Source{
		answers: clean(answers),
		allowed: mapset.New[string](),
	}
	if len(s.answers) == 0 {
		return nil, ErrNoAnswers
	}
	for _, w := range s.answers {
		s.allowed.Put(w)
	}
	for _, w := range clean(allowed) {
		s.allowed.Put(w)
	}
	return s, nil
}

// Load reads the word lists; see the package comment for the path rules.
func Load(answersPath, allowedPath string) (*Source, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}

	return New(ansList, allowList)
}

// readWordFile loads one word per line from a file on disk.
func readWordFile(path string) ([]string, error) {
	list, err := assets.ReadLines(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return list, nil
}

// clean normalizes entries and drops invalid words and duplicates,
// preserving first-seen order.
func clean(list []string) []string {
	seen := mapset.New[string]()
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = game.Normalize(w)
		if !game.IsWord(w) || seen.Has(w) {
			continue
		}
		seen.Put(w)
		out = append(out, w)
	}
	return out
}

// PickAnswer returns a uniformly random answer using crypto/rand.
func (s *Source) PickAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.answers))))
	if err != nil {
		return s.answers[0]
	}
	return s.answers[n.Int64()]
}

// IsValidGuess reports whether w is in the allowed set. Case-insensitive.
func (s *Source) IsValidGuess(w string) bool {
	return s.allowed.Has(game.Normalize(w))
}

// Answers returns a copy of the answer list in load order.
func (s *Source) Answers() []string {
	out := make([]string, len(s.answers))
	copy(out, s.answers)
	return out
}

// Len returns the number of answers.
func (s *Source) Len() int { return len(s.answers) }

// AnswerAt returns the i-th answer, wrapping i into range.
func (s *Source) AnswerAt(i int) string {
	n := len(s.answers)
	return s.answers[((i%n)+n)%n]
}

// Stats returns counts of loaded words: (answers, allowed).
func (s *Source) Stats() (answersCount int, allowedCount int) {
	return len(s.answers), s.allowed.Size()
}
