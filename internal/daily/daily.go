// Package daily maps calendar dates onto answer indices so every player
// gets the same word on the same day.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using a BLAKE2b-256 MAC
// keyed with salt over YYYY-MM-DD, reduced modulo answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		return 0
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answers is an indexed answer list, such as *words.Source.
type Answers interface {
	Len() int
	AnswerAt(i int) string
}

// Answer returns the word of the day from list.
func Answer(date time.Time, salt string, list Answers) string {
	n := list.Len()
	if n == 0 {
		return ""
	}
	return list.AnswerAt(WordIndex(date, salt, n))
}
