package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "utc date",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "2024-12-12",
		},
		{
			name:     "local time before utc midnight rolls back",
			date:     time.Date(2024, 1, 1, 5, 0, 0, 0, loc),
			expected: "2023-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateKey(tt.date))
		})
	}
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	t.Run("deterministic within a day", func(t *testing.T) {
		a := WordIndex(day, "salt", 2315)
		b := WordIndex(day.Add(10*time.Hour), "salt", 2315)
		assert.Equal(t, a, b)
	})

	t.Run("always in range", func(t *testing.T) {
		for i := 0; i < 400; i++ {
			idx := WordIndex(day.AddDate(0, 0, i), "salt", 7)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 7)
		}
	})

	t.Run("varies across days and salts", func(t *testing.T) {
		seen := map[int]bool{}
		for i := 0; i < 30; i++ {
			seen[WordIndex(day.AddDate(0, 0, i), "salt", 2315)] = true
		}
		assert.Greater(t, len(seen), 20)

		diff := 0
		for i := 0; i < 30; i++ {
			d := day.AddDate(0, 0, i)
			if WordIndex(d, "a", 2315) != WordIndex(d, "b", 2315) {
				diff++
			}
		}
		assert.Greater(t, diff, 20)
	})

	t.Run("long salt", func(t *testing.T) {
		long := "0123456789012345678901234567890123456789012345678901234567890123456789"
		idx := WordIndex(day, long, 10)
		assert.Equal(t, idx, WordIndex(day, long, 10))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, 0, WordIndex(day, "salt", 0))
	})
}

type wordList []string

func (l wordList) Len() int              { return len(l) }
func (l wordList) AnswerAt(i int) string { return l[i] }

func TestAnswer(t *testing.T) {
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	answers := wordList{"CRANE", "MANGO", "ALLOY"}

	got := Answer(day, "salt", answers)
	assert.Contains(t, answers, got)
	assert.Equal(t, answers[WordIndex(day, "salt", len(answers))], got)
	assert.Equal(t, "", Answer(day, "salt", wordList(nil)))
}
