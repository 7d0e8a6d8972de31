// Package assets embeds the default word lists shipped with the binary and
// owns the word-list file format.
//
// Format: one word per line; blank lines and lines starting with '#' are
// skipped. Case and length normalization is left to the words package.
package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

// Embedded list names inside FS.
const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// ReadLines reads a word list named name from fsys. It serves the
// embedded FS as well as on-disk lists opened through os.DirFS.
func ReadLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}

// AnswersList returns the embedded answer list.
func AnswersList() ([]string, error) {
	return ReadLines(FS, AnswersFile)
}

// AllowedList returns the embedded extra-guesses list.
func AllowedList() ([]string, error) {
	return ReadLines(FS, AllowedFile)
}
