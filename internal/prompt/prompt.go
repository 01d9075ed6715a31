// Package prompt runs the interactive File:/N: dialogue of the analyze
// command.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/errors"
)

// Session reads answers line by line from in and writes prompts to out.
type Session struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{in: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the next input line without its line ending.
// It returns io.EOF once input is exhausted.
func (s *Session) Ask(label string) (string, error) {
	if _, err := io.WriteString(s.out, label); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// AskPath prompts "File: " for the dataset path.
func (s *Session) AskPath() (string, error) {
	return s.Ask("File: ")
}

// AskRank prompts "N: " and parses the answer as an integer. Anything that
// is not an integer, including no answer, fails with ErrInvalidInput.
func (s *Session) AskRank() (int, error) {
	answer, err := s.Ask("N: ")
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	return ParseRank(answer)
}

// ParseRank parses a rank given on the command line or at the prompt.
func ParseRank(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "Could not read N")
	}
	return n, nil
}

// Fail writes the user-facing form of err. size is the vocabulary size and
// only matters for rank errors.
func (s *Session) Fail(err error, size int) {
	fmt.Fprintln(s.out, ErrorLine(err, size))
}

// ErrorLine renders err as a single "ERROR: ..." line.
func ErrorLine(err error, size int) string {
	if errors.Is(err, apperrors.ErrInvalidRank) {
		if size == 0 {
			return "ERROR: no words were counted, so no N is valid"
		}
		return fmt.Sprintf("ERROR: N must be between 0 and %d", size-1)
	}
	return "ERROR: " + apperrors.Message(err)
}
