// internal/game/types.go
//
// Core type definitions for the Wordall session engine.
// Defines:
//   - Status: per-letter result of a guess (absent/present/matched).
//   - Attempt: an accepted guess together with its per-letter marks.
//   - Lexicon: optional word-membership check consulted by SubmitGuess.

package game

import "fmt"

// Status represents the evaluation result for a single letter.
// Values are ordered: StatusAbsent < StatusPresent < StatusMatched.
type Status int

const (
	// StatusAbsent: the letter contributes no further highlight for this guess.
	StatusAbsent Status = iota
	// StatusPresent: the letter is in the target, but not at this position.
	StatusPresent
	// StatusMatched: the letter is in the target at this exact position.
	StatusMatched
)

var statusNames = [...]string{
	StatusAbsent:  "absent",
	StatusPresent: "present",
	StatusMatched: "matched",
}

func (s Status) String() string {
	if s < StatusAbsent || s > StatusMatched {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name so JSON payloads stay readable.
func (s Status) MarshalText() ([]byte, error) {
	if s < StatusAbsent || s > StatusMatched {
		return nil, fmt.Errorf("game: invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown status %q", string(b))
}

// Max returns the better of two statuses.
func Max(a, b Status) Status {
	if a > b {
		return a
	}
	return b
}

// Attempt is one accepted guess and the marks it received.
type Attempt struct {
	Word  string   `json:"word"`
	Marks []Status `json:"marks"`
}

// Lexicon decides whether a word is acceptable as a guess.
// Words are passed uppercased.
type Lexicon interface {
	Contains(word string) bool
}

// LexiconFunc adapts a plain function to the Lexicon interface.
type LexiconFunc func(word string) bool

func (f LexiconFunc) Contains(word string) bool { return f(word) }
