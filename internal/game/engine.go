// internal/game/engine.go
//
// Core engine for a single Wordall session.
// Responsibilities:
//   - Create sessions around a target word (default 6 guesses of 5 letters).
//   - Validate and apply guesses (alphabet, length, optional lexicon, budget).
//   - Score guesses with the two-pass, duplicate-aware algorithm.
//   - Track the best status seen for every guessed letter (keyboard hints).
//   - Reset and restart the session in place.
//
// The engine performs no I/O and holds no locks; hosts that share a Session
// between goroutines must serialize access themselves.
package game

import (
	"fmt"
	"strings"
)

const (
	DefaultWordLength = 5
	DefaultMaxGuesses = 6
)

// Session is the state of one game: target, guess history and letter hints.
type Session struct {
	target     string
	wordLength int
	maxGuesses int
	attempts   []Attempt
	letters    map[rune]Status
	lexicon    Lexicon
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithWordLength sets the required guess length. Non-positive values are ignored.
func WithWordLength(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.wordLength = n
		}
	}
}

// WithMaxGuesses sets the guess budget. Non-positive values are ignored.
func WithMaxGuesses(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxGuesses = n
		}
	}
}

// WithLexicon makes SubmitGuess reject words the lexicon does not contain.
func WithLexicon(l Lexicon) Option {
	return func(s *Session) { s.lexicon = l }
}

// New constructs a session around target. The target is uppercased.
func New(target string, opts ...Option) *Session {
	s := &Session{
		target:     strings.ToUpper(target),
		wordLength: DefaultWordLength,
		maxGuesses: DefaultMaxGuesses,
		letters:    make(map[rune]Status),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target returns the secret word ("" after Reset).
func (s *Session) Target() string { return s.target }

// WordLength returns the length every guess must have.
func (s *Session) WordLength() int { return s.wordLength }

// MaxGuesses returns the guess budget.
func (s *Session) MaxGuesses() int { return s.maxGuesses }

// RemainingGuesses returns 0 once solved, otherwise the unused budget.
func (s *Session) RemainingGuesses() int {
	if s.IsSolved() {
		return 0
	}
	return s.maxGuesses - len(s.attempts)
}

// IsSolved reports whether the most recent guess equals the target.
func (s *Session) IsSolved() bool {
	if len(s.attempts) == 0 {
		return false
	}
	return s.attempts[len(s.attempts)-1].Word == s.target
}

// SubmitGuess validates raw and, if accepted, records it and updates the
// letter hints.
//
// Validation order:
//  1. only ASCII letters (case-insensitive)
//  2. exactly WordLength characters
//  3. known to the lexicon, when one is configured
//
// Each of these fails with ErrInvalidFormat. A well-formed guess submitted
// when RemainingGuesses is 0 fails with ErrExhaustedBudget.
func (s *Session) SubmitGuess(raw string) error {
	if !isAlpha(raw) {
		return invalidFormat("your guess can only contain values from the english alphabet. Try again.")
	}
	if len(raw) != s.wordLength {
		return invalidFormat(fmt.Sprintf(
			"Your guess can be no more or less than %d characters. Try again.", s.wordLength))
	}
	guess := strings.ToUpper(raw)
	if s.lexicon != nil && !s.lexicon.Contains(guess) {
		return invalidFormat("not a valid word")
	}
	if s.RemainingGuesses() < 1 {
		return &GuessError{Kind: ErrExhaustedBudget, Msg: "Unable to make any more guesses"}
	}
	if s.target == "" {
		// Reset leaves no target; a guess must not score against "".
		return &GuessError{Kind: ErrExhaustedBudget, Msg: "No game in progress. Start a new game."}
	}

	marks := Evaluate(s.target, guess)
	s.attempts = append(s.attempts, Attempt{Word: guess, Marks: marks})
	for i, r := range guess {
		s.letters[r] = Max(s.letters[r], marks[i])
	}
	return nil
}

// Guesses returns the accepted guesses in submission order.
func (s *Session) Guesses() []string {
	out := make([]string, len(s.attempts))
	for i, a := range s.attempts {
		out[i] = a.Word
	}
	return out
}

// Attempts returns a copy of the accepted guesses with their marks.
func (s *Session) Attempts() []Attempt {
	out := make([]Attempt, len(s.attempts))
	for i, a := range s.attempts {
		out[i] = Attempt{Word: a.Word, Marks: append([]Status(nil), a.Marks...)}
	}
	return out
}

// UsedLetters returns a snapshot of the best status recorded per letter.
func (s *Session) UsedLetters() map[rune]Status {
	out := make(map[rune]Status, len(s.letters))
	for r, st := range s.letters {
		out[r] = st
	}
	return out
}

// Reset clears the target, guesses and letter hints. Word length and budget
// are kept.
func (s *Session) Reset() {
	s.target = ""
	s.attempts = nil
	clear(s.letters)
}

// NewGame resets the session and installs a new target. A positive
// wordLength replaces the current one.
func (s *Session) NewGame(target string, wordLength int) {
	s.Reset()
	s.target = strings.ToUpper(target)
	if wordLength > 0 {
		s.wordLength = wordLength
	}
}

// Evaluate scores guess against target.
//
// Pass 1 marks exact matches and counts the target letters they did not
// consume. Pass 2 walks the remaining positions left to right, marking a
// letter present while its count lasts and absent otherwise. A letter is
// therefore never highlighted more often than it occurs in the target.
//
// Both words are expected uppercase. Guess positions beyond the end of a
// shorter target are absent.
func Evaluate(target, guess string) []Status {
	marks := make([]Status, len(guess))
	if guess == target {
		for i := range marks {
			marks[i] = StatusMatched
		}
		return marks
	}

	var counts [26]int
	for i := 0; i < len(target); i++ {
		if i < len(guess) && guess[i] == target[i] {
			marks[i] = StatusMatched
			continue
		}
		if j := idx(target[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < len(guess); i++ {
		if marks[i] == StatusMatched {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			marks[i] = StatusPresent
			counts[j]--
		}
	}
	return marks
}

// idx maps an uppercase ASCII letter to 0..25, anything else to -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// isAlpha reports whether s consists only of ASCII letters of either case.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
