package game

import "errors"

var (
	// ErrInvalidFormat marks guesses rejected for their content: non-letters,
	// wrong length, or a word the configured Lexicon does not know.
	ErrInvalidFormat = errors.New("invalid guess format")

	// ErrExhaustedBudget marks guesses submitted after the session was solved
	// or ran out of guesses.
	ErrExhaustedBudget = errors.New("guess budget exhausted")
)

// GuessError is returned by SubmitGuess. Kind is one of the sentinel errors
// above and is reachable through errors.Is.
type GuessError struct {
	Kind error
	Msg  string
}

func (e *GuessError) Error() string { return e.Msg }

func (e *GuessError) Unwrap() error { return e.Kind }

func invalidFormat(msg string) error {
	return &GuessError{Kind: ErrInvalidFormat, Msg: msg}
}
