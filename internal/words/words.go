// internal/words/words.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Hold the answers (possible targets) and the allowed guesses for one
//     word length, normalized to uppercase A–Z.
//   - Load lists from embedded defaults, text files or a SQLite database.
//   - Supply Random, Contains (a game.Lexicon), At and Stats.
//
// Loading behavior (Load):
//  1. If Sources.DB is set, read both lists from the SQLite database.
//  2. If AnswersFile and AllowedFile are both set, read answers from the
//     first and extra guesses from the second.
//  3. If only one file is set, it supplies the answers (and so the guesses).
//  4. Otherwise fall back to the embedded defaults in package assets.
//
// Answers are always allowed as guesses.
package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordall/assets"
)

// ErrEmpty is returned when no answers of the requested length survive loading.
var ErrEmpty = errors.New("words: answers list is empty")

// Sources selects where Load reads words from. Empty fields are unused.
type Sources struct {
	AnswersFile string
	AllowedFile string
	DB          string
}

// List is an immutable set of answers and allowed guesses of a single length.
type List struct {
	length  int
	answers []string
	allowed map[string]struct{}
}

// New builds a List of words with exactly length letters. Words are trimmed
// and uppercased; anything else is dropped. Duplicate answers are kept once.
func New(length int, answers, allowed []string) (*List, error) {
	l := &List{length: length, allowed: make(map[string]struct{})}
	for _, w := range answers {
		w, ok := normalize(w, length)
		if !ok {
			continue
		}
		if _, dup := l.allowed[w]; dup {
			continue
		}
		l.answers = append(l.answers, w)
		l.allowed[w] = struct{}{}
	}
	for _, w := range allowed {
		if w, ok := normalize(w, length); ok {
			l.allowed[w] = struct{}{}
		}
	}
	if len(l.answers) == 0 {
		return nil, fmt.Errorf("%w (length %d)", ErrEmpty, length)
	}
	return l, nil
}

// Embedded returns the built-in default lists filtered to length.
func Embedded(length int) (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("read embedded answers: %w", err)
	}
	all, err := assets.AllowedList()
	if err != nil {
		return nil, fmt.Errorf("read embedded allowed: %w", err)
	}
	return New(length, ans, all)
}

// Load resolves src into a List of the given word length.
func Load(ctx context.Context, length int, src Sources) (*List, error) {
	switch {
	case src.DB != "":
		return LoadSQLite(ctx, src.DB, length)

	case src.AnswersFile != "" && src.AllowedFile != "":
		ans, err := ReadFile(src.AnswersFile)
		if err != nil {
			return nil, err
		}
		all, err := ReadFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}
		return New(length, ans, all)

	case src.AllowedFile != "":
		all, err := ReadFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}
		return New(length, all, nil)

	case src.AnswersFile != "":
		ans, err := ReadFile(src.AnswersFile)
		if err != nil {
			return nil, err
		}
		return New(length, ans, nil)

	default:
		return Embedded(length)
	}
}

// ReadFile loads one word per line from path. Blank lines and lines starting
// with '#' are skipped; no length filtering happens here.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()
	words, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// WordLength is the length shared by every word in the list.
func (l *List) WordLength() int { return l.length }

// Len is the number of answers.
func (l *List) Len() int { return len(l.answers) }

// At returns the i-th answer.
func (l *List) At(i int) string { return l.answers[i] }

// Answers returns a copy of the answers.
func (l *List) Answers() []string { return append([]string(nil), l.answers...) }

// Allowed returns every acceptable guess, answers included, in no particular order.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowed))
	for w := range l.allowed {
		out = append(out, w)
	}
	return out
}

// Random returns a cryptographically random answer.
func (l *List) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// Contains reports whether w is an acceptable guess. Case-insensitive.
func (l *List) Contains(w string) bool {
	_, ok := l.allowed[strings.ToUpper(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answers int, allowed int) {
	return len(l.answers), len(l.allowed)
}

// normalize uppercases w and reports whether it is length letters A–Z.
func normalize(w string, length int) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) != length {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", false
		}
	}
	return w, true
}
