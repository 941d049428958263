// internal/play/play.go
//
// Interactive prompt loop for a terminal game.
// Responsibilities:
//   - Pick targets (random, or the word of the day for the first game).
//   - Read guesses line by line, pre-check them against an optional
//     dictionary, and submit them to the session.
//   - Re-prompt on malformed guesses; offer a new game once the session is
//     solved or out of guesses.
//   - Redraw the screen after every accepted guess.

package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordall/internal/daily"
	"github.com/robalobadob/wordall/internal/game"
	"github.com/robalobadob/wordall/internal/render"
)

const (
	guessPrompt   = "Enter your next guess:-> "
	restartPrompt = " New game? (Y/N) -> "
)

// Words supplies targets and, in strict mode, the lexicon.
type Words interface {
	WordLength() int
	Random() string
	Len() int
	At(i int) string
	Contains(word string) bool
}

// Checker is an external "is this a real word" lookup.
type Checker interface {
	IsWord(ctx context.Context, word string) (bool, error)
}

// Game drives one player's sessions over a reader and a writer.
type Game struct {
	words      Words
	out        io.Writer
	render     *render.Renderer
	checker    Checker
	log        zerolog.Logger
	strict     bool
	maxGuesses int
	daily      bool
	salt       string
	now        func() time.Time

	session *game.Session
}

// Option customizes a Game.
type Option func(*Game)

// WithRenderer replaces the default renderer for out.
func WithRenderer(r *render.Renderer) Option { return func(g *Game) { g.render = r } }

// WithChecker enables the external dictionary pre-check.
func WithChecker(c Checker) Option { return func(g *Game) { g.checker = c } }

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(g *Game) { g.log = l } }

// WithStrict rejects guesses that are not in the word list.
func WithStrict(strict bool) Option { return func(g *Game) { g.strict = strict } }

// WithMaxGuesses overrides the default budget of six guesses.
func WithMaxGuesses(n int) Option { return func(g *Game) { g.maxGuesses = n } }

// WithDaily makes the first game use the word of the day.
func WithDaily(salt string, now func() time.Time) Option {
	return func(g *Game) {
		g.daily = true
		g.salt = salt
		if now != nil {
			g.now = now
		}
	}
}

// New returns a Game writing to out.
func New(words Words, out io.Writer, opts ...Option) *Game {
	g := &Game{
		words:      words,
		out:        out,
		log:        zerolog.Nop(),
		maxGuesses: game.DefaultMaxGuesses,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.render == nil {
		g.render = render.New(out)
	}
	return g
}

// Session exposes the current session; nil before Run.
func (g *Game) Session() *game.Session { return g.session }

func (g *Game) firstTarget() string {
	if g.daily {
		g.log.Debug().Str("date", daily.DateKey(g.now())).Msg("daily word")
		return daily.Word(g.words, g.now(), g.salt)
	}
	return g.words.Random()
}

// Run plays until the player declines a new game, the input ends, or ctx is
// canceled. End of input is not an error.
func (g *Game) Run(ctx context.Context, in io.Reader) error {
	opts := []game.Option{
		game.WithWordLength(g.words.WordLength()),
		game.WithMaxGuesses(g.maxGuesses),
	}
	if g.strict {
		opts = append(opts, game.WithLexicon(g.words))
	}
	g.session = game.New(g.firstTarget(), opts...)
	g.log.Info().
		Int("wordLength", g.session.WordLength()).
		Int("maxGuesses", g.session.MaxGuesses()).
		Bool("strict", g.strict).
		Msg("game started")

	sc := bufio.NewScanner(in)
	g.print(g.render.Screen(g.session))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if g.session.RemainingGuesses() > 0 {
			line, ok := g.prompt(sc, guessPrompt)
			if !ok {
				return sc.Err()
			}
			g.guess(ctx, line)
			continue
		}

		answer, ok := g.prompt(sc, restartPrompt)
		if !ok {
			return sc.Err()
		}
		if !strings.EqualFold(answer, "y") {
			g.log.Debug().Msg("player quit")
			g.println(g.render.Info("Thanks for playing!"))
			return nil
		}
		g.session.NewGame(g.words.Random(), 0)
		g.log.Info().Msg("new game")
		g.print(g.render.Screen(g.session))
	}
}

// guess runs one guess through the dictionary pre-check and the session.
// Rejections are reported to the player and leave the session unchanged.
func (g *Game) guess(ctx context.Context, word string) {
	if g.checker != nil && g.wellFormed(word) {
		ok, err := g.checker.IsWord(ctx, strings.ToUpper(word))
		if err != nil {
			g.log.Warn().Err(err).Msg("dictionary lookup")
			g.println(g.render.Error("Could not check the dictionary: " + err.Error()))
			return
		}
		if !ok {
			g.println(g.render.Error("not a valid word"))
			return
		}
	}

	err := g.session.SubmitGuess(word)
	switch {
	case errors.Is(err, game.ErrInvalidFormat):
		g.log.Debug().Str("reason", err.Error()).Msg("guess rejected")
		g.println(g.render.Error(err.Error()))
		return
	case err != nil:
		g.println(g.render.Error(err.Error()))
		return
	}

	n := len(g.session.Guesses())
	switch {
	case g.session.IsSolved():
		g.log.Info().Int("guesses", n).Str("outcome", "won").Msg("game finished")
	case g.session.RemainingGuesses() == 0:
		g.log.Info().Int("guesses", n).Str("outcome", "lost").Msg("game finished")
	default:
		g.log.Debug().Int("guess", n).Msg("guess accepted")
	}
	g.print(g.render.Screen(g.session))
}

// wellFormed reports whether word would pass the session's format checks, so
// malformed input gets the precise format message instead of a lookup.
func (g *Game) wellFormed(word string) bool {
	if len(word) != g.session.WordLength() {
		return false
	}
	for i := 0; i < len(word); i++ {
		if c := word[i] | 0x20; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func (g *Game) prompt(sc *bufio.Scanner, p string) (string, bool) {
	g.print(p)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func (g *Game) print(s string) { _, _ = fmt.Fprint(g.out, s) }

func (g *Game) println(s string) { _, _ = fmt.Fprintln(g.out, s) }
