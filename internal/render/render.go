// internal/render/render.go
//
// Terminal presentation of a game session.
// Responsibilities:
//   - Banner, board (one row per guess slot), QWERTY keyboard hints, footer.
//   - Colored tiles through lipgloss when the output supports color.
//   - Text markers when it does not: [X] matched, (X) present, " X " absent;
//     absent keys are shown in lowercase.
//
// The renderer only reads session state through View; it never mutates it.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/robalobadob/wordall/internal/game"
)

// DefaultWidth matches the narrow console the game was designed for.
const DefaultWidth = 40

// KeyboardRows is the QWERTY layout used for letter hints.
var KeyboardRows = [...]string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// View is the read-only session state the renderer needs. *game.Session
// satisfies it.
type View interface {
	Target() string
	WordLength() int
	MaxGuesses() int
	RemainingGuesses() int
	IsSolved() bool
	Attempts() []game.Attempt
	UsedLetters() map[rune]game.Status
}

// Renderer turns session state into strings ready to print.
type Renderer struct {
	lr     *lipgloss.Renderer
	width  int
	styles styles
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithWidth centers output within n columns. Zero disables centering.
func WithWidth(n int) Option {
	return func(r *Renderer) { r.width = n }
}

// WithoutColor forces text markers regardless of the terminal.
func WithoutColor() Option {
	return func(r *Renderer) { r.lr.SetColorProfile(termenv.Ascii) }
}

// WithProfile forces a specific color profile.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) { r.lr.SetColorProfile(p) }
}

// New returns a Renderer whose color support is detected from w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{lr: lipgloss.NewRenderer(w), width: DefaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = newStyles(r.lr)
	return r
}

func (r *Renderer) plain() bool { return r.lr.ColorProfile() == termenv.Ascii }

func (r *Renderer) center(s string) string {
	if r.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = r.lr.PlaceHorizontal(r.width, lipgloss.Center, l)
	}
	return strings.Join(lines, "\n")
}

// Banner is the title line shown at the top of every screen.
func (r *Renderer) Banner() string {
	title := "Hello from Word-all"
	rule := strings.Repeat("─", 3)
	return r.center(r.styles.banner.Render(rule + " " + title + " " + rule))
}

// Tile renders one letter with its mark.
func (r *Renderer) Tile(letter byte, mark game.Status) string {
	if r.plain() {
		switch mark {
		case game.StatusMatched:
			return "[" + string(letter) + "]"
		case game.StatusPresent:
			return "(" + string(letter) + ")"
		default:
			return " " + string(letter) + " "
		}
	}
	cell := " " + string(letter) + " "
	switch mark {
	case game.StatusMatched:
		return r.styles.matched.Render(cell)
	case game.StatusPresent:
		return r.styles.present.Render(cell)
	default:
		return r.styles.absent.Render(cell)
	}
}

// Row renders one accepted guess.
func (r *Renderer) Row(a game.Attempt) string {
	var b strings.Builder
	for i := 0; i < len(a.Word); i++ {
		mark := game.StatusAbsent
		if i < len(a.Marks) {
			mark = a.Marks[i]
		}
		b.WriteString(r.Tile(a.Word[i], mark))
	}
	return b.String()
}

// EmptyRow renders an unused guess slot of the given length.
func (r *Renderer) EmptyRow(length int) string {
	return r.styles.empty.Render(strings.Repeat(" _ ", length))
}

// Board renders every guess slot: accepted guesses first, then placeholders.
func (r *Renderer) Board(v View) string {
	attempts := v.Attempts()
	rows := make([]string, 0, v.MaxGuesses())
	for i := 0; i < v.MaxGuesses(); i++ {
		if i < len(attempts) {
			rows = append(rows, r.Row(attempts[i]))
		} else {
			rows = append(rows, r.EmptyRow(v.WordLength()))
		}
	}
	return r.center(strings.Join(rows, "\n"))
}

// Key renders one keyboard letter with its hint.
func (r *Renderer) Key(letter rune, used map[rune]game.Status) string {
	st, ok := used[letter]
	if !ok {
		return string(letter)
	}
	if r.plain() {
		switch st {
		case game.StatusMatched:
			return "[" + string(letter) + "]"
		case game.StatusPresent:
			return "(" + string(letter) + ")"
		default:
			return strings.ToLower(string(letter))
		}
	}
	switch st {
	case game.StatusMatched:
		return r.styles.matched.Render(string(letter))
	case game.StatusPresent:
		return r.styles.present.Render(string(letter))
	default:
		return r.styles.keyStruck.Render(string(letter))
	}
}

// KeyboardRow renders the letters of row separated by spaces.
func (r *Renderer) KeyboardRow(row string, used map[rune]game.Status) string {
	keys := make([]string, 0, len(row))
	for _, c := range row {
		keys = append(keys, r.Key(c, used))
	}
	return strings.Join(keys, " ")
}

// Keyboard renders the three QWERTY rows.
func (r *Renderer) Keyboard(used map[rune]game.Status) string {
	rows := make([]string, len(KeyboardRows))
	for i, row := range KeyboardRows {
		rows[i] = r.KeyboardRow(row, used)
	}
	return r.center(strings.Join(rows, "\n"))
}

// Footer reports the outcome of a finished game, or how many guesses are
// left in one still in progress. It is empty before the first guess.
func (r *Renderer) Footer(v View) string {
	switch {
	case v.IsSolved():
		return r.center(r.styles.success.Render("🎉 you got it!!") + "\n" + v.Target())
	case v.RemainingGuesses() == 0:
		return r.center(r.styles.failure.Render("😞 Sorry, You are out of guesses..") + "\n" + v.Target())
	case len(v.Attempts()) == 0:
		return ""
	default:
		return r.center(r.styles.info.Render(fmt.Sprintf("Try again (%d left)", v.RemainingGuesses())))
	}
}

// Screen renders the whole game: banner, board, keyboard and footer.
func (r *Renderer) Screen(v View) string {
	parts := []string{r.Banner(), r.Board(v), "", r.Keyboard(v.UsedLetters())}
	if f := r.Footer(v); f != "" {
		parts = append(parts, "", f)
	}
	return strings.Join(parts, "\n") + "\n"
}

// Error styles a message for a rejected action.
func (r *Renderer) Error(msg string) string {
	return r.styles.errorMsg.Render(msg)
}

// Info styles a neutral message.
func (r *Renderer) Info(msg string) string {
	return r.styles.info.Render(msg)
}
