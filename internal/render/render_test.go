package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordall/internal/game"
)

func plainRenderer() *Renderer {
	return New(&bytes.Buffer{}, WithoutColor(), WithWidth(0))
}

func session(t *testing.T, target string, guesses ...string) *game.Session {
	t.Helper()
	s := game.New(target, game.WithWordLength(len(target)))
	for _, g := range guesses {
		require.NoError(t, s.SubmitGuess(g))
	}
	return s
}

func TestRow_Plain(t *testing.T) {
	r := plainRenderer()
	tests := []struct {
		target, guess, want string
	}{
		{"SEVER", "SAVER", "[S] A [V][E][R]"},
		{"CHEEVER", "SONNETS", " S  O  N  N (E) T  S "},
		{"SEVER", "SEVER", "[S][E][V][E][R]"},
		{"SPENT", "EASED", "(E) A (S) E  D "},
	}
	for _, tt := range tests {
		t.Run(tt.guess, func(t *testing.T) {
			s := session(t, tt.target, tt.guess)
			assert.Equal(t, tt.want, r.Row(s.Attempts()[0]))
		})
	}
}

func TestBoard_FillsEmptySlots(t *testing.T) {
	r := plainRenderer()
	s := session(t, "SEVER", "EVENT", "SAVER")
	lines := strings.Split(r.Board(s), "\n")
	require.Len(t, lines, game.DefaultMaxGuesses)
	assert.Equal(t, "[S] A [V][E][R]", lines[1])
	for _, l := range lines[2:] {
		assert.Equal(t, strings.Repeat(" _ ", 5), l)
	}
}

func TestKeyboardRow_Plain(t *testing.T) {
	r := plainRenderer()
	tests := []struct {
		name string
		used map[rune]game.Status
		want string
	}{
		{"matched", map[rune]game.Status{'A': game.StatusMatched}, "[A] B E C W I F"},
		{"present", map[rune]game.Status{'W': game.StatusPresent}, "A B E C (W) I F"},
		{"absent", map[rune]game.Status{'I': game.StatusAbsent}, "A B E C W i F"},
		{"mixed", map[rune]game.Status{
			'B': game.StatusAbsent,
			'C': game.StatusPresent,
			'F': game.StatusMatched,
		}, "A b E (C) W I [F]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.KeyboardRow("ABECWIF", tt.used))
		})
	}
}

func TestKeyboard_HasThreeRows(t *testing.T) {
	r := plainRenderer()
	s := session(t, "SEVER", "SAVER")
	lines := strings.Split(r.Keyboard(s.UsedLetters()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Q W [E] [R] T Y U I O P", lines[0])
	assert.Equal(t, "a [S] D F G H J K L", lines[1])
	assert.Equal(t, "Z X C [V] B N M", lines[2])
}

func TestFooter(t *testing.T) {
	r := plainRenderer()

	assert.Empty(t, r.Footer(session(t, "SEVER")))

	f := r.Footer(session(t, "SEVER", "EVENT"))
	assert.Contains(t, f, "Try again (5 left)")

	f = r.Footer(session(t, "SEVER", "EVENT", "SEVER"))
	assert.Contains(t, f, "you got it!!")
	assert.True(t, strings.HasSuffix(f, "SEVER"))

	f = r.Footer(session(t, "SEVER", "AERIE", "EVENT", "SAVER", "SLIDE", "ABIDE", "CHIDE"))
	assert.Contains(t, f, "out of guesses")
	assert.True(t, strings.HasSuffix(f, "SEVER"))
}

func TestScreen(t *testing.T) {
	r := New(&bytes.Buffer{}, WithoutColor())
	out := r.Screen(session(t, "SEVER", "SAVER"))
	assert.Contains(t, out, "Hello from Word-all")
	assert.Contains(t, out, "[S] A [V][E][R]")
	assert.Contains(t, out, "Try again")
	assert.True(t, strings.HasSuffix(out, "\n"))
	for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(l)), DefaultWidth+2, "line %q", l)
	}
}

func TestColorOutput(t *testing.T) {
	color := New(&bytes.Buffer{}, WithProfile(termenv.ANSI256), WithWidth(0))
	plain := plainRenderer()
	s := session(t, "SEVER", "SAVER")

	row := color.Row(s.Attempts()[0])
	assert.Contains(t, row, "\x1b[")
	assert.NotEqual(t, plain.Row(s.Attempts()[0]), row)
	assert.NotContains(t, plain.Row(s.Attempts()[0]), "\x1b[")

	assert.Contains(t, color.Key('S', s.UsedLetters()), "\x1b[")
	assert.Equal(t, "Q", color.Key('Q', s.UsedLetters()), "unused keys are unstyled")
}
