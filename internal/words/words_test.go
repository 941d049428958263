package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordall/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestNew_NormalizesAndFilters(t *testing.T) {
	l, err := New(5,
		[]string{"sever", " Saver ", "toolong", "so_so", "SEVER", "ab1de"},
		[]string{"event", "cat"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEVER", "SAVER"}, l.Answers())
	assert.Equal(t, 5, l.WordLength())

	a, g := l.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)

	assert.True(t, l.Contains("event"))
	assert.True(t, l.Contains("SEVER"), "answers are always allowed")
	assert.False(t, l.Contains("CAT"))
	assert.Contains(t, l.Answers(), "SAVER")
	assert.NotContains(t, l.Answers(), "EVENT")
}

func TestNew_Empty(t *testing.T) {
	_, err := New(7, []string{"sever"}, nil)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestList_Random(t *testing.T) {
	l, err := New(5, []string{"sever", "saver", "event"}, nil)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.Contains(t, l.Answers(), l.Random())
	}
}

func TestList_IsLexicon(t *testing.T) {
	l, err := New(5, []string{"sever"}, []string{"saver"})
	require.NoError(t, err)

	s := game.New("SEVER", game.WithLexicon(l))
	require.ErrorIs(t, s.SubmitGuess("ZZZZZ"), game.ErrInvalidFormat)
	require.NoError(t, s.SubmitGuess("saver"))
}

func TestEmbedded(t *testing.T) {
	l, err := Embedded(5)
	require.NoError(t, err)
	assert.Greater(t, l.Len(), 50)
	for _, w := range []string{"SEVER", "SAVER", "EVENT", "AERIE"} {
		assert.True(t, l.Contains(w), w)
	}

	_, err = Embedded(12)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_Files(t *testing.T) {
	answers := writeFile(t, "answers.txt", "# answers\nsever\n\nsaver\n")
	allowed := writeFile(t, "allowed.txt", "event\naerie\n")
	ctx := context.Background()

	t.Run("both files", func(t *testing.T) {
		l, err := Load(ctx, 5, Sources{AnswersFile: answers, AllowedFile: allowed})
		require.NoError(t, err)
		assert.Equal(t, []string{"SEVER", "SAVER"}, l.Answers())
		assert.True(t, l.Contains("AERIE"))
	})

	t.Run("allowed only", func(t *testing.T) {
		l, err := Load(ctx, 5, Sources{AllowedFile: allowed})
		require.NoError(t, err)
		assert.Equal(t, []string{"EVENT", "AERIE"}, l.Answers())
	})

	t.Run("answers only", func(t *testing.T) {
		l, err := Load(ctx, 5, Sources{AnswersFile: answers})
		require.NoError(t, err)
		assert.False(t, l.Contains("EVENT"))
	})

	t.Run("embedded fallback", func(t *testing.T) {
		l, err := Load(ctx, 5, Sources{})
		require.NoError(t, err)
		assert.True(t, l.Contains("CRANE"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(ctx, 5, Sources{AnswersFile: filepath.Join(t.TempDir(), "nope.txt")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	answers := writeFile(t, "answers.txt", "sever\nsaver\ncheever\n")
	lib := NewLibrary(Sources{AnswersFile: answers})

	five, err := lib.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEVER", "SAVER"}, five.Answers())

	again, err := lib.Get(ctx, 5)
	require.NoError(t, err)
	assert.Same(t, five, again)

	seven, err := lib.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"CHEEVER"}, seven.Answers())

	_, err = lib.Get(ctx, 4)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLibrary_Contains(t *testing.T) {
	answers := writeFile(t, "answers.txt", "sever\ncheever\n")
	lib := NewLibrary(Sources{AnswersFile: answers})
	assert.True(t, lib.Contains("SEVER"))
	assert.True(t, lib.Contains("cheever"))
	assert.False(t, lib.Contains("SAVER"))
	assert.False(t, lib.Contains("ABCD"))
}
