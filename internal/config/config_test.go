package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordall/internal/words"
)

type testCLI struct {
	Log        Log        `embed:""`
	Words      Words      `embed:""`
	Game       Game       `embed:""`
	Dictionary Dictionary `embed:""`
	Server     Server     `embed:""`
}

func parse(t *testing.T, args ...string) testCLI {
	t.Helper()
	var cli testCLI
	p, err := kong.New(&cli, kong.Name("wordall"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	_, err = p.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestDefaults(t *testing.T) {
	cli := parse(t)
	assert.Equal(t, 5, cli.Words.WordLength)
	assert.Equal(t, 6, cli.Game.MaxGuesses)
	assert.False(t, cli.Game.Strict)
	assert.False(t, cli.Dictionary.Enabled)
	assert.Equal(t, 5*time.Second, cli.Dictionary.Timeout)
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, "console", cli.Log.Format)
	assert.Equal(t, ":5175", cli.Server.Addr)
	assert.Equal(t, 14*24*time.Hour, cli.Server.TokenTTL)
	assert.Equal(t, 24*time.Hour, cli.Server.GameTTL)
	assert.Equal(t, "wordall_player", cli.Server.CookieName)
}

func TestFlags(t *testing.T) {
	cli := parse(t,
		"--word-length=7", "--max-guesses=8", "--strict",
		"--dictionary", "--dictionary-url=http://localhost:9/dict",
		"--log-level=debug", "--log-format=json",
		"--answers-file=a.txt", "--words-db=w.db",
	)
	assert.Equal(t, 7, cli.Words.WordLength)
	assert.Equal(t, 8, cli.Game.MaxGuesses)
	assert.True(t, cli.Game.Strict)
	assert.True(t, cli.Dictionary.Enabled)
	assert.Equal(t, "http://localhost:9/dict", cli.Dictionary.URL)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.Equal(t, "json", cli.Log.Format)
	assert.Equal(t, words.Sources{AnswersFile: "a.txt", DB: "w.db"}, cli.Words.Sources())
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("WORDALL_WORD_LENGTH", "6")
	t.Setenv("WORDALL_JWT_SECRET", "s3cret")
	t.Setenv("WORDALL_GAME_TTL", "90m")
	t.Setenv("WORDALL_STRICT", "true")

	cli := parse(t)
	assert.Equal(t, 6, cli.Words.WordLength)
	assert.Equal(t, "s3cret", cli.Server.Secret)
	assert.Equal(t, 90*time.Minute, cli.Server.GameTTL)
	assert.True(t, cli.Game.Strict)

	// Flags win over the environment.
	cli = parse(t, "--word-length=4")
	assert.Equal(t, 4, cli.Words.WordLength)
}

func TestRejectsUnknownLogFormat(t *testing.T) {
	var cli testCLI
	p, err := kong.New(&cli, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = p.Parse([]string{"--log-format=xml"})
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDALL_DAILY_SALT=pepper\nWORDALL_ADDR=:9999\n"), 0o644))

	t.Setenv("WORDALL_DAILY_SALT", "")
	require.NoError(t, os.Unsetenv("WORDALL_DAILY_SALT"))
	t.Setenv("WORDALL_ADDR", ":1234")

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "pepper", os.Getenv("WORDALL_DAILY_SALT"))
	assert.Equal(t, ":1234", os.Getenv("WORDALL_ADDR"), "existing variables are not overridden")

	cli := parse(t)
	assert.Equal(t, "pepper", cli.Game.DailySalt)
	require.NoError(t, os.Unsetenv("WORDALL_DAILY_SALT"))
}

func TestLoadEnvFiles_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("WORDALL_BROKEN='unterminated\n"), 0o644))
	assert.Error(t, LoadEnvFiles(path))
}

func TestLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := Log{Level: "info", Format: "json"}.Logger(&buf)
		require.NoError(t, err)
		log.Debug().Msg("hidden")
		log.Info().Str("word", "SEVER").Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"message":"shown"`)
		assert.Contains(t, buf.String(), `"word":"SEVER"`)
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := Log{Level: "debug", Format: "console"}.Logger(&buf)
		require.NoError(t, err)
		log.Debug().Msg("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.NotContains(t, buf.String(), "\x1b[", "no colors when not a terminal")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := Log{Level: "loud"}.Logger(&bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := Log{Level: "info", Format: "xml"}.Logger(&bytes.Buffer{})
		assert.Error(t, err)
	})
}
