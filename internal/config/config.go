// internal/config/config.go
//
// Shared command-line and environment configuration.
// Responsibilities:
//   - Flag groups embedded by the CLI commands (kong tags with WORDALL_*
//     environment fallbacks).
//   - Loading .env files before flags are parsed.
//   - Building the process logger from the log flags.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordall/internal/words"
)

// Words selects the word length and where word lists come from.
type Words struct {
	WordLength  int    `name:"word-length" default:"5" env:"WORDALL_WORD_LENGTH" help:"Letters per word."`
	AnswersFile string `name:"answers-file" env:"WORDALL_ANSWERS_FILE" help:"Text file of possible answers, one per line."`
	AllowedFile string `name:"allowed-file" env:"WORDALL_ALLOWED_FILE" help:"Text file of extra allowed guesses, one per line."`
	DB          string `name:"words-db" env:"WORDALL_WORDS_DB" help:"SQLite word database (see import-words). Takes precedence over files."`
}

// Sources converts the flags into word-list sources.
func (w Words) Sources() words.Sources {
	return words.Sources{AnswersFile: w.AnswersFile, AllowedFile: w.AllowedFile, DB: w.DB}
}

// Game holds the rules every session is created with.
type Game struct {
	MaxGuesses int    `name:"max-guesses" default:"6" env:"WORDALL_MAX_GUESSES" help:"Guesses per game."`
	Strict     bool   `name:"strict" env:"WORDALL_STRICT" help:"Reject guesses that are not in the word list."`
	DailySalt  string `name:"daily-salt" env:"WORDALL_DAILY_SALT" help:"Secret mixed into the word of the day."`
}

// Dictionary configures the optional external word check.
type Dictionary struct {
	Enabled bool          `name:"dictionary" env:"WORDALL_DICTIONARY" help:"Check guesses against an online dictionary."`
	URL     string        `name:"dictionary-url" env:"WORDALL_DICTIONARY_URL" help:"Dictionary API base URL."`
	Timeout time.Duration `name:"dictionary-timeout" default:"5s" env:"WORDALL_DICTIONARY_TIMEOUT" help:"Dictionary request timeout."`
}

// Log configures the process logger.
type Log struct {
	Level  string `name:"log-level" default:"info" enum:"trace,debug,info,warn,error" env:"WORDALL_LOG_LEVEL" help:"Log level (${enum})."`
	Format string `name:"log-format" default:"console" enum:"console,json" env:"WORDALL_LOG_FORMAT" help:"Log format (${enum})."`
}

// Logger builds a zerolog logger writing to w.
func (l Log) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	switch l.Format {
	case "json":
		zerolog.TimeFieldFormat = time.RFC3339Nano
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	case "", "console":
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}).
			Level(level).
			With().
			Timestamp().
			Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", l.Format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Server configures the HTTP host.
type Server struct {
	Addr          string        `name:"addr" default:":5175" env:"WORDALL_ADDR" help:"Listen address."`
	Secret        string        `name:"jwt-secret" env:"WORDALL_JWT_SECRET" help:"Secret used to sign player tokens."`
	TokenTTL      time.Duration `name:"token-ttl" default:"336h" env:"WORDALL_TOKEN_TTL" help:"Player token lifetime."`
	GameTTL       time.Duration `name:"game-ttl" default:"24h" env:"WORDALL_GAME_TTL" help:"Idle games are dropped after this long."`
	SweepInterval time.Duration `name:"sweep-interval" default:"5m" env:"WORDALL_SWEEP_INTERVAL" help:"How often idle games are dropped."`
	CookieName    string        `name:"cookie-name" default:"wordall_player" env:"WORDALL_COOKIE_NAME" help:"Player token cookie."`
	SecureCookies bool          `name:"secure-cookies" env:"WORDALL_SECURE_COOKIES" help:"Mark cookies Secure (HTTPS deployments)."`
	ClientOrigin  string        `name:"client-origin" env:"WORDALL_CLIENT_ORIGIN" help:"Origin allowed to make credentialed CORS requests."`
}

// LoadEnvFiles loads each file into the environment. Missing files are
// skipped; variables already set win over file values.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
