package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordall/assets"
	"github.com/robalobadob/wordall/internal/words"
)

// ImportWordsCmd copies word lists into a SQLite database. Without files it
// imports the built-in lists.
type ImportWordsCmd struct {
	DB          string `name:"words-db" required:"" env:"WORDALL_WORDS_DB" help:"SQLite database to create or update."`
	AnswersFile string `arg:"" optional:"" help:"Text file of possible answers, one per line."`
	AllowedFile string `arg:"" optional:"" help:"Text file of extra allowed guesses, one per line."`
}

func (c *ImportWordsCmd) Run(logger zerolog.Logger) error {
	if c.AnswersFile == "" && c.AllowedFile != "" {
		return errors.New("an answers file is required when an allowed file is given")
	}

	var answers, allowed []string
	var err error
	if c.AnswersFile == "" {
		if answers, err = assets.AnswersList(); err != nil {
			return err
		}
		if allowed, err = assets.AllowedList(); err != nil {
			return err
		}
	} else {
		if answers, err = words.ReadFile(c.AnswersFile); err != nil {
			return err
		}
		if c.AllowedFile != "" {
			if allowed, err = words.ReadFile(c.AllowedFile); err != nil {
				return err
			}
		}
	}

	n, err := words.ImportSQLite(context.Background(), c.DB, answers, allowed)
	if err != nil {
		return err
	}
	logger.Info().Str("db", c.DB).Int("words", n).Msg("words imported")
	return nil
}
