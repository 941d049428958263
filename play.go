package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordall/internal/config"
	"github.com/robalobadob/wordall/internal/dictionary"
	"github.com/robalobadob/wordall/internal/play"
	"github.com/robalobadob/wordall/internal/render"
	"github.com/robalobadob/wordall/internal/words"
)

// PlayCmd runs an interactive game on stdin/stdout.
type PlayCmd struct {
	Words      config.Words      `embed:""`
	Game       config.Game       `embed:""`
	Dictionary config.Dictionary `embed:""`

	Daily   bool `help:"Start with the word of the day."`
	NoColor bool `name:"no-color" env:"NO_COLOR" help:"Plain text output."`
	Verbose bool `help:"Show info logs while playing."`
}

func (c *PlayCmd) Run(logger zerolog.Logger) error {
	if !c.Verbose && logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	list, err := words.NewLibrary(c.Words.Sources()).Get(ctx, c.Words.WordLength)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	logger.Debug().Int("answers", list.Len()).Int("wordLength", list.WordLength()).Msg("word list loaded")

	var renderOpts []render.Option
	if c.NoColor {
		renderOpts = append(renderOpts, render.WithoutColor())
	}
	opts := []play.Option{
		play.WithRenderer(render.New(os.Stdout, renderOpts...)),
		play.WithLogger(logger),
		play.WithStrict(c.Game.Strict),
		play.WithMaxGuesses(c.Game.MaxGuesses),
	}
	if c.Dictionary.Enabled {
		opts = append(opts, play.WithChecker(dictionary.New(c.Dictionary.URL, c.Dictionary.Timeout, logger)))
	}
	if c.Daily {
		opts = append(opts, play.WithDaily(c.Game.DailySalt, nil))
	}

	// Reads from stdin cannot be interrupted, so an interrupt returns
	// without waiting for the loop.
	done := make(chan error, 1)
	go func() { done <- play.New(list, os.Stdout, opts...).Run(ctx, os.Stdin) }()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		return nil
	}
}
