package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordall/internal/config"
	"github.com/robalobadob/wordall/internal/dictionary"
	"github.com/robalobadob/wordall/internal/httpserver"
	"github.com/robalobadob/wordall/internal/store"
	"github.com/robalobadob/wordall/internal/words"
)

// ServeCmd runs the HTTP host.
type ServeCmd struct {
	Words      config.Words      `embed:""`
	Game       config.Game       `embed:""`
	Dictionary config.Dictionary `embed:""`
	Server     config.Server     `embed:""`
}

func (c *ServeCmd) Run(logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib := words.NewLibrary(c.Words.Sources())
	list, err := lib.Get(ctx, c.Words.WordLength)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	answers, allowed := list.Stats()
	logger.Info().Int("answers", answers).Int("allowed", allowed).Int("wordLength", list.WordLength()).Msg("word list loaded")

	if c.Server.Secret == "" {
		logger.Warn().Msg("WORDALL_JWT_SECRET is not set; player tokens use a development secret")
	}

	deps := httpserver.Deps{
		Store:  store.NewMemoryStore(),
		Words:  lib,
		Logger: logger,
	}
	if c.Dictionary.Enabled {
		deps.Checker = dictionary.New(c.Dictionary.URL, c.Dictionary.Timeout, logger)
	}
	srv := httpserver.New(httpserver.Config{
		WordLength:    c.Words.WordLength,
		MaxGuesses:    c.Game.MaxGuesses,
		Strict:        c.Game.Strict,
		DailySalt:     c.Game.DailySalt,
		Secret:        c.Server.Secret,
		TokenTTL:      c.Server.TokenTTL,
		GameTTL:       c.Server.GameTTL,
		CookieName:    c.Server.CookieName,
		SecureCookies: c.Server.SecureCookies,
		ClientOrigin:  c.Server.ClientOrigin,
	}, deps)

	hs := &http.Server{
		Addr:              c.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("address", c.Server.Addr).Msg("starting wordall server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.RunSweeper(gctx, c.Server.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
