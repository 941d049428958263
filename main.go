package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robalobadob/wordall/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Log     config.Log       `embed:""`

	Play        PlayCmd        `cmd:"" default:"withargs" help:"Play in the terminal (default)"`
	Serve       ServeCmd       `cmd:"" help:"Run the HTTP game server"`
	ImportWords ImportWordsCmd `cmd:"import-words" help:"Load word lists into a SQLite database"`
}

func main() {
	// .env values become defaults for the WORDALL_* flag fallbacks.
	if err := config.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wordall"),
		kong.Description("Guess the hidden word in a limited number of tries"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger, err := cli.Log.Logger(os.Stderr)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(logger))
}
