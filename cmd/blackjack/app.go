package main

import (
	"context"
	"fmt"

	"github.com/minaorangina/blackjack/config"
	"github.com/minaorangina/blackjack/logging"
	"github.com/urfave/cli/v3"
)

type runner func(ctx context.Context, cfg config.Config, logger logging.Logger) error

type modes struct {
	window runner
	term   runner
	serve  runner
	mcp    runner
}

func newApp(m modes) *cli.Command {
	return &cli.Command{
		Name:  "blackjack",
		Usage: "play blackjack against the dealer",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "fps", Usage: "frame rate cap"},
			&cli.StringFlag{Name: "assets", Usage: "directory holding image/ and font/"},
			&cli.StringFlag{Name: "font", Usage: "font file name in the font directory"},
			&cli.FloatFlag{Name: "font-size", Usage: "font size in points"},
			&cli.IntFlag{Name: "decks", Usage: "number of decks in the shoe"},
			&cli.Int64Flag{Name: "seed", Usage: "shuffle seed for the first round (0 picks one)"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logs, advance only on key presses"},
			&cli.StringFlag{Name: "addr", Usage: "listen address for serve"},
			&cli.StringFlag{Name: "history", Usage: "sqlite file to record rounds in"},
			&cli.StringFlag{Name: "name", Usage: "player name"},
		},
		Action: action(m.window),
		Commands: []*cli.Command{
			{
				Name:   "window",
				Usage:  "play in a window (default)",
				Action: action(m.window),
			},
			{
				Name:   "term",
				Usage:  "play in the terminal",
				Action: action(m.term),
			},
			{
				Name:   "serve",
				Usage:  "serve games over HTTP and websockets",
				Action: action(m.serve),
			},
			{
				Name:   "mcp",
				Usage:  "serve games as MCP tools over stdio",
				Action: action(m.mcp),
			},
		},
	}
}

func action(run runner) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cfg = applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.New(cfg.Debug)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer logger.Sync()

		return run(ctx, cfg, logger)
	}
}

// applyFlags overrides the environment with any flags given
func applyFlags(cmd *cli.Command, cfg config.Config) config.Config {
	if cmd.IsSet("fps") {
		cfg.FPS = int(cmd.Int("fps"))
	}
	if cmd.IsSet("assets") {
		cfg.AssetsDir = cmd.String("assets")
	}
	if cmd.IsSet("font") {
		cfg.FontName = cmd.String("font")
	}
	if cmd.IsSet("font-size") {
		cfg.FontSize = cmd.Float("font-size")
	}
	if cmd.IsSet("decks") {
		cfg.Decks = int(cmd.Int("decks"))
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	if cmd.IsSet("history") {
		cfg.HistoryPath = cmd.String("history")
	}
	if cmd.IsSet("name") {
		cfg.PlayerName = cmd.String("name")
	}
	return cfg
}
