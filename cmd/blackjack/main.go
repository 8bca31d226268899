package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minaorangina/blackjack/assets"
	"github.com/minaorangina/blackjack/config"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/history"
	"github.com/minaorangina/blackjack/logging"
	"github.com/minaorangina/blackjack/mcp"
	"github.com/minaorangina/blackjack/server"
	"github.com/minaorangina/blackjack/store"
	"github.com/minaorangina/blackjack/terminal"
	"github.com/minaorangina/blackjack/ui"
)

func main() {
	// a missing .env is fine, the environment and flags still apply
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(modes{
		window: runWindow,
		term:   runTerm,
		serve:  runServe,
		mcp:    runMCP,
	})

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openHistory(ctx context.Context, cfg config.Config, logger logging.Logger) (*history.Store, error) {
	if cfg.HistoryPath == "" {
		return nil, nil
	}

	hist, err := history.Open(ctx, cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	logger.Infow("recording rounds", "path", cfg.HistoryPath)
	return hist, nil
}

func newLocalEngine(ctx context.Context, cfg config.Config, logger logging.Logger, hist *history.Store) (*engine.Engine, error) {
	opts := engine.Opts{
		PlayerName: cfg.PlayerName,
		Seed:       cfg.Seed,
		Decks:      cfg.Decks,
		Debug:      cfg.Debug,
		Logger:     logger,
	}
	if hist != nil {
		opts.Recorder = hist
	}
	return engine.New(ctx, opts)
}

func runWindow(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	res, err := assets.Load(cfg.AssetsDir)
	if err != nil {
		return err
	}
	logger.Infow("loaded assets", "dir", cfg.AssetsDir, "images", len(res.Images()), "fonts", len(res.Fonts()))

	hist, err := openHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	e, err := newLocalEngine(ctx, cfg, logger, hist)
	if err != nil {
		return err
	}

	w, err := ui.New(ctx, e, res, ui.Options{FPS: cfg.FPS, FontName: cfg.FontName, FontSize: cfg.FontSize}, logger)
	if err != nil {
		return err
	}
	return w.Run()
}

func runTerm(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	hist, err := openHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	e, err := newLocalEngine(ctx, cfg, logger, hist)
	if err != nil {
		return err
	}

	err = terminal.Play(ctx, e, os.Stdin, os.Stdout, engine.NewPacer(cfg.FPS))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runServe(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	hist, err := openHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	opts := server.Opts{
		Decks:     cfg.Decks,
		AccessLog: os.Stdout,
		Logger:    logger,
	}
	if hist != nil {
		opts.History = hist
	}

	return server.NewServer(store.NewInMemoryGameStore(), opts).Run(ctx, cfg.Addr)
}

func runMCP(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	hist, err := openHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer hist.Close()

	opts := mcp.Opts{
		Decks:  cfg.Decks,
		Logger: logger,
	}
	if hist != nil {
		opts.History = hist
	}

	return mcp.NewServer(store.NewInMemoryGameStore(), opts).ServeStdio()
}
