package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/cli"
	"github.com/alexanderramin/followup/internal/config"
	"github.com/alexanderramin/followup/internal/db"
	"github.com/alexanderramin/followup/internal/repository"
	"github.com/alexanderramin/followup/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire local storage and the session that reads it
	store := repository.NewSQLiteLocalStore(database)
	uow := db.NewSQLiteUnitOfWork(database)
	sess := session.New(store, uow)
	if err := sess.Init(context.Background()); err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	// The TUI only logs when a log file is configured; stderr is its screen.
	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		var w io.Writer = os.Stderr
		if logFile != nil {
			w = logFile
		}
		observer = api.NewLogObserver(w)
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.BaseURL(),
		Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}, sess, observer)

	app := &cli.App{
		Session: sess,
		API:     client,
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		TUILog:  logFile,
	}

	// Detect interactive terminal for the TUI entrypoint and delete prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
