package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ticketline/internal/cli"
	"github.com/alexanderramin/ticketline/internal/config"
	"github.com/alexanderramin/ticketline/internal/db"
	"github.com/alexanderramin/ticketline/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	globals, err := cli.ParseGlobalOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(globals.ConfigPath)
	if err != nil {
		return err
	}
	if globals.DBPath != "" {
		cfg.DBPath = globals.DBPath
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		level, _ := cfg.LogLevel() // validated by config.Load
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, level))
	}

	app := &cli.App{
		Board:         service.NewBoardService(db.NewSQLiteUnitOfWork(database), observers...),
		Geometry:      cfg.Geometry(),
		TimelineWeeks: cfg.Timeline.Weeks,
	}

	// Forms and the TUI only run on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
