// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/config"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/mtreilly/arc-books/internal/logger"
	"github.com/spf13/cobra"
)

// app is the state shared by all subcommands. It is filled in by the root
// command's PersistentPreRunE once flags are parsed.
type app struct {
	cfg      *config.Manager
	settings config.Config
	log      *slog.Logger
	lib      *library.Library
	now      func() time.Time

	configPath string
	dryRun     bool
}

// Option customizes the root command, mostly for tests.
type Option func(*app)

// WithClock fixes "today" for status side effects and exports.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// NewRootCmd creates the root command for arc-books.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		cfg: config.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "arc-books",
		Short: "Track the books you read",
		Long: `Keep a personal reading list in a plain JSON file.

arc-books provides tools to:
- Add books and record when you started and finished them
- Move books between Unread, Reading and Read
- Search, filter and sort the list
- Tag books and keep notes
- Export the list as JSON, YAML, Markdown or SQLite`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("file", "f", "", "Book file to use (default from config)")
	pf.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/arc-books/config.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: pretty, json")
	pf.BoolVar(&a.dryRun, "dry-run", false, "Show what would change without writing the book file")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newSortCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newDateCmd(a))
	root.AddCommand(newTagCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newDuplicatesCmd(a))
	root.AddCommand(newUseCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

// annotationOpensArg marks commands whose first argument is the book file to
// open instead of the active one.
const annotationOpensArg = "opens-arg"

// setup resolves configuration, builds the logger and opens the library.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.cfg.Load(a.configPath); err != nil {
		return err
	}
	if err := a.cfg.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	settings, err := a.cfg.Settings()
	if err != nil {
		return apperr.Validation(err.Error())
	}
	a.settings = settings

	a.log = logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Format: settings.Log.Format,
		Level:  logger.ParseLevel(settings.Log.Level),
	})
	a.log.Debug("resolved settings", "file", settings.File, "config", a.cfg.Path(), "dry_run", a.dryRun)

	path := settings.File
	if cmd.Annotations[annotationOpensArg] == "true" && len(args) > 0 {
		path = args[0]
	}
	lib, err := library.Open(a.store(path),
		library.WithLogger(a.log),
		library.WithClock(a.now),
		library.WithStoreFactory(a.store),
	)
	if err != nil {
		return err
	}
	a.lib = lib
	return nil
}

func (a *app) store(path string) library.BookStore {
	var s library.BookStore = library.NewFileStore(path, a.log)
	if a.dryRun {
		s = library.NewDryRunStore(s, a.log)
	}
	return s
}

// bookAt resolves a 1-based position argument as shown by list.
func (a *app) bookAt(arg string) (library.Book, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return library.Book{}, apperr.Validationf("invalid position %q: expected a number", arg)
	}
	return a.lib.At(pos)
}

// Execute runs arc-books and returns the process exit code.
func Execute(ctx context.Context, opts ...Option) int {
	root := NewRootCmd(opts...)
	err := root.ExecuteContext(ctx)
	return report(root.ErrOrStderr(), err)
}

// report prints err the way users see it and maps it to an exit code.
// Validation problems are warnings; everything else is an error.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, apperr.ErrValidation) {
		fmt.Fprintf(w, "Warning: %v\n", err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return apperr.ExitCode(err)
}
