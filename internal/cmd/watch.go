// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		out        output.OutputOptions
		filter     filterOptions
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the list and refresh it when the book file changes",
		Long: `Print the (filtered) book list, then print it again whenever the
active book file changes on disk, for example when another arc-books command
or a sync client writes it. A file that fails to parse is reported and the
last good list stays on screen.

Examples:
  arc-books watch
  arc-books watch --hide Read --debounce 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}
			if _, err := filter.visibility(); err != nil {
				return err
			}
			w := &watcher{
				a:        a,
				out:      cmd.OutOrStdout(),
				render:   func(w io.Writer) error { return a.renderFiltered(w, &out, &filter) },
				debounce: time.Duration(debounceMs) * time.Millisecond,
			}
			return w.run(cmd.Context())
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	filter.addFlags(cmd)
	cmd.Flags().IntVar(&debounceMs, "debounce", 300, "Debounce milliseconds for file events")

	return cmd
}

func (a *app) renderFiltered(w io.Writer, out *output.OutputOptions, filter *filterOptions) error {
	books, err := filter.apply(a)
	if err != nil {
		return err
	}
	return a.renderBooks(w, out, books)
}

// watcher re-renders the list when the active file changes. Reloads run on
// timer goroutines and are serialized by mu. Once closed is set no refresh
// writes to out.
type watcher struct {
	a        *app
	out      io.Writer
	render   func(io.Writer) error
	debounce time.Duration

	mu     sync.Mutex
	closed bool
}

func (w *watcher) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := filepath.Abs(w.a.lib.Path())
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.a.lib.Path(), err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.IO("create "+dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Editors and our own saves replace the file by rename, so watch the
	// directory and match on the name.
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	if err := w.refresh(false); err != nil {
		return err
	}
	w.a.log.Info("watching for changes", "path", path)

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
		w.close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			// Debounce: a save produces several events in a row
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if err := w.refresh(true); err != nil {
					w.a.log.Warn("reload failed, keeping the last good list", "path", path, "error", err)
				}
			})
			timerMu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.a.log.Warn("watcher error", "error", err)
		}
	}
}

// close waits for a running refresh and turns later ones into no-ops.
func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// refresh optionally reloads the active file, then renders.
func (w *watcher) refresh(reload bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	if reload {
		if err := w.a.lib.SwitchFile(w.a.lib.Path()); err != nil {
			return err
		}
		fmt.Fprintf(w.out, "\n--- %s: %s changed ---\n\n", w.a.now().Format("15:04:05"), filepath.Base(w.a.lib.Path()))
	}
	return w.render(w.out)
}
