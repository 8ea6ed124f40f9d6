// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mtreilly/arc-books/internal/apperr"
	"github.com/mtreilly/arc-books/internal/library"
	"github.com/mtreilly/arc-books/internal/output"
	"github.com/spf13/cobra"
)

// filterOptions are the query flags shared by list, export and watch.
type filterOptions struct {
	search string
	in     string
	hide   []string
	limit  int
}

func (f *filterOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Only books matching this text (case-insensitive)")
	cmd.Flags().StringVar(&f.in, "in", "", "Field to search: all, title, author, started, finished, tags, notes (default from config)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "Hide books with these statuses (Unread, Reading, Read)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Limit number of results")
}

func (f *filterOptions) visibility() (library.StatusVisibility, error) {
	vis := library.ShowAll()
	for _, name := range f.hide {
		s, ok := library.ParseStatus(name)
		if !ok {
			return vis, apperr.Validationf("unknown status %q in --hide (choose Unread, Reading or Read)", name)
		}
		vis = vis.Hide(s)
	}
	return vis, nil
}

func (f *filterOptions) field(a *app) library.SearchField {
	if f.in != "" {
		return library.ParseSearchField(f.in)
	}
	return library.ParseSearchField(a.settings.Search.Field)
}

// apply runs the filter over the open library.
func (f *filterOptions) apply(a *app) ([]library.Book, error) {
	vis, err := f.visibility()
	if err != nil {
		return nil, err
	}
	books := a.lib.Filter(f.search, f.field(a), vis)
	if f.limit > 0 && len(books) > f.limit {
		books = books[:f.limit]
	}
	return books, nil
}

// bookView is a book as shown to users, with its list position.
type bookView struct {
	Position     int      `json:"position" yaml:"position"`
	Title        string   `json:"title" yaml:"title"`
	Author       string   `json:"author" yaml:"author"`
	Status       string   `json:"status" yaml:"status"`
	Tags         []string `json:"tags" yaml:"tags"`
	StartDate    []string `json:"start_date" yaml:"start_date"`
	DateFinished []string `json:"date_finished" yaml:"date_finished"`
	Notes        string   `json:"notes" yaml:"notes"`
}

func (a *app) views(books []library.Book) []bookView {
	out := make([]bookView, len(books))
	for i, b := range books {
		out[i] = bookView{
			Position:     a.lib.Position(b.ID),
			Title:        b.Title,
			Author:       b.Author,
			Status:       string(b.Status),
			Tags:         b.Tags,
			StartDate:    b.StartDate,
			DateFinished: b.DateFinished,
			Notes:        b.Notes,
		}
	}
	return out
}

// renderBooks prints books as a table or in the structured format chosen.
func (a *app) renderBooks(w io.Writer, out *output.OutputOptions, books []library.Book) error {
	views := a.views(books)
	if done, err := out.Structured(w, views); done || err != nil {
		return err
	}

	if len(views) == 0 {
		fmt.Fprintln(w, "No books found.")
		if a.lib.Len() == 0 {
			fmt.Fprintln(w, "Use 'arc-books add <title>' to add one.")
		}
		return nil
	}

	table := output.NewTable(w, "#", "Title", "Author", "Status", "Started", "Finished", "Tags")
	for _, v := range views {
		table.AddRow(
			strconv.Itoa(v.Position),
			output.Truncate(v.Title, 40),
			output.Truncate(v.Author, 25),
			v.Status,
			library.DateList(v.StartDate).Joined(),
			library.DateList(v.DateFinished).Joined(),
			output.Truncate(strings.Join(v.Tags, ", "), 25),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nShowing %d of %d book(s)\n", len(views), a.lib.Len())
	return nil
}

func newListCmd(a *app) *cobra.Command {
	var out output.OutputOptions
	var filter filterOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Long: `List the books in the active file.

The # column is the book's position in the file. Other commands take that
number, and it does not change when the list is filtered.

Examples:
  arc-books list                          # All books
  arc-books list --search dune            # Match any field
  arc-books list --search herbert --in author
  arc-books list --hide Read --hide Unread
  arc-books list -o json --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return apperr.Validation(err.Error())
			}
			books, err := filter.apply(a)
			if err != nil {
				return err
			}
			return a.renderBooks(cmd.OutOrStdout(), &out, books)
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	filter.addFlags(cmd)

	return cmd
}
