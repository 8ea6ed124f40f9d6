// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE books (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Unread',
	tags TEXT NOT NULL DEFAULT '[]',
	notes TEXT NOT NULL DEFAULT '',
	extra TEXT
);

CREATE TABLE book_tags (
	position INTEGER NOT NULL,
	tag TEXT NOT NULL,
	FOREIGN KEY (position) REFERENCES books(position) ON DELETE CASCADE
);

CREATE TABLE book_dates (
	position INTEGER NOT NULL,
	kind TEXT NOT NULL,
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	iso_date TEXT,
	PRIMARY KEY (position, kind, seq),
	FOREIGN KEY (position) REFERENCES books(position) ON DELETE CASCADE
);

CREATE INDEX idx_books_status ON books(status);
CREATE INDEX idx_book_tags_tag ON book_tags(tag);
CREATE INDEX idx_book_dates_iso ON book_dates(kind, iso_date);
`

// WriteSQLite writes books into a fresh SQLite database at path so the list
// can be queried with SQL. An existing file at path is replaced.
func WriteSQLite(books []Book, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for i, b := range books {
		pos := i + 1
		tagsJSON, err := json.Marshal(nonNil(b.Tags))
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		var extra sql.NullString
		if len(b.Extra) > 0 {
			data, err := json.Marshal(b.Extra)
			if err != nil {
				return fmt.Errorf("marshal extra fields: %w", err)
			}
			extra = sql.NullString{String: string(data), Valid: true}
		}

		if _, err := tx.Exec(`
			INSERT INTO books (position, title, author, status, tags, notes, extra)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			pos, b.Title, b.Author, string(b.Status), string(tagsJSON), b.Notes, extra,
		); err != nil {
			return fmt.Errorf("insert book %q: %w", b.Title, err)
		}

		for _, tag := range b.Tags {
			if _, err := tx.Exec(`INSERT INTO book_tags (position, tag) VALUES (?, ?)`, pos, tag); err != nil {
				return fmt.Errorf("insert tag %q: %w", tag, err)
			}
		}

		for kind, dates := range map[DateKind]DateList{DateStart: b.StartDate, DateFinish: b.DateFinished} {
			for seq, d := range dates {
				var iso sql.NullString
				if t, err := ParseDate(d); err == nil {
					iso = sql.NullString{String: t.Format("2006-01-02"), Valid: true}
				}
				if _, err := tx.Exec(`
					INSERT INTO book_dates (position, kind, seq, date, iso_date)
					VALUES (?, ?, ?, ?, ?)`,
					pos, string(kind), seq, d, iso,
				); err != nil {
					return fmt.Errorf("insert date %q: %w", d, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
