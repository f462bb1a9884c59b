// dnf-extra-tests - acceptance tests for the DNF package manager
// Copyright (C) 2025 The dnf-extra-tests Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package trackdb reads the transaction history DNF keeps in its
// persistent directory.
package trackdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"gitea.plemya-x.ru/Plemya-x/dnf-extra-tests/internal/fsutils"
)

// ErrNotFound means no history database exists in the directory.
var ErrNotFound = errors.New("history database not found")

// Names of the history database, newest DNF first.
var Names = []string{
	"transaction_history.sqlite",
	"history.sqlite",
}

// Find returns the path of the history database stored in dir.
func Find(dir string) (string, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		ok, err := fsutils.Exists(path)
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

type DB struct {
	conn *sqlx.DB
}

// Open opens the history database read-only.
func Open(path string) (*DB, error) {
	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return &DB{conn: conn}, nil
}

// Transactions returns the number of recorded transactions.
func (d *DB) Transactions(ctx context.Context) (int, error) {
	var n int
	if err := d.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM trans"); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// Count finds the history database in dir and counts its
// transactions. A missing database counts as zero.
func Count(ctx context.Context, dir string) (int, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	db, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return db.Transactions(ctx)
}
