// Package prefs persists the dashboard's two durable preference flags. The
// occurrence data itself is never stored; only these flags survive across
// sessions.
package prefs

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Preferences are the client-side flags the dashboard keeps across sessions.
type Preferences struct {
	DarkMode bool `json:"darkMode"`
	Heatmap  bool `json:"heatmap"`
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
  	`
	_, err := s.db.Exec(schema)
	return err
}

// Get loads the flags. Missing keys default to false.
func (s *Store) Get(ctx context.Context) (Preferences, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return Preferences{}, fmt.Errorf("error querying preferences: %w", err)
	}
	defer rows.Close()

	var p Preferences
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return Preferences{}, fmt.Errorf("error scanning preference: %w", err)
		}
		switch key {
		case "dark_mode":
			p.DarkMode = value != 0
		case "heatmap":
			p.Heatmap = value != 0
		}
	}
	return p, rows.Err()
}

// Set stores both flags.
func (s *Store) Set(ctx context.Context, p Preferences) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	for key, value := range map[string]bool{"dark_mode": p.DarkMode, "heatmap": p.Heatmap} {
		v := 0
		if value {
			v = 1
		}
		if _, err := tx.ExecContext(ctx, upsert, key, v); err != nil {
			return fmt.Errorf("error upserting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
