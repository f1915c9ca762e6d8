// Package store persists match results to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jason-s-yu/canasta/internal/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	id          TEXT PRIMARY KEY,
	seed        INTEGER NOT NULL,
	winner      INTEGER NOT NULL,
	score_a     INTEGER NOT NULL,
	score_b     INTEGER NOT NULL,
	hands       INTEGER NOT NULL,
	actions     INTEGER NOT NULL,
	duration_us INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store wraps a SQLite database holding match results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveResult inserts one match result.
func (s *Store) SaveResult(ctx context.Context, res sim.Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_results (id, seed, winner, score_a, score_b, hands, actions, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.MatchID.String(), int64(res.Seed), res.Winner,
		res.Scores[0], res.Scores[1], res.Hands, res.Actions,
		res.Duration.Microseconds())
	if err != nil {
		return fmt.Errorf("insert result %s: %w", res.MatchID, err)
	}
	return nil
}

// ListResults returns all stored results, oldest first.
func (s *Store) ListResults(ctx context.Context) ([]sim.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, winner, score_a, score_b, hands, actions, duration_us
		 FROM match_results ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []sim.Result
	for rows.Next() {
		var (
			res        sim.Result
			id         string
			seed       int64
			durationUS int64
		)
		if err := rows.Scan(&id, &seed, &res.Winner, &res.Scores[0], &res.Scores[1],
			&res.Hands, &res.Actions, &durationUS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.MatchID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse match id %q: %w", id, err)
		}
		res.Seed = uint64(seed)
		res.Duration = time.Duration(durationUS) * time.Microsecond
		out = append(out, res)
	}
	return out, rows.Err()
}
