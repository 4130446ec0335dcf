package automatic

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ResultDB persists self-play outcomes so weight experiments can be
// compared across process runs. Only game outcomes are stored, never
// search internals.
type ResultDB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	played_at TEXT NOT NULL,
	score INTEGER NOT NULL,
	max_tile INTEGER NOT NULL,
	moves INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL
);`

func OpenResultDB(path string) (*ResultDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening result db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating games table: %w", err)
	}
	return &ResultDB{db: db}, nil
}

func (r *ResultDB) Record(result GameResult) error {
	_, err := r.db.Exec(
		`INSERT INTO games (played_at, score, max_tile, moves, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		result.Score, result.MaxTile, result.Moves,
		result.Elapsed.Milliseconds())
	return err
}

// Recent returns the most recently recorded results, newest first.
func (r *ResultDB) Recent(limit int) ([]GameResult, error) {
	rows, err := r.db.Query(
		`SELECT score, max_tile, moves, elapsed_ms FROM games
		 ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var res GameResult
		var elapsedMS int64
		if err := rows.Scan(&res.Score, &res.MaxTile, &res.Moves, &elapsedMS); err != nil {
			return nil, err
		}
		res.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *ResultDB) Close() error {
	return r.db.Close()
}
