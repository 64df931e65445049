package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conorfennell/flashcard/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{conn: db}, nil
}

// migrate upgrades databases created before results carried a line hash.
// Old rows get an empty hash, which never matches, so the next export
// rebuilds them.
func migrate(db *sql.DB) error {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('results') WHERE name = 'line_hash'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect results table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.Exec(`ALTER TABLE results ADD COLUMN line_hash TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("failed to add results.line_hash: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CardRow is a card as stored in the mirror.
type CardRow struct {
	Hash      string
	Card      domain.Card
	Position  int
	FirstSeen time.Time
}

// InsertCard inserts a new card into the database.
func (db *DB) InsertCard(ctx context.Context, hash string, card domain.Card, position int) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO cards (hash, category, front, back, position, first_seen)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		hash,
		card.Category,
		card.Front,
		card.Back,
		position,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", hash, err)
	}
	return nil
}

// UpdateCardPosition records where a card now sits in the deck file.
func (db *DB) UpdateCardPosition(ctx context.Context, hash string, position int) error {
	_, err := db.conn.ExecContext(ctx, `
		UPDATE cards
		SET position = ?
		WHERE hash = ?
	`, position, hash)
	if err != nil {
		return fmt.Errorf("failed to update position for card %s: %w", hash, err)
	}
	return nil
}

// FindCardByHash retrieves a card from the database by its hash.
func (db *DB) FindCardByHash(ctx context.Context, hash string) (*CardRow, error) {
	var cr CardRow
	row := db.conn.QueryRowContext(ctx, `
		SELECT hash, category, front, back, position, first_seen
		FROM cards WHERE hash = ?
	`, hash)

	err := row.Scan(
		&cr.Hash,
		&cr.Card.Category,
		&cr.Card.Front,
		&cr.Card.Back,
		&cr.Position,
		&cr.FirstSeen,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to find card by hash %s: %w", hash, err)
	}
	return &cr, nil
}

// GetAllCards retrieves every mirrored card in deck order.
func (db *DB) GetAllCards(ctx context.Context) ([]CardRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT hash, category, front, back, position, first_seen
		FROM cards ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all cards: %w", err)
	}
	defer rows.Close()

	var cards []CardRow
	for rows.Next() {
		var cr CardRow
		if err := rows.Scan(
			&cr.Hash,
			&cr.Card.Category,
			&cr.Card.Front,
			&cr.Card.Back,
			&cr.Position,
			&cr.FirstSeen,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, cr)
	}
	return cards, rows.Err()
}

// DeleteCardByHash removes a card from the database by its hash.
func (db *DB) DeleteCardByHash(ctx context.Context, hash string) error {
	_, err := db.conn.ExecContext(ctx, `
		DELETE FROM cards
		WHERE hash = ?
	`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete card with hash %s: %w", hash, err)
	}
	return nil
}

// ResultLineHashes returns the line hash of every mirrored result, ordered
// by log position. Index i holds seq i+1.
func (db *DB) ResultLineHashes(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT line_hash FROM results ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query result hashes: %w", err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan result hash: %w", err)
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}

// InsertResult mirrors the log entry at 1-based position seq.
func (db *DB) InsertResult(ctx context.Context, seq int, lineHash, cardHash string, entry domain.ResultEntry) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO results (seq, line_hash, recorded_at, outcome, card_hash, category, front, back)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		seq,
		lineHash,
		entry.Timestamp,
		entry.Outcome.String(),
		cardHash,
		entry.Card.Category,
		entry.Card.Front,
		entry.Card.Back,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result %d: %w", seq, err)
	}
	return nil
}

// DeleteResultsFrom removes every mirrored result at position seq or later.
func (db *DB) DeleteResultsFrom(ctx context.Context, seq int) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM results WHERE seq >= ?`, seq)
	if err != nil {
		return 0, fmt.Errorf("failed to delete results from %d: %w", seq, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted results: %w", err)
	}
	return n, nil
}

// CountResultsByOutcome returns how many mirrored results have each label.
func (db *DB) CountResultsByOutcome(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT outcome, COUNT(*)
		FROM results GROUP BY outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan result count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

// Export is one recorded reconciliation run.
type Export struct {
	ID          int64
	DeckPath    string
	ResultsPath string
	ExportedAt  time.Time
}

// InsertExport records a reconciliation run and returns its ID.
func (db *DB) InsertExport(ctx context.Context, deckPath, resultsPath string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO exports (deck_path, results_path, exported_at)
		VALUES (?, ?, ?)
	`, deckPath, resultsPath, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert export: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for export: %w", err)
	}
	return id, nil
}

// LastExport returns the most recent reconciliation run, or nil if none.
func (db *DB) LastExport(ctx context.Context) (*Export, error) {
	var e Export
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, deck_path, results_path, exported_at
		FROM exports ORDER BY id DESC LIMIT 1
	`)

	err := row.Scan(&e.ID, &e.DeckPath, &e.ResultsPath, &e.ExportedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No exports yet
		}
		return nil, fmt.Errorf("failed to find last export: %w", err)
	}
	return &e, nil
}
