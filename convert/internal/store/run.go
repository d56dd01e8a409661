package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is a persisted conversion result.
type Run struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Score     int    `json:"score"`
	Tier      string `json:"tier"`
	Content   string `json:"content"` // article content JSON
	Config    string `json:"config"`  // journal config JSON
	XML       string `json:"xml"`
	Report    string `json:"report"`
	CreatedAt int64  `json:"created_at"`
}

// Summary is a run without its document payloads, for listings.
type Summary struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Score     int    `json:"score"`
	Tier      string `json:"tier"`
	CreatedAt int64  `json:"created_at"`
}

// Insert persists a run.
func (s *Store) Insert(ctx context.Context, run *Run) error {
	return s.runTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (id, filename, score, tier, content, config, xml, report, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Filename, run.Score, run.Tier,
			run.Content, run.Config, run.XML, run.Report, run.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert run %s: %w", run.ID, err)
		}
		return nil
	})
}

// Get returns a full run by id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, filename, score, tier, content, config, xml, report, created_at
		FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Filename, &run.Score, &run.Tier,
			&run.Content, &run.Config, &run.XML, &run.Report, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

// List returns run summaries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, filename, score, tier, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Filename, &sum.Score, &sum.Tier, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Delete removes a run by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.runTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete run %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
