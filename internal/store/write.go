package store

import (
	"context"
	"fmt"
)

// Run is one harness execution of a scenario.
type Run struct {
	Token    string
	Scenario string
	Symbols  string
	Width    int
	Strategy string
	Digest   string
	Pass     bool
	Finished bool
}

// Event is one trace entry of a run. Payload is canonical JSON.
type Event struct {
	RunToken string
	Seq      int64
	Kind     string
	Op       string
	Payload  string
}

// WriteRun records the start of a run.
// Uses ON CONFLICT(token) DO NOTHING so a retried start is ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (token, scenario, symbols, width, strategy)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, run.Token, run.Scenario, run.Symbols, run.Width, run.Strategy)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// FinishRun stores the final digest and verdict of a run.
func (s *Store) FinishRun(ctx context.Context, token, digest string, pass bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET digest = ?, pass = ?, finished = 1
		WHERE token = ?
	`, digest, boolToInt(pass), token)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", token, ErrRunNotFound)
	}
	return nil
}

// WriteEvent appends a trace event. Duplicate (run_token, seq) pairs are
// silently ignored. The run must exist (foreign key constraint).
func (s *Store) WriteEvent(ctx context.Context, ev Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (run_token, seq, kind, op, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, ev.RunToken, ev.Seq, ev.Kind, ev.Op, ev.Payload)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// WriteRanks records the ranks produced by the event at seq, in output order.
func (s *Store) WriteRanks(ctx context.Context, runToken string, seq int64, values []string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write ranks: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ranks (run_token, seq, ordinal, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write ranks: %w", err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, runToken, seq, i, v); err != nil {
			return fmt.Errorf("write rank %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write ranks: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
