package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run token has no row.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run recorded under token.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, scenario, symbols, width, strategy, digest, pass, finished
		FROM runs
		WHERE token = ?
	`, token)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// ListRuns returns every run ordered by scenario name, then token.
// Returns an empty slice (not nil) when the store has no runs.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, scenario, symbols, width, strategy, digest, pass, finished
		FROM runs
		ORDER BY scenario COLLATE BINARY ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadEvents returns the trace of a run ordered by seq.
// Returns an empty slice (not nil) if the run has no events.
func (s *Store) ReadEvents(ctx context.Context, runToken string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, seq, kind, op, payload
		FROM events
		WHERE run_token = ?
		ORDER BY seq ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.RunToken, &ev.Seq, &ev.Kind, &ev.Op, &ev.Payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// RanksInOrder returns the distinct ranks of a run sorted by SQLite's
// BINARY collation.
func (s *Store) RanksInOrder(ctx context.Context, runToken string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT value
		FROM ranks
		WHERE run_token = ?
		ORDER BY value COLLATE BINARY ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query ranks: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan rank: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranks: %w", err)
	}
	return values, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run            Run
		pass, finished int
	)
	err := sc.Scan(&run.Token, &run.Scenario, &run.Symbols, &run.Width, &run.Strategy, &run.Digest, &pass, &finished)
	if err != nil {
		return Run{}, err
	}
	run.Pass = pass != 0
	run.Finished = finished != 0
	return run, nil
}
