package store

import (
	"context"
	"fmt"
)

// Record is the demo entity type tracked by the call-stack adapters.
type Record struct {
	ID   string
	Kind string
	Body string
}

// Save upserts a record. A fresh record gets the next logical sequence
// number; an existing one keeps its original seq, so insertion order stays
// stable across updates.
//
// Save satisfies adapter.Persister[Record].
func (s *Store) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("save record: empty id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, kind, body, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records))
		ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, body = excluded.body
	`, r.ID, r.Kind, r.Body)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Delete removes a record by id. Deleting a missing record is not an error,
// matching the idempotent-write discipline of the rest of the store.
//
// Delete satisfies adapter.Persister[Record].
func (s *Store) Delete(ctx context.Context, r Record) error {
	if r.ID == "" {
		return fmt.Errorf("delete record: empty id")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// FetchAll returns every record in deterministic order: seq ASC, id ASC.
//
// FetchAll satisfies adapter.Querier[Record].
func (s *Store) FetchAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, body FROM records
		ORDER BY seq ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Kind, &r.Body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
