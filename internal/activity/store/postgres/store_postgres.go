// Package postgres persists the activity registry in PostgreSQL. Rosters
// survive restarts; the seed only applies to an empty database.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mergington/internal/activity/model"
	"mergington/pkg/platform/sentinel"
)

// Store implements store.Store on database/sql. Participant mutations run in
// a transaction that locks the activity row, so concurrent signups on the
// same activity serialize instead of racing the capacity check.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle. Call EnsureSchema before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the registry tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS activities (
			name             TEXT PRIMARY KEY,
			description      TEXT NOT NULL,
			schedule         TEXT NOT NULL,
			max_participants INTEGER NOT NULL,
			position         BIGSERIAL
		);
		CREATE TABLE IF NOT EXISTS participants (
			activity_name TEXT NOT NULL REFERENCES activities(name) ON DELETE CASCADE,
			email         TEXT NOT NULL,
			position      BIGSERIAL,
			PRIMARY KEY (activity_name, email)
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.name, a.description, a.schedule, a.max_participants, p.email
		FROM activities a
		LEFT JOIN participants p ON p.activity_name = a.name
		ORDER BY a.position, p.position
	`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var (
		out   []model.Activity
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			a     model.Activity
			email sql.NullString
		)
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &email); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		i, ok := index[a.Name]
		if !ok {
			i = len(out)
			index[a.Name] = i
			out = append(out, a)
		}
		if email.Valid {
			out[i].Participants = append(out[i].Participants, email.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

func (s *Store) Find(ctx context.Context, name string) (model.Activity, error) {
	var a model.Activity
	err := s.db.QueryRowContext(ctx, `
		SELECT name, description, schedule, max_participants
		FROM activities WHERE name = $1
	`, name).Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Activity{}, sentinel.ErrNotFound
	}
	if err != nil {
		return model.Activity{}, fmt.Errorf("find activity: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM participants WHERE activity_name = $1 ORDER BY position
	`, name)
	if err != nil {
		return model.Activity{}, fmt.Errorf("find participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return model.Activity{}, fmt.Errorf("scan participant: %w", err)
		}
		a.Participants = append(a.Participants, email)
	}
	if err := rows.Err(); err != nil {
		return model.Activity{}, fmt.Errorf("find participants: %w", err)
	}
	return a, nil
}

func (s *Store) Put(ctx context.Context, activity model.Activity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activities (name, description, schedule, max_participants)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			schedule = EXCLUDED.schedule,
			max_participants = EXCLUDED.max_participants
	`, activity.Name, activity.Description, activity.Schedule, activity.MaxParticipants)
	if err != nil {
		return fmt.Errorf("upsert activity: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE activity_name = $1`, activity.Name); err != nil {
		return fmt.Errorf("reset participants: %w", err)
	}
	for _, email := range activity.Participants {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO participants (activity_name, email) VALUES ($1, $2)
		`, activity.Name, email); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

func (s *Store) AddParticipant(ctx context.Context, name, email string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var maxParticipants int
	err = tx.QueryRowContext(ctx, `
		SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE
	`, name).Scan(&maxParticipants)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock activity: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM participants WHERE activity_name = $1
	`, name).Scan(&count); err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if count >= maxParticipants {
		return sentinel.ErrCapacity
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO participants (activity_name, email) VALUES ($1, $2)
	`, name, email); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit signup: %w", err)
	}
	return nil
}

func (s *Store) RemoveParticipant(ctx context.Context, name, email string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM participants WHERE activity_name = $1 AND email = $2
	`, name, email)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)
	`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrNotMember
}
