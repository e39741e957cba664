package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// ParseUserID validates the opaque user identifier format used in requests.
func ParseUserID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUserID
	}
	return id, nil
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) CreateUser(ctx context.Context, name, email string) (User, error) {
	u := User{ID: uuid.New(), Name: name, Email: email}
	err := s.db.QueryRowContext(ctx, `
INSERT INTO users (id, name, email)
VALUES ($1, $2, $3)
RETURNING created_at
`, u.ID, u.Name, u.Email).Scan(&u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *Store) userExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`, userID).Scan(&exists)
	return exists, err
}

// ShortlistEntry is one saved job. Data carries the full job record as sent
// by the client, plus the shortlistedAt/status metadata merged in.
type ShortlistEntry struct {
	JobID         string
	Data          json.RawMessage
	ShortlistedAt time.Time
}

// AddShortlist appends a job to the user's shortlist. A partial unique index
// backs the duplicate pre-check, so a concurrent double-add cannot slip two
// active entries in.
func (s *Store) AddShortlist(ctx context.Context, userID uuid.UUID, entry ShortlistEntry) error {
	exists, err := s.userExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	var duplicate bool
	err = s.db.QueryRowContext(ctx, `
SELECT EXISTS (
    SELECT 1 FROM shortlisted_jobs
    WHERE user_id = $1 AND job_id = $2 AND status = 'active'
)
`, userID, entry.JobID).Scan(&duplicate)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if duplicate {
		return ErrDuplicateJob
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO shortlisted_jobs (user_id, job_id, job_data, status, shortlisted_at)
VALUES ($1, $2, $3, 'active', $4)
`, userID, entry.JobID, []byte(entry.Data), entry.ShortlistedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateJob
		}
		return fmt.Errorf("failed to shortlist job: %w", err)
	}
	return nil
}

// ListShortlisted returns the user's active entries, most recent first.
func (s *Store) ListShortlisted(ctx context.Context, userID uuid.UUID) ([]json.RawMessage, error) {
	exists, err := s.userExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT job_data
FROM shortlisted_jobs
WHERE user_id = $1 AND status = 'active'
ORDER BY shortlisted_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		jobs = append(jobs, json.RawMessage(data))
	}
	return jobs, rows.Err()
}

// RemoveShortlisted deletes every entry for the given job identifier.
func (s *Store) RemoveShortlisted(ctx context.Context, userID uuid.UUID, jobID string) error {
	exists, err := s.userExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	var hasJob bool
	err = s.db.QueryRowContext(ctx, `
SELECT EXISTS (
    SELECT 1 FROM shortlisted_jobs
    WHERE user_id = $1 AND job_id = $2 AND status = 'active'
)
`, userID, jobID).Scan(&hasJob)
	if err != nil {
		return fmt.Errorf("failed to look up job: %w", err)
	}
	if !hasJob {
		return ErrJobNotFound
	}

	if _, err := s.db.ExecContext(ctx, `
DELETE FROM shortlisted_jobs
WHERE user_id = $1 AND job_id = $2
`, userID, jobID); err != nil {
		return fmt.Errorf("failed to remove job from shortlist: %w", err)
	}
	return nil
}
