// Package repo contains all database access logic for the VQ Everything backend.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vqeverything/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SubmissionRepo defines the persistence operations for Submissions.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type SubmissionRepo interface {
	// Create inserts a new submission and returns the persisted record
	// (with DB-generated id and created_at populated).
	Create(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	// GetByID retrieves a single submission by its UUID primary key.
	// Returns domain.ErrNotFound if no submission with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error)

	// List returns all submissions matching the filter in insertion order.
	// A zero-value filter returns every row.
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error)

	// Delete removes a submission by ID. Returns domain.ErrNotFound if it
	// does not exist. Upvotes on the row are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgSubmissionRepo is the Postgres implementation of SubmissionRepo.
type pgSubmissionRepo struct {
	db db
}

// NewSubmissionRepo constructs a SubmissionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSubmissionRepo(db db) SubmissionRepo {
	return &pgSubmissionRepo{db: db}
}

// Create inserts a new submission row and returns the full persisted record.
func (r *pgSubmissionRepo) Create(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	const q = `
		INSERT INTO submissions (value, quality, type, category, name, location, user_id)
		VALUES (@value, @quality, @type, @category, @name, @location, @user_id)
		RETURNING id, value, quality, type, category, name, location, user_id, created_at`

	args := pgx.NamedArgs{
		"value":    sub.Value,
		"quality":  sub.Quality,
		"type":     sub.Type,
		"category": sub.Category,
		"name":     sub.Name,
		"location": sub.Location,
		"user_id":  sub.UserID, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSubmission(row)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a submission by primary key.
func (r *pgSubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	const q = `
		SELECT id, value, quality, type, category, name, location, user_id, created_at
		FROM submissions
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSubmission(row)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns submissions in insertion order, optionally filtered by
// category and/or user_id. Both filters are applied with AND semantics.
func (r *pgSubmissionRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	const q = `
		SELECT id, value, quality, type, category, name, location, user_id, created_at
		FROM submissions
		WHERE (@category::text IS NULL OR category = @category)
		  AND (@user_id::text IS NULL OR lower(user_id) = lower(@user_id))
		ORDER BY created_at, id`

	args := pgx.NamedArgs{
		"category": filter.Category,
		"user_id":  filter.UserID,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.SubmissionRepo.List: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SubmissionRepo.List: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SubmissionRepo.List: rows: %w", err)
	}

	return subs, nil
}

// Delete removes a submission by primary key.
func (r *pgSubmissionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM submissions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SubmissionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SubmissionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanSubmission
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanSubmission maps a single database row into a domain.Submission.
// It handles the UUID and nullable user_id conversions.
func scanSubmission(s scanner) (domain.Submission, error) {
	var (
		sub    domain.Submission
		id     pgtype.UUID
		userID pgtype.Text
	)

	err := s.Scan(&id, &sub.Value, &sub.Quality, &sub.Type, &sub.Category,
		&sub.Name, &sub.Location, &userID, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}

	sub.ID = uuid.UUID(id.Bytes)
	if userID.Valid {
		uid := userID.String
		sub.UserID = &uid
	}

	return sub, nil
}
