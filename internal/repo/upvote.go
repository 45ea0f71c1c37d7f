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

// UpvoteRepo defines the persistence operations for submission upvotes.
type UpvoteRepo interface {
	// Insert records an upvote. Returns domain.ErrValidation if the voter
	// has already upvoted this submission (unique constraint violation).
	Insert(ctx context.Context, up domain.Upvote) (domain.Upvote, error)

	// Delete removes the voter's upvote on a submission.
	// Returns domain.ErrNotFound if no such upvote exists.
	Delete(ctx context.Context, submissionID uuid.UUID, voterID string) error

	// Exists reports whether the voter has upvoted the submission.
	Exists(ctx context.Context, submissionID uuid.UUID, voterID string) (bool, error)

	// CountBySubmission returns the upvote tally per submission for the
	// given IDs. Submissions with zero upvotes are absent from the map.
	CountBySubmission(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

// pgUpvoteRepo is the Postgres implementation of UpvoteRepo.
type pgUpvoteRepo struct {
	db db
}

// NewUpvoteRepo constructs an UpvoteRepo backed by the provided db connection.
func NewUpvoteRepo(db db) UpvoteRepo {
	return &pgUpvoteRepo{db: db}
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Insert records a new upvote row.
func (r *pgUpvoteRepo) Insert(ctx context.Context, up domain.Upvote) (domain.Upvote, error) {
	const q = `
		INSERT INTO submission_upvotes (submission_id, voter_id, category, type)
		VALUES (@submission_id, @voter_id, @category, @type)
		RETURNING id, submission_id, voter_id, category, type, created_at`

	args := pgx.NamedArgs{
		"submission_id": up.SubmissionID,
		"voter_id":      up.VoterID,
		"category":      up.Category,
		"type":          up.Type,
	}

	var (
		result domain.Upvote
		id     pgtype.UUID
		subID  pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, args).Scan(&id, &subID, &result.VoterID,
		&result.Category, &result.Type, &result.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Sentinel first: handlers extract the client-facing message
			// from everything after the "validation error: " marker.
			return domain.Upvote{}, fmt.Errorf("repo.UpvoteRepo.Insert: %w: already upvoted", domain.ErrValidation)
		}
		return domain.Upvote{}, fmt.Errorf("repo.UpvoteRepo.Insert: %w", err)
	}

	result.ID = uuid.UUID(id.Bytes)
	result.SubmissionID = uuid.UUID(subID.Bytes)
	return result, nil
}

// Delete removes the voter's upvote on a submission.
func (r *pgUpvoteRepo) Delete(ctx context.Context, submissionID uuid.UUID, voterID string) error {
	const q = `DELETE FROM submission_upvotes WHERE submission_id = @submission_id AND voter_id = @voter_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"submission_id": submissionID, "voter_id": voterID})
	if err != nil {
		return fmt.Errorf("repo.UpvoteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UpvoteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether the voter has upvoted the submission.
func (r *pgUpvoteRepo) Exists(ctx context.Context, submissionID uuid.UUID, voterID string) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM submission_upvotes
		WHERE submission_id = @submission_id AND voter_id = @voter_id)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"submission_id": submissionID, "voter_id": voterID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.UpvoteRepo.Exists: %w", err)
	}
	return exists, nil
}

// CountBySubmission tallies upvotes for the given submission IDs in one query.
func (r *pgUpvoteRepo) CountBySubmission(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	const q = `
		SELECT submission_id, count(*)
		FROM submission_upvotes
		WHERE submission_id = ANY(@ids)
		GROUP BY submission_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.UpvoteRepo.CountBySubmission: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id pgtype.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("repo.UpvoteRepo.CountBySubmission: scan: %w", err)
		}
		counts[uuid.UUID(id.Bytes)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UpvoteRepo.CountBySubmission: rows: %w", err)
	}

	return counts, nil
}
