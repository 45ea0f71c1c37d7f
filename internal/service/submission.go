// Package service contains the business logic for the VQ Everything backend.
// Services validate inputs, enforce ownership rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/repo"
)

// SubmissionService implements business logic for Submission operations.
type SubmissionService struct {
	subs       repo.SubmissionRepo
	upvotes    repo.UpvoteRepo
	adminEmail string
}

// NewSubmissionService constructs a SubmissionService.
// adminEmail identifies the account allowed to delete any submission.
func NewSubmissionService(subs repo.SubmissionRepo, upvotes repo.UpvoteRepo, adminEmail string) *SubmissionService {
	return &SubmissionService{subs: subs, upvotes: upvotes, adminEmail: adminEmail}
}

// Create validates and persists a new submission.
// When the submitter is authenticated, their own upvote is recorded
// automatically, matching the submission form behavior.
func (s *SubmissionService) Create(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	if err := validateSubmission(sub); err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w", err)
	}

	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w", err)
	}

	if created.UserID != nil {
		// Best effort: the submission is already durable, so a failed
		// self-upvote only costs the submitter one vote.
		_, _ = s.upvotes.Insert(ctx, domain.Upvote{
			SubmissionID: created.ID,
			VoterID:      *created.UserID,
			Category:     created.Category,
			Type:         created.Type,
		})
	}

	return created, nil
}

// List returns submissions matching the filter, in insertion order.
func (s *SubmissionService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error) {
	subs, err := s.subs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.SubmissionService.List: %w", err)
	}
	return subs, nil
}

// Delete removes a submission on behalf of actorID.
// The owner may delete their own rows; the admin account may delete any row.
// Anonymous rows have no owner and are deletable only by the admin.
func (s *SubmissionService) Delete(ctx context.Context, id uuid.UUID, actorID string) error {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.SubmissionService.Delete: %w", err)
	}

	if !s.isAdmin(actorID) {
		if sub.UserID == nil || !strings.EqualFold(*sub.UserID, actorID) {
			return fmt.Errorf("service.SubmissionService.Delete: %w", domain.ErrForbidden)
		}
	}

	if err := s.subs.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SubmissionService.Delete: %w", err)
	}
	return nil
}

// isAdmin reports whether actorID is the configured admin account.
func (s *SubmissionService) isAdmin(actorID string) bool {
	return s.adminEmail != "" && strings.EqualFold(actorID, s.adminEmail)
}

// validateSubmission enforces the write-time invariants:
// value and quality in [0,100], name at most 100 characters, and
// all descriptive text fields present.
func validateSubmission(sub domain.Submission) error {
	// Negated range form so NaN (which fails every comparison) is rejected too.
	if !(sub.Value >= 0 && sub.Value <= domain.MaxScore) {
		return fmt.Errorf("%w: value must be between 0 and 100", domain.ErrValidation)
	}
	if !(sub.Quality >= 0 && sub.Quality <= domain.MaxScore) {
		return fmt.Errorf("%w: quality must be between 0 and 100", domain.ErrValidation)
	}
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(sub.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, domain.MaxNameLength)
	}
	if strings.TrimSpace(sub.Type) == "" {
		return fmt.Errorf("%w: type is required", domain.ErrValidation)
	}
	if strings.TrimSpace(sub.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if strings.TrimSpace(sub.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	return nil
}
