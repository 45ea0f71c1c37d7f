package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/repo"
)

// UpvoteService implements the upvote toggle.
type UpvoteService struct {
	subs    repo.SubmissionRepo
	upvotes repo.UpvoteRepo
}

// NewUpvoteService constructs an UpvoteService.
func NewUpvoteService(subs repo.SubmissionRepo, upvotes repo.UpvoteRepo) *UpvoteService {
	return &UpvoteService{subs: subs, upvotes: upvotes}
}

// ToggleResult reports the state after a toggle: whether the voter's upvote
// now exists and the submission's total upvote count.
type ToggleResult struct {
	Upvoted bool `json:"upvoted"`
	Count   int  `json:"count"`
}

// Toggle adds the voter's upvote on a submission if absent and removes it if
// present. Returns domain.ErrNotFound when the submission does not exist.
func (s *UpvoteService) Toggle(ctx context.Context, submissionID uuid.UUID, voterID string) (ToggleResult, error) {
	sub, err := s.subs.GetByID(ctx, submissionID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("service.UpvoteService.Toggle: %w", err)
	}

	exists, err := s.upvotes.Exists(ctx, submissionID, voterID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("service.UpvoteService.Toggle: %w", err)
	}

	if exists {
		if err := s.upvotes.Delete(ctx, submissionID, voterID); err != nil {
			return ToggleResult{}, fmt.Errorf("service.UpvoteService.Toggle: %w", err)
		}
	} else {
		_, err := s.upvotes.Insert(ctx, domain.Upvote{
			SubmissionID: submissionID,
			VoterID:      voterID,
			Category:     sub.Category,
			Type:         sub.Type,
		})
		if err != nil {
			return ToggleResult{}, fmt.Errorf("service.UpvoteService.Toggle: %w", err)
		}
	}

	counts, err := s.upvotes.CountBySubmission(ctx, []uuid.UUID{submissionID})
	if err != nil {
		return ToggleResult{}, fmt.Errorf("service.UpvoteService.Toggle: %w", err)
	}

	return ToggleResult{Upvoted: !exists, Count: counts[submissionID]}, nil
}
