package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/service"
)

func TestUpvoteService_Toggle_Adds(t *testing.T) {
	subID := uuid.New()
	inserted := false

	svc := service.NewUpvoteService(
		&mockSubmissionRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Submission, error) {
				sub := validSubmission()
				sub.ID = id
				return sub, nil
			},
		},
		&mockUpvoteRepo{
			exists: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
				return false, nil
			},
			insert: func(_ context.Context, up domain.Upvote) (domain.Upvote, error) {
				inserted = true
				assert.Equal(t, subID, up.SubmissionID)
				assert.Equal(t, "bob@example.com", up.VoterID)
				assert.Equal(t, "Thai", up.Category, "category should be denormalized from the parent")
				return up, nil
			},
			countBySubmission: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]int, error) {
				return map[uuid.UUID]int{subID: 3}, nil
			},
		},
	)

	got, err := svc.Toggle(context.Background(), subID, "bob@example.com")

	require.NoError(t, err)
	assert.True(t, inserted)
	assert.True(t, got.Upvoted)
	assert.Equal(t, 3, got.Count)
}

func TestUpvoteService_Toggle_Removes(t *testing.T) {
	subID := uuid.New()
	removed := false

	svc := service.NewUpvoteService(
		&mockSubmissionRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Submission, error) {
				sub := validSubmission()
				sub.ID = id
				return sub, nil
			},
		},
		&mockUpvoteRepo{
			exists: func(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
				return true, nil
			},
			delete: func(_ context.Context, id uuid.UUID, voterID string) error {
				removed = true
				assert.Equal(t, subID, id)
				assert.Equal(t, "bob@example.com", voterID)
				return nil
			},
			countBySubmission: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]int, error) {
				return map[uuid.UUID]int{}, nil
			},
		},
	)

	got, err := svc.Toggle(context.Background(), subID, "bob@example.com")

	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, got.Upvoted)
	assert.Equal(t, 0, got.Count, "zero upvotes means the ID is absent from the count map")
}

func TestUpvoteService_Toggle_SubmissionNotFound(t *testing.T) {
	svc := service.NewUpvoteService(
		&mockSubmissionRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Submission, error) {
				return domain.Submission{}, domain.ErrNotFound
			},
		},
		&mockUpvoteRepo{},
	)

	_, err := svc.Toggle(context.Background(), uuid.New(), "bob@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
