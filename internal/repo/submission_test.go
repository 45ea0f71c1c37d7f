package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/repo"
	"github.com/vqeverything/backend/testutil"
)

// newTestSubmissionRepo opens a single transaction and returns a SubmissionRepo
// backed by it. The transaction is rolled back automatically when the test
// finishes, so tests never see each other's rows.
func newTestSubmissionRepo(t *testing.T) repo.SubmissionRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewSubmissionRepo(tx)
}

// submissionFixture returns a Submission ready for insertion.
func submissionFixture() domain.Submission {
	userID := "alice@example.com"
	return domain.Submission{
		Value:    70,
		Quality:  85,
		Type:     "Restaurant",
		Category: "Thai",
		Name:     "Thai Palace",
		Location: "Seattle",
		UserID:   &userID,
	}
}

func TestSubmissionRepo_Create(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	input := submissionFixture()

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Value, got.Value)
	assert.Equal(t, input.Quality, got.Quality)
	assert.Equal(t, input.Type, got.Type)
	assert.Equal(t, input.Category, got.Category)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Location, got.Location)
	require.NotNil(t, got.UserID)
	assert.Equal(t, *input.UserID, *got.UserID)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestSubmissionRepo_Create_Anonymous(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	input := submissionFixture()
	input.UserID = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.UserID, "UserID should stay nil for anonymous rows")
}

func TestSubmissionRepo_GetByID(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestSubmissionRepo_GetByID_NotFound(t *testing.T) {
	r := newTestSubmissionRepo(t)

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionRepo_List(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	first, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)
	second := submissionFixture()
	second.Name = "Pho Corner"
	second.Category = "Vietnamese"
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	got, err := r.List(ctx, domain.ListFilter{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID, "rows should come back in insertion order")
}

func TestSubmissionRepo_List_FilterByCategory(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)
	other := submissionFixture()
	other.Category = "Ramen"
	other.Name = "Noodle Bar"
	_, err = r.Create(ctx, other)
	require.NoError(t, err)

	got, err := r.List(ctx, domain.NewListFilter("Ramen", ""))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Noodle Bar", got[0].Name)
}

func TestSubmissionRepo_List_FilterByUserID_CaseInsensitive(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)
	anon := submissionFixture()
	anon.UserID = nil
	anon.Name = "No Owner Diner"
	_, err = r.Create(ctx, anon)
	require.NoError(t, err)

	got, err := r.List(ctx, domain.NewListFilter("", "ALICE@Example.com"))

	require.NoError(t, err)
	require.Len(t, got, 1, "anonymous rows must not match a user filter")
	assert.Equal(t, "Thai Palace", got[0].Name)
}

func TestSubmissionRepo_List_SentinelAllCategory(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)

	got, err := r.List(ctx, domain.NewListFilter("All", ""))

	require.NoError(t, err)
	assert.Len(t, got, 1, `category "All" should behave like no filter`)
}

func TestSubmissionRepo_Delete(t *testing.T) {
	r := newTestSubmissionRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, submissionFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionRepo_Delete_NotFound(t *testing.T) {
	r := newTestSubmissionRepo(t)

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
