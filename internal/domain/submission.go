// Package domain contains the core data types for the VQ Everything backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxScore is the upper bound of the value and quality scales.
// Both scores are percentages: 0 is worst, 100 is best.
const MaxScore = 100.0

// MaxNameLength is the longest allowed submission name, matching the
// VARCHAR(100) column in the submissions table.
const MaxNameLength = 100

// Submission is one user-contributed (value, quality) rated item.
// Submissions are append-only from the API's point of view: they are created
// once and never updated. UserID is nil for anonymous rows.
type Submission struct {
	ID        uuid.UUID `json:"id"`
	Value     float64   `json:"value"`
	Quality   float64   `json:"quality"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	UserID    *string   `json:"user_id,omitempty"` // nil means anonymous
	CreatedAt time.Time `json:"created_at"`
}

// Upvote records one user's endorsement of a submission.
// At most one upvote exists per (submission, voter) pair; toggling an
// existing upvote removes the row instead of inserting a second one.
// Category and Type are denormalized copies for per-category tallies.
type Upvote struct {
	ID           uuid.UUID `json:"id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	VoterID      string    `json:"voter_id"`
	Category     string    `json:"category"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListFilter carries the optional query filters for listing submissions.
// Nil fields mean "no filter on this column".
type ListFilter struct {
	Category *string
	UserID   *string
}

// NewListFilter builds a ListFilter from optional HTTP query values.
// Empty strings and the sentinel category "All" both mean unfiltered,
// so a frontend can pass its dropdown value through unchanged.
func NewListFilter(category, userID string) ListFilter {
	var f ListFilter
	if category != "" && category != "All" {
		f.Category = &category
	}
	if userID != "" {
		f.UserID = &userID
	}
	return f
}
