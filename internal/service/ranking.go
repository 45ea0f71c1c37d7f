package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/repo"
)

// Weighting parameters for chart aggregation. Each submission in a group
// starts at an equal share; upvotes and recency then scale that share,
// with the recency influence deliberately weaker than the vote influence.
const (
	voteFactor = 1.0
	dateFactor = 0.3

	// recencyHalfLife is the age at which a submission's recency weight
	// halves. A fresh submission weighs 1.0, a 30-day-old one 0.5.
	recencyHalfLife = 30 * 24 * time.Hour

	// minScalar floors both scalars so one stale, unloved submission is
	// dampened rather than erased from the average.
	minScalar = 0.5
)

// ChartPoint is one plotted marker: the weighted average of all submissions
// for the same (name, category) pair.
type ChartPoint struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Location string  `json:"location"`
	Value    float64 `json:"value"`
	Quality  float64 `json:"quality"`
	Count    int     `json:"count"`
}

// RankService aggregates submissions into weighted chart points.
type RankService struct {
	subs    repo.SubmissionRepo
	upvotes repo.UpvoteRepo
	now     func() time.Time
}

// NewRankService constructs a RankService. The clock defaults to time.Now
// and is overridable in tests.
func NewRankService(subs repo.SubmissionRepo, upvotes repo.UpvoteRepo) *RankService {
	return &RankService{subs: subs, upvotes: upvotes, now: time.Now}
}

// ChartPoints lists the submissions matching filter, groups them by
// (name, category), and returns one weighted-average point per group.
// Group order follows first appearance in the underlying insertion order.
func (s *RankService) ChartPoints(ctx context.Context, filter domain.ListFilter) ([]ChartPoint, error) {
	subs, err := s.subs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.RankService.ChartPoints: %w", err)
	}
	if len(subs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}
	counts, err := s.upvotes.CountBySubmission(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service.RankService.ChartPoints: %w", err)
	}

	type groupKey struct{ name, category string }
	groups := make(map[groupKey][]domain.Submission)
	var order []groupKey
	for _, sub := range subs {
		k := groupKey{sub.Name, sub.Category}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], sub)
	}

	now := s.now()
	points := make([]ChartPoint, 0, len(order))
	for _, k := range order {
		group := groups[k]
		ws := groupWeights(group, counts, now)

		var totalW, value, quality float64
		for i, sub := range group {
			totalW += ws[i]
			value += sub.Value * ws[i]
			quality += sub.Quality * ws[i]
		}

		first := group[0]
		points = append(points, ChartPoint{
			Name:     first.Name,
			Category: first.Category,
			Type:     first.Type,
			Location: first.Location,
			Value:    value / totalW,
			Quality:  quality / totalW,
			Count:    len(group),
		})
	}

	return points, nil
}

// groupWeights computes one normalized weight per submission in a group.
// Each submission starts at 1/N, scaled by how its upvote count and recency
// compare to the group average. Weights are normalized to sum to 100.
func groupWeights(group []domain.Submission, upvotes map[uuid.UUID]int, now time.Time) []float64 {
	n := len(group)
	base := 1.0 / float64(n)

	var avgVotes, avgRecency float64
	recency := make([]float64, n)
	for i, sub := range group {
		avgVotes += float64(upvotes[sub.ID])
		recency[i] = recencyWeight(sub.CreatedAt, now)
		avgRecency += recency[i]
	}
	avgVotes /= float64(n)
	avgRecency /= float64(n)

	scores := make([]float64, n)
	var total float64
	for i, sub := range group {
		vs := relativeScalar(float64(upvotes[sub.ID]), avgVotes)
		ds := relativeScalar(recency[i], avgRecency)
		scores[i] = base * (1 + voteFactor*(vs-1)) * (1 + dateFactor*(ds-1))
		total += scores[i]
	}

	if total == 0 {
		equal := 100.0 / float64(n)
		for i := range scores {
			scores[i] = equal
		}
		return scores
	}
	for i := range scores {
		scores[i] = scores[i] / total * 100
	}
	return scores
}

// relativeScalar compares a value to its group average, floored at minScalar.
// A zero average means no signal, so everything scales equally.
func relativeScalar(v, avg float64) float64 {
	if avg <= 0 {
		return 1.0
	}
	return math.Max(minScalar, v/avg)
}

// recencyWeight decays exponentially with submission age:
// 1.0 when fresh, halving every recencyHalfLife. Future timestamps clamp to 1.0.
func recencyWeight(createdAt, now time.Time) float64 {
	age := now.Sub(createdAt)
	if age <= 0 {
		return 1.0
	}
	return math.Pow(0.5, age.Hours()/recencyHalfLife.Hours())
}
