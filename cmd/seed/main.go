// Package main seeds the database with fake submissions and upvotes for
// local development, so the dashboard plot has something to show.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/seed -count 50
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vqeverything/backend/internal/config"
	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/repo"
)

var (
	categories = []string{
		"Steak", "Sushi", "Pizza", "Burgers", "Pasta", "Indian", "Chinese",
		"Thai", "Mexican", "Korean", "BBQ", "Seafood", "Vegan",
		"Middle Eastern", "French", "Spanish", "Vietnamese", "Greek",
		"Turkish", "Lebanese", "Caribbean", "African", "Tapas", "Deli",
		"Bakery", "Cafe", "Japanese", "Other",
	}

	locations = []string{
		"London", "New York", "Paris", "Tokyo", "Berlin", "Sydney", "Rome",
		"Toronto", "San Francisco", "Singapore",
	}
)

func main() {
	count := flag.Int("count", 50, "number of submissions to create")
	seed := flag.Int64("seed", 0, "random seed (0 uses a random one)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(context.Background(), pool, *count); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, pool *pgxpool.Pool, count int) error {
	subs := repo.NewSubmissionRepo(pool)
	upvotes := repo.NewUpvoteRepo(pool)

	// A small pool of repeat users so some names collect multiple ratings
	// and upvotes, which is what the weighted plot aggregates.
	users := make([]string, 8)
	for i := range users {
		users[i] = strings.ToLower(gofakeit.Email())
	}

	created := make([]domain.Submission, 0, count)
	for i := 0; i < count; i++ {
		sub := fakeSubmission(users)
		got, err := subs.Create(ctx, sub)
		if err != nil {
			return fmt.Errorf("create submission %d: %w", i, err)
		}
		created = append(created, got)
	}

	var voteCount int
	for _, sub := range created {
		for _, voter := range users {
			if rand.Float64() > 0.25 {
				continue
			}
			_, err := upvotes.Insert(ctx, domain.Upvote{
				SubmissionID: sub.ID,
				VoterID:      voter,
				Category:     sub.Category,
				Type:         sub.Type,
			})
			if err != nil {
				return fmt.Errorf("upvote submission %s: %w", sub.ID, err)
			}
			voteCount++
		}
	}

	slog.Info("seeding complete", "submissions", len(created), "upvotes", voteCount)
	return nil
}

// fakeSubmission builds one random submission. Roughly a third of rows are
// anonymous; the rest belong to one of the repeat users.
func fakeSubmission(users []string) domain.Submission {
	name := fmt.Sprintf("%s %s", gofakeit.LastName(), gofakeit.RandomString([]string{
		"Kitchen", "Grill", "House", "Corner", "Garden", "Table", "Bistro",
	}))

	sub := domain.Submission{
		Value:    gofakeit.Float64Range(5, 100),
		Quality:  gofakeit.Float64Range(5, 100),
		Type:     "Restaurant",
		Category: gofakeit.RandomString(categories),
		Name:     name,
		Location: gofakeit.RandomString(locations),
	}
	if gofakeit.Number(0, 2) > 0 {
		user := gofakeit.RandomString(users)
		sub.UserID = &user
	}
	return sub
}
