// Package handler implements the HTTP layer for the VQ Everything backend.
// All handlers are methods on Server. Methods are split into concern-specific
// files (submission.go, plot.go, dashboard.go, auth.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/auth"
	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/internal/service"
)

// SubmissionServicer defines the business operations the submission handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type SubmissionServicer interface {
	Create(ctx context.Context, sub domain.Submission) (domain.Submission, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Submission, error)
	Delete(ctx context.Context, id uuid.UUID, actorID string) error
}

// UpvoteServicer defines the upvote toggle the handlers depend on.
type UpvoteServicer interface {
	Toggle(ctx context.Context, submissionID uuid.UUID, voterID string) (service.ToggleResult, error)
}

// ChartServicer supplies the weighted, grouped points the plot endpoints render.
type ChartServicer interface {
	ChartPoints(ctx context.Context, filter domain.ListFilter) ([]service.ChartPoint, error)
}

// Server implements all HTTP endpoints.
type Server struct {
	subs   SubmissionServicer
	votes  UpvoteServicer
	charts ChartServicer

	// google is nil when login is not configured; the auth routes then 404.
	google        GoogleAuth
	sessionSecret string
	adminEmail    string
}

// GoogleAuth is the subset of *auth.Google the auth handlers use, extracted
// so handler tests can stub the provider without real network calls.
type GoogleAuth interface {
	AuthCodeURL(state string) string
	ExchangeAndFetch(ctx context.Context, code string) (name, email string, err error)
}

// NewServer constructs the Server with all its dependencies.
// Pass google == nil to disable the login routes.
func NewServer(subs SubmissionServicer, votes UpvoteServicer, charts ChartServicer, google GoogleAuth, sessionSecret, adminEmail string) *Server {
	return &Server{
		subs:          subs,
		votes:         votes,
		charts:        charts,
		google:        google,
		sessionSecret: sessionSecret,
		adminEmail:    adminEmail,
	}
}

// RegisterRoutes mounts every endpoint on the router. Session extraction is
// expected to be applied globally (auth.Optional in main); routes that need
// an identity add auth.Require per-route.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/submissions", s.CreateSubmission)
	r.Get("/submissions", s.ListSubmissions)
	r.With(auth.Require).Delete("/submissions/{id}", s.DeleteSubmission)
	r.With(auth.Require).Post("/submissions/{id}/upvotes", s.ToggleUpvote)

	r.Get("/plot.png", s.PlotPNG)

	r.Get("/", s.Dashboard)
	r.Post("/", s.DashboardSubmit)
	r.Get("/app/*", s.SPA)

	r.Get("/auth/login", s.AuthLogin)
	r.Get("/auth/callback", s.AuthCallback)
	r.Get("/auth/logout", s.AuthLogout)
	r.Get("/auth/me", s.AuthMe)
}

// isAdmin reports whether the session identity is the configured admin.
func (s *Server) isAdmin(claims *auth.Claims) bool {
	return claims != nil && s.adminEmail != "" && strings.EqualFold(claims.Email, s.adminEmail)
}
