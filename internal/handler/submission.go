package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/auth"
	"github.com/vqeverything/backend/internal/domain"
)

// createSubmissionRequest is the POST /submissions body. Value and Quality
// are pointers so a missing field is distinguishable from a literal zero.
type createSubmissionRequest struct {
	Value    *float64 `json:"value"`
	Quality  *float64 `json:"quality"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	UserID   *string  `json:"user_id,omitempty"`
}

// toDomain converts the request body to a domain.Submission.
// Returns an error when required numeric fields are absent.
func (req createSubmissionRequest) toDomain() (domain.Submission, error) {
	if req.Value == nil {
		return domain.Submission{}, errors.New("value is required")
	}
	if req.Quality == nil {
		return domain.Submission{}, errors.New("quality is required")
	}
	return domain.Submission{
		Value:    *req.Value,
		Quality:  *req.Quality,
		Type:     req.Type,
		Category: req.Category,
		Name:     req.Name,
		Location: req.Location,
		UserID:   req.UserID,
	}, nil
}

// CreateSubmission handles POST /submissions.
// An authenticated session overrides any client-sent user_id; anonymous
// requests may still create rows (user_id stays as sent, usually absent).
func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON body")
		return
	}

	sub, err := req.toDomain()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	if claims := auth.FromContext(r.Context()); claims != nil {
		email := claims.Email
		sub.UserID = &email
	}

	created, err := s.subs.Create(r.Context(), sub)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListSubmissions handles GET /submissions.
// Optional query filters: ?category=, ?user_id=, and ?mine=true (which
// requires a session and filters to the current user).
func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.filterFromQuery(w, r)
	if !ok {
		return
	}

	subs, err := s.subs.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}

	respondJSON(w, http.StatusOK, subs)
}

// DeleteSubmission handles DELETE /submissions/{id}. Requires a session;
// the service decides whether the actor may delete the row.
func (s *Server) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "submission not found")
		return
	}

	claims := auth.FromContext(r.Context())
	actorID := claims.Email
	if s.isAdmin(claims) {
		// Admin acts under the configured admin address even if Google
		// reports a differently-cased email.
		actorID = s.adminEmail
	}

	if err := s.subs.Delete(r.Context(), id, actorID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleUpvote handles POST /submissions/{id}/upvotes. Requires a session.
// Toggling twice returns the submission to its previous tally.
func (s *Server) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "submission not found")
		return
	}

	claims := auth.FromContext(r.Context())
	result, err := s.votes.Toggle(r.Context(), id, claims.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// filterFromQuery builds a domain.ListFilter from the request query.
// Reports ok=false after writing an error response (?mine=true without a
// session is a 401).
func (s *Server) filterFromQuery(w http.ResponseWriter, r *http.Request) (domain.ListFilter, bool) {
	q := r.URL.Query()
	filter := domain.NewListFilter(q.Get("category"), q.Get("user_id"))

	if q.Get("mine") == "true" {
		claims := auth.FromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "unauthorized", "login required to filter your submissions")
			return domain.ListFilter{}, false
		}
		email := claims.Email
		filter.UserID = &email
	}

	return filter, true
}
