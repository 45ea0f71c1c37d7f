package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vqeverything/backend/internal/auth"
)

// stateCookie carries the OAuth CSRF nonce between /auth/login and the callback.
const stateCookie = "vq_oauth_state"

// AuthLogin handles GET /auth/login: sets a state nonce cookie and redirects
// to Google's consent screen. Returns 404 when login is not configured.
func (s *Server) AuthLogin(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		respondError(w, http.StatusNotFound, "not_found", "login is not configured")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.google.AuthCodeURL(state), http.StatusFound)
}

// AuthCallback handles GET /auth/callback: verifies the state nonce,
// exchanges the code, and issues the session cookie.
func (s *Server) AuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		respondError(w, http.StatusNotFound, "not_found", "login is not configured")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respondError(w, http.StatusBadRequest, "invalid_state", "OAuth state mismatch")
		return
	}

	name, email, err := s.google.ExchangeAndFetch(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		respondError(w, http.StatusBadGateway, "oauth_error", "could not complete Google login")
		return
	}

	token, err := auth.NewSessionToken(s.sessionSecret, name, email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Expire the one-shot state cookie.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	http.Redirect(w, r, "/", http.StatusFound)
}

// AuthLogout handles GET /auth/logout: clears the session cookie.
func (s *Server) AuthLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// meResponse is the GET /auth/me body.
type meResponse struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Admin         bool   `json:"admin,omitempty"`
}

// AuthMe handles GET /auth/me: reports the current session identity, if any.
func (s *Server) AuthMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusOK, meResponse{Authenticated: false})
		return
	}
	respondJSON(w, http.StatusOK, meResponse{
		Authenticated: true,
		Name:          claims.Name,
		Email:         claims.Email,
		Admin:         s.isAdmin(claims),
	})
}
