package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vqeverything/backend/internal/auth"
	"github.com/vqeverything/backend/internal/domain"
	"github.com/vqeverything/backend/web"
)

// Dropdown contents for the submission form, matching the product's fixed
// vocabulary. Free-text categories would fragment the filter dropdown.
var (
	submissionTypes = []string{"Restaurant"}

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

var dashboardTmpl = web.Dashboard()

// dashboardRow is one table line on the dashboard. UserID is flattened to a
// plain string so the template never sees a pointer.
type dashboardRow struct {
	Name, Type, Category, Location string
	Value, Quality                 float64
	UserID                         string
	CreatedAt                      time.Time
}

// dashboardData is the template payload for the dashboard page.
type dashboardData struct {
	User        *auth.Claims
	AuthEnabled bool
	Categories  []string
	Locations   []string
	Types       []string
	Category    string
	ShowMine    bool
	Error       string
	Submitted   bool
	PlotURL     string
	Rows        []dashboardRow
}

// Dashboard handles GET /: the server-rendered page with the plot image,
// the submission form, and — for the owner or the admin — a table of rows.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	claims := auth.FromContext(r.Context())

	category := q.Get("category")
	if category == "" {
		category = "All"
	}
	showMine := q.Get("mine") == "true" && claims != nil

	data := dashboardData{
		User:        claims,
		AuthEnabled: s.google != nil,
		Categories:  categories,
		Locations:   locations,
		Types:       submissionTypes,
		Category:    category,
		ShowMine:    showMine,
		Error:       q.Get("error"),
		Submitted:   q.Get("submitted") == "1",
		PlotURL:     plotURL(category, showMine),
	}

	// The table is private: users see their own rows, the admin sees all.
	if showMine || s.isAdmin(claims) {
		filter := domain.NewListFilter(category, "")
		if showMine {
			email := claims.Email
			filter.UserID = &email
		}
		if subs, err := s.subs.List(r.Context(), filter); err == nil {
			for _, sub := range subs {
				row := dashboardRow{
					Name:      sub.Name,
					Type:      sub.Type,
					Category:  sub.Category,
					Location:  sub.Location,
					Value:     sub.Value,
					Quality:   sub.Quality,
					CreatedAt: sub.CreatedAt,
				}
				if sub.UserID != nil {
					row.UserID = *sub.UserID
				}
				data.Rows = append(data.Rows, row)
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.ExecuteTemplate(w, "dashboard.html.tmpl", data); err != nil {
		respondServiceError(w, err)
	}
}

// DashboardSubmit handles the classic form POST from the dashboard.
// Invalid input redirects back with an error banner and persists nothing;
// success redirects back so the refreshed page re-renders the plot.
func (s *Server) DashboardSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "could not read the form")
		return
	}

	value, errV := strconv.ParseFloat(r.PostFormValue("value"), 64)
	quality, errQ := strconv.ParseFloat(r.PostFormValue("quality"), 64)
	if errV != nil || errQ != nil {
		redirectWithError(w, r, "value and quality must be numbers")
		return
	}

	sub := domain.Submission{
		Value:    value,
		Quality:  quality,
		Type:     r.PostFormValue("type"),
		Category: r.PostFormValue("category"),
		Name:     r.PostFormValue("name"),
		Location: r.PostFormValue("location"),
	}
	if claims := auth.FromContext(r.Context()); claims != nil {
		email := claims.Email
		sub.UserID = &email
	}

	if _, err := s.subs.Create(r.Context(), sub); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			redirectWithError(w, r, validationMessage(err))
			return
		}
		respondServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

// SPA handles GET /app/*: serves the embedded single-page app.
func (s *Server) SPA(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix("/app/", http.FileServer(http.FS(web.Static()))).ServeHTTP(w, r)
}

// plotURL builds the /plot.png URL matching the page's active filters.
func plotURL(category string, mine bool) string {
	v := url.Values{}
	if category != "" && category != "All" {
		v.Set("category", category)
	}
	if mine {
		v.Set("mine", "true")
	}
	if len(v) == 0 {
		return "/plot.png"
	}
	return "/plot.png?" + v.Encode()
}

// redirectWithError sends the browser back to the dashboard with an error banner.
func redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
