package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vqeverything/backend/internal/plot"
)

// PlotPNG handles GET /plot.png.
// By default it renders one weighted marker per (name, category) group;
// ?raw=true plots every submission individually. ?category= and ?mine=true
// filter the plotted set the same way GET /submissions does.
func (s *Server) PlotPNG(w http.ResponseWriter, r *http.Request) {
	filter, ok := s.filterFromQuery(w, r)
	if !ok {
		return
	}

	var markers []plot.Marker
	if raw, _ := strconv.ParseBool(r.URL.Query().Get("raw")); raw {
		subs, err := s.subs.List(r.Context(), filter)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		for _, sub := range subs {
			markers = append(markers, plot.Marker{
				Quality: sub.Quality,
				Value:   sub.Value,
				Label:   fmt.Sprintf("%s / %s / %s / %s", sub.Name, sub.Type, sub.Category, sub.Location),
			})
		}
	} else {
		points, err := s.charts.ChartPoints(r.Context(), filter)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		for _, p := range points {
			markers = append(markers, plot.Marker{
				Quality: p.Quality,
				Value:   p.Value,
				Label:   fmt.Sprintf("%s / %s / %s / %s", p.Name, p.Type, p.Category, p.Location),
			})
		}
	}

	// Render to a buffer first so a failed render yields a clean 500
	// instead of a truncated image.
	var buf bytes.Buffer
	if err := plot.Render(&buf, markers); err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
