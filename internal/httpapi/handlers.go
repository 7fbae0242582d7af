package httpapi

import (
	"net/http"

	"github.com/localscope/localscope-cli/internal/analysis"
	"github.com/localscope/localscope-cli/internal/catalog"
	"github.com/localscope/localscope-cli/internal/neighborhood"
	"github.com/localscope/localscope-cli/internal/viability"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyze handles POST /v1/analyze. With ?format=geojson only the map is
// returned.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis is not configured")
		return
	}

	var req analysis.Request
	if !decode(w, r, &req) {
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		writeAnalysisError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "geojson" {
		if report.Map == nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		data, err := report.Map.MarshalJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		_, _ = w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// EvaluateRequest is the body of POST /v1/evaluate: already gathered
// places plus the neighborhood and category to score against.
type EvaluateRequest struct {
	Competitors  []viability.Place `json:"competitors"`
	TransitStops []viability.Place `json:"transit_stops"`
	Neighborhood string            `json:"neighborhood"`
	Category     string            `json:"category"`
	Radius       float64           `json:"radius"`
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Radius <= 0 {
		writeError(w, http.StatusBadRequest, "radius: must be positive")
		return
	}

	res := s.evaluator.Evaluate(viability.Input{
		Competitors:  req.Competitors,
		TransitStops: req.TransitStops,
		Neighborhood: req.Neighborhood,
		Category:     req.Category,
		RadiusMeters: req.Radius,
	})
	writeJSON(w, http.StatusOK, res)
}

type neighborhoodEntry struct {
	Name string `json:"name"`
	neighborhood.Profile
}

type neighborhoodsResponse struct {
	City          string               `json:"city"`
	Neighborhoods []neighborhoodEntry  `json:"neighborhoods"`
	Default       neighborhood.Profile `json:"default"`
}

func (s *Server) neighborhoods(w http.ResponseWriter, _ *http.Request) {
	t := s.evaluator.Table()
	resp := neighborhoodsResponse{City: t.City()}
	for _, name := range t.Names() {
		p, _ := t.Lookup(name)
		resp.Neighborhoods = append(resp.Neighborhoods, neighborhoodEntry{Name: name, Profile: p})
	}
	resp.Default, _ = t.Lookup(neighborhood.DefaultKey)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	type group struct {
		Name       catalog.Group      `json:"name"`
		Categories []catalog.Category `json:"categories"`
	}
	grouped := catalog.Grouped()
	out := make([]group, 0, len(grouped))
	for _, g := range catalog.Groups() {
		out = append(out, group{Name: g, Categories: grouped[g]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}
