package ui

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tosworks/sqf2tcl/internal/convert"
	"github.com/tosworks/sqf2tcl/pkg/sqf"
)

//go:embed index.html
var indexHTML []byte

// convertRequest is the POST /api/convert payload.
type convertRequest struct {
	Source string `json:"source"`
	Report *bool  `json:"report,omitempty"`
}

// convertResponse is the conversion result returned to the page.
type convertResponse struct {
	Output     string `json:"output"`
	Statements int    `json:"statements"`
	Unknown    int    `json:"unknown"`
	Report     bool   `json:"report"`
}

func (s *Server) routes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/api/convert", s.handleConvert)
	r.Get("/api/rules", s.handleRules)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	opts := s.opts
	if req.Report != nil {
		if *req.Report {
			opts.Report = convert.ReportOn
		} else {
			opts.Report = convert.ReportOff
		}
	}

	result := convert.Convert(req.Source, opts)
	writeJSON(w, convertResponse{
		Output:     result.Output,
		Statements: result.Stats.Statements,
		Unknown:    result.Stats.Unknown,
		Report:     result.Stats.Report,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	type ruleInfo struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Summary string `json:"summary"`
	}
	rules := sqf.Rules()
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{ID: rule.ID, Name: rule.Name, Summary: rule.Summary})
	}
	writeJSON(w, infos)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
