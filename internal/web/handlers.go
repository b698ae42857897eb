package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gpd-sourcing/supplier-screen/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.store.Ping(); err != nil {
		status = "database unavailable"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.LoadStats()
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// flaggedResponse wraps the flagged rows so advisory rows can be filtered
// with ?advisory=true|false.
type flaggedResponse struct {
	Count   int                   `json:"count"`
	Results []store.FlaggedResult `json:"results"`
}

func (s *Server) handleFlagged(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.FlaggedResults()
	if err != nil {
		s.serverError(w, err)
		return
	}

	if v := r.URL.Query().Get("advisory"); v != "" {
		advisory, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "advisory must be true or false", http.StatusBadRequest)
			return
		}
		filtered := results[:0]
		for _, res := range results {
			if res.Advisory == advisory {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	writeJSON(w, http.StatusOK, flaggedResponse{Count: len(results), Results: results})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
