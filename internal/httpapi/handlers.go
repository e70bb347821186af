package httpapi

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"jobradar/aggregator-service/internal/model"
)

// handleSearch serves GET /v1/jobs/search. The cache is consulted first;
// on a miss the composer is invoked and the result stored. Partial
// provider degradation is invisible here — the response just has fewer
// jobs — so operators watch /metrics, not this endpoint.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()[:8]

	query, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if res, ok := s.cache.Get(r.Context(), query); ok {
		log.Printf("[httpapi] %s search served from cache — %d jobs", reqID, len(res.Jobs))
		writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := s.composer.SearchJobs(r.Context(), query)
	if err != nil {
		log.Printf("[httpapi] %s search failed: %v", reqID, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "all job sources are unavailable"})
		return
	}
	s.cache.Set(r.Context(), query, res)

	log.Printf("[httpapi] %s search q=%q location=%q — %d jobs", reqID, query.Q, query.Location, len(res.Jobs))
	writeJSON(w, http.StatusOK, res)
}

// handleGet serves GET /v1/jobs/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := s.composer.GetJob(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "lookup failed"})
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "job not found"})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func parseQuery(r *http.Request) (model.JobQuery, error) {
	q := r.URL.Query()
	query := model.JobQuery{
		Q:        q.Get("q"),
		Location: q.Get("location"),
		Sort:     q.Get("sort"),
	}

	if v := q.Get("remote"); v != "" {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			return query, badParam("remote", v)
		}
		query.Remote = &remote
	}
	if v := q.Get("minSalary"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil || min < 0 {
			return query, badParam("minSalary", v)
		}
		query.MinSalary = min
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return query, badParam("limit", v)
		}
		query.Limit = limit
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return query, badParam("page", v)
		}
		query.Page = page
	}

	switch query.Sort {
	case "", model.SortRelevance, model.SortDate, model.SortSalary:
	default:
		return query, badParam("sort", query.Sort)
	}

	return query, nil
}

type paramError struct{ name, value string }

func (e paramError) Error() string {
	return "invalid " + e.name + " parameter: " + strconv.Quote(e.value)
}

func badParam(name, value string) error { return paramError{name: name, value: value} }
