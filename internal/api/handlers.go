package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "topic-communities/internal/common/errors"
	"topic-communities/internal/models"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

func (s *Server) searchTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.resolver.SearchTopicsForSession(r.Context(), r.Header.Get(SessionHeader), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSearchResult(topics))
}

func (s *Server) topicCommunities(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	res, err := s.resolver.ResolveForSession(r.Context(), r.Header.Get(SessionHeader), topicID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.opts.Checks))
	for name, p := range s.opts.Checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	std := apperrors.FromResolutionError(err)
	status := apperrors.HTTPStatus(std.Code)

	fields := map[string]interface{}{
		"path":      r.URL.Path,
		"requestId": RequestIDFrom(r.Context()),
		"errorCode": string(std.Code),
		"error":     err,
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", fields)
	} else {
		s.logger.Warn("Request rejected", fields)
	}

	// Internal details stay in the log.
	writeJSON(w, status, errorBody{Error: errorDetail{Code: std.Code, Message: std.Message}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
