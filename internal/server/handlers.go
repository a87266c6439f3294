package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	"github.com/opencatalog/searchsync/internal/service/reindex"
)

// handleHealthz handles the health check request.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleReindex accepts a reindex request and returns the STARTING job
// record snapshot. The run itself executes in the background.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	var req reindex.ReindexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := s.svc.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err, "failed to submit reindex request")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	//nolint:errcheck // Response write failures surface as broken connections.
	json.NewEncoder(w).Encode(rec)
}

// handleReindexStatus returns the latest job record of one run mode.
func (s *Server) handleReindexStatus(w http.ResponseWriter, r *http.Request) {
	mode := model.RunMode(strings.TrimPrefix(r.URL.Path, "/v1/search/reindex/status/"))
	if !mode.IsValid() {
		http.Error(w, "invalid run mode", http.StatusBadRequest)
		return
	}

	rec, err := s.svc.LastStatus(r.Context(), mode)
	if err != nil {
		handleError(w, err, "failed to get reindex status")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Response write failures surface as broken connections.
	json.NewEncoder(w).Encode(rec)
}

// handleError maps service errors onto HTTP status codes.
func handleError(w http.ResponseWriter, err error, message ...string) {
	msg := err.Error()
	if len(message) > 0 {
		msg = strings.Join(message, " ")
	}

	switch status.Code(err) {
	case codes.OK:
		return
	case codes.NotFound:
		http.Error(w, msg, http.StatusNotFound)
	case codes.AlreadyExists, codes.Aborted:
		http.Error(w, msg, http.StatusConflict)
	case codes.InvalidArgument:
		http.Error(w, msg, http.StatusBadRequest)
	case codes.Unauthenticated:
		http.Error(w, msg, http.StatusUnauthorized)
	case codes.PermissionDenied:
		http.Error(w, msg, http.StatusForbidden)
	case codes.FailedPrecondition:
		http.Error(w, msg, http.StatusPreconditionFailed)
	case codes.ResourceExhausted:
		http.Error(w, msg, http.StatusTooManyRequests)
	case codes.Unavailable:
		http.Error(w, msg, http.StatusServiceUnavailable)
	case codes.DeadlineExceeded:
		http.Error(w, msg, http.StatusGatewayTimeout)
	default:
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
