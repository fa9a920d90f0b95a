package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"yatube/app/auth"
	"yatube/app/metrics"
	"yatube/app/repositories"
	"yatube/app/services"

	"github.com/gorilla/mux"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// base holds what every controller needs to answer a request.
type base struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func newBase(logger *slog.Logger, m *metrics.Metrics) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{logger: logger, metrics: m}
}

func (b base) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("encode response", "err", err)
	}
}

func (b base) sendError(w http.ResponseWriter, message string, status int) {
	b.sendJSON(w, status, errorBody{Error: message})
}

// sendServiceError maps a service or repository error onto its HTTP status.
// resource names the record kind for logs and metrics.
func (b base) sendServiceError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	var denied *services.PermissionDeniedError
	var invalid *services.ValidationError

	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		b.sendError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, repositories.ErrNotFound):
		b.sendError(w, "not found", http.StatusNotFound)
	case errors.As(err, &denied):
		b.metrics.DeniedWrite(resource)
		b.logger.Warn("permission denied",
			"resource", resource,
			"requester", auth.IdentityFrom(r.Context()).String(),
			"method", r.Method,
			"path", r.URL.Path,
		)
		b.sendError(w, denied.Message, http.StatusForbidden)
	case errors.As(err, &invalid):
		b.sendJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input", Fields: invalid.Fields})
	default:
		b.logger.Error("request failed", "resource", resource, "path", r.URL.Path, "err", err)
		b.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads the request body into dst. An empty body decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// pathInt reads an integer route variable. A non-numeric id cannot name a
// record, so it is reported as not found.
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		return 0, repositories.ErrNotFound
	}
	return v, nil
}
