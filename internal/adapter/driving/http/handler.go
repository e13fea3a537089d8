// Package httphandler is the HTTP driving adapter exposing the
// credential subsystem to its collaborators: key listing and mutation,
// live validation, and a change event stream.
package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopscribe/credstore/internal/application"
	"github.com/shopscribe/credstore/internal/domain/model"
)

// Handler serves the REST API over the key store and validator.
type Handler struct {
	store     *application.Store
	validator *application.Validator
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(store *application.Store, validator *application.Validator, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/keys", h.ListKeys)
	mux.HandleFunc("PATCH /api/v1/keys", h.SetKeys)
	mux.HandleFunc("DELETE /api/v1/keys", h.ClearKeys)
	mux.HandleFunc("PUT /api/v1/keys/{service}", h.SetKey)
	mux.HandleFunc("DELETE /api/v1/keys/{service}", h.RemoveKey)
	mux.HandleFunc("POST /api/v1/keys/{service}/validate", h.ValidateKey)
	mux.HandleFunc("GET /api/v1/keys/events", h.StreamKeyEvents)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// serviceFromPath parses the {service} path value, writing a 404 on failure.
func serviceFromPath(w http.ResponseWriter, r *http.Request) (model.Service, bool) {
	service, err := model.ParseService(r.PathValue("service"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown service")
		return "", false
	}
	return service, true
}

// ListKeys returns the masked key listing.
func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toKeysResponse(h.store.GetAll(r.Context())))
}

// SetKey stores a single service key.
func (h *Handler) SetKey(w http.ResponseWriter, r *http.Request) {
	service, ok := serviceFromPath(w, r)
	if !ok {
		return
	}

	var req SetKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persisted := h.store.Set(r.Context(), service, req.Key)
	writeJSON(w, http.StatusOK, MutationResponse{Persisted: persisted})
}

// SetKeys merges the provided fields into the key map. Absent fields
// are untouched.
func (h *Handler) SetKeys(w http.ResponseWriter, r *http.Request) {
	var req SetKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	partial := make(map[model.Service]string)
	if req.AnthropicAPIKey != nil {
		partial[model.ServiceAnthropic] = *req.AnthropicAPIKey
	}
	if req.UnsplashAccessKey != nil {
		partial[model.ServiceUnsplash] = *req.UnsplashAccessKey
	}
	if len(partial) == 0 {
		writeError(w, http.StatusBadRequest, "no key fields provided")
		return
	}

	persisted := h.store.SetAll(r.Context(), partial)
	writeJSON(w, http.StatusOK, MutationResponse{Persisted: persisted})
}

// RemoveKey clears one service key.
func (h *Handler) RemoveKey(w http.ResponseWriter, r *http.Request) {
	service, ok := serviceFromPath(w, r)
	if !ok {
		return
	}

	persisted := h.store.Remove(r.Context(), service)
	writeJSON(w, http.StatusOK, MutationResponse{Persisted: persisted})
}

// ClearKeys empties every service key.
func (h *Handler) ClearKeys(w http.ResponseWriter, r *http.Request) {
	persisted := h.store.Clear(r.Context())
	writeJSON(w, http.StatusOK, MutationResponse{Persisted: persisted})
}

// ValidateKey runs two-stage validation for one service. The optional
// body key overrides the stored one.
func (h *Handler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	service, ok := serviceFromPath(w, r)
	if !ok {
		return
	}

	var req ValidateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result model.ValidationResult
	if req.Key != "" {
		result = h.validator.Validate(r.Context(), service, req.Key)
	} else {
		result = h.validator.Validate(r.Context(), service)
	}

	writeJSON(w, http.StatusOK, result)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
