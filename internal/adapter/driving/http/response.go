package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/shopscribe/credstore/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// KeyStatusResponse describes one service's key without echoing it.
type KeyStatusResponse struct {
	Configured bool   `json:"configured"`
	Preview    string `json:"preview"`
}

// KeysResponse is the masked listing of every service key.
type KeysResponse map[model.Service]KeyStatusResponse

// SetKeyRequest is the JSON body for the set-key endpoint.
type SetKeyRequest struct {
	Key string `json:"key"`
}

// SetKeysRequest is the JSON body for the partial-update endpoint.
// Absent fields are left untouched; present-but-empty fields clear the slot.
type SetKeysRequest struct {
	AnthropicAPIKey   *string `json:"anthropicApiKey"`
	UnsplashAccessKey *string `json:"unsplashAccessKey"`
}

// MutationResponse reports whether a mutation was persisted.
type MutationResponse struct {
	Persisted bool `json:"persisted"`
}

// ValidateKeyRequest is the optional JSON body for the validate
// endpoint; an empty key means "validate the stored one".
type ValidateKeyRequest struct {
	Key string `json:"key"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// previewLen is how many leading characters of a key the masked listing
// reveals.
const previewLen = 8

// maskKey reduces a key to a short recognizable prefix. Full keys are
// never echoed by the API.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= previewLen {
		return "********"
	}
	return key[:previewLen] + "..."
}

// toKeysResponse builds the masked listing from a key snapshot.
func toKeysResponse(keys model.APIKeys) KeysResponse {
	resp := make(KeysResponse, len(model.Services()))
	for _, service := range model.Services() {
		key := keys.Get(service)
		resp[service] = KeyStatusResponse{
			Configured: key != "",
			Preview:    maskKey(key),
		}
	}
	return resp
}
