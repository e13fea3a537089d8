package httphandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopscribe/credstore/internal/domain/model"
)

// StreamKeyEvents serves a server-sent-event stream of masked key
// snapshots: one event on connect, then one per successful mutation.
// The subscription is dropped when the client disconnects.
func (h *Handler) StreamKeyEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Buffered so a slow client never blocks the mutating caller; a
	// full buffer drops intermediate snapshots, the final state still
	// arrives with the next event.
	events := make(chan model.APIKeys, 8)
	unsubscribe := h.store.Subscribe(func(keys model.APIKeys) {
		select {
		case events <- keys:
		default:
		}
	})
	defer unsubscribe()

	writeKeyEvent(w, toKeysResponse(h.store.GetAll(r.Context())))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case keys := <-events:
			writeKeyEvent(w, toKeysResponse(keys))
			flusher.Flush()
		}
	}
}

// writeKeyEvent writes one SSE frame carrying the masked listing.
func writeKeyEvent(w http.ResponseWriter, resp KeysResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: keys\ndata: %s\n\n", data)
}
