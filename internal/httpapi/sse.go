package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// streamSSE subscribes the client to a match's event stream over
// Server-Sent Events. Recorded history is replayed first, then live events
// as they happen, one `data:` frame per event, until the client disconnects
// or the hub shuts down.
func streamSSE(streams Streams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := streams.Subscribe(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "match not found")
			return
		}
		defer sub.Close()

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no") // disable nginx buffering
		w.WriteHeader(http.StatusOK)

		// initial comment establishes the connection on the client side
		if _, err := w.Write([]byte(": connected\n\n")); err != nil {
			return
		}
		flusher.Flush()

		ctx := r.Context()
		for {
			select {
			case ev, open := <-sub.C():
				if !open {
					return
				}
				b, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				if _, err := w.Write([]byte("data: ")); err != nil {
					return
				}
				if _, err := w.Write(b); err != nil {
					return
				}
				if _, err := w.Write([]byte("\n\n")); err != nil {
					return
				}
				flusher.Flush()
			case <-ctx.Done():
				return
			}
		}
	}
}
