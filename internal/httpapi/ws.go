package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the HTTP API is already CORS-guarded; the upgrade itself accepts any origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamWS serves the same event sequence as the SSE endpoint over a
// WebSocket, one JSON text frame per event. The read loop exists only to
// notice the client going away.
func streamWS(streams Streams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := streams.Subscribe(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "match not found")
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			sub.Close()
			return
		}
		defer conn.Close()
		defer sub.Close()

		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case ev, open := <-sub.C():
				if !open {
					deadline := time.Now().Add(wsWriteTimeout)
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"), deadline)
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-gone:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}
