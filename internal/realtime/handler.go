package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmate/api/pkg/response"
)

// Handler streams change events to clients
type Handler struct {
	hub *Hub
}

// NewHandler creates a new realtime handler
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Routes returns the router for realtime endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{tripId}/events", h.Stream)

	return r
}

// Stream handles GET /realtime/{tripId}/events
// @Summary      Stream trip change events
// @Description  Server-sent events feed of row changes for a trip; clients reload on every event
// @Tags         realtime
// @Produce      text/event-stream
// @Param        tripId path string true "Trip ID"
// @Success      200
// @Router       /realtime/{tripId}/events [get]
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	sub := h.hub.Subscribe(tripID)
	defer h.hub.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := json.Marshal(e)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
