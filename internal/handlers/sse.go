package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/pkg/logger"
)

// EventsHandler streams state changes as Server-Sent Events.
type EventsHandler struct {
	hub *services.ChangeHub
}

func NewEventsHandler(hub *services.ChangeHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// GET /api/events
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	clientID := uuid.NewString()
	events := h.hub.Subscribe(clientID)
	defer h.hub.Unsubscribe(clientID)

	log := logger.Component("events")
	log.Info().Str("client_id", clientID).Int("total", h.hub.ClientCount()).Msg("stream client connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error().Err(err).Msg("marshal change event")
				return true
			}
			fmt.Fprintf(w, "id: %d\nevent: change\ndata: %s\n\n", ev.Seq, data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			log.Info().Str("client_id", clientID).Msg("stream client disconnected")
			return false
		}
	})
}
