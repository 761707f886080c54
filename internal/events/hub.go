package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

// Hub broadcasts events to all connected websocket clients.
type Hub struct {
	m *melody.Melody
}

var _ Publisher = (*Hub)(nil)

func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 1024

	// Keep idle connections open behind proxies
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		log.Debug().Str("remote", s.RemoteAddr().String()).Msg("websocket client connected")
	})

	m.HandleDisconnect(func(s *melody.Session) {
		log.Debug().Str("remote", s.RemoteAddr().String()).Msg("websocket client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Warn().Err(err).Msg("websocket")
	})

	return &Hub{m: m}
}

// HandleRequest upgrades the request to a websocket connection that
// receives all events until the client disconnects.
func (h *Hub) HandleRequest(c *gin.Context) {
	err := h.m.HandleRequest(c.Writer, c.Request)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("websocket upgrade failed")
	}
}

func (h *Hub) Publish(_ context.Context, e Event) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if h.m.IsClosed() {
		return nil
	}

	return h.m.Broadcast(msg)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	return h.m.Close()
}
