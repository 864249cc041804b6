package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
)

// FeedHandler upgrades clients onto the realtime gallery feed. Each
// connection receives the full snapshot once, then store deltas as they
// happen.
type FeedHandler struct {
	feed   service.FeedService
	live   service.LiveViewService
	logger zerolog.Logger
}

// NewFeedHandler constructs a feed handler.
func NewFeedHandler(feed service.FeedService, live service.LiveViewService, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		live:   live,
		logger: logger.With().Str("component", "feed_handler").Logger(),
	}
}

// Register binds the websocket route under the provided router group.
func (h *FeedHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *FeedHandler) handleConnection(conn *websocket.Conn) {
	events, cancel := h.feed.Subscribe()
	defer cancel()

	h.logger.Info().Msg("gallery feed subscriber connected")

	// The snapshot goes out before any delta so the client never has to
	// reconcile changes against state it does not hold yet.
	if err := conn.WriteJSON(h.live.InitialEvent()); err != nil {
		h.logger.Warn().Err(err).Msg("failed to send initial gallery snapshot")
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			h.logger.Info().Msg("gallery feed subscriber disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Warn().Err(err).Msg("failed to push gallery event")
				return
			}
		}
	}
}
