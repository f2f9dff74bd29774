package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/casefeed/backend/internal/auth"
	"github.com/casefeed/backend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WSHub fans activity_logged events out to websocket clients watching a
// matter's feed.
type WSHub struct {
	jwtSecret   string
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn // matter id -> conns
}

func NewWSHub(jwtSecret string, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		jwtSecret:   jwtSecret,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamActivity, h.dispatch)
}

func (h *WSHub) dispatch(event events.Event) {
	matterID := event.MatterID()
	if matterID == "" {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[matterID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws write failed", zap.String("matter_id", matterID), zap.Error(err))
		}
	}
}

// Watchers returns the number of open connections for a matter.
func (h *WSHub) Watchers(matterID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[matterID])
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	id, err := uuid.Parse(conn.Query("matter_id"))
	if tokenStr == "" || err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token and a valid matter_id are required"}`))
		conn.Close()
		return
	}
	// events carry the canonical form
	matterID := id.String()

	if _, err := auth.ParseJWT(h.jwtSecret, tokenStr); err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	h.register(matterID, conn)
	h.log.Debug("ws watcher joined", zap.String("matter_id", matterID), zap.Int("watchers", h.Watchers(matterID)))
	defer func() {
		h.unregister(matterID, conn)
		h.log.Debug("ws watcher left", zap.String("matter_id", matterID), zap.Int("watchers", h.Watchers(matterID)))
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *WSHub) register(matterID string, conn *websocket.Conn) {
	h.mu.Lock()
	h.connections[matterID] = append(h.connections[matterID], conn)
	h.mu.Unlock()
}

func (h *WSHub) unregister(matterID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.connections[matterID]
	for i, c := range conns {
		if c == conn {
			h.connections[matterID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[matterID]) == 0 {
		delete(h.connections, matterID)
	}
}
