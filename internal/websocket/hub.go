// internal/websocket/hub.go
package websocket

import (
	"context"
	"fmt"
	"sync"

	wstypes "insurance-service/internal/domain/websocket"
	"insurance-service/internal/pkg/jwt"

	"go.uber.org/zap"
)

// TokenValidator checks an access token, including revocation.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type Hub struct {
	// Registered clients by user ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Handler registry for client -> server requests
	handlerRegistry *HandlerRegistry

	tokens TokenValidator
	logger *zap.Logger

	done     chan struct{}
	doneOnce sync.Once
}

type BroadcastMessage struct {
	UserIDs []int64
	Channel wstypes.ChannelType
	Message *wstypes.WSMessage
}

func NewHub(tokens TokenValidator, logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[int64]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		handlerRegistry: NewHandlerRegistry(),
		tokens:          tokens,
		logger:          logger,
		done:            make(chan struct{}),
	}
}

// AuthenticateClient validates the token and returns the identity to attach
// to the connection.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &ClientAuth{
		UserID:    claims.UserID,
		Role:      claims.Role,
		Email:     claims.Email,
		SessionID: claims.ID,
	}, nil
}

// RegisterHandler registers a message handler
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage dispatches to a registered handler. The bool reports
// whether any handler owned the event.
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id":  client.userID,
		"role":     client.role,
		"channels": client.Channels(),
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info("websocket client disconnected",
				zap.Int64("user_id", client.userID),
				zap.String("session_id", client.sessionID),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(msg.Channel) {
					client.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		for client := range h.clients[userID] {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}
}

// NotifyUser queues an event for every connection of userID. It never blocks;
// when the queue is full the event is dropped and logged.
func (h *Hub) NotifyUser(userID int64, event string, data interface{}) {
	eventType := wstypes.EventType(event)
	msg := &BroadcastMessage{
		UserIDs: []int64{userID},
		Channel: wstypes.ChannelFor(eventType),
		Message: wstypes.NewMessage(eventType, data),
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping event",
			zap.Int64("user_id", userID),
			zap.String("event", event),
		)
	}
}

func (h *Hub) ConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.doneOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
		delete(h.clients, userID)
	}
}
