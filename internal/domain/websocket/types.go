// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Server -> client
	EventTypeClaimStatus  EventType = "claim:status"
	EventTypePolicyStatus EventType = "policy:status"

	// Client -> server requests
	EventTypeClaimList  EventType = "claim:list"
	EventTypePolicyList EventType = "policy:list"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id,omitempty"`
}

// ChannelType groups events a client can opt out of.
type ChannelType string

const (
	ChannelClaims   ChannelType = "claims"
	ChannelPolicies ChannelType = "policies"
	ChannelSystem   ChannelType = "system"
)

// DefaultChannels are subscribed on connect.
var DefaultChannels = []ChannelType{ChannelClaims, ChannelPolicies, ChannelSystem}

// ChannelFor maps an event to its channel by prefix.
func ChannelFor(event EventType) ChannelType {
	switch {
	case strings.HasPrefix(string(event), "claim:"):
		return ChannelClaims
	case strings.HasPrefix(string(event), "policy:"):
		return ChannelPolicies
	default:
		return ChannelSystem
	}
}

type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ListRequest is the payload of claim:list and policy:list.
type ListRequest struct {
	Status string `json:"status"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        uuid.NewString(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
