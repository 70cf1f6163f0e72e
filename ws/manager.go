// Package ws fans chat messages and notifications out to connected
// browsers. Payloads travel through redis pub/sub so every instance
// behind a load balancer sees them.
package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"collegeskills_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	chatChannelPrefix = "chat:"
	userChannelPrefix = "user:"
)

// MembershipChecker answers whether a user belongs to a conversation.
// The chat repository implements it.
type MembershipChecker interface {
	IsParticipant(conversationID, userID string) (bool, error)
}

type Manager struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// conversation id -> clients that joined it
	rooms map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	rdb        *redis.Client
	membership MembershipChecker
}

func NewManager(rdb *redis.Client, membership MembershipChecker) *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		membership: membership,
	}
}

// Run owns the client set and relays redis traffic to local sockets.
// Blocks until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	pubsub := m.rdb.PSubscribe(ctx, chatChannelPrefix+"*", userChannelPrefix+"*")
	defer pubsub.Close()
	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("websocket client connected", "user_id", client.UserID)

		case client := <-m.unregister:
			m.removeClient(client)

		case msg, ok := <-messages:
			if !ok {
				return
			}
			switch {
			case strings.HasPrefix(msg.Channel, chatChannelPrefix):
				m.deliver(msg.Channel[len(chatChannelPrefix):], json.RawMessage(msg.Payload))
			case strings.HasPrefix(msg.Channel, userChannelPrefix):
				m.deliverToUser(msg.Channel[len(userChannelPrefix):], json.RawMessage(msg.Payload))
			}
		}
	}
}

// join admits the client to a conversation room only after the chat
// repository confirms the user is one of its two participants.
func (m *Manager) join(client *Client, conversationID string) bool {
	ok, err := m.membership.IsParticipant(conversationID, client.UserID)
	if err != nil {
		logger.Warn("membership lookup failed", "conversation_id", conversationID, "error", err)
		return false
	}
	if !ok {
		logger.Warn("rejected room join", "conversation_id", conversationID, "user_id", client.UserID)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[conversationID] == nil {
		m.rooms[conversationID] = make(map[*Client]struct{})
	}
	m.rooms[conversationID][client] = struct{}{}
	return true
}

func (m *Manager) leave(client *Client, conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room := m.rooms[conversationID]; room != nil {
		delete(room, client)
		if len(room) == 0 {
			delete(m.rooms, conversationID)
		}
	}
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client]; !ok {
		return
	}
	delete(m.clients, client)
	for conversationID, room := range m.rooms {
		delete(room, client)
		if len(room) == 0 {
			delete(m.rooms, conversationID)
		}
	}
	close(client.send)
	logger.Debug("websocket client disconnected", "user_id", client.UserID)
}

func (m *Manager) deliver(conversationID string, payload json.RawMessage) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.rooms[conversationID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the connection rather than block.
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

// deliverToUser pushes a payload to every socket the user has open,
// joined rooms or not.
func (m *Manager) deliverToUser(userID string, payload json.RawMessage) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.send <- payload:
		default:
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
