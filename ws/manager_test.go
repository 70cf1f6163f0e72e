package ws

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMembership struct {
	members map[string]map[string]bool
	err     error
}

func (s *stubMembership) IsParticipant(conversationID, userID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.members[conversationID][userID], nil
}

func newTestClient(userID string) *Client {
	return &Client{
		UserID: userID,
		send:   make(chan json.RawMessage, 8),
	}
}

func TestManager_Join_ParticipantsOnly(t *testing.T) {
	membership := &stubMembership{members: map[string]map[string]bool{
		"conv-1": {"client-1": true, "freelancer-1": true},
	}}
	m := NewManager(nil, membership)

	participant := newTestClient("client-1")
	outsider := newTestClient("stranger-1")

	assert.True(t, m.join(participant, "conv-1"))
	assert.False(t, m.join(outsider, "conv-1"))

	m.deliver("conv-1", json.RawMessage(`{"text":"hi"}`))

	select {
	case payload := <-participant.send:
		assert.JSONEq(t, `{"text":"hi"}`, string(payload))
	default:
		t.Fatal("participant did not receive the message")
	}

	select {
	case <-outsider.send:
		t.Fatal("outsider must not receive room traffic")
	default:
	}
}

func TestManager_Join_LookupFailureDenies(t *testing.T) {
	m := NewManager(nil, &stubMembership{err: assert.AnError})

	client := newTestClient("client-1")
	assert.False(t, m.join(client, "conv-1"))

	m.deliver("conv-1", json.RawMessage(`{"text":"hi"}`))
	select {
	case <-client.send:
		t.Fatal("denied client must not be in the room")
	default:
	}
}

func TestManager_Leave(t *testing.T) {
	membership := &stubMembership{members: map[string]map[string]bool{
		"conv-1": {"client-1": true},
	}}
	m := NewManager(nil, membership)

	client := newTestClient("client-1")
	require.True(t, m.join(client, "conv-1"))
	m.leave(client, "conv-1")

	m.deliver("conv-1", json.RawMessage(`{"text":"bye"}`))
	select {
	case <-client.send:
		t.Fatal("client left the room and must not receive traffic")
	default:
	}
}

func TestManager_DeliverToUser(t *testing.T) {
	m := NewManager(nil, &stubMembership{})

	// Two tabs for the same user, one socket for somebody else. None of
	// them joined any room.
	tabOne := newTestClient("user-1")
	tabTwo := newTestClient("user-1")
	other := newTestClient("user-2")
	for _, c := range []*Client{tabOne, tabTwo, other} {
		m.clients[c] = struct{}{}
	}

	m.deliverToUser("user-1", json.RawMessage(`{"type":"new_message"}`))

	for _, c := range []*Client{tabOne, tabTwo} {
		select {
		case payload := <-c.send:
			assert.JSONEq(t, `{"type":"new_message"}`, string(payload))
		default:
			t.Fatal("every open socket of the user gets the notification")
		}
	}
	select {
	case <-other.send:
		t.Fatal("notification leaked to another user")
	default:
	}
}

func TestHandler_CheckOrigin(t *testing.T) {
	m := NewManager(nil, &stubMembership{})

	h := NewHandler(m, "https://app.collegeskills.example")
	req := &http.Request{Header: http.Header{}}

	req.Header.Set("Origin", "https://app.collegeskills.example")
	assert.True(t, h.upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.upgrader.CheckOrigin(req))

	req.Header.Del("Origin")
	assert.False(t, h.upgrader.CheckOrigin(req))

	// Empty config keeps the door open for local development.
	dev := NewHandler(m, "")
	req.Header.Set("Origin", "https://anything.example")
	assert.True(t, dev.upgrader.CheckOrigin(req))
}
