package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type SessionUpdatedEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifySessionUpdated pushes a session status change to every connected
// client. A nil default hub (tests, early startup) makes this a no-op.
func NotifySessionUpdated(sessionID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if sessionID == uuid.Nil || status == "" {
		return
	}

	evt := SessionUpdatedEvent{
		Type:      "session_updated",
		SessionID: sessionID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
