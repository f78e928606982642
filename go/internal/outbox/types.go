package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Row is one durable transaction event awaiting publication
type Row struct {
	ID        uuid.UUID       `json:"id"`
	Season    int             `json:"season"`
	EventType string          `json:"event_type"`
	PlayerID  *uuid.UUID      `json:"player_id,omitempty"`
	TeamID    *uuid.UUID      `json:"team_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}
