package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a roster transaction for the event stream
type EventType string

const (
	EventFreeAgentSigned    EventType = "free_agent_signed"
	EventPlayerPromoted     EventType = "player_promoted"
	EventPlayerDemoted      EventType = "player_demoted"
	EventPlayerDFA          EventType = "player_dfa"
	EventPlayerReleased     EventType = "player_released"
	EventPlayerRetired      EventType = "player_retired"
	EventContractExtended   EventType = "contract_extended"
	EventFreeAgentConverted EventType = "free_agent_converted"
	EventOffseasonCompleted EventType = "offseason_completed"
)

// TransactionEvent is the envelope for one roster transaction on the league
// event stream
type TransactionEvent struct {
	ID        uuid.UUID       `json:"id"`
	Season    int             `json:"season"`
	Type      EventType       `json:"type"`
	PlayerID  *uuid.UUID      `json:"player_id,omitempty"`
	TeamID    *uuid.UUID      `json:"team_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// FreeAgentSignedPayload is the payload for a free_agent_signed event
type FreeAgentSignedPayload struct {
	PlayerName   string `json:"player_name"`
	Position     string `json:"position"`
	Overall      int    `json:"overall"`
	TeamAbbrev   string `json:"team_abbrev"`
	Years        int    `json:"years"`
	AnnualSalary int64  `json:"annual_salary"`
	AISigning    bool   `json:"ai_signing"`
}

// RosterMovePayload is the payload for the roster transition events
// (promoted, demoted, dfa, released, retired, converted)
type RosterMovePayload struct {
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	TeamAbbrev string `json:"team_abbrev,omitempty"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// ContractExtendedPayload is the payload for a contract_extended event
type ContractExtendedPayload struct {
	PlayerName   string `json:"player_name"`
	TeamAbbrev   string `json:"team_abbrev"`
	Years        int    `json:"years"`
	AnnualSalary int64  `json:"annual_salary"`
}

// OffseasonCompletedPayload is the payload for an offseason_completed event
type OffseasonCompletedPayload struct {
	Season        int `json:"season"`
	NewFreeAgents int `json:"new_free_agents"`
	AISignings    int `json:"ai_signings"`
	PoolRemaining int `json:"pool_remaining"`
}
