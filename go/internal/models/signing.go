package models

import (
	"time"

	"github.com/google/uuid"
)

// AISigningRecord is an immutable audit entry created when the AI allocator
// completes a free-agent signing. Never mutated after creation.
type AISigningRecord struct {
	PlayerID     uuid.UUID `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	Position     Position  `json:"position"`
	Overall      int       `json:"overall"`
	TeamID       uuid.UUID `json:"team_id"`
	TeamAbbrev   string    `json:"team_abbrev"`
	Years        int       `json:"years"`
	AnnualSalary int64     `json:"annual_salary"`
	SignedAt     time.Time `json:"signed_at"`
}
