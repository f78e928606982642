package models

import (
	"github.com/google/uuid"
)

// Team represents one of the league's franchises. Roster counts are always
// derived from the player set, never stored on the team record.
type Team struct {
	ID           uuid.UUID `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Budget       int64     `json:"budget"` // annual payroll budget
	HumanOwned   bool      `json:"human_owned"`
}

// Roster capacity limits
const (
	ActiveRosterLimit  = 26
	FortyManLimit      = 40
	AITargetActive     = 25 // AI teams fill to 25, leaving one flex spot
	AISigningsPerCycle = 5
)
