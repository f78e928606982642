package roster

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/models"
)

// NotFreeAgentError is returned when a transition requires FREE_AGENT status
// and the player is in some other status
type NotFreeAgentError struct {
	PlayerName string
	Status     models.RosterStatus
}

func (e *NotFreeAgentError) Error() string {
	return fmt.Sprintf("%s is not a free agent (status %s)", e.PlayerName, e.Status)
}

// RosterFullError is returned when a transition would exceed a roster
// capacity limit. Roster names which limit was hit: "40-man" or "active".
type RosterFullError struct {
	TeamID uuid.UUID
	Roster string
	Limit  int
	Count  int
}

func (e *RosterFullError) Error() string {
	return fmt.Sprintf("%s roster full for team %s (%d/%d)", e.Roster, e.TeamID, e.Count, e.Limit)
}

// IllegalTransitionError is returned when the requested status change is not
// reachable from the player's current status
type IllegalTransitionError struct {
	PlayerName string
	From       models.RosterStatus
	To         models.RosterStatus
	Reason     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition for %s: %s -> %s: %s", e.PlayerName, e.From, e.To, e.Reason)
}

// NoOptionsRemainingError is returned when a demotion from the active roster
// is blocked because the player has no option years left. Advisory: the
// caller resolves it externally (waivers/outright), the engine never does.
type NoOptionsRemainingError struct {
	PlayerName string
}

func (e *NoOptionsRemainingError) Error() string {
	return fmt.Sprintf("%s has no option years remaining", e.PlayerName)
}
