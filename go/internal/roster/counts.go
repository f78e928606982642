package roster

import (
	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
)

// Counts holds a team's derived roster occupancy. Counts are recomputed from
// the player set on every use; they are never cached on the Team record, so
// there is nothing to drift.
type Counts struct {
	Active   int
	FortyMan int
}

// RecomputeRosterCounts derives a team's active and 40-man counts from the
// live player set. Every capacity check in the engine goes through this one
// derivation.
func RecomputeRosterCounts(f *franchise.Franchise, teamID uuid.UUID) Counts {
	var c Counts
	for _, p := range f.TeamPlayers(teamID) {
		if p.RosterStatus == models.StatusMLBActive {
			c.Active++
		}
		if p.IsOn40Man {
			c.FortyMan++
		}
	}
	return c
}
