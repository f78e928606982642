package franchise

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/models"
)

// Franchise is the aggregate that owns every Player and Team record in the
// league. All roster mutation goes through the engine operations; nothing
// outside the engine touches the records directly.
//
// Insertion order is preserved for both collections so batch operations that
// walk the league (offseason allocation in particular) are deterministic.
type Franchise struct {
	players     map[uuid.UUID]*models.Player
	teams       map[uuid.UUID]*models.Team
	playerOrder []uuid.UUID
	teamOrder   []uuid.UUID
}

// New creates an empty Franchise aggregate
func New() *Franchise {
	return &Franchise{
		players: make(map[uuid.UUID]*models.Player),
		teams:   make(map[uuid.UUID]*models.Team),
	}
}

// AddPlayer registers a player record with the aggregate
func (f *Franchise) AddPlayer(p *models.Player) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("player id is required")
	}
	if !p.RosterStatus.IsValid() {
		return fmt.Errorf("invalid roster status %q for player %s", p.RosterStatus, p.Name)
	}
	if _, exists := f.players[p.ID]; exists {
		return fmt.Errorf("player %s already registered", p.ID)
	}
	f.players[p.ID] = p
	f.playerOrder = append(f.playerOrder, p.ID)
	return nil
}

// AddTeam registers a team record with the aggregate
func (f *Franchise) AddTeam(t *models.Team) error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("team id is required")
	}
	if _, exists := f.teams[t.ID]; exists {
		return fmt.Errorf("team %s already registered", t.ID)
	}
	f.teams[t.ID] = t
	f.teamOrder = append(f.teamOrder, t.ID)
	return nil
}

// Player returns the live player record for id, or nil
func (f *Franchise) Player(id uuid.UUID) *models.Player {
	return f.players[id]
}

// Team returns the team record for id, or nil
func (f *Franchise) Team(id uuid.UUID) *models.Team {
	return f.teams[id]
}

// Players returns all player records in insertion order
func (f *Franchise) Players() []*models.Player {
	out := make([]*models.Player, 0, len(f.playerOrder))
	for _, id := range f.playerOrder {
		out = append(out, f.players[id])
	}
	return out
}

// Teams returns all team records in insertion order
func (f *Franchise) Teams() []*models.Team {
	out := make([]*models.Team, 0, len(f.teamOrder))
	for _, id := range f.teamOrder {
		out = append(out, f.teams[id])
	}
	return out
}

// FreeAgents returns every player currently in FREE_AGENT status, in
// insertion order
func (f *Franchise) FreeAgents() []*models.Player {
	var out []*models.Player
	for _, id := range f.playerOrder {
		if p := f.players[id]; p.RosterStatus == models.StatusFreeAgent {
			out = append(out, p)
		}
	}
	return out
}

// TeamPlayers returns every player whose TeamID matches, in insertion order
func (f *Franchise) TeamPlayers(teamID uuid.UUID) []*models.Player {
	var out []*models.Player
	for _, id := range f.playerOrder {
		p := f.players[id]
		if p.TeamID != nil && *p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// PlayerCount returns the number of registered players
func (f *Franchise) PlayerCount() int {
	return len(f.players)
}

// TeamCount returns the number of registered teams
func (f *Franchise) TeamCount() int {
	return len(f.teams)
}
