package freeagency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/mcdev12/franchise/go/internal/servicetime"
	"github.com/rs/zerolog/log"
)

// MinOverallToSign is the rating floor below which AI teams pass on a free
// agent; anyone under it stays in the pool for the human team.
const MinOverallToSign = 200

// ErrSeasonAlreadyProcessed guards the season boundary: running the
// service-time clock twice for one boundary silently double-decrements every
// live contract, so a repeat is refused outright.
var ErrSeasonAlreadyProcessed = errors.New("season boundary already processed")

// Market orchestrates the offseason cycle: contract expiry via the
// service-time clock, AI signing allocation, and the human negotiation flow
// over whatever pool is left.
type Market struct {
	roster    *roster.App
	clock     *servicetime.Clock
	wall      clockwork.Clock
	rng       *rand.Rand
	publisher events.Publisher

	processed     map[int]bool
	currentSeason int
}

// NewMarket creates the offseason market engine. The rand source drives
// accept/reject rolls in the negotiation flow; callers pin the seed in tests.
func NewMarket(rosterApp *roster.App, wall clockwork.Clock, rng *rand.Rand, publisher events.Publisher) *Market {
	return &Market{
		roster:    rosterApp,
		clock:     servicetime.NewClock(rosterApp),
		wall:      wall,
		rng:       rng,
		publisher: publisher,
		processed: make(map[int]bool),
	}
}

func (m *Market) franchise() *franchise.Franchise {
	return m.roster.Franchise()
}

// GenerateFreeAgentClass advances the service-time clock across the league
// for one season boundary and returns how many players hit the open market.
// A season that has already been processed is refused.
func (m *Market) GenerateFreeAgentClass(ctx context.Context, season int) (int, error) {
	if m.processed[season] {
		return 0, fmt.Errorf("season %d: %w", season, ErrSeasonAlreadyProcessed)
	}
	m.processed[season] = true
	m.currentSeason = season

	// Conversion severs team control, so capture the outgoing assignment
	// before the clock runs.
	type assignment struct {
		status models.RosterStatus
		abbrev string
	}
	prior := make(map[uuid.UUID]assignment)
	for _, p := range m.franchise().Players() {
		a := assignment{status: p.RosterStatus}
		if p.TeamID != nil {
			if team := m.franchise().Team(*p.TeamID); team != nil {
				a.abbrev = team.Abbreviation
			}
		}
		prior[p.ID] = a
	}

	converted := m.clock.AdvanceSeason(m.franchise())
	for _, p := range converted {
		m.publishConversion(ctx, p, prior[p.ID].status, prior[p.ID].abbrev)
	}

	log.Info().
		Int("season", season).
		Int("new_free_agents", len(converted)).
		Msg("generated free agent class")
	return len(converted), nil
}

// OffseasonSummary reports one full offseason cycle
type OffseasonSummary struct {
	Season        int
	NewFreeAgents int
	AISignings    []models.AISigningRecord
	PoolRemaining int
}

// RunOffseason runs one complete offseason: class generation, then AI
// allocation for every team except the human one, then the summary event.
// The remaining pool stays available for human negotiation afterwards.
func (m *Market) RunOffseason(ctx context.Context, season int, humanTeamID uuid.UUID) (OffseasonSummary, error) {
	converted, err := m.GenerateFreeAgentClass(ctx, season)
	if err != nil {
		return OffseasonSummary{}, err
	}

	signings := m.ProcessAISignings(humanTeamID)
	for _, rec := range signings {
		m.publishSigning(ctx, rec)
	}

	summary := OffseasonSummary{
		Season:        season,
		NewFreeAgents: converted,
		AISignings:    signings,
		PoolRemaining: len(m.franchise().FreeAgents()),
	}
	m.publishSummary(ctx, summary)

	log.Info().
		Int("season", season).
		Int("new_free_agents", summary.NewFreeAgents).
		Int("ai_signings", len(summary.AISignings)).
		Int("pool_remaining", summary.PoolRemaining).
		Msg("offseason complete")
	return summary, nil
}

// RemainingPool returns the free agents still available for negotiation
func (m *Market) RemainingPool() []*models.Player {
	return m.franchise().FreeAgents()
}

func (m *Market) publishConversion(ctx context.Context, p *models.Player, from models.RosterStatus, abbrev string) {
	if m.publisher == nil {
		return
	}
	payload, err := json.Marshal(events.RosterMovePayload{
		PlayerName: p.Name,
		Position:   string(p.Position),
		TeamAbbrev: abbrev,
		From:       string(from),
		To:         string(models.StatusFreeAgent),
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal conversion payload")
		return
	}
	event := events.TransactionEvent{
		ID:        uuid.New(),
		Season:    m.currentSeason,
		Type:      events.EventFreeAgentConverted,
		PlayerID:  &p.ID,
		Payload:   payload,
		CreatedAt: m.wall.Now().UTC(),
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("player", p.Name).Msg("publish conversion event")
	}
}

func (m *Market) publishSigning(ctx context.Context, rec models.AISigningRecord) {
	if m.publisher == nil {
		return
	}
	payload, err := json.Marshal(events.FreeAgentSignedPayload{
		PlayerName:   rec.PlayerName,
		Position:     string(rec.Position),
		Overall:      rec.Overall,
		TeamAbbrev:   rec.TeamAbbrev,
		Years:        rec.Years,
		AnnualSalary: rec.AnnualSalary,
		AISigning:    true,
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal signing payload")
		return
	}
	playerID := rec.PlayerID
	teamID := rec.TeamID
	event := events.TransactionEvent{
		ID:        uuid.New(),
		Season:    m.currentSeason,
		Type:      events.EventFreeAgentSigned,
		PlayerID:  &playerID,
		TeamID:    &teamID,
		Payload:   payload,
		CreatedAt: m.wall.Now().UTC(),
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("player", rec.PlayerName).Msg("publish signing event")
	}
}

func (m *Market) publishSummary(ctx context.Context, summary OffseasonSummary) {
	if m.publisher == nil {
		return
	}
	payload, err := json.Marshal(events.OffseasonCompletedPayload{
		Season:        summary.Season,
		NewFreeAgents: summary.NewFreeAgents,
		AISignings:    len(summary.AISignings),
		PoolRemaining: summary.PoolRemaining,
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal offseason payload")
		return
	}
	event := events.TransactionEvent{
		ID:        uuid.New(),
		Season:    summary.Season,
		Type:      events.EventOffseasonCompleted,
		Payload:   payload,
		CreatedAt: m.wall.Now().UTC(),
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Int("season", summary.Season).Msg("publish offseason event")
	}
}
