package freeagency

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/rs/zerolog/log"
)

// Human-facing roster moves. Each delegates to the state machine and, on
// success, publishes the matching transaction event so the feed sees every
// move, not just signings.

// PromotePlayer moves a player up the ladder and announces it
func (m *Market) PromotePlayer(ctx context.Context, playerID uuid.UUID, target models.RosterStatus) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}

	from := p.RosterStatus
	if err := m.roster.Promote(p, target); err != nil {
		return err
	}
	m.publishMove(ctx, events.EventPlayerPromoted, p, from, p.RosterStatus)
	return nil
}

// DemotePlayer moves a player down to a minors level and announces it
func (m *Market) DemotePlayer(ctx context.Context, playerID uuid.UUID, req roster.DemoteRequest) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}

	from := p.RosterStatus
	if err := m.roster.Demote(p, req); err != nil {
		return err
	}
	m.publishMove(ctx, events.EventPlayerDemoted, p, from, p.RosterStatus)
	return nil
}

// DesignatePlayer pulls a player off the major-league roster into DFA limbo
func (m *Market) DesignatePlayer(ctx context.Context, playerID uuid.UUID) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}

	from := p.RosterStatus
	if err := m.roster.DesignateForAssignment(p); err != nil {
		return err
	}
	m.publishMove(ctx, events.EventPlayerDFA, p, from, p.RosterStatus)
	return nil
}

// ReleasePlayer severs a player from his team onto the open market
func (m *Market) ReleasePlayer(ctx context.Context, playerID uuid.UUID) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}

	from := p.RosterStatus
	abbrev := m.teamAbbrev(p)
	if err := m.roster.Release(p); err != nil {
		return err
	}
	m.publishMoveFrom(ctx, events.EventPlayerReleased, p, from, p.RosterStatus, abbrev)
	return nil
}

// RetirePlayer ends a player's career
func (m *Market) RetirePlayer(ctx context.Context, playerID uuid.UUID) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}

	from := p.RosterStatus
	abbrev := m.teamAbbrev(p)
	if err := m.roster.Retire(p); err != nil {
		return err
	}
	m.publishMoveFrom(ctx, events.EventPlayerRetired, p, from, p.RosterStatus, abbrev)
	return nil
}

func (m *Market) teamAbbrev(p *models.Player) string {
	if p.TeamID == nil {
		return ""
	}
	if team := m.franchise().Team(*p.TeamID); team != nil {
		return team.Abbreviation
	}
	return ""
}

func (m *Market) publishMove(ctx context.Context, eventType events.EventType, p *models.Player, from, to models.RosterStatus) {
	m.publishMoveFrom(ctx, eventType, p, from, to, m.teamAbbrev(p))
}

func (m *Market) publishMoveFrom(ctx context.Context, eventType events.EventType, p *models.Player, from, to models.RosterStatus, abbrev string) {
	if m.publisher == nil {
		return
	}
	payload, err := json.Marshal(events.RosterMovePayload{
		PlayerName: p.Name,
		Position:   string(p.Position),
		TeamAbbrev: abbrev,
		From:       string(from),
		To:         string(to),
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal roster move payload")
		return
	}
	event := events.TransactionEvent{
		ID:        uuid.New(),
		Season:    m.currentSeason,
		Type:      eventType,
		PlayerID:  &p.ID,
		TeamID:    p.TeamID,
		Payload:   payload,
		CreatedAt: m.wall.Now().UTC(),
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("player", p.Name).Msg("publish roster move event")
	}
}
