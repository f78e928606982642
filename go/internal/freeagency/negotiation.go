package freeagency

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/mcdev12/franchise/go/internal/servicetime"
	"github.com/mcdev12/franchise/go/internal/valuation"
	"github.com/rs/zerolog/log"
)

// Offer is a concrete contract proposal
type Offer struct {
	Years        int
	AnnualSalary int64
}

// OfferOutcome reports the player's answer to an offer. When rejected, the
// counter is the single deterministic fallback from the valuation model;
// there is no negotiation loop.
type OfferOutcome struct {
	Accepted      bool
	Probability   float64
	CounterYears  int
	CounterSalary int64
}

// SignFreeAgent signs a free agent to a team on already-agreed terms.
// Unlike the AI allocation path, capacity failures here surface as explicit
// error kinds for the caller to present.
func (m *Market) SignFreeAgent(ctx context.Context, playerID, teamID uuid.UUID, years int, annualSalary int64) error {
	p := m.franchise().Player(playerID)
	if p == nil {
		return fmt.Errorf("player %s not found", playerID)
	}
	if err := m.roster.Sign(p, teamID, years, annualSalary); err != nil {
		return err
	}

	team := m.franchise().Team(teamID)
	m.publishSigning(ctx, models.AISigningRecord{
		PlayerID:     p.ID,
		PlayerName:   p.Name,
		Position:     p.Position,
		Overall:      p.Overall,
		TeamID:       teamID,
		TeamAbbrev:   team.Abbreviation,
		Years:        years,
		AnnualSalary: annualSalary,
		SignedAt:     m.wall.Now().UTC(),
	})
	return nil
}

// OfferFreeAgentContract puts a concrete offer to a free agent. The
// acceptance probability is deterministic; the yes/no draw comes from the
// market's rand source. An accepted offer signs immediately.
func (m *Market) OfferFreeAgentContract(ctx context.Context, playerID, teamID uuid.UUID, offer Offer, marketHeat float64) (OfferOutcome, error) {
	p := m.franchise().Player(playerID)
	if p == nil {
		return OfferOutcome{}, fmt.Errorf("player %s not found", playerID)
	}
	if p.RosterStatus != models.StatusFreeAgent {
		return OfferOutcome{}, &roster.NotFreeAgentError{PlayerName: p.Name, Status: p.RosterStatus}
	}

	projSalary := valuation.ProjectSalary(p.Overall, p.Age)
	projYears := valuation.ProjectYears(p.Overall, p.Age)
	prob := valuation.AcceptanceProbability(offer.AnnualSalary, offer.Years, projSalary, projYears, marketHeat)

	outcome := OfferOutcome{Probability: prob}
	if m.rng.Float64()*100 < prob {
		if err := m.SignFreeAgent(ctx, playerID, teamID, offer.Years, offer.AnnualSalary); err != nil {
			return OfferOutcome{}, err
		}
		outcome.Accepted = true
		return outcome, nil
	}

	outcome.CounterYears, outcome.CounterSalary = valuation.CounterOffer(p.Overall, p.Age)
	log.Debug().
		Str("player", p.Name).
		Float64("probability", prob).
		Int("counter_years", outcome.CounterYears).
		Int64("counter_salary", outcome.CounterSalary).
		Msg("free agent rejected offer")
	return outcome, nil
}

// OfferExtension puts a contract extension to a player under team control.
// Acceptance is keyed off the player's service tier rather than market heat.
// An accepted extension replaces the current contract terms.
func (m *Market) OfferExtension(ctx context.Context, playerID uuid.UUID, offer Offer) (OfferOutcome, error) {
	p := m.franchise().Player(playerID)
	if p == nil {
		return OfferOutcome{}, fmt.Errorf("player %s not found", playerID)
	}
	if p.TeamID == nil || p.RosterStatus == models.StatusFreeAgent || p.RosterStatus == models.StatusRetired {
		return OfferOutcome{}, fmt.Errorf("%s is not under team control", p.Name)
	}
	if offer.Years < 1 || offer.AnnualSalary <= 0 {
		return OfferOutcome{}, fmt.Errorf("extension terms must include at least one year and a positive salary")
	}

	tier, _ := servicetime.TierFor(p.ServiceTimeDays)
	projSalary := valuation.ProjectSalary(p.Overall, p.Age)
	projYears := valuation.ProjectYears(p.Overall, p.Age)
	prob := valuation.ExtensionProbability(offer.AnnualSalary, offer.Years, projSalary, projYears, tier)

	outcome := OfferOutcome{Probability: prob}
	if m.rng.Float64()*100 < prob {
		m.applyExtension(ctx, p, offer)
		outcome.Accepted = true
		return outcome, nil
	}

	outcome.CounterYears, outcome.CounterSalary = valuation.CounterOffer(p.Overall, p.Age)
	return outcome, nil
}

// AcceptCounterOffer closes an extension at the player's counter terms. The
// counter is recomputed from the valuation model, so UI and engine always
// agree on what was on the table.
func (m *Market) AcceptCounterOffer(ctx context.Context, playerID uuid.UUID) (Offer, error) {
	p := m.franchise().Player(playerID)
	if p == nil {
		return Offer{}, fmt.Errorf("player %s not found", playerID)
	}
	if p.TeamID == nil || p.RosterStatus == models.StatusFreeAgent || p.RosterStatus == models.StatusRetired {
		return Offer{}, fmt.Errorf("%s is not under team control", p.Name)
	}

	years, salary := valuation.CounterOffer(p.Overall, p.Age)
	offer := Offer{Years: years, AnnualSalary: salary}
	m.applyExtension(ctx, p, offer)
	return offer, nil
}

func (m *Market) applyExtension(ctx context.Context, p *models.Player, offer Offer) {
	p.ContractYearsRemaining = offer.Years
	p.Salary = offer.AnnualSalary
	p.FreeAgentEligible = false

	team := m.franchise().Team(*p.TeamID)
	log.Info().
		Str("player", p.Name).
		Str("team", team.Abbreviation).
		Int("years", offer.Years).
		Int64("salary", offer.AnnualSalary).
		Msg("contract extended")

	if m.publisher == nil {
		return
	}
	payload, err := json.Marshal(events.ContractExtendedPayload{
		PlayerName:   p.Name,
		TeamAbbrev:   team.Abbreviation,
		Years:        offer.Years,
		AnnualSalary: offer.AnnualSalary,
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal extension payload")
		return
	}
	event := events.TransactionEvent{
		ID:        uuid.New(),
		Season:    m.currentSeason,
		Type:      events.EventContractExtended,
		PlayerID:  &p.ID,
		TeamID:    p.TeamID,
		Payload:   payload,
		CreatedAt: m.wall.Now().UTC(),
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("player", p.Name).Msg("publish extension event")
	}
}
