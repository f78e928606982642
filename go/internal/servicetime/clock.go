package servicetime

import (
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/rs/zerolog/log"
)

// One service year is a league-defined full season unit.
const DaysPerServiceYear = 172

// Eligibility thresholds in service years.
const (
	arbitrationYears = 3
	freeAgencyYears  = 6
)

// Tier is a player's derived eligibility class. Always computed from
// ServiceTimeDays on demand, never stored.
type Tier string

const (
	TierPreArbitration Tier = "PRE_ARBITRATION"
	TierArbitration    Tier = "ARBITRATION"
	TierFreeAgency     Tier = "FREE_AGENCY_ELIGIBLE"
)

// TierFor derives the eligibility tier for an accumulated service-day total.
// For arbitration players the second return is the arbitration year (1-3);
// it is zero for the other tiers.
func TierFor(serviceDays int) (Tier, int) {
	years := serviceDays / DaysPerServiceYear
	switch {
	case years < arbitrationYears:
		return TierPreArbitration, 0
	case years < freeAgencyYears:
		sub := years - 2
		if sub > 3 {
			sub = 3
		}
		return TierArbitration, sub
	default:
		return TierFreeAgency, 0
	}
}

// Converter is what the clock needs from the roster state machine to move an
// expired contract onto the open market
type Converter interface {
	ConvertToFreeAgent(p *models.Player)
}

// Clock advances service accounting across the league at each season
// boundary. It must run exactly once per boundary: a second pass in the same
// boundary double-decrements every live contract, which is a caller bug, not
// a recoverable condition. The market orchestrator guards invocation with a
// processed-season check.
type Clock struct {
	converter Converter
}

// NewClock creates a service-time clock backed by the given converter
func NewClock(converter Converter) *Clock {
	return &Clock{converter: converter}
}

// AdvanceSeason runs one turnover pass over every player and returns the
// players converted to free agency this cycle, in league order.
func (c *Clock) AdvanceSeason(f *franchise.Franchise) []*models.Player {
	var converted []*models.Player
	for _, p := range f.Players() {
		if c.advancePlayer(p) {
			converted = append(converted, p)
		}
	}

	log.Info().Int("converted", len(converted)).Msg("season turnover complete")
	return converted
}

// advancePlayer applies the turnover step to a single player and reports
// whether he converted to free agency
func (c *Clock) advancePlayer(p *models.Player) bool {
	if p.RosterStatus == models.StatusRetired || p.RosterStatus == models.StatusFreeAgent {
		return false
	}

	if p.OnMajorLeagueRoster() {
		p.ServiceTimeDays += DaysPerServiceYear
	}
	if tier, _ := TierFor(p.ServiceTimeDays); tier == TierFreeAgency {
		p.FreeAgentEligible = true
	}

	if p.ContractYearsRemaining > 0 {
		p.ContractYearsRemaining--
	}
	if p.ContractYearsRemaining == 0 && p.FreeAgentEligible {
		c.converter.ConvertToFreeAgent(p)
		return true
	}
	return false
}
