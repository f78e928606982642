package roster

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/rs/zerolog/log"
)

// App is the roster-status state machine. Every transition validates against
// the live aggregate first and only then mutates, so a rejected transition
// never leaves a player half-moved.
type App struct {
	f *franchise.Franchise
}

// NewApp creates a roster App over the franchise aggregate
func NewApp(f *franchise.Franchise) *App {
	return &App{f: f}
}

// Franchise exposes the underlying aggregate to collaborating engines
func (a *App) Franchise() *franchise.Franchise {
	return a.f
}

// Promote moves a player up the ladder: minors to a higher minors level, or
// minors/DFA onto the active roster. Promotion to MLB_ACTIVE adds the player
// to the 40-man if needed, which requires 40-man space, and always requires
// an open active-roster spot.
func (a *App) Promote(p *models.Player, target models.RosterStatus) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	if !target.IsValid() {
		return &IllegalTransitionError{PlayerName: p.Name, From: p.RosterStatus, To: target, Reason: "unknown target status"}
	}

	from := p.RosterStatus
	switch {
	case from.IsMinors():
		if target != models.StatusMLBActive && !(target.IsMinors() && target.MinorLevel() > from.MinorLevel()) {
			return &IllegalTransitionError{PlayerName: p.Name, From: from, To: target, Reason: "promotion must move up the ladder"}
		}
	case from == models.StatusDFA:
		if target != models.StatusMLBActive {
			return &IllegalTransitionError{PlayerName: p.Name, From: from, To: target, Reason: "DFA resolution upward must be to the active roster"}
		}
	default:
		return &IllegalTransitionError{PlayerName: p.Name, From: from, To: target, Reason: "promotion only applies to minors or DFA players"}
	}

	if target == models.StatusMLBActive {
		if p.TeamID == nil {
			return &IllegalTransitionError{PlayerName: p.Name, From: from, To: target, Reason: "player has no team"}
		}
		counts := RecomputeRosterCounts(a.f, *p.TeamID)
		if !p.IsOn40Man && counts.FortyMan >= models.FortyManLimit {
			return &RosterFullError{TeamID: *p.TeamID, Roster: "40-man", Limit: models.FortyManLimit, Count: counts.FortyMan}
		}
		if counts.Active >= models.ActiveRosterLimit {
			return &RosterFullError{TeamID: *p.TeamID, Roster: "active", Limit: models.ActiveRosterLimit, Count: counts.Active}
		}
		p.IsOn40Man = true
	}
	p.RosterStatus = target

	log.Debug().
		Str("player", p.Name).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("promoted player")
	return nil
}

// DemoteRequest describes a demotion to a minor-league level. Outright sends
// the player off the 40-man without consuming an option year; a non-outright
// demotion from the active roster burns one option and is refused when none
// remain.
type DemoteRequest struct {
	Target   models.RosterStatus
	Outright bool
}

// Demote moves a player down to a lower minors level
func (a *App) Demote(p *models.Player, req DemoteRequest) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	if !req.Target.IsMinors() {
		return &IllegalTransitionError{PlayerName: p.Name, From: p.RosterStatus, To: req.Target, Reason: "demotion target must be a minors level"}
	}

	from := p.RosterStatus
	switch {
	case from == models.StatusMLBActive, from == models.StatusDFA:
		// any minors level is below the majors
	case from.IsMinors():
		if req.Target.MinorLevel() >= from.MinorLevel() {
			return &IllegalTransitionError{PlayerName: p.Name, From: from, To: req.Target, Reason: "demotion must move down the ladder"}
		}
	default:
		return &IllegalTransitionError{PlayerName: p.Name, From: from, To: req.Target, Reason: "demotion only applies to active, DFA or minors players"}
	}

	if from == models.StatusMLBActive && !req.Outright {
		if p.OptionYearsRemaining <= 0 {
			return &NoOptionsRemainingError{PlayerName: p.Name}
		}
	}

	// validation complete, apply
	if from == models.StatusMLBActive && !req.Outright {
		p.OptionYearsRemaining--
	}
	if req.Outright && p.IsOn40Man {
		p.IsOn40Man = false
	}
	p.RosterStatus = req.Target

	log.Debug().
		Str("player", p.Name).
		Str("from", string(from)).
		Str("to", string(req.Target)).
		Bool("outright", req.Outright).
		Msg("demoted player")
	return nil
}

// DesignateForAssignment pulls a player off the active roster or injured
// list while the team decides what to do with him. The player keeps his
// 40-man spot; the DFA resolution clock is the caller's to run.
func (a *App) DesignateForAssignment(p *models.Player) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	from := p.RosterStatus
	if from != models.StatusMLBActive && !from.IsInjuredList() {
		return &IllegalTransitionError{PlayerName: p.Name, From: from, To: models.StatusDFA, Reason: "DFA only applies to active or injured-list players"}
	}
	p.RosterStatus = models.StatusDFA

	log.Debug().Str("player", p.Name).Str("from", string(from)).Msg("designated player for assignment")
	return nil
}

// Release severs the player from his team and puts him on the open market.
// Remaining salary becomes dead money on the releasing team's books, which
// is the caller's financial-reporting concern, not the engine's.
func (a *App) Release(p *models.Player) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	from := p.RosterStatus
	if from == models.StatusFreeAgent || from == models.StatusRetired {
		return &IllegalTransitionError{PlayerName: p.Name, From: from, To: models.StatusFreeAgent, Reason: "player is not under team control"}
	}

	p.TeamID = nil
	p.IsOn40Man = false
	p.ContractYearsRemaining = 0
	p.RosterStatus = models.StatusFreeAgent

	log.Info().Str("player", p.Name).Str("from", string(from)).Msg("released player")
	return nil
}

// ConvertToFreeAgent is the internal transition fired by the service-time
// clock when a contract expires with free-agency eligibility earned
func (a *App) ConvertToFreeAgent(p *models.Player) {
	p.TeamID = nil
	p.IsOn40Man = false
	p.RosterStatus = models.StatusFreeAgent
}

// Sign puts a free agent on a team's active roster under a new contract
func (a *App) Sign(p *models.Player, teamID uuid.UUID, years int, annualSalary int64) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	if p.RosterStatus != models.StatusFreeAgent {
		return &NotFreeAgentError{PlayerName: p.Name, Status: p.RosterStatus}
	}
	team := a.f.Team(teamID)
	if team == nil {
		return fmt.Errorf("team %s not found", teamID)
	}
	if years < 1 {
		return fmt.Errorf("contract length must be at least one year")
	}
	if annualSalary <= 0 {
		return fmt.Errorf("annual salary must be positive")
	}

	counts := RecomputeRosterCounts(a.f, teamID)
	if counts.FortyMan >= models.FortyManLimit {
		return &RosterFullError{TeamID: teamID, Roster: "40-man", Limit: models.FortyManLimit, Count: counts.FortyMan}
	}
	if counts.Active >= models.ActiveRosterLimit {
		return &RosterFullError{TeamID: teamID, Roster: "active", Limit: models.ActiveRosterLimit, Count: counts.Active}
	}

	id := teamID
	p.TeamID = &id
	p.RosterStatus = models.StatusMLBActive
	p.IsOn40Man = true
	p.ContractYearsRemaining = years
	p.Salary = annualSalary
	p.FreeAgentEligible = false

	log.Info().
		Str("player", p.Name).
		Str("team", team.Abbreviation).
		Int("years", years).
		Int64("salary", annualSalary).
		Msg("signed free agent")
	return nil
}

// Retire moves a player to the terminal RETIRED status. The record stays in
// the aggregate so historical queries keep working.
func (a *App) Retire(p *models.Player) error {
	if p == nil {
		return fmt.Errorf("player is required")
	}
	if p.RosterStatus == models.StatusRetired {
		return &IllegalTransitionError{PlayerName: p.Name, From: p.RosterStatus, To: models.StatusRetired, Reason: "player is already retired"}
	}

	p.IsOn40Man = false
	p.ContractYearsRemaining = 0
	p.FreeAgentEligible = false
	p.RosterStatus = models.StatusRetired

	log.Info().Str("player", p.Name).Msg("player retired")
	return nil
}
