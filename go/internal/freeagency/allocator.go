package freeagency

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/mcdev12/franchise/go/internal/valuation"
	"github.com/rs/zerolog/log"
)

// ProcessAISignings fills every AI team's outstanding active-roster need
// from the best remaining free agents.
//
// The pool is ranked once, descending by overall (stable, so equal ratings
// resolve to franchise insertion order), and shared across teams. Teams walk
// it strictly in franchise order and a signed player leaves FREE_AGENT
// status immediately, so earlier teams get first pick. That ordering is the
// contract: this is a bounded greedy allocation, not an auction, and repeat
// runs over identical inputs produce identical signing lists.
func (m *Market) ProcessAISignings(humanTeamID uuid.UUID) []models.AISigningRecord {
	f := m.franchise()

	pool := f.FreeAgents()
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Overall > pool[j].Overall
	})

	var records []models.AISigningRecord
	for _, team := range f.Teams() {
		if team.ID == humanTeamID {
			continue
		}

		counts := roster.RecomputeRosterCounts(f, team.ID)
		needActive := models.AITargetActive - counts.Active
		if needActive < 0 {
			needActive = 0
		}
		fortyManSpace := models.FortyManLimit - counts.FortyMan
		canSign := min3(needActive, fortyManSpace, models.AISigningsPerCycle)
		if canSign <= 0 {
			continue
		}

		signed := 0
		for _, p := range pool {
			if signed >= canSign {
				break
			}
			if p.RosterStatus != models.StatusFreeAgent {
				continue
			}
			if p.Overall < MinOverallToSign {
				continue
			}

			years := valuation.ProjectYears(p.Overall, p.Age)
			salary := valuation.ProjectSalary(p.Overall, p.Age)
			if err := m.roster.Sign(p, team.ID, years, salary); err != nil {
				// this player is unavailable to this team this cycle;
				// move on, never abort the batch
				log.Debug().
					Err(err).
					Str("player", p.Name).
					Str("team", team.Abbreviation).
					Msg("AI signing skipped")
				continue
			}

			records = append(records, models.AISigningRecord{
				PlayerID:     p.ID,
				PlayerName:   p.Name,
				Position:     p.Position,
				Overall:      p.Overall,
				TeamID:       team.ID,
				TeamAbbrev:   team.Abbreviation,
				Years:        years,
				AnnualSalary: salary,
				SignedAt:     m.wall.Now().UTC(),
			})
			signed++
		}
	}

	log.Info().Int("signings", len(records)).Msg("AI signing allocation complete")
	return records
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
