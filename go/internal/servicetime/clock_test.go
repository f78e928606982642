package servicetime_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/mcdev12/franchise/go/internal/servicetime"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantTier servicetime.Tier
		wantSub  int
	}{
		{"rookie with no service", 0, servicetime.TierPreArbitration, 0},
		{"just under three years", 3*servicetime.DaysPerServiceYear - 1, servicetime.TierPreArbitration, 0},
		{"exactly three years", 3 * servicetime.DaysPerServiceYear, servicetime.TierArbitration, 1},
		{"fourth-year player", 4 * servicetime.DaysPerServiceYear, servicetime.TierArbitration, 2},
		{"fifth-year player", 5 * servicetime.DaysPerServiceYear, servicetime.TierArbitration, 3},
		{"just under six years", 6*servicetime.DaysPerServiceYear - 1, servicetime.TierArbitration, 3},
		{"exactly six years", 6 * servicetime.DaysPerServiceYear, servicetime.TierFreeAgency, 0},
		{"deep veteran", 11 * servicetime.DaysPerServiceYear, servicetime.TierFreeAgency, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, sub := servicetime.TierFor(tt.days)
			if tier != tt.wantTier {
				t.Errorf("TierFor(%d) tier = %s, want %s", tt.days, tier, tt.wantTier)
			}
			if sub != tt.wantSub {
				t.Errorf("TierFor(%d) arbitration year = %d, want %d", tt.days, sub, tt.wantSub)
			}
		})
	}
}

func newLeague(t *testing.T) (*franchise.Franchise, uuid.UUID) {
	t.Helper()
	f := franchise.New()
	teamID := uuid.New()
	if err := f.AddTeam(&models.Team{ID: teamID, Abbreviation: "AUR", Name: "Comets", City: "Aurora"}); err != nil {
		t.Fatalf("add team: %v", err)
	}
	return f, teamID
}

func TestAdvanceSeasonAccrual(t *testing.T) {
	f, teamID := newLeague(t)

	tests := []struct {
		name     string
		status   models.RosterStatus
		wantDays int
	}{
		{"active player accrues a full year", models.StatusMLBActive, servicetime.DaysPerServiceYear},
		{"10-day IL accrues", models.StatusMLBIL10, servicetime.DaysPerServiceYear},
		{"60-day IL accrues", models.StatusMLBIL60, servicetime.DaysPerServiceYear},
		{"AAA does not accrue", models.StatusMinorsAAA, 0},
		{"rookie ball does not accrue", models.StatusMinorsRookie, 0},
		{"DFA does not accrue", models.StatusDFA, 0},
	}

	var players []*models.Player
	for _, tt := range tests {
		p := &models.Player{
			ID:                     uuid.New(),
			Name:                   tt.name,
			RosterStatus:           tt.status,
			TeamID:                 &teamID,
			ContractYearsRemaining: 3,
		}
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("add player: %v", err)
		}
		players = append(players, p)
	}

	clock := servicetime.NewClock(roster.NewApp(f))
	if converted := clock.AdvanceSeason(f); len(converted) != 0 {
		t.Fatalf("AdvanceSeason converted %d players, want 0", len(converted))
	}

	for i, tt := range tests {
		if got := players[i].ServiceTimeDays; got != tt.wantDays {
			t.Errorf("%s: service days = %d, want %d", tt.name, got, tt.wantDays)
		}
		if got := players[i].ContractYearsRemaining; got != 2 {
			t.Errorf("%s: contract years = %d, want 2", tt.name, got)
		}
	}
}

func TestAdvanceSeasonConversion(t *testing.T) {
	f, teamID := newLeague(t)

	// One season from six full years, on an expiring contract.
	expiring := &models.Player{
		ID:                     uuid.New(),
		Name:                   "Expiring Veteran",
		RosterStatus:           models.StatusMLBActive,
		TeamID:                 &teamID,
		IsOn40Man:              true,
		ServiceTimeDays:        5 * servicetime.DaysPerServiceYear,
		ContractYearsRemaining: 1,
	}
	// Same service time but under contract for two more years.
	underContract := &models.Player{
		ID:                     uuid.New(),
		Name:                   "Signed Veteran",
		RosterStatus:           models.StatusMLBActive,
		TeamID:                 &teamID,
		IsOn40Man:              true,
		ServiceTimeDays:        5 * servicetime.DaysPerServiceYear,
		ContractYearsRemaining: 2,
	}
	// Contract expires without the service time to walk.
	young := &models.Player{
		ID:                     uuid.New(),
		Name:                   "Expiring Rookie",
		RosterStatus:           models.StatusMLBActive,
		TeamID:                 &teamID,
		IsOn40Man:              true,
		ServiceTimeDays:        servicetime.DaysPerServiceYear,
		ContractYearsRemaining: 1,
	}
	for _, p := range []*models.Player{expiring, underContract, young} {
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("add player: %v", err)
		}
	}

	clock := servicetime.NewClock(roster.NewApp(f))
	converted := clock.AdvanceSeason(f)

	if len(converted) != 1 || converted[0] != expiring {
		t.Fatalf("AdvanceSeason converted %d players, want just the expiring veteran", len(converted))
	}
	if expiring.RosterStatus != models.StatusFreeAgent {
		t.Errorf("expiring veteran status = %s, want FREE_AGENT", expiring.RosterStatus)
	}
	if expiring.TeamID != nil || expiring.IsOn40Man {
		t.Error("conversion must sever team control and the 40-man spot")
	}
	if underContract.RosterStatus != models.StatusMLBActive {
		t.Errorf("signed veteran status = %s, want MLB_ACTIVE", underContract.RosterStatus)
	}
	if !underContract.FreeAgentEligible {
		t.Error("signed veteran should be flagged free-agent eligible at six years")
	}
	if young.RosterStatus != models.StatusMLBActive {
		t.Errorf("rookie without service time converted, status = %s", young.RosterStatus)
	}
}

func TestAdvanceSeasonSkipsTerminalStatuses(t *testing.T) {
	f, _ := newLeague(t)

	fa := &models.Player{
		ID:                uuid.New(),
		Name:              "Unsigned",
		RosterStatus:      models.StatusFreeAgent,
		FreeAgentEligible: true,
	}
	retired := &models.Player{
		ID:              uuid.New(),
		Name:            "Done",
		RosterStatus:    models.StatusRetired,
		ServiceTimeDays: 9 * servicetime.DaysPerServiceYear,
	}
	for _, p := range []*models.Player{fa, retired} {
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("add player: %v", err)
		}
	}

	clock := servicetime.NewClock(roster.NewApp(f))
	if converted := clock.AdvanceSeason(f); len(converted) != 0 {
		t.Fatalf("AdvanceSeason converted %d players, want 0", len(converted))
	}
	if fa.ServiceTimeDays != 0 {
		t.Error("free agents must not accrue service time")
	}
	if retired.RosterStatus != models.StatusRetired {
		t.Error("retired players must stay retired")
	}
}
