package franchise_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
)

func TestAddPlayerValidation(t *testing.T) {
	f := franchise.New()

	tests := []struct {
		name    string
		player  *models.Player
		wantErr bool
	}{
		{
			"valid free agent",
			&models.Player{ID: uuid.New(), Name: "A", RosterStatus: models.StatusFreeAgent},
			false,
		},
		{
			"missing id",
			&models.Player{Name: "B", RosterStatus: models.StatusFreeAgent},
			true,
		},
		{
			"unknown roster status",
			&models.Player{ID: uuid.New(), Name: "C", RosterStatus: "BENCHED"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.AddPlayer(tt.player)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddPlayer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		p := &models.Player{ID: uuid.New(), Name: "D", RosterStatus: models.StatusMinorsAA}
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("first AddPlayer: %v", err)
		}
		if err := f.AddPlayer(p); err == nil {
			t.Error("second AddPlayer with same id should fail")
		}
	})
}

func TestInsertionOrder(t *testing.T) {
	f := franchise.New()

	var want []uuid.UUID
	for i := 0; i < 10; i++ {
		p := &models.Player{ID: uuid.New(), RosterStatus: models.StatusFreeAgent}
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("add player: %v", err)
		}
		want = append(want, p.ID)
	}

	got := f.Players()
	if len(got) != len(want) {
		t.Fatalf("Players() len = %d, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("Players()[%d] = %s, want %s", i, p.ID, want[i])
		}
	}

	fas := f.FreeAgents()
	for i, p := range fas {
		if p.ID != want[i] {
			t.Errorf("FreeAgents()[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestTeamPlayersFilters(t *testing.T) {
	f := franchise.New()
	teamA, teamB := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{teamA, teamB} {
		if err := f.AddTeam(&models.Team{ID: id, Abbreviation: id.String()[:3]}); err != nil {
			t.Fatalf("add team: %v", err)
		}
	}

	add := func(teamID *uuid.UUID, status models.RosterStatus) *models.Player {
		p := &models.Player{ID: uuid.New(), RosterStatus: status, TeamID: teamID}
		if err := f.AddPlayer(p); err != nil {
			t.Fatalf("add player: %v", err)
		}
		return p
	}

	a1 := add(&teamA, models.StatusMLBActive)
	add(&teamB, models.StatusMLBActive)
	a2 := add(&teamA, models.StatusMinorsAAA)
	add(nil, models.StatusFreeAgent)

	got := f.TeamPlayers(teamA)
	if len(got) != 2 {
		t.Fatalf("TeamPlayers(A) len = %d, want 2", len(got))
	}
	if got[0].ID != a1.ID || got[1].ID != a2.ID {
		t.Error("TeamPlayers(A) should return team A players in insertion order")
	}

	if n := len(f.FreeAgents()); n != 1 {
		t.Errorf("FreeAgents() len = %d, want 1", n)
	}
	if f.PlayerCount() != 4 || f.TeamCount() != 2 {
		t.Errorf("counts = (%d players, %d teams), want (4, 2)", f.PlayerCount(), f.TeamCount())
	}
}
