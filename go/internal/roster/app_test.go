package roster

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestLeague(t *testing.T) (*franchise.Franchise, *models.Team) {
	t.Helper()
	f := franchise.New()
	team := &models.Team{
		ID:           uuid.New(),
		Abbreviation: "AUR",
		Name:         "Comets",
		City:         "Aurora",
	}
	if err := f.AddTeam(team); err != nil {
		t.Fatalf("add team: %v", err)
	}
	return f, team
}

func addPlayer(t *testing.T, f *franchise.Franchise, teamID *uuid.UUID, status models.RosterStatus, on40 bool, options int) *models.Player {
	t.Helper()
	p := &models.Player{
		ID:                   uuid.New(),
		Name:                 fmt.Sprintf("Player %s", uuid.NewString()[:8]),
		Position:             models.PositionShortstop,
		Bats:                 models.HandednessRight,
		Throws:               models.HandednessRight,
		Overall:              350,
		Potential:            400,
		Age:                  26,
		RosterStatus:         status,
		TeamID:               teamID,
		IsOn40Man:            on40,
		OptionYearsRemaining: options,
	}
	if err := f.AddPlayer(p); err != nil {
		t.Fatalf("add player: %v", err)
	}
	return p
}

// fillRoster adds active-roster players and 40-man AAA depth until the team
// sits at exactly the requested counts.
func fillRoster(t *testing.T, f *franchise.Franchise, teamID uuid.UUID, active, fortyMan int) {
	t.Helper()
	for i := 0; i < active; i++ {
		addPlayer(t, f, &teamID, models.StatusMLBActive, true, 3)
	}
	for i := active; i < fortyMan; i++ {
		addPlayer(t, f, &teamID, models.StatusMinorsAAA, true, 3)
	}
}

func TestPromote(t *testing.T) {
	Convey("Given a roster state machine", t, func() {
		f, team := newTestLeague(t)
		app := NewApp(f)

		Convey("A minors player moves up the ladder", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAA, false, 3)
			So(app.Promote(p, models.StatusMinorsAAA), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMinorsAAA)
		})

		Convey("A minors player cannot be promoted down or sideways", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAA, false, 3)
			err := app.Promote(p, models.StatusMinorsAPlus)
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
			So(p.RosterStatus, ShouldEqual, models.StatusMinorsAA)
		})

		Convey("Promotion to the active roster joins the 40-man", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, false, 3)
			So(app.Promote(p, models.StatusMLBActive), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMLBActive)
			So(p.IsOn40Man, ShouldBeTrue)
		})

		Convey("Promotion is refused when the active roster is full", func() {
			fillRoster(t, f, team.ID, models.ActiveRosterLimit, models.ActiveRosterLimit)
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, true, 3)

			err := app.Promote(p, models.StatusMLBActive)
			var full *RosterFullError
			So(err, ShouldHaveSameTypeAs, full)
			So(err.(*RosterFullError).Roster, ShouldEqual, "active")
			So(p.RosterStatus, ShouldEqual, models.StatusMinorsAAA)
		})

		Convey("Promotion of a non-40-man player is refused when the 40-man is full", func() {
			fillRoster(t, f, team.ID, 20, models.FortyManLimit)
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, false, 3)

			err := app.Promote(p, models.StatusMLBActive)
			So(err, ShouldHaveSameTypeAs, &RosterFullError{})
			So(err.(*RosterFullError).Roster, ShouldEqual, "40-man")
			So(p.IsOn40Man, ShouldBeFalse)
		})

		Convey("A 40-man player still fits when the 40-man is full but the active roster is not", func() {
			fillRoster(t, f, team.ID, 20, models.FortyManLimit-1)
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, true, 3)

			So(app.Promote(p, models.StatusMLBActive), ShouldBeNil)
			counts := RecomputeRosterCounts(f, team.ID)
			So(counts.Active, ShouldBeLessThanOrEqualTo, models.ActiveRosterLimit)
			So(counts.FortyMan, ShouldBeLessThanOrEqualTo, models.FortyManLimit)
		})

		Convey("A DFA player can only resolve upward to the active roster", func() {
			p := addPlayer(t, f, &team.ID, models.StatusDFA, true, 3)
			err := app.Promote(p, models.StatusMinorsAAA)
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})

			So(app.Promote(p, models.StatusMLBActive), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMLBActive)
		})

		Convey("A free agent cannot be promoted", func() {
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)
			err := app.Promote(p, models.StatusMLBActive)
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
		})
	})
}

func TestDemote(t *testing.T) {
	Convey("Given a roster state machine", t, func() {
		f, team := newTestLeague(t)
		app := NewApp(f)

		Convey("Demotion from the active roster burns an option year", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 2)
			So(app.Demote(p, DemoteRequest{Target: models.StatusMinorsAAA}), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMinorsAAA)
			So(p.OptionYearsRemaining, ShouldEqual, 1)
			So(p.IsOn40Man, ShouldBeTrue)
		})

		Convey("Demotion between minors levels burns nothing", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, false, 2)
			So(app.Demote(p, DemoteRequest{Target: models.StatusMinorsAA}), ShouldBeNil)
			So(p.OptionYearsRemaining, ShouldEqual, 2)
		})

		Convey("Demotion with no options left is refused", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 0)
			err := app.Demote(p, DemoteRequest{Target: models.StatusMinorsAAA})
			So(err, ShouldHaveSameTypeAs, &NoOptionsRemainingError{})
			So(p.RosterStatus, ShouldEqual, models.StatusMLBActive)
		})

		Convey("An outright demotion skips the option check and clears the 40-man spot", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 0)
			So(app.Demote(p, DemoteRequest{Target: models.StatusMinorsAAA, Outright: true}), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMinorsAAA)
			So(p.IsOn40Man, ShouldBeFalse)
			So(p.OptionYearsRemaining, ShouldEqual, 0)
		})

		Convey("Demotion must move down the ladder", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAA, false, 3)
			err := app.Demote(p, DemoteRequest{Target: models.StatusMinorsAAA})
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
		})

		Convey("The target must be a minors level", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 3)
			err := app.Demote(p, DemoteRequest{Target: models.StatusFreeAgent})
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
		})
	})
}

func TestDesignateAndRelease(t *testing.T) {
	Convey("Given a roster state machine", t, func() {
		f, team := newTestLeague(t)
		app := NewApp(f)

		Convey("A DFA keeps the player's 40-man spot", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 3)
			So(app.DesignateForAssignment(p), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusDFA)
			So(p.IsOn40Man, ShouldBeTrue)
		})

		Convey("Injured-list players can be designated", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBIL60, true, 3)
			So(app.DesignateForAssignment(p), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusDFA)
		})

		Convey("Minors players cannot be designated", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMinorsAAA, false, 3)
			err := app.DesignateForAssignment(p)
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
		})

		Convey("Release severs team control and zeroes the contract", func() {
			p := addPlayer(t, f, &team.ID, models.StatusDFA, true, 3)
			p.ContractYearsRemaining = 3
			p.Salary = 8_000_000

			So(app.Release(p), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusFreeAgent)
			So(p.TeamID, ShouldBeNil)
			So(p.IsOn40Man, ShouldBeFalse)
			So(p.ContractYearsRemaining, ShouldEqual, 0)
			So(p.Salary, ShouldEqual, int64(8_000_000))
		})

		Convey("A free agent cannot be released again", func() {
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)
			err := app.Release(p)
			So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
		})
	})
}

func TestSign(t *testing.T) {
	Convey("Given a roster state machine", t, func() {
		f, team := newTestLeague(t)
		app := NewApp(f)

		Convey("Signing a free agent fills out the full contract state", func() {
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)
			p.FreeAgentEligible = true

			So(app.Sign(p, team.ID, 4, 12_000_000), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusMLBActive)
			So(*p.TeamID, ShouldEqual, team.ID)
			So(p.IsOn40Man, ShouldBeTrue)
			So(p.ContractYearsRemaining, ShouldEqual, 4)
			So(p.Salary, ShouldEqual, int64(12_000_000))
			So(p.FreeAgentEligible, ShouldBeFalse)
		})

		Convey("Only free agents can be signed", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 3)
			err := app.Sign(p, team.ID, 2, 1_000_000)
			So(err, ShouldHaveSameTypeAs, &NotFreeAgentError{})
		})

		Convey("Signing is refused when the active roster is full", func() {
			fillRoster(t, f, team.ID, models.ActiveRosterLimit, models.ActiveRosterLimit)
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)

			err := app.Sign(p, team.ID, 2, 1_000_000)
			So(err, ShouldHaveSameTypeAs, &RosterFullError{})
			So(err.(*RosterFullError).Roster, ShouldEqual, "active")
			So(p.RosterStatus, ShouldEqual, models.StatusFreeAgent)
			So(p.TeamID, ShouldBeNil)
		})

		Convey("Signing is refused when the 40-man is full", func() {
			fillRoster(t, f, team.ID, 25, models.FortyManLimit)
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)

			err := app.Sign(p, team.ID, 2, 1_000_000)
			So(err, ShouldHaveSameTypeAs, &RosterFullError{})
			So(err.(*RosterFullError).Roster, ShouldEqual, "40-man")
		})

		Convey("A 39-man roster has room for one more", func() {
			fillRoster(t, f, team.ID, 25, models.FortyManLimit-1)
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)

			So(app.Sign(p, team.ID, 2, 1_000_000), ShouldBeNil)
			counts := RecomputeRosterCounts(f, team.ID)
			So(counts.Active, ShouldEqual, 26)
			So(counts.FortyMan, ShouldEqual, models.FortyManLimit)
		})

		Convey("Contract terms are validated", func() {
			p := addPlayer(t, f, nil, models.StatusFreeAgent, false, 3)
			So(app.Sign(p, team.ID, 0, 1_000_000), ShouldNotBeNil)
			So(app.Sign(p, team.ID, 2, 0), ShouldNotBeNil)
			So(app.Sign(p, uuid.New(), 2, 1_000_000), ShouldNotBeNil)
		})
	})
}

func TestRetire(t *testing.T) {
	Convey("Given a roster state machine", t, func() {
		f, team := newTestLeague(t)
		app := NewApp(f)

		Convey("Retirement is terminal and clears roster state", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 3)
			p.ContractYearsRemaining = 2

			So(app.Retire(p), ShouldBeNil)
			So(p.RosterStatus, ShouldEqual, models.StatusRetired)
			So(p.IsOn40Man, ShouldBeFalse)
			So(p.ContractYearsRemaining, ShouldEqual, 0)

			Convey("And a retired player cannot retire twice", func() {
				err := app.Retire(p)
				So(err, ShouldHaveSameTypeAs, &IllegalTransitionError{})
			})
		})

		Convey("The record survives retirement", func() {
			p := addPlayer(t, f, &team.ID, models.StatusMLBActive, true, 3)
			So(app.Retire(p), ShouldBeNil)
			So(f.Player(p.ID), ShouldNotBeNil)
		})
	})
}
