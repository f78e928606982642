package models

import (
	"github.com/google/uuid"
)

// Player represents a single player record owned by the franchise simulation.
// There is exactly one live record per player; retirement is a terminal
// status, never a deletion.
type Player struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Position  Position   `json:"position"`
	IsPitcher bool       `json:"is_pitcher"`
	Bats      Handedness `json:"bats"`
	Throws    Handedness `json:"throws"`

	// Ratings are on the internal 0-550 scale; UIs rescale to 20-80.
	Overall   int `json:"overall"`
	Potential int `json:"potential"`
	Age       int `json:"age"`

	RosterStatus           RosterStatus `json:"roster_status"`
	TeamID                 *uuid.UUID   `json:"team_id,omitempty"` // nil = unassigned
	IsOn40Man              bool         `json:"is_on_40_man"`
	OptionYearsRemaining   int          `json:"option_years_remaining"`
	ServiceTimeDays        int          `json:"service_time_days"`
	ContractYearsRemaining int          `json:"contract_years_remaining"`
	Salary                 int64        `json:"salary"` // annual, whole currency units
	FreeAgentEligible      bool         `json:"free_agent_eligible"`
}

// Position represents a player's primary defensive position
type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
	PositionDH          Position = "DH"
)

// Handedness represents which side a player bats or throws from
type Handedness string

const (
	HandednessLeft   Handedness = "L"
	HandednessRight  Handedness = "R"
	HandednessSwitch Handedness = "S"
)

// RosterStatus represents the player's place in the roster lifecycle.
// Serialized by name, never by ordinal.
type RosterStatus string

const (
	StatusMLBActive    RosterStatus = "MLB_ACTIVE"
	StatusMLBIL10      RosterStatus = "MLB_IL_10"
	StatusMLBIL60      RosterStatus = "MLB_IL_60"
	StatusMinorsAAA    RosterStatus = "MINORS_AAA"
	StatusMinorsAA     RosterStatus = "MINORS_AA"
	StatusMinorsAPlus  RosterStatus = "MINORS_A_PLUS"
	StatusMinorsAMinus RosterStatus = "MINORS_A_MINUS"
	StatusMinorsRookie RosterStatus = "MINORS_ROOKIE"
	StatusMinorsIntl   RosterStatus = "MINORS_INTL"
	StatusDFA          RosterStatus = "DFA"
	StatusFreeAgent    RosterStatus = "FREE_AGENT"
	StatusRetired      RosterStatus = "RETIRED"
)

// minorLevelRank orders the minor-league ladder from the bottom up. Statuses
// outside the minors are absent.
var minorLevelRank = map[RosterStatus]int{
	StatusMinorsIntl:   1,
	StatusMinorsRookie: 1,
	StatusMinorsAMinus: 2,
	StatusMinorsAPlus:  3,
	StatusMinorsAA:     4,
	StatusMinorsAAA:    5,
}

// IsMinors reports whether the status is a minor-league level
func (s RosterStatus) IsMinors() bool {
	_, ok := minorLevelRank[s]
	return ok
}

// MinorLevel returns the ladder rank of a minors status, 0 otherwise
func (s RosterStatus) MinorLevel() int {
	return minorLevelRank[s]
}

// IsInjuredList reports whether the status is an injured-list assignment
func (s RosterStatus) IsInjuredList() bool {
	return s == StatusMLBIL10 || s == StatusMLBIL60
}

// IsValid reports whether the status is one of the closed set of variants
func (s RosterStatus) IsValid() bool {
	switch s {
	case StatusMLBActive, StatusMLBIL10, StatusMLBIL60,
		StatusMinorsAAA, StatusMinorsAA, StatusMinorsAPlus,
		StatusMinorsAMinus, StatusMinorsRookie, StatusMinorsIntl,
		StatusDFA, StatusFreeAgent, StatusRetired:
		return true
	}
	return false
}

// OnMajorLeagueRoster reports whether the player occupies a major-league
// roster spot (active or injured list) for service-time purposes
func (p *Player) OnMajorLeagueRoster() bool {
	return p.RosterStatus == StatusMLBActive || p.RosterStatus.IsInjuredList()
}
