// Package valuation prices players and offers. Everything here is pure
// computation: the same inputs always produce the same projection or
// probability, which is what lets the allocator and the negotiation UI share
// one substrate.
package valuation

import (
	"math"

	"github.com/mcdev12/franchise/go/internal/servicetime"
)

const (
	salaryRounding      = 100_000
	leagueMinimumSalary = 700_000

	ratingScaleAnchor = 400.0 // overall that earns exactly the band base

	maxContractYears = 6
	youngAgeCutoff   = 25
	oneYearDealAge   = 37
)

// salaryBand maps an overall-rating floor to a base annual salary
type salaryBand struct {
	minOverall int
	base       int64
}

// Bands walk down from elite to replacement level; first match wins.
var salaryBands = []salaryBand{
	{450, 30_000_000},
	{400, 22_000_000},
	{350, 14_000_000},
	{300, 8_000_000},
	{250, 3_000_000},
	{0, 1_000_000},
}

// ProjectSalary maps a player's overall rating and age to a projected annual
// salary. Base is a step function of overall, scaled linearly by
// overall/400, discounted for age, floored at the league minimum, and
// rounded to the nearest 100k.
func ProjectSalary(overall, age int) int64 {
	if overall < 0 {
		overall = 0
	}

	var base int64
	for _, band := range salaryBands {
		if overall >= band.minOverall {
			base = band.base
			break
		}
	}

	salary := float64(base) * float64(overall) / ratingScaleAnchor

	switch {
	case age >= 37:
		salary *= 0.4
	case age >= 35:
		salary *= 0.6
	case age >= 33:
		salary *= 0.8
	}

	if salary < leagueMinimumSalary {
		salary = leagueMinimumSalary
	}
	return roundToSalaryUnit(salary)
}

// ProjectYears maps overall rating and age to a projected contract length in
// years. Always in [1, 6]: elite young players top out at six, players 30+
// are capped between one and three, and anyone 37 or older gets one year.
func ProjectYears(overall, age int) int {
	if age >= oneYearDealAge {
		return 1
	}

	var years int
	switch {
	case overall >= 500:
		years = 6
	case overall >= 450:
		years = 5
	case overall >= 400:
		years = 4
	case overall >= 350:
		years = 3
	case overall >= 300:
		years = 2
	default:
		years = 1
	}

	if age <= youngAgeCutoff {
		years++
	}

	cap := maxContractYears
	switch {
	case age >= 35:
		cap = 1
	case age >= 33:
		cap = 2
	case age >= 30:
		cap = 3
	}
	if years > cap {
		years = cap
	}
	if years < 1 {
		years = 1
	}
	return years
}

// AcceptanceProbability computes the chance, on a 0-100 scale, that a player
// accepts a concrete free-agent offer against his projected market value.
// marketHeat is in [0, 1]; hot markets punish underpayment by up to 15
// points, and generous term length earns up to 5. The result is clamped to
// [5, 98]: no offer is a lock and none is hopeless.
func AcceptanceProbability(offeredSalary int64, offeredYears int, projectedSalary int64, projectedYears int, marketHeat float64) float64 {
	salaryRatio := ratio(offeredSalary, projectedSalary)
	yearsRatio := ratio(int64(offeredYears), int64(projectedYears))

	prob := baseProbability(salaryRatio, yearsRatio)

	if marketHeat > 0 && salaryRatio < 1.0 {
		prob -= 15 * clamp01(marketHeat)
	}
	if yearsRatio > 1.0 {
		bonus := (yearsRatio - 1.0) * 10
		if bonus > 5 {
			bonus = 5
		}
		prob += bonus
	}

	return clampProbability(prob)
}

// ExtensionProbability reuses the offer tiers for in-contract extensions,
// keyed off the player's service tier instead of market heat. Players a
// winter away from the open market demand a premium; pre-arbitration players
// have no leverage to hold out.
func ExtensionProbability(offeredSalary int64, offeredYears int, projectedSalary int64, projectedYears int, tier servicetime.Tier) float64 {
	salaryRatio := ratio(offeredSalary, projectedSalary)
	yearsRatio := ratio(int64(offeredYears), int64(projectedYears))

	prob := baseProbability(salaryRatio, yearsRatio)

	switch tier {
	case servicetime.TierPreArbitration:
		prob += 10
	case servicetime.TierFreeAgency:
		prob -= 10
	}
	if yearsRatio > 1.0 {
		bonus := (yearsRatio - 1.0) * 10
		if bonus > 5 {
			bonus = 5
		}
		prob += bonus
	}

	return clampProbability(prob)
}

// CounterOffer is the single deterministic fallback a player proposes after
// rejecting an extension or free-agent offer: projected term at a five
// percent premium over projected salary.
func CounterOffer(overall, age int) (years int, annualSalary int64) {
	years = ProjectYears(overall, age)
	annualSalary = roundToSalaryUnit(float64(ProjectSalary(overall, age)) * 1.05)
	return years, annualSalary
}

// baseProbability tiers acceptance by how the offer stacks up against the
// projection on both salary and term
func baseProbability(salaryRatio, yearsRatio float64) float64 {
	switch {
	case salaryRatio >= 1.05 && yearsRatio >= 1.0:
		return 95
	case salaryRatio >= 1.0 && yearsRatio >= 1.0:
		return 85
	case salaryRatio >= 0.9 && yearsRatio >= 0.8:
		return 70
	case salaryRatio >= 0.8:
		return 55
	case salaryRatio >= 0.7:
		return 40
	default:
		floor := salaryRatio * 50
		if floor < 10 {
			floor = 10
		}
		return floor
	}
}

func ratio(offered, projected int64) float64 {
	if projected <= 0 {
		projected = 1
	}
	return float64(offered) / float64(projected)
}

func roundToSalaryUnit(salary float64) int64 {
	return int64(math.Round(salary/salaryRounding)) * salaryRounding
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampProbability(p float64) float64 {
	if p < 5 {
		return 5
	}
	if p > 98 {
		return 98
	}
	return p
}
