package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/franchise/go/internal/dbconfig"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/models"
)

var teamNames = []struct {
	city, name, abbrev string
}{
	{"Aurora", "Comets", "AUR"},
	{"Bayport", "Mariners", "BAY"},
	{"Cascade", "Timbers", "CAS"},
	{"Dunmore", "Miners", "DUN"},
	{"Easton", "Colonels", "EAS"},
	{"Fairview", "Foxes", "FAI"},
	{"Galeton", "Gulls", "GAL"},
	{"Harborview", "Admirals", "HAR"},
	{"Ironwood", "Lumberjacks", "IRO"},
	{"Junction City", "Express", "JUN"},
	{"Kingsford", "Monarchs", "KIN"},
	{"Lakemont", "Loons", "LAK"},
	{"Marrow Falls", "Cascades", "MAR"},
	{"Northgate", "Stags", "NOR"},
	{"Oakhaven", "Acorns", "OAK"},
	{"Pinecrest", "Rangers", "PIN"},
	{"Quarrytown", "Masons", "QUA"},
	{"Redfield", "Cardinals", "RED"},
	{"Southport", "Sailors", "SOU"},
	{"Thornbury", "Thistles", "THO"},
	{"Umber Valley", "Badgers", "UMB"},
	{"Vandermere", "Voyagers", "VAN"},
	{"Westbrook", "Wolves", "WES"},
	{"Yorkfield", "Yellowjackets", "YOR"},
	{"Zephyr Hills", "Breeze", "ZEP"},
	{"Ashford", "Arrows", "ASH"},
	{"Briarwood", "Bears", "BRI"},
	{"Coral Point", "Rays", "COR"},
	{"Drybrook", "Scorpions", "DRY"},
	{"Elmshore", "Herons", "ELM"},
}

var firstNames = []string{
	"Aaron", "Ben", "Carlos", "Derek", "Eduardo", "Felix", "Gavin", "Hiro",
	"Ivan", "Jorge", "Kenji", "Luis", "Marcus", "Nate", "Omar", "Pedro",
	"Quinn", "Rafael", "Santiago", "Tyler", "Victor", "Wade", "Xavier", "Yusei",
}

var lastNames = []string{
	"Alvarez", "Bennett", "Castillo", "Dawson", "Estrada", "Fletcher",
	"Guerrero", "Hayashi", "Iglesias", "Jennings", "Kowalski", "Lindgren",
	"Morales", "Nakamura", "Ortega", "Pryor", "Quintana", "Reyes",
	"Sandoval", "Takahashi", "Urbina", "Vasquez", "Whitfield", "Yamamoto",
}

var fieldPositions = []models.Position{
	models.PositionCatcher, models.PositionFirstBase, models.PositionSecondBase,
	models.PositionThirdBase, models.PositionShortstop, models.PositionLeftField,
	models.PositionCenterField, models.PositionRightField, models.PositionDH,
}

func main() {
	seed := flag.Int64("seed", 1, "rng seed for the generated league")
	humanTeam := flag.String("human-team", "AUR", "abbreviation of the human-controlled team")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	ctx := context.Background()

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	league, err := generateLeague(rand.New(rand.NewSource(*seed)), *humanTeam)
	if err != nil {
		log.Fatalf("Failed to generate league: %v", err)
	}

	repo := franchise.NewRepository(pool)
	if err := repo.SaveSnapshot(ctx, league); err != nil {
		log.Fatalf("Failed to save league snapshot: %v", err)
	}

	log.Printf("Seeded %d teams and %d players", league.TeamCount(), league.PlayerCount())
}

// generateLeague builds a full 30-team league: 26 active players and 8
// further 40-man players per team, a minors pipeline below them, and a pool
// of unsigned free agents.
func generateLeague(rng *rand.Rand, humanAbbrev string) (*franchise.Franchise, error) {
	league := franchise.New()

	for _, tn := range teamNames {
		team := &models.Team{
			ID:           uuid.New(),
			Abbreviation: tn.abbrev,
			Name:         tn.name,
			City:         tn.city,
			Budget:       150_000_000 + rng.Int63n(100_000_000),
			HumanOwned:   tn.abbrev == humanAbbrev,
		}
		if err := league.AddTeam(team); err != nil {
			return nil, fmt.Errorf("failed to add team %s: %w", tn.abbrev, err)
		}

		if err := seedRoster(league, rng, team.ID); err != nil {
			return nil, fmt.Errorf("failed to seed roster for %s: %w", tn.abbrev, err)
		}
	}

	// Unsigned veterans waiting for the next free-agency cycle.
	for i := 0; i < 120; i++ {
		p := generatePlayer(rng, 250+rng.Intn(200), 27+rng.Intn(10))
		p.RosterStatus = models.StatusFreeAgent
		p.FreeAgentEligible = true
		if err := league.AddPlayer(p); err != nil {
			return nil, fmt.Errorf("failed to add free agent: %w", err)
		}
	}

	return league, nil
}

func seedRoster(league *franchise.Franchise, rng *rand.Rand, teamID uuid.UUID) error {
	add := func(p *models.Player, status models.RosterStatus, on40 bool) error {
		p.TeamID = &teamID
		p.RosterStatus = status
		p.IsOn40Man = on40
		p.ContractYearsRemaining = 1 + rng.Intn(5)
		p.Salary = contractSalary(p.Overall)
		p.ServiceTimeDays = serviceDaysFor(rng, status)
		return league.AddPlayer(p)
	}

	for i := 0; i < models.ActiveRosterLimit; i++ {
		p := generatePlayer(rng, 280+rng.Intn(200), 24+rng.Intn(12))
		if err := add(p, models.StatusMLBActive, true); err != nil {
			return err
		}
	}

	// 40-man depth stashed in AAA.
	for i := 0; i < 8; i++ {
		p := generatePlayer(rng, 250+rng.Intn(150), 22+rng.Intn(6))
		if err := add(p, models.StatusMinorsAAA, true); err != nil {
			return err
		}
	}

	minorLevels := []models.RosterStatus{
		models.StatusMinorsAAA, models.StatusMinorsAA, models.StatusMinorsAPlus,
		models.StatusMinorsAMinus, models.StatusMinorsRookie, models.StatusMinorsIntl,
	}
	for _, level := range minorLevels {
		for i := 0; i < 10; i++ {
			p := generatePlayer(rng, 150+rng.Intn(200), 17+rng.Intn(8))
			if err := add(p, level, false); err != nil {
				return err
			}
		}
	}

	return nil
}

func generatePlayer(rng *rand.Rand, overall, age int) *models.Player {
	isPitcher := rng.Intn(2) == 0

	pos := models.PositionPitcher
	if !isPitcher {
		pos = fieldPositions[rng.Intn(len(fieldPositions))]
	}

	bats := models.HandednessRight
	switch rng.Intn(10) {
	case 0, 1, 2:
		bats = models.HandednessLeft
	case 3:
		bats = models.HandednessSwitch
	}

	throws := models.HandednessRight
	if rng.Intn(4) == 0 {
		throws = models.HandednessLeft
	}

	potential := overall + rng.Intn(80)
	if potential > 550 {
		potential = 550
	}

	return &models.Player{
		ID:                   uuid.New(),
		Name:                 firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
		Position:             pos,
		IsPitcher:            isPitcher,
		Bats:                 bats,
		Throws:               throws,
		Overall:              overall,
		Potential:            potential,
		Age:                  age,
		OptionYearsRemaining: 3,
	}
}

func contractSalary(overall int) int64 {
	switch {
	case overall >= 400:
		return 18_000_000
	case overall >= 350:
		return 9_000_000
	case overall >= 300:
		return 4_000_000
	case overall >= 250:
		return 1_500_000
	default:
		return 700_000
	}
}

func serviceDaysFor(rng *rand.Rand, status models.RosterStatus) int {
	if status == models.StatusMLBActive {
		return rng.Intn(6 * 172)
	}
	return rng.Intn(172)
}
