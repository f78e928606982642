package franchise

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/franchise/go/internal/models"
)

// Repository persists full league snapshots to Postgres. Every player and
// team field round-trips losslessly; enum variants are stored by name so a
// snapshot written today survives future variant reordering.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a snapshot repository over a pgx pool
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveSnapshot upserts the entire aggregate inside one transaction
func (r *Repository) SaveSnapshot(ctx context.Context, f *Franchise) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range f.Teams() {
		_, err := tx.Exec(ctx, `
			INSERT INTO teams (id, abbreviation, name, city, budget, human_owned)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				abbreviation = EXCLUDED.abbreviation,
				name = EXCLUDED.name,
				city = EXCLUDED.city,
				budget = EXCLUDED.budget,
				human_owned = EXCLUDED.human_owned
		`, t.ID, t.Abbreviation, t.Name, t.City, t.Budget, t.HumanOwned)
		if err != nil {
			return fmt.Errorf("upsert team %s: %w", t.Abbreviation, err)
		}
	}

	for _, p := range f.Players() {
		_, err := tx.Exec(ctx, `
			INSERT INTO players (
				id, name, position, is_pitcher, bats, throws,
				overall, potential, age,
				roster_status, team_id, is_on_40_man, option_years_remaining,
				service_time_days, contract_years_remaining, salary, free_agent_eligible
			) VALUES (
				$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
			)
			ON CONFLICT (id) DO UPDATE SET
				roster_status = EXCLUDED.roster_status,
				team_id = EXCLUDED.team_id,
				is_on_40_man = EXCLUDED.is_on_40_man,
				option_years_remaining = EXCLUDED.option_years_remaining,
				service_time_days = EXCLUDED.service_time_days,
				contract_years_remaining = EXCLUDED.contract_years_remaining,
				salary = EXCLUDED.salary,
				free_agent_eligible = EXCLUDED.free_agent_eligible,
				overall = EXCLUDED.overall,
				potential = EXCLUDED.potential,
				age = EXCLUDED.age
		`,
			p.ID, p.Name, string(p.Position), p.IsPitcher, string(p.Bats), string(p.Throws),
			p.Overall, p.Potential, p.Age,
			string(p.RosterStatus), p.TeamID, p.IsOn40Man, p.OptionYearsRemaining,
			p.ServiceTimeDays, p.ContractYearsRemaining, p.Salary, p.FreeAgentEligible,
		)
		if err != nil {
			return fmt.Errorf("upsert player %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// LoadSnapshot reads the full aggregate back. Teams and players come out in
// creation order so a reloaded league allocates identically to the original.
func (r *Repository) LoadSnapshot(ctx context.Context) (*Franchise, error) {
	f := New()

	teamRows, err := r.pool.Query(ctx, `
		SELECT id, abbreviation, name, city, budget, human_owned
		FROM teams ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	teams, err := pgx.CollectRows(teamRows, func(row pgx.CollectableRow) (*models.Team, error) {
		var t models.Team
		err := row.Scan(&t.ID, &t.Abbreviation, &t.Name, &t.City, &t.Budget, &t.HumanOwned)
		return &t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan teams: %w", err)
	}
	for _, t := range teams {
		if err := f.AddTeam(t); err != nil {
			return nil, fmt.Errorf("register team: %w", err)
		}
	}

	playerRows, err := r.pool.Query(ctx, `
		SELECT id, name, position, is_pitcher, bats, throws,
			overall, potential, age,
			roster_status, team_id, is_on_40_man, option_years_remaining,
			service_time_days, contract_years_remaining, salary, free_agent_eligible
		FROM players ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	players, err := pgx.CollectRows(playerRows, func(row pgx.CollectableRow) (*models.Player, error) {
		var (
			p                      models.Player
			position, bats, throws string
			status                 string
		)
		err := row.Scan(
			&p.ID, &p.Name, &position, &p.IsPitcher, &bats, &throws,
			&p.Overall, &p.Potential, &p.Age,
			&status, &p.TeamID, &p.IsOn40Man, &p.OptionYearsRemaining,
			&p.ServiceTimeDays, &p.ContractYearsRemaining, &p.Salary, &p.FreeAgentEligible,
		)
		p.Position = models.Position(position)
		p.Bats = models.Handedness(bats)
		p.Throws = models.Handedness(throws)
		p.RosterStatus = models.RosterStatus(status)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan players: %w", err)
	}
	for _, p := range players {
		if err := f.AddPlayer(p); err != nil {
			return nil, fmt.Errorf("register player: %w", err)
		}
	}

	return f, nil
}
