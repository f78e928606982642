package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// Store writes transaction events into the outbox table so publication can
// happen durably, after the roster mutation that produced them commits.
type Store struct {
	db *sql.DB
}

// NewStore creates an outbox store over a database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Publish implements events.Publisher by enqueueing the event for the
// worker; the broker round-trip happens asynchronously.
func (s *Store) Publish(ctx context.Context, event events.TransactionEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transaction_outbox (id, season, event_type, player_id, team_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		event.ID,
		event.Season,
		string(event.Type),
		sqlutil.ToNullUUID(event.PlayerID),
		sqlutil.ToNullUUID(event.TeamID),
		pqtype.NullRawMessage{RawMessage: event.Payload, Valid: len(event.Payload) > 0},
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue outbox event: %w", err)
	}
	return nil
}

// fetchUnsent locks and returns up to limit unpublished events
func (s *Store) fetchUnsent(ctx context.Context, tx *sql.Tx, limit int32) ([]Row, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, season, event_type, player_id, team_id, payload, created_at
		FROM transaction_outbox
		WHERE sent_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unsent events: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r        Row
			playerID uuid.NullUUID
			teamID   uuid.NullUUID
			payload  pqtype.NullRawMessage
		)
		if err := rows.Scan(&r.ID, &r.Season, &r.EventType, &playerID, &teamID, &payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		r.PlayerID = sqlutil.FromNullUUID(playerID)
		r.TeamID = sqlutil.FromNullUUID(teamID)
		if payload.Valid {
			r.Payload = payload.RawMessage
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// markSent stamps the given events as published
func (s *Store) markSent(ctx context.Context, tx *sql.Tx, ids []uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transaction_outbox SET sent_at = NOW() WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("mark events sent: %w", err)
	}
	return nil
}
