package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/sqlutil"
)

// Config tunes the outbox polling loop
type Config struct {
	PollInterval time.Duration
	BatchSize    int32
	MaxRetries   int
	RetryDelay   time.Duration
}

// DefaultConfig returns the stock polling settings
func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		BatchSize:    100,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}
}

// Worker drains the transaction outbox to the event stream. Events are
// fetched under row locks, published with retry, and only then marked sent,
// so a crash mid-batch re-delivers rather than drops.
type Worker struct {
	db        *sql.DB
	store     *Store
	publisher events.Publisher
	config    Config
	logger    *slog.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewWorker creates an outbox worker publishing through the given publisher
func NewWorker(db *sql.DB, publisher events.Publisher, cfg Config, logger *slog.Logger) *Worker {
	return &Worker{
		db:        db,
		store:     NewStore(db),
		publisher: publisher,
		config:    cfg,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the polling loop
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("outbox worker started",
		slog.Duration("poll_interval", w.config.PollInterval),
		slog.Int("batch_size", int(w.config.BatchSize)))

	return nil
}

// Stop shuts the polling loop down and waits for the in-flight batch
func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	w.logger.Info("outbox worker stopped")
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on start
	w.processOutbox(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.processOutbox(ctx)
		}
	}
}

func (w *Worker) processOutbox(ctx context.Context) {
	var total, successful int

	err := sqlutil.Run(ctx, w.db, func(tx *sql.Tx) error {
		rows, err := w.store.fetchUnsent(ctx, tx, w.config.BatchSize)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		total = len(rows)

		w.logger.Debug("processing outbox events", slog.Int("count", len(rows)))

		var successfulIDs []uuid.UUID
		for _, row := range rows {
			event := events.TransactionEvent{
				ID:        row.ID,
				Season:    row.Season,
				Type:      events.EventType(row.EventType),
				PlayerID:  row.PlayerID,
				TeamID:    row.TeamID,
				Payload:   json.RawMessage(row.Payload),
				CreatedAt: row.CreatedAt,
			}

			if err := w.publishWithRetry(ctx, event); err != nil {
				w.logger.Error("failed to publish event",
					slog.String("event_id", row.ID.String()),
					slog.String("event_type", row.EventType),
					slog.String("error", err.Error()))
				continue
			}

			successfulIDs = append(successfulIDs, row.ID)
		}
		successful = len(successfulIDs)

		if len(successfulIDs) > 0 {
			return w.store.markSent(ctx, tx, successfulIDs)
		}
		return nil
	})
	if err != nil {
		w.logger.Error("failed to process outbox batch", slog.String("error", err.Error()))
		return
	}

	if total > 0 {
		w.logger.Info("processed outbox events",
			slog.Int("total", total),
			slog.Int("successful", successful))
	}
}

func (w *Worker) publishWithRetry(ctx context.Context, event events.TransactionEvent) error {
	var lastErr error

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.config.RetryDelay * time.Duration(attempt)):
			}
		}

		if err := w.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			w.logger.Warn("failed to publish event, retrying",
				slog.String("event_id", event.ID.String()),
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			continue
		}

		return nil
	}

	return fmt.Errorf("failed after %d attempts: %w", w.config.MaxRetries+1, lastErr)
}
