package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/franchise/go/internal/dbconfig"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/mcdev12/franchise/go/internal/franchise"
	"github.com/mcdev12/franchise/go/internal/freeagency"
	"github.com/mcdev12/franchise/go/internal/gateway"
	"github.com/mcdev12/franchise/go/internal/outbox"
	"github.com/mcdev12/franchise/go/internal/roster"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if getEnv("LOG_LEVEL", "info") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "league.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbCfg := dbconfig.NewConfigFromEnv()

	pool, err := setupPool(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect pgx pool")
	}
	defer pool.Close()

	db, err := setupDatabase(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	repo := franchise.NewRepository(pool)
	league, err := repo.LoadSnapshot(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load league snapshot")
	}
	log.Info().
		Int("teams", league.TeamCount()).
		Int("players", league.PlayerCount()).
		Msg("loaded league snapshot")

	humanTeamID, err := findHumanTeam(league, cfg.League.HumanTeam)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve human team")
	}

	// Roster mutations publish through the durable outbox; the worker
	// forwards to JetStream.
	store := outbox.NewStore(db)
	rosterApp := roster.NewApp(league)
	market := freeagency.NewMarket(
		rosterApp,
		clockwork.NewRealClock(),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		store,
	)

	jsCfg := events.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATS.URL
	jsCfg.SubjectPrefix = cfg.NATS.SubjectPrefix
	publisher, err := events.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create JetStream publisher")
	}
	defer publisher.Close()

	worker := outbox.NewWorker(db, publisher, outbox.DefaultConfig(), slog.Default())
	if err := worker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start outbox worker")
	}
	defer func() {
		if err := worker.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop outbox worker")
		}
	}()

	feed := gateway.NewFeed(gateway.DefaultConnectionConfig())
	go feed.Start(ctx)

	consumer, err := gateway.NewEventConsumer(cfg.NATS.URL, cfg.NATS.SubjectPrefix, feed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create feed consumer")
	}
	defer consumer.Close()
	if err := consumer.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start feed consumer")
	}

	server := setupServer(
		gateway.NewHandler(feed),
		offseasonHandler(ctx, market, repo, league, humanTeamID, cfg.League.Season),
	)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("league server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// offseasonHandler advances the league one offseason per POST. The season
// parameter defaults to the configured season; repeating a season is
// rejected by the market's boundary guard.
func offseasonHandler(ctx context.Context, market *freeagency.Market, repo *franchise.Repository, league *franchise.Franchise, humanTeamID uuid.UUID, defaultSeason int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		season := defaultSeason
		if s := r.URL.Query().Get("season"); s != "" {
			parsed, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid season", http.StatusBadRequest)
				return
			}
			season = parsed
		}

		summary, err := market.RunOffseason(r.Context(), season, humanTeamID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		if err := repo.SaveSnapshot(ctx, league); err != nil {
			log.Error().Err(err).Msg("failed to persist snapshot after offseason")
			http.Error(w, "offseason ran but snapshot save failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			log.Error().Err(err).Msg("failed to encode offseason summary")
		}
	}
}

func findHumanTeam(league *franchise.Franchise, abbrev string) (uuid.UUID, error) {
	for _, t := range league.Teams() {
		if t.Abbreviation == abbrev || (abbrev == "" && t.HumanOwned) {
			return t.ID, nil
		}
	}
	return uuid.Nil, &teamNotFoundError{abbrev: abbrev}
}

type teamNotFoundError struct {
	abbrev string
}

func (e *teamNotFoundError) Error() string {
	return "no team matches human_team config " + strconv.Quote(e.abbrev)
}
