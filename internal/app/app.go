package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-registry/internal/config"
	"github.com/riskibarqy/tournament-registry/internal/domain/registration"
	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registry/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-registry/internal/interfaces/httpapi"
	platformcache "github.com/riskibarqy/tournament-registry/internal/platform/cache"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
	"github.com/riskibarqy/tournament-registry/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the router into a ready
// server. The returned closer releases the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	tournamentRepo, registrationRepo, closeStorage, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		tournamentRepo = cacherepo.NewTournamentRepository(tournamentRepo, platformcache.NewStore(cfg.CacheTTL))
	}

	tournamentSvc := usecase.NewTournamentService(tournamentRepo)
	registrationSvc := usecase.NewRegistrationService(tournamentRepo, registrationRepo, logger)

	handler := httpapi.NewHandler(tournamentSvc, registrationSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeStorage()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeStorage, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (tournament.Repository, registration.Repository, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("storage selected", "kind", "memory", "reason", "DB_URL empty")
		return memory.NewTournamentRepository(), memory.NewRegistrationRepository(), func() error { return nil }, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("storage selected", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewTournamentRepository(db), postgres.NewRegistrationRepository(db), db.Close, nil
}
