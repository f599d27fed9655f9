package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	classroom "classtrack/contexts/academics/classroom-service"
	classroompostgres "classtrack/contexts/academics/classroom-service/adapters/postgres"
	identity "classtrack/contexts/identity-access/identity-service"
	"classtrack/contexts/identity-access/identity-service/adapters/credentials"
	identitypostgres "classtrack/contexts/identity-access/identity-service/adapters/postgres"
	"classtrack/contexts/identity-access/identity-service/application/commands"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	"classtrack/contexts/identity-access/identity-service/ports"
	"classtrack/internal/platform/config"
	"classtrack/internal/platform/db"
	"classtrack/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

// MigrateApp ensures the schema and seed accounts, then exits.
type MigrateApp struct {
	postgres  *db.Postgres
	identity  *identitypostgres.Repository
	classroom *classroompostgres.Repository
	seeder    commands.SeedAccountsUseCase
	logger    *slog.Logger
}

type modules struct {
	identity  identity.Module
	classroom classroom.Module
	postgres  *db.Postgres

	identityRepo  *identitypostgres.Repository
	classroomRepo *classroompostgres.Repository
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "api")

	built, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}
	if built.postgres != nil {
		if err := migrate(ctx, built.identityRepo, built.classroomRepo); err != nil {
			_ = built.postgres.Close()
			return nil, err
		}
	}
	if _, err := built.identity.Seeder.Execute(ctx); err != nil {
		_ = built.postgres.Close()
		return nil, fmt.Errorf("seed accounts: %w", err)
	}

	server := httpserver.New(built.identity, built.classroom, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: built.postgres,
		logger:   logger,
	}, nil
}

func BuildMigrate() (*MigrateApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return nil, errors.New("migrate requires STORE_DRIVER=postgres")
	}
	logger := newLogger(cfg, "migrate")

	built, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &MigrateApp{
		postgres:  built.postgres,
		identity:  built.identityRepo,
		classroom: built.classroomRepo,
		seeder:    built.identity.Seeder,
		logger:    logger,
	}, nil
}

func buildModules(cfg config.Config, logger *slog.Logger) (modules, error) {
	hasher, err := passwordHasher(cfg.PasswordHasher)
	if err != nil {
		return modules{}, err
	}
	seed := seedAccounts(cfg, logger)

	if cfg.StoreDriver == config.StoreDriverMemory {
		identityModule, err := identity.NewInMemoryModule(cfg.JWTSecret, seed, logger)
		if err != nil {
			return modules{}, err
		}
		classroomModule := classroom.NewInMemoryModule(identityModule.Directory, logger)
		return modules{
			identity:  identityModule.WithUserReferences(classroomModule.Usage).WithPublicAdminSignup(cfg.PublicAdminSignup),
			classroom: classroomModule,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN, db.Options{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return modules{}, err
	}
	tokens, err := credentials.NewJWTIssuer(cfg.JWTSecret)
	if err != nil {
		_ = pg.Close()
		return modules{}, err
	}

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identityModule := identity.NewModule(identity.Dependencies{
		Users:        identityRepo,
		Hasher:       hasher,
		Tokens:       tokens,
		Clock:        identitypostgres.SystemClock{},
		TokenTTL:     cfg.AccessTokenTTL,
		SeedAccounts: seed,
		Logger:       logger,
	})

	classroomRepo := classroompostgres.NewRepository(pg.DB, logger)
	classroomModule := classroom.NewModule(classroom.Dependencies{
		Classes:     classroomRepo,
		Enrollments: classroomRepo,
		Assignments: classroomRepo,
		Submissions: classroomRepo,
		References:  classroomRepo,
		Members:     identityModule.Directory,
		Clock:       classroompostgres.SystemClock{},
		Logger:      logger,
	})

	return modules{
		identity:      identityModule.WithUserReferences(classroomModule.Usage).WithPublicAdminSignup(cfg.PublicAdminSignup),
		classroom:     classroomModule,
		postgres:      pg,
		identityRepo:  identityRepo,
		classroomRepo: classroomRepo,
	}, nil
}

// migrate runs identity first: classroom tables reference users.
func migrate(ctx context.Context, identityRepo *identitypostgres.Repository, classroomRepo *classroompostgres.Repository) error {
	if err := identityRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate identity schema: %w", err)
	}
	if err := classroomRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate classroom schema: %w", err)
	}
	return nil
}

func passwordHasher(name string) (ports.PasswordHasher, error) {
	switch name {
	case config.HasherSHA256:
		return credentials.SHA256Hasher{}, nil
	case config.HasherBcrypt:
		return credentials.BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", name)
	}
}

func seedAccounts(cfg config.Config, logger *slog.Logger) []commands.SeedAccount {
	if !cfg.SeedAccountsEnabled {
		return nil
	}
	if cfg.SeedPassword == "" {
		logger.Warn("seed accounts skipped",
			"event", "bootstrap_seed_skipped",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"reason", "SEED_PASSWORD is empty",
		)
		return nil
	}
	return []commands.SeedAccount{
		{Username: cfg.SeedAdminUsername, Password: cfg.SeedPassword, Role: entities.RoleAdmin},
		{Username: cfg.SeedStudentUsername, Password: cfg.SeedPassword, Role: entities.RoleStudent},
	}
}

func newLogger(cfg config.Config, process string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler).With("service", cfg.ServiceName, "process", process)
	slog.SetDefault(logger)
	return logger
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	errs := make(chan error, 1)
	go func() {
		errs <- a.server.Start()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errs
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (m *MigrateApp) Run(ctx context.Context) error {
	if err := migrate(ctx, m.identity, m.classroom); err != nil {
		return err
	}
	result, err := m.seeder.Execute(ctx)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	m.logger.Info("migration finished",
		"event", "bootstrap_migrate_finished",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"seeded", len(result.Created),
		"skipped", len(result.Skipped),
	)
	return nil
}

func (m *MigrateApp) Close() error {
	if m.postgres != nil {
		return m.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
