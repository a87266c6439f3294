package databasemigration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	clickhousepkg "github.com/opencatalog/searchsync/internal/pkg/clickhouse"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	postgrespkg "github.com/opencatalog/searchsync/internal/pkg/postgres"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
	"github.com/opencatalog/searchsync/internal/search/lifecycle"
)

const (
	maxRetries   = 5
	retryBackoff = 2 * time.Second
)

// Config holds the database migration configuration.
type Config struct {
	PostgresDSN      string
	ClickHouseClient *clickhousepkg.Client
	Indexes          *lifecycle.Manager
}

// Repository provides database migration repository.
type Repository struct {
	tp  trace.Tracer
	cfg *Config
}

// New creates a new database migration repository.
func New(cfg *Config) *Repository {
	return &Repository{
		tp:  otel.Tracer(svcpkg.Info().GetName()),
		cfg: cfg,
	}
}

// MigratePostgres migrates the PostgreSQL database from the embedded
// migration files.
func (r *Repository) MigratePostgres(ctx context.Context) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.MigratePostgres")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	retry := retrier.New(retrier.ConstantBackoff(maxRetries, retryBackoff), nil)
	if err = retry.RunCtx(ctx, r.runPostgresMigration); err != nil {
		err = status.Errorf(codes.Internal, "postgres migration failed: %v", err)
		return err
	}

	return nil
}

// runPostgresMigration executes PostgreSQL migrations using the migrate library.
func (r *Repository) runPostgresMigration(ctx context.Context) error {
	sourceInstance, err := iofs.New(postgrespkg.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create IOFS source instance: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceInstance, r.cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			loggerpkg.FromContext(ctx).Error("failed to close PostgreSQL migrate instance",
				zap.Error(sourceErr),
				zap.Error(dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run postgres migration: %w", err)
	}

	return nil
}

// MigrateClickHouse applies the embedded ClickHouse schema statements in
// file order. The statements are idempotent, so re-running is safe.
func (r *Repository) MigrateClickHouse(ctx context.Context) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.MigrateClickHouse")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	logger := loggerpkg.FromContext(ctx)

	entries, err := fs.Glob(clickhousepkg.MigrationsFS, "migrations/*.sql")
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to list clickhouse migrations: %v", err)
		return err
	}
	sort.Strings(entries)

	retry := retrier.New(retrier.ConstantBackoff(maxRetries, retryBackoff), nil)
	for _, entry := range entries {
		ddl, readErr := fs.ReadFile(clickhousepkg.MigrationsFS, entry)
		if readErr != nil {
			err = status.Errorf(codes.Internal, "failed to read clickhouse migration %s: %v", entry, readErr)
			return err
		}

		if err = retry.RunCtx(ctx, func(ctx context.Context) error {
			return r.cfg.ClickHouseClient.Exec(ctx, string(ddl))
		}); err != nil {
			err = status.Errorf(codes.Internal, "failed to apply clickhouse migration %s: %v", entry, err)
			return err
		}

		logger.Info("applied clickhouse migration", zap.String("file", entry))
	}

	return nil
}

// SetupSearchIndexes creates or updates every search index from its mapping
// template.
func (r *Repository) SetupSearchIndexes(ctx context.Context) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.SetupSearchIndexes")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	r.cfg.Indexes.ReconcileAll(ctx)

	for _, kind := range lifecycle.Kinds() {
		if r.cfg.Indexes.Status(kind) != lifecycle.IndexStatusCreated {
			err = status.Errorf(codes.Internal, "search index setup failed for kind: %s", kind)
			return err
		}
	}

	return nil
}
