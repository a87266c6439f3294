package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/opencatalog/searchsync/internal/config"
	clickhousepkg "github.com/opencatalog/searchsync/internal/pkg/clickhouse"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	meilisearchpkg "github.com/opencatalog/searchsync/internal/pkg/meilisearch"
	"github.com/opencatalog/searchsync/internal/pkg/postgres"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
	databasemigrationrepo "github.com/opencatalog/searchsync/internal/repository/databasemigration"
	jobrecordrepo "github.com/opencatalog/searchsync/internal/repository/jobrecord"
	"github.com/opencatalog/searchsync/internal/search/engine"
	"github.com/opencatalog/searchsync/internal/search/lifecycle"
	databasemigrationsvc "github.com/opencatalog/searchsync/internal/service/databasemigration"
)

const (
	// ExitOk and ExitError are the exit codes.
	ExitOk = iota
	// ExitError is the exit code for errors.
	ExitError
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize the service with, all necessary components
	ctx, cancel := svcpkg.Init()
	defer cancel()

	// Load the database migration configuration
	cfg, err := config.InitDatabaseMigrationConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	pgConfig := &postgres.Config{
		Host:        cfg.Postgres.Host,
		Port:        cfg.Postgres.Port,
		User:        cfg.Postgres.User,
		Password:    cfg.Postgres.Password,
		Database:    cfg.Postgres.Database,
		MaxConns:    cfg.Postgres.MaxConns,
		MinConns:    cfg.Postgres.MinConns,
		MaxConnLife: cfg.Postgres.MaxConnLife,
		MaxConnIdle: cfg.Postgres.MaxConnIdle,
		DialTimeout: cfg.Postgres.DialTimeout,
		SSLMode:     cfg.Postgres.SSLMode,
	}

	// Initialize the ClickHouse database client
	cdb, err := clickhousepkg.New(ctx, &clickhousepkg.Config{
		Hosts:           cfg.ClickHouse.Hosts,
		Database:        cfg.ClickHouse.Database,
		Username:        cfg.ClickHouse.Username,
		Password:        cfg.ClickHouse.Password,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		DialTimeout:     cfg.ClickHouse.DialTimeout,
		Debug:           cfg.ClickHouse.Debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer cdb.Close()

	// Initialize the MeiliSearch client
	msc, err := meilisearchpkg.New(
		ctx,
		meilisearchpkg.WithURI(cfg.MeiliSearch.URI),
		meilisearchpkg.WithMasterKey(cfg.MeiliSearch.MasterKey),
		meilisearchpkg.WithTLS(cfg.MeiliSearch.CertFile, cfg.MeiliSearch.KeyFile, cfg.MeiliSearch.CAFile),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Initialize the PostgreSQL pool, used to reach the job records while
	// provisioning the search indexes.
	pdb, err := postgres.New(ctx, pgConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer pdb.Close()

	searchEngine := engine.New(msc)
	indexes := lifecycle.New(searchEngine, jobrecordrepo.New(pdb))

	repo := databasemigrationrepo.New(&databasemigrationrepo.Config{
		PostgresDSN:      pgConfig.DSN(),
		ClickHouseClient: cdb,
		Indexes:          indexes,
	})
	svc := databasemigrationsvc.New(repo)

	// Log the job information
	loggerpkg.FromContext(ctx).Info(
		"starting job",
		zap.Any("ctx", ctx),
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Int64("gomemlimit", debug.SetMemoryLimit(0)),
	)

	// Run the migration job
	if err := svc.Run(ctx); err != nil {
		loggerpkg.FromContext(ctx).Error("database migration failed", zap.Error(err))
		return ExitError
	}

	loggerpkg.FromContext(ctx).Info("database migration completed")
	return ExitOk
}
