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
	authpkg "github.com/opencatalog/searchsync/internal/pkg/auth"
	clickhousepkg "github.com/opencatalog/searchsync/internal/pkg/clickhouse"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	meilisearchpkg "github.com/opencatalog/searchsync/internal/pkg/meilisearch"
	"github.com/opencatalog/searchsync/internal/pkg/postgres"
	redispkg "github.com/opencatalog/searchsync/internal/pkg/redis"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
	catalogrepo "github.com/opencatalog/searchsync/internal/repository/catalog"
	jobrecordrepo "github.com/opencatalog/searchsync/internal/repository/jobrecord"
	runlogrepo "github.com/opencatalog/searchsync/internal/repository/runlog"
	"github.com/opencatalog/searchsync/internal/search/document"
	"github.com/opencatalog/searchsync/internal/search/engine"
	"github.com/opencatalog/searchsync/internal/search/lifecycle"
	"github.com/opencatalog/searchsync/internal/server"
	reindexsvc "github.com/opencatalog/searchsync/internal/service/reindex"
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

	// Load the reindex server configuration
	cfg, err := config.InitReindexServerConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Initialize the PostgreSQL database
	pdb, err := postgres.New(ctx, &postgres.Config{
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
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer pdb.Close()

	// Initialize the Redis store
	rdb, err := redispkg.New(ctx, &redispkg.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	defer rdb.Close()

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

	// Initialize the repositories and the search components
	jobRecords := jobrecordrepo.New(pdb)
	entities := catalogrepo.New(pdb)
	runLogs := runlogrepo.New(cdb)

	searchEngine := engine.New(msc)
	indexes := lifecycle.New(searchEngine, jobRecords)

	registry := document.NewRegistry()
	document.RegisterDefaults(registry)

	svc := reindexsvc.New(ctx, jobRecords, entities, indexes, registry, searchEngine, runLogs, rdb)

	// Log the server information
	loggerpkg.FromContext(ctx).Info(
		"starting server",
		zap.Any("ctx", ctx),
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Int64("gomemlimit", debug.SetMemoryLimit(0)),
	)

	// Start the HTTP server
	authz := authpkg.New(svcpkg.Info().GetName(), cfg.Server.AuthSecret)
	srv := server.New(ctx, &server.Config{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		RequestBodyLimit:  cfg.Server.RequestBodyLimit,
	}, authz, svc)

	if err := srv.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	return ExitOk
}
