//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	meilisearchpkg "github.com/opencatalog/searchsync/internal/pkg/meilisearch"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

// SearchEngine provides the index operations the lifecycle manager needs.
type SearchEngine interface {
	IndexExists(ctx context.Context, indexName string) (bool, error)
	CreateIndex(ctx context.Context, indexName string, mapping *meilisearchpkg.IndexMapping) error
	UpdateSettings(ctx context.Context, indexName string, mapping *meilisearchpkg.IndexMapping) error
	DeleteIndex(ctx context.Context, indexName string) error
}

// FailureReporter records an index lifecycle failure against the streaming
// job record, the single well-known place operators check for index health.
type FailureReporter interface {
	RecordStreamFailure(ctx context.Context, failureContext, reason string)
}

// Manager owns the per-kind index status map and creates, updates, and
// deletes physical indexes from the mapping templates. One instance per
// search engine client; no package-level state.
type Manager struct {
	tp       trace.Tracer
	engine   SearchEngine
	reporter FailureReporter

	mu       sync.Mutex
	statuses map[IndexKind]IndexStatus
}

// New creates a new index lifecycle manager with every kind NOT_CREATED.
func New(engine SearchEngine, reporter FailureReporter) *Manager {
	statuses := make(map[IndexKind]IndexStatus, len(definitions))
	for kind := range definitions {
		statuses[kind] = IndexStatusNotCreated
	}

	return &Manager{
		tp:       otel.Tracer(svcpkg.Info().GetName()),
		engine:   engine,
		reporter: reporter,
		statuses: statuses,
	}
}

// Status returns the tracked status of the given kind.
func (m *Manager) Status(kind IndexKind) IndexStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statuses[kind]
}

func (m *Manager) setStatus(kind IndexKind, s IndexStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[kind] = s
}

// EnsureIndex returns true if the index exists or was created successfully.
// A kind already marked CREATED short-circuits without a remote call, so
// repeated calls issue at most one physical create.
func (m *Manager) EnsureIndex(ctx context.Context, kind IndexKind) bool {
	if m.Status(kind) == IndexStatusCreated {
		return true
	}

	return m.createIndex(ctx, kind)
}

// EnsureAll ensures every index kind, returning the number that exist.
func (m *Manager) EnsureAll(ctx context.Context) int {
	created := 0
	for _, kind := range Kinds() {
		if m.EnsureIndex(ctx, kind) {
			created++
		}
	}
	return created
}

// createIndex checks remote existence and creates the index from its
// mapping template if absent.
func (m *Manager) createIndex(ctx context.Context, kind IndexKind) bool {
	logger := loggerpkg.FromContext(ctx)

	ctx, span := m.tp.Start(ctx, "Manager.createIndex")
	defer span.End()

	def := definitions[kind]

	err := func() error {
		exists, err := m.engine.IndexExists(ctx, def.IndexName)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		mapping, err := meilisearchpkg.LoadIndexMapping(def.MappingFile)
		if err != nil {
			return status.Errorf(codes.FailedPrecondition, "failed to load index mapping: %v", err)
		}

		return m.engine.CreateIndex(ctx, def.IndexName, mapping)
	}()
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		span.RecordError(err)

		m.setStatus(kind, IndexStatusFailed)
		m.reporter.RecordStreamFailure(ctx, failureContext("Creating Index", def.IndexName), err.Error())
		logger.Error("failed to create search index",
			zap.String("index", def.IndexName),
			zap.Error(err),
		)
		return false
	}

	m.setStatus(kind, IndexStatusCreated)
	return true
}

// Reconcile updates the index mapping if the index exists, or creates it if
// absent. Used by full-catalog maintenance, not the reindex job path.
func (m *Manager) Reconcile(ctx context.Context, kind IndexKind) {
	logger := loggerpkg.FromContext(ctx)

	ctx, span := m.tp.Start(ctx, "Manager.Reconcile")
	defer span.End()

	def := definitions[kind]

	err := func() error {
		mapping, err := meilisearchpkg.LoadIndexMapping(def.MappingFile)
		if err != nil {
			return status.Errorf(codes.FailedPrecondition, "failed to load index mapping: %v", err)
		}

		exists, err := m.engine.IndexExists(ctx, def.IndexName)
		if err != nil {
			return err
		}

		if exists {
			return m.engine.UpdateSettings(ctx, def.IndexName, mapping)
		}
		return m.engine.CreateIndex(ctx, def.IndexName, mapping)
	}()
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		span.RecordError(err)

		m.setStatus(kind, IndexStatusFailed)
		m.reporter.RecordStreamFailure(ctx, failureContext("Updating Index", def.IndexName), err.Error())
		logger.Error("failed to reconcile search index",
			zap.String("index", def.IndexName),
			zap.Error(err),
		)
		return
	}

	m.setStatus(kind, IndexStatusCreated)
}

// ReconcileAll reconciles every index kind.
func (m *Manager) ReconcileAll(ctx context.Context) {
	for _, kind := range Kinds() {
		m.Reconcile(ctx, kind)
	}
}

// DropIndex deletes the index if it exists. Deletion is best effort:
// failures are logged and reported but never propagated.
func (m *Manager) DropIndex(ctx context.Context, kind IndexKind) {
	logger := loggerpkg.FromContext(ctx)

	ctx, span := m.tp.Start(ctx, "Manager.DropIndex")
	defer span.End()

	def := definitions[kind]

	err := func() error {
		exists, err := m.engine.IndexExists(ctx, def.IndexName)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		return m.engine.DeleteIndex(ctx, def.IndexName)
	}()
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		span.RecordError(err)

		m.reporter.RecordStreamFailure(ctx, failureContext("Deleting Index", def.IndexName), err.Error())
		logger.Error("failed to delete search index",
			zap.String("index", def.IndexName),
			zap.Error(err),
		)
		return
	}

	m.setStatus(kind, IndexStatusNotCreated)
}

// DropAll deletes every index kind, best effort.
func (m *Manager) DropAll(ctx context.Context) {
	for _, kind := range Kinds() {
		m.DropIndex(ctx, kind)
	}
}

func failureContext(operation, info string) string {
	return fmt.Sprintf("Failed While: %s, Additional Info: %s", operation, info)
}
