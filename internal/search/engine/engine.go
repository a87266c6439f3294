package engine

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	meilisearchpkg "github.com/opencatalog/searchsync/internal/pkg/meilisearch"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

const (
	// taskPollInterval is the interval used when waiting for asynchronous
	// engine tasks to settle.
	taskPollInterval = 50 * time.Millisecond
)

// Engine adapts the MeiliSearch client to the operations the reindexer
// needs: index existence/create/update/delete and document upserts. Every
// write is submitted as an engine task and waited on, so callers observe
// synchronous success or failure.
type Engine struct {
	tp trace.Tracer
	ms meilisearch.ServiceManager
}

// New creates a new search engine adapter.
func New(ms meilisearch.ServiceManager) *Engine {
	return &Engine{
		tp: otel.Tracer(svcpkg.Info().GetName()),
		ms: ms,
	}
}

// IndexExists reports whether the physical index exists.
func (e *Engine) IndexExists(ctx context.Context, indexName string) (exists bool, err error) {
	ctx, span := e.tp.Start(ctx, "Engine.IndexExists")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if _, err = e.ms.GetIndexWithContext(ctx, indexName); err != nil {
		if isIndexNotFound(err) {
			return false, nil
		}
		err = status.Errorf(codes.Internal, "failed to check index existence: %v", err)
		return false, err
	}

	return true, nil
}

// CreateIndex creates the physical index and applies the mapping settings.
func (e *Engine) CreateIndex(ctx context.Context, indexName string, mapping *meilisearchpkg.IndexMapping) (err error) {
	ctx, span := e.tp.Start(ctx, "Engine.CreateIndex")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	task, err := e.ms.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{
		Uid:        indexName,
		PrimaryKey: mapping.PrimaryKey,
	})
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to create index: %v", err)
		return err
	}
	if err = e.waitForTask(ctx, task.TaskUID); err != nil {
		return err
	}

	return e.UpdateSettings(ctx, indexName, mapping)
}

// UpdateSettings applies the mapping settings to an existing index
// (schema migration).
func (e *Engine) UpdateSettings(ctx context.Context, indexName string, mapping *meilisearchpkg.IndexMapping) (err error) {
	ctx, span := e.tp.Start(ctx, "Engine.UpdateSettings")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	task, err := e.ms.Index(indexName).UpdateSettingsWithContext(ctx, &mapping.Settings)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to update index settings: %v", err)
		return err
	}

	return e.waitForTask(ctx, task.TaskUID)
}

// DeleteIndex deletes the physical index if it exists.
func (e *Engine) DeleteIndex(ctx context.Context, indexName string) (err error) {
	ctx, span := e.tp.Start(ctx, "Engine.DeleteIndex")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	task, err := e.ms.DeleteIndexWithContext(ctx, indexName)
	if err != nil {
		if isIndexNotFound(err) {
			return nil
		}
		err = status.Errorf(codes.Internal, "failed to delete index: %v", err)
		return err
	}

	return e.waitForTask(ctx, task.TaskUID)
}

// UpsertDocuments submits documents to the index. Existing documents are
// merged, missing ones inserted, so resubmission is idempotent.
func (e *Engine) UpsertDocuments(ctx context.Context, indexName string, docs []map[string]any) (err error) {
	ctx, span := e.tp.Start(ctx, "Engine.UpsertDocuments")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if len(docs) == 0 {
		return nil
	}

	task, err := e.ms.Index(indexName).UpdateDocumentsWithContext(ctx, docs)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to upsert documents: %v", err)
		return err
	}

	return e.waitForTask(ctx, task.TaskUID)
}

// waitForTask blocks until the engine task settles and converts a failed
// task into an error.
func (e *Engine) waitForTask(ctx context.Context, taskUID int64) error {
	task, err := e.ms.WaitForTaskWithContext(ctx, taskUID, taskPollInterval)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to wait for task %d: %v", taskUID, err)
	}

	switch task.Status {
	case meilisearch.TaskStatusSucceeded:
		return nil
	case meilisearch.TaskStatusCanceled:
		return status.Errorf(codes.Internal, "task %d was canceled", taskUID)
	default:
		return status.Errorf(codes.Internal, "task %d failed: %v", taskUID, task.Error)
	}
}

// isIndexNotFound reports whether the error is the engine's index-not-found
// response.
func isIndexNotFound(err error) bool {
	var msErr *meilisearch.Error
	if !errors.As(err, &msErr) {
		return false
	}

	return msErr.StatusCode == http.StatusNotFound
}
