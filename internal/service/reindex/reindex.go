//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package reindex

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	redispkg "github.com/opencatalog/searchsync/internal/pkg/redis"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
	"github.com/opencatalog/searchsync/internal/repository/catalog"
	"github.com/opencatalog/searchsync/internal/repository/jobrecord"
	"github.com/opencatalog/searchsync/internal/repository/runlog"
	"github.com/opencatalog/searchsync/internal/search/bulk"
	"github.com/opencatalog/searchsync/internal/search/lifecycle"
)

const (
	defaultBatchSize          = 100
	defaultFlushIntervalInSec = 30

	// statusCacheTTL bounds how stale a cached job record may be.
	statusCacheTTL = 10 * time.Second
)

// ReindexRequest asks for a rebuild of the search indexes of the named
// entity types.
type ReindexRequest struct {
	Entities           []string      `json:"entities" validate:"required,min=1,dive,required"`
	RunMode            model.RunMode `json:"runMode" validate:"required,oneof=BATCH STREAM"`
	BatchSize          int           `json:"batchSize" validate:"gt=0"`
	FlushIntervalInSec int           `json:"flushIntervalInSec" validate:"gt=0"`
	RecreateIndex      bool          `json:"recreateIndex"`
}

// JobRecordStore persists job records under optimistic concurrency.
type JobRecordStore interface {
	Get(ctx context.Context, key string) (*model.JobRecord, error)
	Create(ctx context.Context, key string, rec *model.JobRecord) error
	Update(ctx context.Context, key string, rec *model.JobRecord, expectedPriorTimestamp int64) error
}

// EntitySource pages through catalog entities of one type.
type EntitySource interface {
	ListAfter(ctx context.Context, entityType string, fields []string, filter model.ListFilter, limit int, after string) (*model.EntityPage, error)
}

// IndexLifecycle provisions and drops the physical indexes.
type IndexLifecycle interface {
	EnsureIndex(ctx context.Context, kind lifecycle.IndexKind) bool
	DropIndex(ctx context.Context, kind lifecycle.IndexKind)
}

// DocumentBuilder turns one entity into its search document.
type DocumentBuilder interface {
	Build(entityType string, entity *model.Entity) (map[string]any, error)
}

// SearchEngine performs document upserts. The same interface feeds the bulk
// pipeline and the per-document stream path.
type SearchEngine interface {
	UpsertDocuments(ctx context.Context, indexName string, docs []map[string]any) error
}

// RunRecorder appends the per-kind audit trail of a completed run.
type RunRecorder interface {
	RecordRunEvents(ctx context.Context, events []*runlog.Event) error
}

// Cache is the short-lived job record cache backing status reads.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
}

// Service orchestrates reindex runs. Requests are acknowledged immediately
// and executed on a small worker pool; at most one run per mode is active
// at a time.
type Service struct {
	tp        trace.Tracer
	validator *validator.Validate
	wp        *workerPool

	jobs      JobRecordStore
	entities  EntitySource
	lifecycle IndexLifecycle
	builder   DocumentBuilder
	engine    SearchEngine
	recorder  RunRecorder
	cache     Cache

	locks map[model.RunMode]*sync.Mutex
}

// New creates a new reindex service and starts its worker pool.
func New(ctx context.Context, jobs JobRecordStore, entities EntitySource, lc IndexLifecycle, builder DocumentBuilder, engine SearchEngine, recorder RunRecorder, cache Cache) *Service {
	return &Service{
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		validator: validator.New(validator.WithRequiredStructEnabled()),
		wp:        newWorkerPool(ctx),
		jobs:      jobs,
		entities:  entities,
		lifecycle: lc,
		builder:   builder,
		engine:    engine,
		recorder:  recorder,
		cache:     cache,
		locks: map[model.RunMode]*sync.Mutex{
			model.RunModeBatch:  {},
			model.RunModeStream: {},
		},
	}
}

// Submit validates and accepts a reindex request, returning the STARTING
// job record snapshot. The run itself executes asynchronously and outlives
// the request context.
func (s *Service) Submit(ctx context.Context, req *ReindexRequest) (rec *model.JobRecord, err error) {
	ctx, span := s.tp.Start(ctx, "Service.SubmitReindex")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if req.BatchSize == 0 {
		req.BatchSize = defaultBatchSize
	}
	if req.FlushIntervalInSec == 0 {
		req.FlushIntervalInSec = defaultFlushIntervalInSec
	}

	if err = s.validator.Struct(req); err != nil {
		err = status.Error(codes.InvalidArgument, err.Error())
		return nil, err
	}

	now := time.Now().UnixMilli()
	rec = &model.JobRecord{
		Status:    model.JobStatusStarting,
		Timestamp: now,
		StartTime: now,
		Entities:  req.Entities,
	}

	// The run must survive the HTTP request that triggered it.
	runCtx := context.WithoutCancel(ctx)
	s.wp.Submit(func() {
		s.run(runCtx, req)
	})

	return rec, nil
}

// LastStatus returns the most recent job record of the given run mode,
// served from the cache when fresh enough.
func (s *Service) LastStatus(ctx context.Context, mode model.RunMode) (rec *model.JobRecord, err error) {
	ctx, span := s.tp.Start(ctx, "Service.LastReindexStatus")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if !mode.IsValid() {
		err = status.Errorf(codes.InvalidArgument, "invalid run mode: %s", mode)
		return nil, err
	}

	cacheKey := redispkg.GetReindexStatusKey(string(mode))

	cached := &model.JobRecord{}
	if cacheErr := s.cache.Get(ctx, cacheKey, cached); cacheErr == nil {
		return cached, nil
	}

	rec, err = s.jobs.Get(ctx, jobrecord.KeyForMode(mode))
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, cacheKey, rec, statusCacheTTL); cacheErr != nil {
		loggerpkg.FromContext(ctx).Warn("failed to cache job record", zap.Error(cacheErr))
	}

	return rec, nil
}

// run executes one reindex run end to end, holding the per-mode lock for
// its full duration.
func (s *Service) run(ctx context.Context, req *ReindexRequest) {
	ctx, span := s.tp.Start(ctx, "Service.runReindex")
	defer span.End()

	lock := s.locks[req.RunMode]
	lock.Lock()
	defer lock.Unlock()

	cacheKey := redispkg.GetReindexStatusKey(string(req.RunMode))
	//nolint:errcheck // Cache invalidation is best effort.
	s.cache.Delete(ctx, cacheKey)
	defer s.cache.Delete(ctx, cacheKey) //nolint:errcheck

	key := jobrecord.KeyForMode(req.RunMode)
	if err := s.initRecord(ctx, key, req.Entities); err != nil {
		loggerpkg.FromContext(ctx).Error("failed to initialize job record, aborting run",
			zap.String("runMode", string(req.RunMode)),
			zap.Error(err),
		)
		return
	}

	var events []*runlog.Event
	if req.RunMode == model.RunModeBatch {
		events = s.runBatch(ctx, key, req)
	} else {
		events = s.runStream(ctx, key, req)
	}

	s.finalize(ctx, key)

	if err := s.recorder.RecordRunEvents(ctx, events); err != nil {
		loggerpkg.FromContext(ctx).Warn("failed to record run events", zap.Error(err))
	}
}

// runBatch drives the bulk pipeline: per kind, drop/ensure the index, page
// through the entities, and fold the flush counters into the job record
// once the kind completes.
func (s *Service) runBatch(ctx context.Context, key string, req *ReindexRequest) []*runlog.Event {
	logger := loggerpkg.FromContext(ctx)
	runID := uuid.NewString()

	events := make([]*runlog.Event, 0, len(req.Entities))
	for _, entityType := range req.Entities {
		kind, err := s.prepareIndex(ctx, key, entityType, req.RecreateIndex)
		if err != nil {
			continue
		}
		def := lifecycle.DefinitionFor(kind)

		listener := bulk.NewListener()
		proc := bulk.New(ctx, s.engine, listener, &bulk.Config{
			BatchSize:     req.BatchSize,
			FlushInterval: time.Duration(req.FlushIntervalInSec) * time.Second,
		})

		startedAt := time.Now()
		after := ""
		for {
			// One page per flush: the batch size doubles as the listing
			// page size.
			page, err := s.entities.ListAfter(ctx, entityType, fieldsFor(kind), model.ListFilter{Include: model.IncludeAll}, req.BatchSize, after)
			if err != nil {
				logger.Error("failed to list entities",
					zap.String("entityType", entityType),
					zap.Error(err),
				)
				s.recordFailure(ctx, key, "Reading Entities: "+entityType, err.Error())
				break
			}

			listener.AddRequests(page.Paging.Total)
			for _, entity := range page.Data {
				doc, err := s.buildDocument(entityType, kind, entity)
				if err != nil {
					listener.OnFlush(1, err)
					logger.Warn("failed to build search document",
						zap.String("entityType", entityType),
						zap.String("id", entity.ID),
						zap.Error(err),
					)
					continue
				}
				proc.Add(ctx, def.IndexName, doc)
			}
			proc.Flush(ctx)

			if page.Paging.After == "" {
				break
			}
			after = page.Paging.After
		}
		proc.Close(ctx)

		stats := listener.Stats()
		s.foldStats(ctx, key, stats)
		events = append(events, newRunEvent(runID, req.RunMode, entityType, stats, startedAt))
	}

	return events
}

// runStream issues one synchronous upsert per document and checkpoints the
// job record after every document.
func (s *Service) runStream(ctx context.Context, key string, req *ReindexRequest) []*runlog.Event {
	logger := loggerpkg.FromContext(ctx)
	runID := uuid.NewString()

	events := make([]*runlog.Event, 0, len(req.Entities))
	for _, entityType := range req.Entities {
		kind, err := s.prepareIndex(ctx, key, entityType, req.RecreateIndex)
		if err != nil {
			continue
		}
		def := lifecycle.DefinitionFor(kind)

		var stats model.Stats
		startedAt := time.Now()
		after := ""
		for {
			page, err := s.entities.ListAfter(ctx, entityType, fieldsFor(kind), model.ListFilter{Include: model.IncludeAll}, req.BatchSize, after)
			if err != nil {
				logger.Error("failed to list entities",
					zap.String("entityType", entityType),
					zap.Error(err),
				)
				s.recordFailure(ctx, key, "Reading Entities: "+entityType, err.Error())
				break
			}

			for _, entity := range page.Data {
				stats.Total++
				err := func() error {
					doc, err := s.buildDocument(entityType, kind, entity)
					if err != nil {
						return err
					}
					return s.engine.UpsertDocuments(ctx, def.IndexName, []map[string]any{doc})
				}()

				if err != nil {
					stats.Failed++
					logger.Warn("failed to index document",
						zap.String("entityType", entityType),
						zap.String("id", entity.ID),
						zap.Error(err),
					)
				} else {
					stats.Success++
				}

				// Checkpoint after every document so a crash loses at
				// most one unit of progress.
				s.updateRecord(ctx, key, func(rec *model.JobRecord) {
					rec.Stats.Total++
					if err != nil {
						rec.Stats.Failed++
						rec.Status = model.JobStatusActiveWithError
						rec.FailureDetails = &model.FailureDetails{
							Context:          "Indexing Document: " + entityType,
							LastFailedAt:     time.Now().UnixMilli(),
							LastFailedReason: err.Error(),
						}
					} else {
						rec.Stats.Success++
						if rec.Status == model.JobStatusStarting {
							rec.Status = model.JobStatusActive
						}
					}
				})
			}

			if page.Paging.After == "" {
				break
			}
			after = page.Paging.After
		}

		events = append(events, newRunEvent(runID, req.RunMode, entityType, stats, startedAt))
	}

	return events
}

// prepareIndex resolves the entity type to its index kind and provisions the
// physical index. Failures are recorded against the job record and skip the
// kind without affecting the rest of the run.
func (s *Service) prepareIndex(ctx context.Context, key, entityType string, recreate bool) (lifecycle.IndexKind, error) {
	kind, err := lifecycle.KindForEntityType(entityType)
	if err != nil {
		s.recordFailure(ctx, key, "Resolving Entity Type: "+entityType, err.Error())
		return "", err
	}

	if recreate {
		s.lifecycle.DropIndex(ctx, kind)
	}
	if !s.lifecycle.EnsureIndex(ctx, kind) {
		err := status.Errorf(codes.Internal, "index unavailable for entity type: %s", entityType)
		s.recordFailure(ctx, key, "Ensuring Index: "+entityType, err.Error())
		return "", err
	}

	return kind, nil
}

// buildDocument builds the search document and applies the per-kind
// transforms the indexes expect.
func (s *Service) buildDocument(entityType string, kind lifecycle.IndexKind, entity *model.Entity) (map[string]any, error) {
	doc, err := s.builder.Build(entityType, entity)
	if err != nil {
		return nil, err
	}

	if kind == lifecycle.KindTable {
		stripColumnProfiles(doc)
	}

	return doc, nil
}

// stripColumnProfiles removes the per-column profiler payload from a table
// document. Profiles are large, churn often, and are never searched.
func stripColumnProfiles(doc map[string]any) {
	columns, ok := doc["columns"].([]any)
	if !ok {
		return
	}
	for _, col := range columns {
		if m, ok := col.(map[string]any); ok {
			delete(m, "profile")
		}
	}
}

// fieldsFor returns the listing projection for the kind. Team documents
// only expose their name attributes.
func fieldsFor(kind lifecycle.IndexKind) []string {
	if kind == lifecycle.KindTeam {
		return catalog.FieldsMinimal
	}
	return nil
}

// initRecord resets the job record for a fresh run, creating it on first
// use.
func (s *Service) initRecord(ctx context.Context, key string, entities []string) error {
	now := time.Now().UnixMilli()

	rec, err := s.jobs.Get(ctx, key)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			return err
		}
		return s.jobs.Create(ctx, key, &model.JobRecord{
			Status:    model.JobStatusStarting,
			Timestamp: now,
			StartTime: now,
			Entities:  entities,
		})
	}

	expected := rec.Timestamp
	rec.Status = model.JobStatusStarting
	rec.Timestamp = now
	rec.StartTime = now
	rec.EndTime = 0
	rec.Stats = model.Stats{}
	rec.Entities = entities
	rec.FailureDetails = nil

	return s.jobs.Update(ctx, key, rec, expected)
}

// foldStats merges one kind's counters into the job record.
func (s *Service) foldStats(ctx context.Context, key string, stats model.Stats) {
	s.updateRecord(ctx, key, func(rec *model.JobRecord) {
		rec.Stats.Total += stats.Total
		rec.Stats.Success += stats.Success
		rec.Stats.Failed += stats.Failed
		if stats.Failed > 0 {
			rec.Status = model.JobStatusActiveWithError
		} else if rec.Status == model.JobStatusStarting {
			rec.Status = model.JobStatusActive
		}
	})
}

// recordFailure notes a non-document failure on the job record.
func (s *Service) recordFailure(ctx context.Context, key, failureContext, reason string) {
	s.updateRecord(ctx, key, func(rec *model.JobRecord) {
		rec.Status = model.JobStatusActiveWithError
		rec.FailureDetails = &model.FailureDetails{
			Context:          failureContext,
			LastFailedAt:     time.Now().UnixMilli(),
			LastFailedReason: reason,
		}
	})
}

// finalize stamps the end of the run. ACTIVE means every document made it;
// any recorded failure leaves the run ACTIVEWITHERROR.
func (s *Service) finalize(ctx context.Context, key string) {
	s.updateRecord(ctx, key, func(rec *model.JobRecord) {
		rec.EndTime = time.Now().UnixMilli()
		if rec.Stats.Failed == 0 && rec.FailureDetails == nil {
			rec.Status = model.JobStatusActive
		} else {
			rec.Status = model.JobStatusActiveWithError
		}
	})
}

// updateRecord applies a read-modify-write under the CAS protocol. A lost
// race is logged and dropped; the concurrent writer's snapshot wins.
func (s *Service) updateRecord(ctx context.Context, key string, mutate func(rec *model.JobRecord)) {
	logger := loggerpkg.FromContext(ctx)

	rec, err := s.jobs.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to read job record for update", zap.Error(err))
		return
	}

	expected := rec.Timestamp
	mutate(rec)
	rec.Timestamp = time.Now().UnixMilli()

	if err := s.jobs.Update(ctx, key, rec, expected); err != nil {
		logger.Warn("failed to update job record", zap.Error(err))
	}
}

func newRunEvent(runID string, mode model.RunMode, entityType string, stats model.Stats, startedAt time.Time) *runlog.Event {
	return &runlog.Event{
		RunID:       runID,
		RunMode:     mode,
		EntityType:  entityType,
		Total:       uint64(stats.Total),
		Success:     uint64(stats.Success),
		Failed:      uint64(stats.Failed),
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
}
