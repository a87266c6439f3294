package jobrecord

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	"github.com/opencatalog/searchsync/internal/pkg/postgres"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

const (
	// Extension qualifies the job record rows owned by the reindexer.
	Extension = "service.reindexer"

	// StreamKey and BatchKey identify the job records of the two run modes.
	// Index lifecycle failures are always funneled into the stream record.
	StreamKey = "reindexer:catalog:STREAM"
	BatchKey  = "reindexer:catalog:BATCH"
)

// KeyForMode returns the job record key for the given run mode.
func KeyForMode(mode model.RunMode) string {
	if mode == model.RunModeBatch {
		return BatchKey
	}
	return StreamKey
}

// Repository persists reindex job records with optimistic concurrency. The
// record's timestamp is the CAS token: an update only succeeds while the
// stored timestamp still equals the one the writer last read.
type Repository struct {
	tp trace.Tracer
	pg postgres.Store
}

// New creates a new job record repository.
func New(pg postgres.Store) *Repository {
	return &Repository{
		tp: otel.Tracer(svcpkg.Info().GetName()),
		pg: pg,
	}
}

// Get returns the job record stored under the key.
func (r *Repository) Get(ctx context.Context, key string) (rec *model.JobRecord, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.GetJobRecord")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	query := fmt.Sprintf(`
		SELECT record
		FROM %s
		WHERE entity_key = $1 AND extension = $2
	`, postgres.TableJobRecords)

	var data []byte
	if err = r.pg.QueryRow(ctx, query, key, Extension).Scan(&data); err != nil {
		if r.pg.IsNoRows(err) {
			err = status.Errorf(codes.NotFound, "no job record for key: %s", key)
			return nil, err
		}
		err = status.Errorf(codes.Internal, "failed to get job record: %v", err)
		return nil, err
	}

	rec = &model.JobRecord{}
	if err = json.Unmarshal(data, rec); err != nil {
		err = status.Errorf(codes.Internal, "failed to decode job record: %v", err)
		return nil, err
	}

	return rec, nil
}

// Create inserts a new job record under the key.
func (r *Repository) Create(ctx context.Context, key string, rec *model.JobRecord) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.CreateJobRecord")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	data, err := json.Marshal(rec)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to encode job record: %v", err)
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (entity_key, extension, record, ts)
		VALUES ($1, $2, $3, $4)
	`, postgres.TableJobRecords)

	if _, err = r.pg.Exec(ctx, query, key, Extension, data, rec.Timestamp); err != nil {
		if r.pg.IsUniqueViolation(err) {
			err = status.Errorf(codes.AlreadyExists, "job record already exists for key: %s", key)
			return err
		}
		err = status.Errorf(codes.Internal, "failed to create job record: %v", err)
		return err
	}

	return nil
}

// Update writes the record if and only if the stored timestamp still equals
// expectedPriorTimestamp. A lost race returns codes.Aborted and leaves the
// stored record untouched.
func (r *Repository) Update(ctx context.Context, key string, rec *model.JobRecord, expectedPriorTimestamp int64) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.UpdateJobRecord")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	data, err := json.Marshal(rec)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to encode job record: %v", err)
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET record = $1, ts = $2
		WHERE entity_key = $3 AND extension = $4 AND ts = $5
	`, postgres.TableJobRecords)

	tag, err := r.pg.Exec(ctx, query, data, rec.Timestamp, key, Extension, expectedPriorTimestamp)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to update job record: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = status.Errorf(codes.Aborted, "concurrent modification of job record %s: expected timestamp %d", key, expectedPriorTimestamp)
		return err
	}

	return nil
}

// RecordStreamFailure writes a failure entry into the streaming job record
// under the CAS protocol. All index lifecycle failures land here regardless
// of which mode triggered them, so operators have one place to check. Lost
// races and storage errors are logged and dropped.
func (r *Repository) RecordStreamFailure(ctx context.Context, failureContext, reason string) {
	logger := loggerpkg.FromContext(ctx)

	now := time.Now().UnixMilli()
	details := &model.FailureDetails{
		Context:          failureContext,
		LastFailedAt:     now,
		LastFailedReason: reason,
	}

	rec, err := r.Get(ctx, StreamKey)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			rec = &model.JobRecord{
				Status:         model.JobStatusActiveWithError,
				Timestamp:      now,
				FailureDetails: details,
			}
			if err := r.Create(ctx, StreamKey, rec); err != nil {
				logger.Warn("failed to create stream job record for failure report", zap.Error(err))
			}
			return
		}
		logger.Warn("failed to read stream job record for failure report", zap.Error(err))
		return
	}

	expected := rec.Timestamp
	rec.Status = model.JobStatusActiveWithError
	rec.Timestamp = now
	rec.FailureDetails = details

	if err := r.Update(ctx, StreamKey, rec, expected); err != nil {
		logger.Warn("failed to record index failure on stream job record", zap.Error(err))
	}
}
