package runlog

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	clickhousepkg "github.com/opencatalog/searchsync/internal/pkg/clickhouse"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

// Event is one per-kind audit row for a completed reindex run.
type Event struct {
	RunID       string
	RunMode     model.RunMode
	EntityType  string
	Total       uint64
	Success     uint64
	Failed      uint64
	StartedAt   time.Time
	CompletedAt time.Time
}

// Repository appends reindex run events to the analytics store. The trail is
// an operator aid; callers treat write failures as non-fatal.
type Repository struct {
	tp trace.Tracer
	ch *clickhousepkg.Client
}

// New creates a new run log repository.
func New(ch *clickhousepkg.Client) *Repository {
	return &Repository{
		tp: otel.Tracer(svcpkg.Info().GetName()),
		ch: ch,
	}
}

// RecordRunEvents appends the events of one run in a single batch.
func (r *Repository) RecordRunEvents(ctx context.Context, events []*Event) (err error) {
	ctx, span := r.tp.Start(ctx, "Repository.RecordRunEvents")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if len(events) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			run_id, run_mode, entity_type, total, success, failed, started_at, completed_at
		)
	`, clickhousepkg.TableReindexRunEvents)

	err = r.ch.BatchInsert(ctx, query, func(batch driver.Batch) error {
		for _, event := range events {
			if err := batch.Append(
				event.RunID,
				string(event.RunMode),
				event.EntityType,
				event.Total,
				event.Success,
				event.Failed,
				event.StartedAt,
				event.CompletedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to record run events: %v", err)
		return err
	}

	return nil
}
