package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	"github.com/opencatalog/searchsync/internal/pkg/postgres"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

// FieldsMinimal narrows a listing to the name attributes only. The full JSON
// payload is not fetched; documents built from such a page carry just the
// identifying fields.
var FieldsMinimal = []string{"name", "displayName"}

// cursor is the keyset position encoded into the opaque page token.
type cursor struct {
	UpdatedAt int64  `json:"u"`
	ID        string `json:"i"`
}

// Repository reads catalog entities from the primary datastore.
type Repository struct {
	tp trace.Tracer
	pg postgres.Store
}

// New creates a new catalog entity repository.
func New(pg postgres.Store) *Repository {
	return &Repository{
		tp: otel.Tracer(svcpkg.Info().GetName()),
		pg: pg,
	}
}

// ListAfter returns one page of entities of the given type, ordered by
// (updated_at, id). The after token is the opaque cursor from the previous
// page; empty starts from the beginning. The returned page's After is empty
// once the listing is exhausted, and Paging.Total counts the rows of this
// page. Passing FieldsMinimal skips the JSON payload and fqn columns.
func (r *Repository) ListAfter(ctx context.Context, entityType string, fields []string, filter model.ListFilter, limit int, after string) (page *model.EntityPage, err error) {
	ctx, span := r.tp.Start(ctx, "Repository.ListEntities")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if limit <= 0 {
		err = status.Error(codes.InvalidArgument, "limit must be positive")
		return nil, err
	}

	var c *cursor
	if after != "" {
		var decoded cursor
		if decoded, err = decodeCursor(after); err != nil {
			return nil, err
		}
		c = &decoded
	}

	query, args := listQuery(entityType, fields, filter, limit, c)

	rows, err := r.pg.Query(ctx, query, args...)
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to list entities: %v", err)
		return nil, err
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Entity])
	if err != nil {
		err = status.Errorf(codes.Internal, "failed to scan entities: %v", err)
		return nil, err
	}

	page = &model.EntityPage{
		Data:   entities,
		Paging: model.Paging{Total: len(entities)},
	}

	// A short page is the last page; only a full one carries a cursor.
	if len(entities) == limit {
		last := entities[len(entities)-1]
		page.Paging.After = encodeCursor(cursor{
			UpdatedAt: last.UpdatedAt.UnixMicro(),
			ID:        last.ID,
		})
	}

	return page, nil
}

// listQuery builds the page query. An unset Include defaults to
// IncludeNonDeleted; only IncludeAll spans soft-deleted rows.
func listQuery(entityType string, fields []string, filter model.ListFilter, limit int, c *cursor) (string, []any) {
	columns := `id, entity_type, name, display_name, fqn, json, deleted, updated_at`
	if minimal(fields) {
		columns = `id, entity_type, name, display_name, '' AS fqn, 'null'::jsonb AS json, deleted, updated_at`
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE entity_type = $1
	`, columns, postgres.TableCatalogEntities)
	args := []any{entityType}

	if filter.Include == "" {
		filter.Include = model.IncludeNonDeleted
	}
	if filter.Include != model.IncludeAll {
		query += ` AND deleted = FALSE`
	}

	if c != nil {
		query += fmt.Sprintf(` AND (updated_at, id) > ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, time.UnixMicro(c.UpdatedAt), c.ID)
	}

	query += fmt.Sprintf(` ORDER BY updated_at, id LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	return query, args
}

func minimal(fields []string) bool {
	return len(fields) > 0 && !slices.Contains(fields, "json")
}

func encodeCursor(c cursor) string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeCursor(after string) (cursor, error) {
	var c cursor
	data, err := base64.RawURLEncoding.DecodeString(after)
	if err != nil {
		return c, status.Errorf(codes.InvalidArgument, "invalid page cursor: %v", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, status.Errorf(codes.InvalidArgument, "invalid page cursor: %v", err)
	}
	return c, nil
}
