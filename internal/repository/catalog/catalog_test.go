package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
)

func TestListQuery(t *testing.T) {
	t.Parallel()

	t.Run("defaults to live rows only", func(t *testing.T) {
		query, args := listQuery("table", nil, model.ListFilter{}, 10, nil)

		assert.Contains(t, query, "deleted = FALSE")
		assert.Equal(t, []any{"table", 10}, args)
	})

	t.Run("non-deleted filter matches the default", func(t *testing.T) {
		defaulted, defaultedArgs := listQuery("table", nil, model.ListFilter{}, 10, nil)
		explicit, explicitArgs := listQuery("table", nil, model.ListFilter{Include: model.IncludeNonDeleted}, 10, nil)

		assert.Equal(t, defaulted, explicit)
		assert.Equal(t, defaultedArgs, explicitArgs)
	})

	t.Run("include-all spans soft-deleted rows", func(t *testing.T) {
		query, _ := listQuery("table", nil, model.ListFilter{Include: model.IncludeAll}, 10, nil)

		assert.NotContains(t, query, "deleted = FALSE")
	})

	t.Run("cursor adds the keyset predicate", func(t *testing.T) {
		at := time.Now()
		query, args := listQuery("table", nil, model.ListFilter{Include: model.IncludeAll}, 10, &cursor{
			UpdatedAt: at.UnixMicro(),
			ID:        "id-1",
		})

		assert.Contains(t, query, "(updated_at, id) > ($2, $3)")
		assert.Contains(t, query, "LIMIT $4")
		require.Len(t, args, 4)
		assert.Equal(t, "id-1", args[2])
	})

	t.Run("minimal fields skip the payload columns", func(t *testing.T) {
		query, _ := listQuery("team", FieldsMinimal, model.ListFilter{Include: model.IncludeAll}, 10, nil)

		assert.Contains(t, query, "'null'::jsonb AS json")
		assert.NotContains(t, query, ", fqn,")
	})
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Now().UnixMicro()
	token := encodeCursor(cursor{UpdatedAt: at, ID: "id-9"})

	decoded, err := decodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, cursor{UpdatedAt: at, ID: "id-9"}, decoded)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"%%%", "bm90LWpzb24"} {
		_, err := decodeCursor(token)
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
}
