package bulk_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/search/bulk"
)

// fakeSubmitter records every bulk request it receives.
type fakeSubmitter struct {
	mu      sync.Mutex
	batches map[string][][]map[string]any
	fail    bool
}

func (f *fakeSubmitter) UpsertDocuments(_ context.Context, indexName string, docs []map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.batches == nil {
		f.batches = make(map[string][][]map[string]any)
	}
	f.batches[indexName] = append(f.batches[indexName], docs)

	if f.fail {
		return status.Error(codes.Internal, "engine unavailable")
	}
	return nil
}

func (f *fakeSubmitter) batchSizes(indexName string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	sizes := make([]int, 0, len(f.batches[indexName]))
	for _, b := range f.batches[indexName] {
		sizes = append(sizes, len(b))
	}
	return sizes
}

func doc(id string) map[string]any {
	return map[string]any{"id": id}
}

func TestProcessorBatching(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	listener := bulk.NewListener()
	proc := bulk.New(t.Context(), submitter, listener, &bulk.Config{
		BatchSize:     2,
		FlushInterval: time.Minute,
	})

	listener.AddRequests(5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		proc.Add(t.Context(), "table_search_index", doc(id))
	}
	proc.Close(t.Context())

	// Two full batches and the final partial flush.
	assert.Equal(t, []int{2, 2, 1}, submitter.batchSizes("table_search_index"))

	stats := listener.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 5, stats.Success)
	assert.Equal(t, 0, stats.Failed)
}

func TestProcessorFlushPerPage(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	listener := bulk.NewListener()
	proc := bulk.New(t.Context(), submitter, listener, &bulk.Config{
		BatchSize:     100,
		FlushInterval: time.Minute,
	})

	// Pages of 2, 2, and 1 documents, flushed after each page.
	pages := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	for _, page := range pages {
		listener.AddRequests(len(page))
		for _, id := range page {
			proc.Add(t.Context(), "topic_search_index", doc(id))
		}
		proc.Flush(t.Context())
	}
	proc.Close(t.Context())

	assert.Equal(t, []int{2, 2, 1}, submitter.batchSizes("topic_search_index"))

	stats := listener.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 5, stats.Success)
}

func TestProcessorPartitionsByIndex(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	listener := bulk.NewListener()
	proc := bulk.New(t.Context(), submitter, listener, &bulk.Config{
		BatchSize:     100,
		FlushInterval: time.Minute,
	})

	listener.AddRequests(3)
	proc.Add(t.Context(), "table_search_index", doc("a"))
	proc.Add(t.Context(), "topic_search_index", doc("b"))
	proc.Add(t.Context(), "table_search_index", doc("c"))
	proc.Close(t.Context())

	assert.Equal(t, []int{2}, submitter.batchSizes("table_search_index"))
	assert.Equal(t, []int{1}, submitter.batchSizes("topic_search_index"))

	stats := listener.Stats()
	assert.Equal(t, 3, stats.Success)
}

func TestProcessorFailureCountsWholeBatch(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{fail: true}
	listener := bulk.NewListener()
	proc := bulk.New(t.Context(), submitter, listener, &bulk.Config{
		BatchSize:     3,
		FlushInterval: time.Minute,
	})

	listener.AddRequests(3)
	for _, id := range []string{"a", "b", "c"} {
		proc.Add(t.Context(), "table_search_index", doc(id))
	}
	proc.Close(t.Context())

	// Every attempt hit the failing engine, then the whole batch was
	// surfaced as failed.
	sizes := submitter.batchSizes("table_search_index")
	require.NotEmpty(t, sizes)
	for _, size := range sizes {
		assert.Equal(t, 3, size)
	}

	stats := listener.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 0, stats.Success)
	assert.Equal(t, 3, stats.Failed)
}

func TestListener(t *testing.T) {
	t.Parallel()

	listener := bulk.NewListener()
	listener.AddRequests(4)
	listener.OnFlush(2, nil)
	listener.OnFlush(2, status.Error(codes.Internal, "engine unavailable"))

	stats := listener.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Success)
	assert.Equal(t, 2, stats.Failed)
}
