//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package bulk

import (
	"context"
	"sync"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opencatalog/searchsync/internal/model"
	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	svcpkg "github.com/opencatalog/searchsync/internal/pkg/svc"
)

const (
	// maxConcurrentRequests bounds the in-flight bulk requests.
	maxConcurrentRequests = 2
	// maxRetries is the retry budget per failed bulk request.
	maxRetries = 3
	// retryBackoff is the constant wait between retry attempts.
	retryBackoff = time.Second

	defaultBatchSize     = 100
	defaultFlushInterval = 30 * time.Second
)

// Submitter performs one bulk document upsert against the search engine.
type Submitter interface {
	UpsertDocuments(ctx context.Context, indexName string, docs []map[string]any) error
}

// Config holds the caller-supplied flush policy for one pipeline instance.
type Config struct {
	BatchSize     int
	FlushInterval time.Duration
}

// Listener accumulates per-batch-run counters across flushes. The counters
// are folded back into the job record by the orchestrator once a kind's
// pagination loop completes.
type Listener struct {
	mu    sync.Mutex
	stats model.Stats
}

// NewListener creates a zeroed listener.
func NewListener() *Listener {
	return &Listener{}
}

// AddRequests adds to the total counter.
func (l *Listener) AddRequests(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stats.Total += n
}

// OnFlush records one flush outcome. A bulk-level failure counts the whole
// batch as failed.
func (l *Listener) OnFlush(itemCount int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.stats.Failed += itemCount
		return
	}
	l.stats.Success += itemCount
}

// Stats returns a snapshot of the counters.
func (l *Listener) Stats() model.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Processor batches document upserts into size- and time-bounded bulk
// requests. At most two bulk requests are in flight at once; a failed
// request is retried up to three times with constant backoff before the
// batch is surfaced to the listener as failed.
type Processor struct {
	tp        trace.Tracer
	cfg       *Config
	submitter Submitter
	listener  *Listener
	retry     *retrier.Retrier
	inflight  *errgroup.Group

	mu      sync.Mutex
	pending map[string][]map[string]any
	count   int

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new bulk processor and starts its flush timer.
func New(ctx context.Context, submitter Submitter, listener *Listener, cfg *Config) *Processor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}

	inflight := &errgroup.Group{}
	inflight.SetLimit(maxConcurrentRequests)

	p := &Processor{
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		cfg:       cfg,
		submitter: submitter,
		listener:  listener,
		retry:     retrier.New(retrier.ConstantBackoff(maxRetries, retryBackoff), nil),
		inflight:  inflight,
		pending:   make(map[string][]map[string]any),
		done:      make(chan struct{}),
	}

	// Flush partial batches that sit longer than the flush interval.
	go func() {
		ticker := time.NewTicker(cfg.FlushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				return
			case <-ticker.C:
				p.Flush(ctx)
			}
		}
	}()

	return p
}

// Add queues one document upsert; a full batch is submitted immediately.
func (p *Processor) Add(ctx context.Context, indexName string, doc map[string]any) {
	p.mu.Lock()
	p.pending[indexName] = append(p.pending[indexName], doc)
	p.count++
	full := p.count >= p.cfg.BatchSize
	var batches map[string][]map[string]any
	if full {
		batches = p.drainLocked()
	}
	p.mu.Unlock()

	if full {
		p.dispatch(ctx, batches)
	}
}

// Flush submits whatever is pending, regardless of batch size.
func (p *Processor) Flush(ctx context.Context) {
	p.mu.Lock()
	batches := p.drainLocked()
	p.mu.Unlock()

	p.dispatch(ctx, batches)
}

// Close stops the flush timer, submits the final partial batch, and waits
// for all in-flight requests to settle.
func (p *Processor) Close(ctx context.Context) {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.Flush(ctx)
	//nolint:errcheck // Flush outcomes are reported through the listener.
	p.inflight.Wait()
}

// drainLocked takes ownership of the pending batches. Callers must hold mu.
func (p *Processor) drainLocked() map[string][]map[string]any {
	if p.count == 0 {
		return nil
	}

	batches := p.pending
	p.pending = make(map[string][]map[string]any)
	p.count = 0
	return batches
}

// dispatch submits each per-index batch, blocking while the in-flight
// limit is reached.
func (p *Processor) dispatch(ctx context.Context, batches map[string][]map[string]any) {
	logger := loggerpkg.FromContext(ctx)

	for indexName, docs := range batches {
		p.inflight.Go(func() error {
			ctx, span := p.tp.Start(ctx, "Processor.dispatch")
			defer span.End()

			err := p.retry.RunCtx(ctx, func(ctx context.Context) error {
				return p.submitter.UpsertDocuments(ctx, indexName, docs)
			})
			p.listener.OnFlush(len(docs), err)
			if err != nil {
				logger.Error("bulk submission failed",
					zap.String("index", indexName),
					zap.Int("docs", len(docs)),
					zap.Error(err),
				)
			}
			return nil
		})
	}
}
