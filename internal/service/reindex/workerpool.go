package reindex

import "context"

const (
	// workerCount is the number of goroutines draining the task queue.
	workerCount = 2
	// queueDepth is the number of accepted-but-not-started runs.
	queueDepth = 5
)

// workerPool is a fixed-size pool with a bounded queue. When the queue is
// full the submitting goroutine runs the task itself, trading latency for
// backpressure instead of unbounded buffering.
type workerPool struct {
	tasks chan func()
}

func newWorkerPool(ctx context.Context) *workerPool {
	p := &workerPool{
		tasks: make(chan func(), queueDepth),
	}

	for i := 0; i < workerCount; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-p.tasks:
					task()
				}
			}
		}()
	}

	return p
}

// Submit enqueues the task, or runs it inline when the queue is full.
func (p *workerPool) Submit(task func()) {
	select {
	case p.tasks <- task:
	default:
		task()
	}
}
