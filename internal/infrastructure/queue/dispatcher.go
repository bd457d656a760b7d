package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-console/internal/core/domain"
	"github.com/99minutos/user-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Observer receives queue health signals. Implementations must be cheap.
type Observer interface {
	AuditQueueDepth(workerID string, depth int)
	AuditDropped()
}

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the console id, guaranteeing per-browser event ordering.
// It implements ports.AuditRecorder.
type Dispatcher struct {
	workers  []chan domain.AuditEvent
	repo     ports.AuditRepository
	observer Observer
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. observer may be nil.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, observer Observer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuditEvent, numWorkers),
		repo:     repo,
		observer: observer,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event on the worker owning its console id. It never
// blocks: when that worker's buffer is full the event is dropped and logged.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.ConsoleID)
	select {
	case d.workers[idx] <- event:
		d.reportDepth(idx)
	default:
		if d.observer != nil {
			d.observer.AuditDropped()
		}
		d.log.Warn().
			Str("console_id", event.ConsoleID).
			Str("action", event.Action).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a console id deterministically to a worker index.
func (d *Dispatcher) shardIndex(consoleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(consoleID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) reportDepth(idx int) {
	if d.observer != nil {
		d.observer.AuditQueueDepth(strconv.Itoa(idx), len(d.workers[idx]))
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.reportDepth(id)
			if err := d.repo.InsertAudit(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("console_id", event.ConsoleID).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
		}
	}
}
