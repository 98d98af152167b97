package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/api/metrics"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deliverTimeout = 30 * time.Second
)

// Deliverer executes one notification job.
type Deliverer interface {
	Deliver(ctx context.Context, job ports.NotificationJob) error
}

// Dispatcher routes notification jobs to a fixed set of workers using
// consistent hashing on the recipient, so jobs for one recipient are
// delivered in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.NotificationJob
	target  Deliverer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, target Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationJob, numWorkers),
		target:  target,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and stop
// when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends a job to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.NotificationJob) {
	idx := d.shardIndex(recipient(job))
	d.workers[idx] <- job
	metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

func recipient(job ports.NotificationJob) string {
	if job.UserID != "" {
		return job.UserID
	}
	return job.Email
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationJob) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case job := <-ch:
			metrics.NotificationsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(context.WithoutCancel(ctx), id, job)
		}
	}
}

// drain delivers the jobs still buffered at shutdown.
func (d *Dispatcher) drain(id int, ch <-chan ports.NotificationJob) {
	for {
		select {
		case job := <-ch:
			d.deliver(context.Background(), id, job)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, job ports.NotificationJob) {
	ctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	if err := d.target.Deliver(ctx, job); err != nil {
		metrics.NotificationsDeliveredTotal.WithLabelValues(job.Type, "error").Inc()
		d.log.Error().Err(err).
			Str("type", job.Type).
			Str("user_id", job.UserID).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsDeliveredTotal.WithLabelValues(job.Type, "ok").Inc()
}
