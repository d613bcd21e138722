package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"agora/internal/core/realtime"
	"agora/internal/metrics"
	notifyPort "agora/internal/ports/notify"
	realtimePort "agora/internal/ports/realtime"

	"go.uber.org/zap"
)

const defaultJobTimeout = 30 * time.Second

// Job کارهای جانبی پس از ثبت نهایی پست: اطلاع‌رسانی لینک و پخش بلادرنگ
type Job struct {
	// Source is the federated id of the new object; Target the link it references.
	Source string
	Target *string
	Event  realtime.Event
}

// Dispatcher اجرای fire-and-forget کارهای جانبی با تعداد محدودی worker
type Dispatcher struct {
	Notifier    notifyPort.LinkNotifier
	Broadcaster realtimePort.Broadcaster
	Workers     int
	JobTimeout  time.Duration
	Metrics     *metrics.Metrics
	Logger      *zap.Logger

	jobs   chan Job
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(
	notifier notifyPort.LinkNotifier,
	broadcaster realtimePort.Broadcaster,
	workers int,
	queueSize int,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		Notifier:    notifier,
		Broadcaster: broadcaster,
		Workers:     workers,
		JobTimeout:  defaultJobTimeout,
		Metrics:     m,
		Logger:      logger,
		jobs:        make(chan Job, queueSize),
	}
}

// Enqueue hands a job to the workers without blocking. It reports false when the
// job was dropped because the queue is full or the dispatcher is closed.
func (d *Dispatcher) Enqueue(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.Logger.Warn("⚠️ Dispatcher closed, dropping job", zap.String("source", job.Source))
		d.Metrics.DispatchDropped.Inc()
		return false
	}
	select {
	case d.jobs <- job:
		return true
	default:
		d.Logger.Warn("⚠️ Dispatch queue full, dropping job", zap.String("source", job.Source))
		d.Metrics.DispatchDropped.Inc()
		return false
	}
}

// Close stops accepting jobs; Run returns once the queue has drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
}

// Run گوش دادن به صف و اجرای کارها تا بسته شدن صف یا لغو ctx
func (d *Dispatcher) Run(ctx context.Context) {
	d.Logger.Info("🚀 Dispatcher started", zap.Int("workers", d.Workers))

	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-d.jobs:
					if !ok {
						return
					}
					d.process(ctx, job)
				}
			}
		}()
	}
	wg.Wait()

	d.Logger.Info("🛑 Dispatcher stopped")
}

// process link notification and broadcast have no dependency on each other.
func (d *Dispatcher) process(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(ctx, d.JobTimeout)
	defer cancel()

	var wg sync.WaitGroup
	if job.Target != nil && *job.Target != "" && d.Notifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.notify(jobCtx, job.Source, *job.Target)
		}()
	}
	if d.Broadcaster != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.broadcast(jobCtx, job.Event)
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) notify(ctx context.Context, source, target string) {
	err := d.Notifier.Notify(ctx, source, target)
	switch {
	case err == nil:
		d.Metrics.NotificationsSent.Inc()
		d.Logger.Debug("✅ Link notification sent", zap.String("source", source), zap.String("target", target))
	case errors.Is(err, notifyPort.ErrNoEndpoint):
		d.Metrics.NotificationSkipped.Inc()
	default:
		d.Metrics.NotificationFailure.Inc()
		d.Logger.Warn("⚠️ Failed to send link notification",
			zap.String("source", source),
			zap.String("target", target),
			zap.Error(err))
	}
}

func (d *Dispatcher) broadcast(ctx context.Context, ev realtime.Event) {
	if err := d.Broadcaster.Broadcast(ctx, ev); err != nil {
		d.Metrics.BroadcastFailures.Inc()
		d.Logger.Warn("⚠️ Failed to broadcast event", zap.String("op", string(ev.Op)), zap.Error(err))
	}
}
