package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/metrics"
)

const defaultInterval = time.Hour

// WorkerParams configure the scheduled synchronizer.
type WorkerParams struct {
	Logger   *logger.Logger
	Service  *Service
	Metrics  *metrics.SyncJobMetrics
	Interval time.Duration
}

// Worker runs the full synchronization on a fixed cadence.
type Worker struct {
	logg     *logger.Logger
	service  *Service
	metrics  *metrics.SyncJobMetrics
	interval time.Duration
}

// NewWorker builds a sync worker.
func NewWorker(params WorkerParams) (*Worker, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("sync service required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		logg:     params.Logger,
		service:  params.Service,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run starts the sync loop until the context is canceled. The first cycle
// runs immediately.
func (w *Worker) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w.runCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logg.Info(ctx, "sync worker context canceled")
			return ctx.Err()
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	w.logg.Info(ctx, "scheduled synchronization starting")
	jobs := []struct {
		name string
		run  func(context.Context) (int, error)
	}{
		{name: "sync-sales", run: w.service.SyncSales},
		{name: "sync-inventory", run: w.service.SyncInventory},
		{name: "sync-debt", run: w.service.SyncDebt},
	}
	for _, job := range jobs {
		w.runJob(ctx, job.name, job.run)
	}
	w.logg.Info(ctx, "scheduled synchronization complete")
}

func (w *Worker) runJob(ctx context.Context, name string, run func(context.Context) (int, error)) {
	jobCtx := w.logg.WithJob(ctx, name)
	w.logg.Info(jobCtx, "job start")
	start := time.Now()
	rows, err := run(jobCtx)
	duration := time.Since(start)
	w.metrics.ObserveDuration(name, duration)
	jobCtx = w.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		w.logg.Error(jobCtx, "job failed", err)
		w.metrics.IncFailure(name)
		return
	}
	w.metrics.SetRows(name, rows)
	w.metrics.IncSuccess(name)
	jobCtx = w.logg.WithField(jobCtx, "rows", rows)
	w.logg.Info(jobCtx, "job completed")
}
