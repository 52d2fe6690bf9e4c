package sync

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/metrics"
)

func TestNewWorkerValidatesParams(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	_, err := NewWorker(WorkerParams{Service: &Service{}})
	require.Error(t, err)

	_, err = NewWorker(WorkerParams{Logger: logg})
	require.Error(t, err)

	w, err := NewWorker(WorkerParams{Logger: logg, Service: &Service{}})
	require.NoError(t, err)
	require.Equal(t, defaultInterval, w.interval)

	w, err = NewWorker(WorkerParams{Logger: logg, Service: &Service{}, Interval: time.Minute})
	require.NoError(t, err)
	require.Equal(t, time.Minute, w.interval)
}

func TestWorkerRunsImmediatelyThenStopsOnCancel(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sales := &fakeSales{orders: []remote.Order{order("o1", "1", 2, "1500.00", now)}}
	svc, repo, _ := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})

	reg := prometheus.NewRegistry()
	jobMetrics := metrics.NewSyncJobMetrics(reg)
	worker, err := NewWorker(WorkerParams{
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Service:  svc,
		Metrics:  jobMetrics,
		Interval: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// first cycle runs immediately; all three jobs report success
	require.Eventually(t, func() bool {
		count, err := testutil.GatherAndCount(reg, "sync_job_success")
		return err == nil && count == 3
	}, 2*time.Second, 10*time.Millisecond)

	rows, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
