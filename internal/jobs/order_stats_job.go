package jobs

import (
	"context"
	"log/slog"

	"resale/internal/core/application/usecases/queries"
	"resale/internal/pkg/monitoring"

	"github.com/robfig/cron/v3"
)

// OrderStatsJob periodically refreshes the per-status order count gauge.
// Runs every 30 seconds; the counts query is zero-filled, so a status whose
// last order just left it drops back to zero instead of going stale.
type OrderStatsJob struct {
	handler queries.GetOrderStatusCountsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderStatsJob creates a job that feeds the orders_by_status gauge from
// the status counts query.
func NewOrderStatsJob(handler queries.GetOrderStatusCountsQueryHandler, logger *slog.Logger) *OrderStatsJob {
	return &OrderStatsJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_stats_job"),
	}
}

// Start begins the stats refresh job on a 30 second cadence.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		counts, err := j.handler.Handle(ctx, queries.NewGetOrderStatusCountsQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
			return
		}

		monitoring.SetOrdersByStatus(counts)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every 30 seconds)")
	return nil
}

// Stop stops the stats refresh job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
