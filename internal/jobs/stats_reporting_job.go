// Package jobs provides scheduled background tasks for the marketplace.
// Jobs are cron-based (github.com/robfig/cron/v3) and only read; every
// settlement write stays inside a synchronous request.
package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatsReportingJob logs the marketplace counters once a minute so operators
// see order, dispute and escrow volumes without querying the database.
type StatsReportingJob struct {
	handler queries.GetMarketplaceStatsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatsReportingJob creates a job that reports marketplace stats every minute.
func NewStatsReportingJob(handler queries.GetMarketplaceStatsQueryHandler, logger *slog.Logger) *StatsReportingJob {
	return &StatsReportingJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "stats_reporting_job"),
	}
}

// Start begins the stats reporting job.
func (j *StatsReportingJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetMarketplaceStatsQuery()

		stats, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stats reporting job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Marketplace stats",
			"active_products", stats.ActiveProducts,
			"total_orders", stats.TotalOrders,
			"pending_disputes", stats.PendingDisputes,
			"held_amount", stats.HeldAmount.StringFixed(2),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats reporting job started (running every minute)")
	return nil
}

// Stop stops the stats reporting job.
func (j *StatsReportingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stats reporting job stopped")
}
