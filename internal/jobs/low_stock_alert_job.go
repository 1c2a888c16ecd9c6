package jobs

import (
	"context"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/observability"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultLowStockSchedule = "@every 5m"

type LowStockReader interface {
	Handle(ctx context.Context, query queries.GetLowStockQuery) ([]queries.GetLowStockQueryResponse, error)
}

// LowStockReporter receives the number of low records found by each run.
type LowStockReporter interface {
	SetLowStock(n int)
}

// LowStockAlertJob reports inventory that is running out.
type LowStockAlertJob struct {
	reader    LowStockReader
	reporter  LowStockReporter
	threshold int
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewLowStockAlertJob creates the job. An empty schedule means
// DefaultLowStockSchedule; reporter may be nil.
func NewLowStockAlertJob(
	reader LowStockReader,
	reporter LowStockReporter,
	threshold int,
	schedule string,
	logger *zap.Logger,
) *LowStockAlertJob {
	if schedule == "" {
		schedule = DefaultLowStockSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "low_stock_alert_job"))
	cronLogger := observability.NewCronLogger(logger)

	return &LowStockAlertJob{
		reader:    reader,
		reporter:  reporter,
		threshold: threshold,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// Run performs one check and returns the low records.
func (j *LowStockAlertJob) Run(ctx context.Context) ([]queries.GetLowStockQueryResponse, error) {
	query, err := queries.NewGetLowStockQuery(j.threshold)
	if err != nil {
		return nil, err
	}

	records, err := j.reader.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		j.logger.Warn("Low stock",
			zap.Int64("inventory_id", r.InventoryID),
			zap.Int64("product_id", r.ProductID),
			zap.String("product", r.ProductName),
			zap.Int64("store_id", r.StoreID),
			zap.String("store", r.StoreName),
			zap.Int("quantity", r.Quantity),
			zap.Int("threshold", j.threshold),
		)
	}
	if j.reporter != nil {
		j.reporter.SetLowStock(len(records))
	}
	return records, nil
}

// Start schedules the job.
func (j *LowStockAlertJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("Low stock alert job failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Low stock alert job started", zap.String("schedule", j.schedule), zap.Int("threshold", j.threshold))
	return nil
}

// Stop unschedules the job and waits for a running check to finish.
func (j *LowStockAlertJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Low stock alert job stopped")
}
