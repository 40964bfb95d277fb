package reporting

import (
	"context"
	"time"

	"github.com/promowebkz/deal-report-api/infrastructure/cumulative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/amocrm"
	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/domain"
	"github.com/promowebkz/deal-report-api/internal/usecases/aggregating"
	"github.com/promowebkz/deal-report-api/internal/usecases/normalizing"
	"github.com/promowebkz/deal-report-api/pkg/log"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// Reporter drives the aggregation pipeline: fetch the export,
// normalize, partition by day, compute metrics and upsert the results
// into the cumulative store.
type Reporter interface {
	// RunDaily aggregates a single target date (single-day mode).
	RunDaily(ctx context.Context, target time.Time) (*domain.DailySummary, error)
	// RunBackfill aggregates every distinct date found in the export
	// (backfill mode).
	RunBackfill(ctx context.Context) (*BackfillResult, error)
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	DaysProcessed int      `json:"days_processed"`
	DaysFailed    int      `json:"days_failed"`
	RejectedRows  int      `json:"rejected_rows"`
	Dates         []string `json:"dates"`
}

type Service struct {
	fetcher    amocrm.ExportClient
	store      cumulative.Store
	normalizer *normalizing.Normalizer
	calcConfig aggregating.Config
	location   *time.Location
}

func NewService(cfg *config.Config, fetcher amocrm.ExportClient, store cumulative.Store) *Service {
	location := cfg.Pipeline.Location()

	return &Service{
		fetcher:    fetcher,
		store:      store,
		normalizer: normalizing.New(cfg.Columns, location),
		calcConfig: aggregating.NewConfig(cfg.Pipeline),
		location:   location,
	}
}

func (s *Service) RunDaily(ctx context.Context, target time.Time) (*domain.DailySummary, error) {
	runID, _ := utils.GenerateID()
	date := target.In(s.location).Format(time.DateOnly)

	logger := log.L.WithFields(log.Fields{
		"run_id": runID,
		"date":   date,
		"mode":   "single-day",
	})
	logger.Info("Aggregation run started")

	schema, err := s.fetchAndNormalize(ctx, logger)
	if err != nil {
		return nil, err
	}

	buckets := aggregating.PartitionByDay(schema.Deals, s.location)

	aggregate, warnings, err := aggregating.BuildDailyAggregate(date, buckets[date], schema, s.calcConfig)
	if err != nil {
		logger.WithError(err).Error("Aggregation aborted for the day")
		return nil, err
	}

	if err := s.store.Upsert(aggregate); err != nil {
		logger.WithError(err).Error("Could not persist the daily aggregate")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"records":       len(buckets[date]),
		"rejected_rows": len(schema.Rejections),
		"total_revenue": aggregate.TotalRevenue,
	}).Info("Aggregation run finished")

	return aggregating.BuildSummary(aggregate, warnings, schema.Rejections), nil
}

func (s *Service) RunBackfill(ctx context.Context) (*BackfillResult, error) {
	runID, _ := utils.GenerateID()

	logger := log.L.WithFields(log.Fields{
		"run_id": runID,
		"mode":   "backfill",
	})
	logger.Info("Backfill run started")

	schema, err := s.fetchAndNormalize(ctx, logger)
	if err != nil {
		return nil, err
	}

	buckets := aggregating.PartitionByDay(schema.Deals, s.location)

	result := &BackfillResult{
		RejectedRows: len(schema.Rejections),
		Dates:        make([]string, 0, len(buckets)),
	}

	// A failing day must not block the remaining days.
	for _, date := range aggregating.DaysOf(buckets) {
		aggregate, _, err := aggregating.BuildDailyAggregate(date, buckets[date], schema, s.calcConfig)
		if err != nil {
			logger.WithError(err).WithField("date", date).Error("Backfill skipped a day")
			result.DaysFailed++
			continue
		}

		if err := s.store.Upsert(aggregate); err != nil {
			logger.WithError(err).WithField("date", date).Error("Backfill could not persist a day")
			result.DaysFailed++
			continue
		}

		result.DaysProcessed++
		result.Dates = append(result.Dates, date)
	}

	logger.WithFields(log.Fields{
		"days_processed": result.DaysProcessed,
		"days_failed":    result.DaysFailed,
		"rejected_rows":  result.RejectedRows,
	}).Info("Backfill run finished")

	return result, nil
}

func (s *Service) fetchAndNormalize(ctx context.Context, logger log.Logger) (*normalizing.Result, error) {
	rows, err := s.fetcher.FetchRows(ctx)
	if err != nil {
		logger.WithError(err).Error("Could not fetch the deal export")
		return nil, err
	}

	schema, err := s.normalizer.Normalize(rows)
	if err != nil {
		logger.WithError(err).Error("Could not normalize the export")
		return nil, err
	}

	return schema, nil
}
