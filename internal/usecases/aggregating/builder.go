package aggregating

import (
	"fmt"
	"strings"

	"github.com/promowebkz/deal-report-api/internal/domain"
	"github.com/promowebkz/deal-report-api/internal/usecases/normalizing"
	"github.com/promowebkz/deal-report-api/pkg/log"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// BuildDailyAggregate runs every calculator over one day's records and
// assembles the portable aggregate entry.
//
// The price column is a hard precondition for the whole day: without
// it no revenue figure exists and the day is aborted. The employee
// activity calculator has its own precondition (activity and closing
// timestamp columns); when it fails only that metric is omitted and
// the rest of the aggregate is still produced. Unmapped statuses are
// surfaced as warnings, never silently merged into another category.
func BuildDailyAggregate(date string, deals []domain.Deal, schema *normalizing.Result, cfg Config) (*domain.DailyAggregate, []string, error) {
	if !schema.HasColumn(normalizing.ColumnPrice) {
		return nil, nil, fmt.Errorf("price column missing from the export schema")
	}

	warnings := make([]string, 0)

	revenue := TotalRevenueAndMargin(deals, cfg)
	perEmployee := RevenuePerEmployee(deals, cfg)

	stageCounts, unknownStatuses := DealStageCounts(deals, cfg)
	if len(unknownStatuses) > 0 {
		warning := fmt.Sprintf("unclassified statuses: %s", strings.Join(unknownStatuses, ", "))
		warnings = append(warnings, warning)

		log.L.WithFields(log.Fields{
			"date":     date,
			"statuses": unknownStatuses,
		}).Warn("Deals with statuses outside the configured mapping counted as unclassified")
	}

	aggregate := &domain.DailyAggregate{
		Date:                  date,
		TotalRevenue:          utils.RoundWithTwoDecimalPlace(revenue.TotalRevenue.InexactFloat64()),
		Margin:                utils.RoundWithTwoDecimalPlace(revenue.Margin.InexactFloat64()),
		RevenuePerEmployee:    revenuePortable(perEmployee),
		DealStageCounts:       stageCountsPortable(stageCounts),
		SuccessfulDealsDetail: DealDetails(deals, domain.StageSuccessful, cfg),
		FailedDealsDetail:     DealDetails(deals, domain.StageFailed, cfg),
	}

	if schema.HasColumn(normalizing.ColumnUpdatedAt) && schema.HasColumn(normalizing.ColumnClosedAt) {
		aggregate.EmployeeActivity = EmployeeActivity(deals, cfg)
	} else {
		warning := "employee activity skipped: activity or closing timestamp column missing"
		warnings = append(warnings, warning)

		log.L.WithField("date", date).Warn(warning)
	}

	return aggregate, warnings, nil
}

// BuildSummary packages one day's aggregate and its diagnostics into
// the payload the OpenAI report generator receives.
func BuildSummary(aggregate *domain.DailyAggregate, warnings []string, rejections []domain.RowRejection) *domain.DailySummary {
	return &domain.DailySummary{
		Date:       aggregate.Date,
		Aggregate:  aggregate,
		Warnings:   warnings,
		Rejections: rejections,
	}
}
