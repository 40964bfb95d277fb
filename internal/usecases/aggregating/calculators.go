package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/domain"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// Config is the explicit calculator configuration. It is passed into
// every calculator so the same functions can run against different
// mappings in tests.
type Config struct {
	MarginRate        decimal.Decimal
	StageByStatus     map[string]domain.StageCategory
	ExcludedEmployees map[string]struct{}
}

// NewConfig builds the calculator configuration from the application
// pipeline settings.
func NewConfig(pipeline config.Pipeline) Config {
	stages := make(map[string]domain.StageCategory)
	for _, status := range pipeline.SuccessfulStatuses {
		stages[status] = domain.StageSuccessful
	}
	for _, status := range pipeline.FailedStatuses {
		stages[status] = domain.StageFailed
	}
	for _, status := range pipeline.InProgressStatuses {
		stages[status] = domain.StageInProgress
	}

	excluded := make(map[string]struct{})
	for _, employee := range pipeline.ExcludedEmployees {
		excluded[employee] = struct{}{}
	}

	return Config{
		MarginRate:        decimal.NewFromFloat(pipeline.MarginRate),
		StageByStatus:     stages,
		ExcludedEmployees: excluded,
	}
}

// IsExcluded reports whether the employee is a sentinel value filtered
// from employee-scoped aggregates.
func (c Config) IsExcluded(employee string) bool {
	_, ok := c.ExcludedEmployees[employee]
	return ok
}

// Categorize maps a status label to its stage category.
func (c Config) Categorize(statusID string) domain.StageCategory {
	if category, ok := c.StageByStatus[statusID]; ok {
		return category
	}
	return domain.StageUnclassified
}

// RevenueMargin is the result of the revenue calculator.
type RevenueMargin struct {
	TotalRevenue decimal.Decimal
	Margin       decimal.Decimal
}

// TotalRevenueAndMargin sums the price of every deal and applies the
// configured margin rate. The schema precondition (price column
// present) is checked by the caller against the normalizer result.
func TotalRevenueAndMargin(deals []domain.Deal, cfg Config) RevenueMargin {
	total := decimal.Zero
	for _, deal := range deals {
		total = total.Add(deal.Price)
	}

	return RevenueMargin{
		TotalRevenue: total,
		Margin:       total.Mul(cfg.MarginRate),
	}
}

// RevenuePerEmployee group-sums price by responsible employee,
// excluding the configured sentinel employees.
func RevenuePerEmployee(deals []domain.Deal, cfg Config) map[string]decimal.Decimal {
	revenue := make(map[string]decimal.Decimal)

	for _, deal := range deals {
		if cfg.IsExcluded(deal.ResponsibleEmployee) {
			continue
		}

		revenue[deal.ResponsibleEmployee] = revenue[deal.ResponsibleEmployee].Add(deal.Price)
	}

	return revenue
}

// DealStageCounts counts deals per stage category. Statuses outside
// the configured mapping land in the unclassified bucket and are
// returned separately so the caller can surface them; they are never
// merged into another category.
func DealStageCounts(deals []domain.Deal, cfg Config) (map[domain.StageCategory]int, []string) {
	counts := make(map[domain.StageCategory]int, len(domain.StageCategories))
	for _, category := range domain.StageCategories {
		counts[category] = 0
	}

	unknown := make(map[string]struct{})

	for _, deal := range deals {
		category := cfg.Categorize(deal.StatusID)
		counts[category]++

		if category == domain.StageUnclassified {
			unknown[deal.StatusID] = struct{}{}
		}
	}

	unknownStatuses := make([]string, 0, len(unknown))
	for status := range unknown {
		unknownStatuses = append(unknownStatuses, status)
	}
	sort.Strings(unknownStatuses)

	return counts, unknownStatuses
}

// EmployeeActivity counts, per non-sentinel employee, the deals taken
// and the deals closed with the failed category. Both the activity and
// the closing timestamp columns must be present in the schema; the
// caller enforces this precondition for this calculator only.
func EmployeeActivity(deals []domain.Deal, cfg Config) map[string]domain.EmployeeActivity {
	activity := make(map[string]domain.EmployeeActivity)

	for _, deal := range deals {
		if cfg.IsExcluded(deal.ResponsibleEmployee) {
			continue
		}

		entry := activity[deal.ResponsibleEmployee]
		entry.DealsTaken++

		if deal.ClosedAt != nil && cfg.Categorize(deal.StatusID) == domain.StageFailed {
			entry.DealsClosedFailed++
		}

		activity[deal.ResponsibleEmployee] = entry
	}

	return activity
}

// DealDetails extracts the per-field parallel lists for every deal of
// the given category. Values are carried over losslessly: they go
// verbatim into the report prompt.
func DealDetails(deals []domain.Deal, category domain.StageCategory, cfg Config) *domain.DealsDetail {
	detail := &domain.DealsDetail{
		IDs:                  make([]string, 0),
		Names:                make([]string, 0),
		Prices:               make([]float64, 0),
		CreatedAt:            make([]string, 0),
		UpdatedAt:            make([]string, 0),
		ResponsibleEmployees: make([]string, 0),
	}

	for _, deal := range deals {
		if cfg.Categorize(deal.StatusID) != category {
			continue
		}

		detail.IDs = append(detail.IDs, deal.ID)
		detail.Names = append(detail.Names, deal.Name)
		detail.Prices = append(detail.Prices, deal.Price.InexactFloat64())
		detail.CreatedAt = append(detail.CreatedAt, utils.FormatExportTimestamp(deal.CreatedAt))
		detail.UpdatedAt = append(detail.UpdatedAt, utils.FormatExportTimestamp(deal.UpdatedAt))
		detail.ResponsibleEmployees = append(detail.ResponsibleEmployees, deal.ResponsibleEmployee)
	}

	return detail
}

// stageCountsPortable converts category counts into the serialized
// string-keyed form.
func stageCountsPortable(counts map[domain.StageCategory]int) map[string]int {
	portable := make(map[string]int, len(counts))
	for category, count := range counts {
		portable[string(category)] = count
	}
	return portable
}

// revenuePortable converts decimal sums into plain floats for the
// serialized form.
func revenuePortable(revenue map[string]decimal.Decimal) map[string]float64 {
	portable := make(map[string]float64, len(revenue))
	for employee, amount := range revenue {
		portable[employee] = utils.RoundWithTwoDecimalPlace(amount.InexactFloat64())
	}
	return portable
}
