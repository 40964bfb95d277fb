package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promowebkz/deal-report-api/internal/domain"
)

func testConfig() Config {
	return Config{
		MarginRate: decimal.NewFromFloat(0.2),
		StageByStatus: map[string]domain.StageCategory{
			"НА ПРОВЕРКЕ":              domain.StageSuccessful,
			"УСПЕШНО РЕАЛИЗОВАНО":      domain.StageSuccessful,
			"ЗАКРЫТО И НЕ РЕАЛИЗОВАНО": domain.StageFailed,
			"В РАБОТЕ | БРОНЬ":         domain.StageInProgress,
		},
		ExcludedEmployees: map[string]struct{}{
			"Нераспределенные": {},
		},
	}
}

func ts(day int, hour int) *time.Time {
	t := time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func deal(id, employee, status string, price int64, closed *time.Time) domain.Deal {
	return domain.Deal{
		ID:                  id,
		Name:                "deal " + id,
		Price:               decimal.NewFromInt(price),
		StatusID:            status,
		ResponsibleEmployee: employee,
		CreatedAt:           ts(1, 8),
		UpdatedAt:           ts(1, 12),
		ClosedAt:            closed,
	}
}

// Reference scenario: prices [100, 200, 300], employees [A, A, B],
// statuses mapping to [successful, successful, failed].
func referenceDeals() []domain.Deal {
	return []domain.Deal{
		deal("1", "A", "НА ПРОВЕРКЕ", 100, nil),
		deal("2", "A", "УСПЕШНО РЕАЛИЗОВАНО", 200, nil),
		deal("3", "B", "ЗАКРЫТО И НЕ РЕАЛИЗОВАНО", 300, ts(1, 18)),
	}
}

func TestTotalRevenueAndMargin(t *testing.T) {
	cfg := testConfig()

	result := TotalRevenueAndMargin(referenceDeals(), cfg)

	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(600)))
	assert.True(t, result.Margin.Equal(decimal.NewFromInt(120)))
}

func TestTotalRevenueAndMargin_MarginIsExact(t *testing.T) {
	for _, rate := range []float64{0.1, 0.2, 0.33, 0.75} {
		cfg := testConfig()
		cfg.MarginRate = decimal.NewFromFloat(rate)

		result := TotalRevenueAndMargin(referenceDeals(), cfg)

		expected := result.TotalRevenue.Mul(decimal.NewFromFloat(rate))
		assert.True(t, result.Margin.Equal(expected), "rate %v", rate)
	}
}

func TestRevenuePerEmployee(t *testing.T) {
	cfg := testConfig()

	revenue := RevenuePerEmployee(referenceDeals(), cfg)

	require.Len(t, revenue, 2)
	assert.True(t, revenue["A"].Equal(decimal.NewFromInt(300)))
	assert.True(t, revenue["B"].Equal(decimal.NewFromInt(300)))
}

func TestRevenuePerEmployee_ExcludesSentinels(t *testing.T) {
	cfg := testConfig()

	deals := append(referenceDeals(),
		deal("4", "Нераспределенные", "В РАБОТЕ | БРОНЬ", 1000, nil),
	)

	revenue := RevenuePerEmployee(deals, cfg)

	_, hasSentinel := revenue["Нераспределенные"]
	assert.False(t, hasSentinel)

	// Sentinel deals still count toward total revenue.
	total := TotalRevenueAndMargin(deals, cfg)
	assert.True(t, total.TotalRevenue.Equal(decimal.NewFromInt(1600)))

	// The per-employee sums never exceed the total.
	sum := decimal.Zero
	for _, amount := range revenue {
		sum = sum.Add(amount)
	}
	assert.True(t, sum.LessThanOrEqual(total.TotalRevenue))
}

func TestDealStageCounts(t *testing.T) {
	cfg := testConfig()

	counts, unknown := DealStageCounts(referenceDeals(), cfg)

	assert.Empty(t, unknown)
	assert.Equal(t, 2, counts[domain.StageSuccessful])
	assert.Equal(t, 1, counts[domain.StageFailed])
	assert.Equal(t, 0, counts[domain.StageInProgress])
	assert.Equal(t, 0, counts[domain.StageUnclassified])
}

func TestDealStageCounts_UnmappedStatusesAreSurfaced(t *testing.T) {
	cfg := testConfig()

	deals := append(referenceDeals(),
		deal("4", "A", "НОВЫЙ ЭТАП", 50, nil),
		deal("5", "B", "НОВЫЙ ЭТАП", 60, nil),
	)

	counts, unknown := DealStageCounts(deals, cfg)

	assert.Equal(t, []string{"НОВЫЙ ЭТАП"}, unknown)
	assert.Equal(t, 2, counts[domain.StageUnclassified])

	// The categories partition the whole record set.
	total := 0
	for _, count := range counts {
		total += count
	}
	assert.Equal(t, len(deals), total)
}

func TestEmployeeActivity(t *testing.T) {
	cfg := testConfig()

	deals := append(referenceDeals(),
		deal("4", "Нераспределенные", "В РАБОТЕ | БРОНЬ", 10, nil),
		deal("5", "B", "ЗАКРЫТО И НЕ РЕАЛИЗОВАНО", 20, ts(1, 19)),
	)

	activity := EmployeeActivity(deals, cfg)

	require.Len(t, activity, 2)
	assert.Equal(t, domain.EmployeeActivity{DealsTaken: 2, DealsClosedFailed: 0}, activity["A"])
	assert.Equal(t, domain.EmployeeActivity{DealsTaken: 2, DealsClosedFailed: 2}, activity["B"])

	_, hasSentinel := activity["Нераспределенные"]
	assert.False(t, hasSentinel)
}

func TestDealDetails(t *testing.T) {
	cfg := testConfig()

	detail := DealDetails(referenceDeals(), domain.StageSuccessful, cfg)

	assert.Equal(t, []string{"1", "2"}, detail.IDs)
	assert.Equal(t, []string{"deal 1", "deal 2"}, detail.Names)
	assert.Equal(t, []float64{100, 200}, detail.Prices)
	assert.Equal(t, []string{"A", "A"}, detail.ResponsibleEmployees)
	assert.Equal(t, []string{"01.01.2024 08:00:00", "01.01.2024 08:00:00"}, detail.CreatedAt)
	assert.Equal(t, []string{"01.01.2024 12:00:00", "01.01.2024 12:00:00"}, detail.UpdatedAt)

	failed := DealDetails(referenceDeals(), domain.StageFailed, cfg)
	assert.Equal(t, []string{"3"}, failed.IDs)
	assert.Equal(t, []float64{300}, failed.Prices)
}
