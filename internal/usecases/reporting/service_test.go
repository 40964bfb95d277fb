package reporting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/promowebkz/deal-report-api/infrastructure/cumulative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/amocrm/mocks"
	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	m.Run()
}

func testAppConfig() *config.Config {
	return &config.Config{
		Pipeline: config.Pipeline{
			MarginRate:          0.2,
			SuccessfulStatuses:  []string{"НА ПРОВЕРКЕ", "УСПЕШНО РЕАЛИЗОВАНО"},
			FailedStatuses:      []string{"ЗАКРЫТО И НЕ РЕАЛИЗОВАНО"},
			InProgressStatuses:  []string{"В РАБОТЕ | БРОНЬ"},
			ExcludedEmployees:   []string{"Нераспределенные"},
			TimezoneOffsetHours: 0,
		},
		Columns: config.Columns{
			ID:                  []string{"id"},
			Name:                []string{"name"},
			Price:               []string{"price"},
			StatusID:            []string{"status_id"},
			ResponsibleEmployee: []string{"responsible_employee"},
			CreatedAt:           []string{"created_at"},
			UpdatedAt:           []string{"updated_at"},
			ClosedAt:            []string{"closed_at"},
		},
	}
}

var exportHeader = []string{"id", "name", "price", "status_id", "responsible_employee", "created_at", "updated_at", "closed_at"}

func exportRows() [][]string {
	return [][]string{
		exportHeader,
		{"1", "Deal 1", "100", "НА ПРОВЕРКЕ", "A", "01.01.2024 08:00:00", "01.01.2024 10:00:00", ""},
		{"2", "Deal 2", "200", "УСПЕШНО РЕАЛИЗОВАНО", "A", "01.01.2024 08:30:00", "01.01.2024 11:00:00", ""},
		{"3", "Deal 3", "300", "ЗАКРЫТО И НЕ РЕАЛИЗОВАНО", "B", "01.01.2024 09:00:00", "01.01.2024 12:00:00", "01.01.2024 12:00:00"},
	}
}

func TestService_RunDaily(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockExportClient(ctrl)
	mockFetcher.EXPECT().FetchRows(gomock.Any()).Return(exportRows(), nil)

	store := cumulative.NewFileStore(filepath.Join(t.TempDir(), "log.json"))
	service := NewService(testAppConfig(), mockFetcher, store)

	target := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)

	summary, err := service.RunDaily(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", summary.Date)
	assert.Equal(t, 600.0, summary.Aggregate.TotalRevenue)
	assert.Equal(t, 120.0, summary.Aggregate.Margin)
	assert.Equal(t, map[string]float64{"A": 300, "B": 300}, summary.Aggregate.RevenuePerEmployee)
	assert.Equal(t, map[string]int{
		"successful":   2,
		"failed":       1,
		"in_progress":  0,
		"unclassified": 0,
	}, summary.Aggregate.DealStageCounts)

	// The aggregate is persisted under its date key.
	stored, err := store.GetByDate("2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 600.0, stored.TotalRevenue)
}

func TestService_RunDaily_BadPriceRowIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := exportRows()
	rows = append(rows, []string{"4", "Broken", "12x0", "НА ПРОВЕРКЕ", "A", "", "01.01.2024 13:00:00", ""})

	mockFetcher := mocks.NewMockExportClient(ctrl)
	mockFetcher.EXPECT().FetchRows(gomock.Any()).Return(rows, nil)

	store := cumulative.NewFileStore(filepath.Join(t.TempDir(), "log.json"))
	service := NewService(testAppConfig(), mockFetcher, store)

	summary, err := service.RunDaily(context.Background(), time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Revenue reflects only the valid rows and the bad row leaves a diagnostic.
	assert.Equal(t, 600.0, summary.Aggregate.TotalRevenue)
	require.Len(t, summary.Rejections, 1)
	assert.Equal(t, "price", summary.Rejections[0].Field)
}

func TestService_RunDaily_RerunReplacesTheEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockExportClient(ctrl)
	mockFetcher.EXPECT().FetchRows(gomock.Any()).Return(exportRows(), nil).Times(2)

	store := cumulative.NewFileStore(filepath.Join(t.TempDir(), "log.json"))
	service := NewService(testAppConfig(), mockFetcher, store)

	target := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := service.RunDaily(context.Background(), target)
	require.NoError(t, err)
	_, err = service.RunDaily(context.Background(), target)
	require.NoError(t, err)

	entries, err := store.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestService_RunBackfill_MatchesSingleDayRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := [][]string{
		exportHeader,
		{"1", "Deal 1", "100", "НА ПРОВЕРКЕ", "A", "", "01.01.2024 10:00:00", ""},
		{"2", "Deal 2", "250", "В РАБОТЕ | БРОНЬ", "B", "", "02.01.2024 10:00:00", ""},
		{"3", "Deal 3", "300", "ЗАКРЫТО И НЕ РЕАЛИЗОВАНО", "B", "", "02.01.2024 15:00:00", "02.01.2024 15:00:00"},
	}

	mockFetcher := mocks.NewMockExportClient(ctrl)
	mockFetcher.EXPECT().FetchRows(gomock.Any()).Return(rows, nil).Times(3)

	dir := t.TempDir()

	backfillStore := cumulative.NewFileStore(filepath.Join(dir, "backfill.json"))
	backfillService := NewService(testAppConfig(), mockFetcher, backfillStore)

	result, err := backfillService.RunBackfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.DaysProcessed)
	assert.Equal(t, 0, result.DaysFailed)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, result.Dates)

	dailyStore := cumulative.NewFileStore(filepath.Join(dir, "daily.json"))
	dailyService := NewService(testAppConfig(), mockFetcher, dailyStore)

	_, err = dailyService.RunDaily(context.Background(), time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = dailyService.RunDaily(context.Background(), time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Backfill over N days is indistinguishable from N single-day runs.
	backfilled, err := backfillStore.ReadAll()
	require.NoError(t, err)
	daily, err := dailyStore.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, daily, backfilled)
}

func TestService_RunDaily_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockExportClient(ctrl)
	mockFetcher.EXPECT().FetchRows(gomock.Any()).Return(nil, assert.AnError)

	store := cumulative.NewFileStore(filepath.Join(t.TempDir(), "log.json"))
	service := NewService(testAppConfig(), mockFetcher, store)

	_, err := service.RunDaily(context.Background(), time.Now())
	assert.Error(t, err)
}
