package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	narrativemocks "github.com/promowebkz/deal-report-api/infrastructure/integrator/narrative/mocks"
	telegrammocks "github.com/promowebkz/deal-report-api/infrastructure/integrator/telegram/mocks"
	"github.com/promowebkz/deal-report-api/internal/domain"
	reportingmocks "github.com/promowebkz/deal-report-api/internal/usecases/reporting/mocks"
)

func TestDailyReportSyncService_runDailyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)
	mockNarrator := narrativemocks.NewMockNarrator(ctrl)
	mockSender := telegrammocks.NewMockSender(ctrl)

	service := &DailyReportSyncService{
		location: time.UTC,
		reporter: mockReporter,
		narrator: mockNarrator,
		sender:   mockSender,
	}

	summary := &domain.DailySummary{
		Date:      "2024-01-01",
		Aggregate: &domain.DailyAggregate{Date: "2024-01-01", TotalRevenue: 600},
	}

	mockReporter.EXPECT().
		RunDaily(gomock.Any(), gomock.Any()).
		Return(summary, nil)

	mockNarrator.EXPECT().
		GenerateDailyReport(gomock.Any(), summary).
		Return("Выручка 600 ₸, маржа 120 ₸", nil)

	mockSender.EXPECT().ResolveChatID().Return(int64(42), nil)
	mockSender.EXPECT().
		SendMessage(int64(42), gomock.Any()).
		DoAndReturn(func(_ int64, text string) error {
			assert.True(t, strings.HasPrefix(text, "Ежедневный отчёт:"))
			assert.Contains(t, text, "Выручка 600 ₸")
			return nil
		})

	service.runDailyReport(context.Background())

	startedAt, completedAt := service.LastRun()
	assert.False(t, startedAt.IsZero())
	assert.False(t, completedAt.IsZero())
}

func TestDailyReportSyncService_runDailyReport_PipelineFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)
	mockNarrator := narrativemocks.NewMockNarrator(ctrl)
	mockSender := telegrammocks.NewMockSender(ctrl)

	service := &DailyReportSyncService{
		location: time.UTC,
		reporter: mockReporter,
		narrator: mockNarrator,
		sender:   mockSender,
	}

	// A failing run must not reach the narrative or delivery steps;
	// the scheduler survives to its next tick.
	mockReporter.EXPECT().
		RunDaily(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	service.runDailyReport(context.Background())
}

func TestDailyReportSyncService_runDailyReport_NarrativeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporter := reportingmocks.NewMockReporter(ctrl)
	mockNarrator := narrativemocks.NewMockNarrator(ctrl)
	mockSender := telegrammocks.NewMockSender(ctrl)

	service := &DailyReportSyncService{
		location: time.UTC,
		reporter: mockReporter,
		narrator: mockNarrator,
		sender:   mockSender,
	}

	summary := &domain.DailySummary{Date: "2024-01-01"}

	// The aggregate is already persisted by the reporter; a narrative
	// failure only skips the delivery.
	mockReporter.EXPECT().
		RunDaily(gomock.Any(), gomock.Any()).
		Return(summary, nil)

	mockNarrator.EXPECT().
		GenerateDailyReport(gomock.Any(), summary).
		Return("", assert.AnError)

	service.runDailyReport(context.Background())
}
