package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/promowebkz/deal-report-api/infrastructure/integrator/narrative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/telegram"
	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/usecases/reporting"
)

// DailyReportSyncConfig holds the scheduling knobs for the daily
// report job.
type DailyReportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DailyReportSyncService schedules the daily pipeline run: aggregate
// yesterday's deals, generate the narrative report and deliver it to
// the chat.
type DailyReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyReportSyncConfig
	location            *time.Location
	reporter            reporting.Reporter
	narrator            narrative.Narrator
	sender              telegram.Sender
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewDailyReportSyncService(
	reporter reporting.Reporter,
	narrator narrative.Narrator,
	sender telegram.Sender,
	appConfig *config.Config,
) *DailyReportSyncService {
	syncConfig := DailyReportSyncConfig{
		CronSchedule: appConfig.DailyReportSync.CronSchedule,
		SyncEnabled:  appConfig.DailyReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(appConfig.Pipeline.Location())

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Daily report scheduler configuration loaded")

	return &DailyReportSyncService{
		scheduler: scheduler,
		config:    syncConfig,
		location:  appConfig.Pipeline.Location(),
		reporter:  reporter,
		narrator:  narrator,
		sender:    sender,
	}
}

// Start schedules the job and runs the scheduler in the background.
func (s *DailyReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Daily report sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting the daily report scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDailyReport(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling the daily report job: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping the daily report scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync runs the job outside its schedule.
func (s *DailyReportSyncService) TriggerManualSync() {
	go s.runDailyReport(context.Background())
}

// LastRun returns the start and completion time of the latest run.
func (s *DailyReportSyncService) LastRun() (time.Time, time.Time) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastSyncStartedAt, s.lastSyncCompletedAt
}

// runDailyReport aggregates yesterday, builds the narrative and sends
// it. A failure is logged and the scheduler survives to its next tick.
func (s *DailyReportSyncService) runDailyReport(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Daily report run already in progress, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	yesterday := time.Now().In(s.location).AddDate(0, 0, -1)

	summary, err := s.reporter.RunDaily(ctx, yesterday)
	if err != nil {
		logrus.WithError(err).Error("Daily report run failed, waiting for the next tick")
		return
	}

	report, err := s.narrator.GenerateDailyReport(ctx, summary)
	if err != nil {
		logrus.WithError(err).Error("Narrative generation failed, aggregate is already persisted")
		return
	}

	chatID, err := s.sender.ResolveChatID()
	if err != nil {
		logrus.WithError(err).Error("Could not resolve the chat ID, report not delivered")
		return
	}

	if err := s.sender.SendMessage(chatID, fmt.Sprintf("Ежедневный отчёт:\n%s", report)); err != nil {
		logrus.WithError(err).Error("Report delivery failed")
		return
	}

	logrus.WithField("date", summary.Date).Info("Daily report delivered")
}
