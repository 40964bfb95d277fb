package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/promowebkz/deal-report-api/internal/scheduler"
	"github.com/promowebkz/deal-report-api/internal/usecases/reporting"
	"github.com/promowebkz/deal-report-api/pkg/apiErrors"
)

// Cron job types that can be triggered manually
const (
	CronJobTypeDaily    = "daily"
	CronJobTypeBackfill = "backfill"
)

// CronJobServices bundles the services needed to run jobs manually
type CronJobServices struct {
	DailyReportSyncService *scheduler.DailyReportSyncService
	Reporter               reporting.Reporter
}

// RunCronJob triggers one job outside its schedule
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypeDaily:
			if services.DailyReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "daily report service not available", nil)
				return
			}
			services.DailyReportSyncService.TriggerManualSync()

		case CronJobTypeBackfill:
			if services.Reporter == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "reporting service not available", nil)
				return
			}

			result, err := services.Reporter.RunBackfill(r.Context())
			if err != nil {
				logrus.WithError(err).Error("Backfill run failed")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "backfill run failed", nil)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(result)
			return

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted values: daily, backfill", nil)
			return
		}

		response := map[string]any{
			"message": "cron job started",
			"type":    cronType,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus reports the last runs of the scheduled jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.DailyReportSyncService != nil {
			startedAt, completedAt := services.DailyReportSyncService.LastRun()
			status["daily_report"] = map[string]any{
				"last_started_at":   startedAt,
				"last_completed_at": completedAt,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
