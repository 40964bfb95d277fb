package handler

import (
	"net/http"

	"github.com/promowebkz/deal-report-api/internal/api/handler/router"
	"github.com/promowebkz/deal-report-api/internal/usecases/querying"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Reports(service querying.Querier) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: GetReports(service),
		},
		{
			Path:    "/v1/reports/:date",
			Method:  http.MethodGet,
			Handler: GetReportByDate(service),
		},
		{
			Path:    "/v1/ask",
			Method:  http.MethodPost,
			Handler: AskQuestion(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
