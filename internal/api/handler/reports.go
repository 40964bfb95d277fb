package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/promowebkz/deal-report-api/internal/usecases/querying"
	"github.com/promowebkz/deal-report-api/pkg/apiErrors"
	"github.com/promowebkz/deal-report-api/pkg/log"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// GetReports returns the full cumulative log ordered by date
func GetReports(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		entries, err := service.History()
		if err != nil {
			logger.WithError(err).Error("reports: could not read the cumulative log")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "could not read the report history", nil)
			return
		}

		logger.WithFields(log.Fields{
			"entries": len(entries),
		}).Info("reports: history served")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.WithError(err).Error("reports: could not encode the response")
		}
	})
}

// GetReportByDate returns the aggregate stored for one date
func GetReportByDate(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		date := httprouter.ParamsFromContext(r.Context()).ByName("date")
		if _, err := utils.ParseDate(date); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date must be YYYY-MM-DD", nil)
			return
		}

		entry, err := service.HistoryByDate(date)
		if err != nil {
			logger.WithError(err).WithField("date", date).Error("reports: could not read the cumulative log")
			apiErrors.WriteError(w, apiErrors.ErrStoreOperation, "could not read the report history", nil)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "no aggregate stored for this date", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("reports: could not encode the response")
		}
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// AskQuestion answers an ad-hoc question over the stored history via
// the OpenAI report generator
func AskQuestion(service querying.Querier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "a question is required", nil)
			return
		}

		answer, err := service.Ask(r.Context(), req.Question)
		if err != nil {
			logger.WithError(err).Error("ask: report generation failed")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "could not answer the question", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(askResponse{Answer: answer}); err != nil {
			logger.WithError(err).Error("ask: could not encode the response")
		}
	})
}
