package querying

import (
	"context"

	"github.com/promowebkz/deal-report-api/infrastructure/cumulative"
	"github.com/promowebkz/deal-report-api/infrastructure/integrator/narrative"
	"github.com/promowebkz/deal-report-api/internal/domain"
)

// Querier serves the interactive query path. It only reads from the
// cumulative store; the store's locking keeps these reads safe while
// the scheduled pipeline rewrites the log.
type Querier interface {
	History() ([]*domain.DailyAggregate, error)
	HistoryByDate(date string) (*domain.DailyAggregate, error)
	Ask(ctx context.Context, question string) (string, error)
}

type Service struct {
	store    cumulative.Store
	narrator narrative.Narrator
}

func NewService(store cumulative.Store, narrator narrative.Narrator) *Service {
	return &Service{
		store:    store,
		narrator: narrator,
	}
}

func (s *Service) History() ([]*domain.DailyAggregate, error) {
	return s.store.ReadAll()
}

func (s *Service) HistoryByDate(date string) (*domain.DailyAggregate, error) {
	return s.store.GetByDate(date)
}

// Ask answers an ad-hoc question through the OpenAI report generator,
// using the flattened cumulative log as its context.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	entries, err := s.store.ReadAll()
	if err != nil {
		return "", err
	}

	return s.narrator.AnswerQuestion(ctx, question, Flatten(entries))
}

// Flatten turns the ordered log into a flat mapping of field name to
// per-day value list, the shape embedded in the question prompt.
func Flatten(entries []*domain.DailyAggregate) map[string][]any {
	history := map[string][]any{
		"date":                    {},
		"total_revenue":           {},
		"margin":                  {},
		"revenue_per_employee":    {},
		"deal_stage_counts":       {},
		"employee_activity":       {},
		"successful_deals_detail": {},
		"failed_deals_detail":     {},
	}

	for _, entry := range entries {
		history["date"] = append(history["date"], entry.Date)
		history["total_revenue"] = append(history["total_revenue"], entry.TotalRevenue)
		history["margin"] = append(history["margin"], entry.Margin)
		history["revenue_per_employee"] = append(history["revenue_per_employee"], entry.RevenuePerEmployee)
		history["deal_stage_counts"] = append(history["deal_stage_counts"], entry.DealStageCounts)
		history["employee_activity"] = append(history["employee_activity"], entry.EmployeeActivity)
		history["successful_deals_detail"] = append(history["successful_deals_detail"], entry.SuccessfulDealsDetail)
		history["failed_deals_detail"] = append(history["failed_deals_detail"], entry.FailedDealsDetail)
	}

	return history
}
