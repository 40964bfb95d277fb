package aggregating

import (
	"sort"
	"time"

	"github.com/promowebkz/deal-report-api/internal/domain"
)

// PartitionByDay splits deal records into calendar-day buckets keyed
// by YYYY-MM-DD, derived from updated_at in the given zone. Records
// without an updated_at were already rejected by the normalizer.
func PartitionByDay(deals []domain.Deal, location *time.Location) map[string][]domain.Deal {
	buckets := make(map[string][]domain.Deal)

	for _, deal := range deals {
		if deal.UpdatedAt == nil {
			continue
		}

		day := deal.UpdatedAt.In(location).Format(time.DateOnly)
		buckets[day] = append(buckets[day], deal)
	}

	return buckets
}

// DaysOf returns the distinct dates present in the buckets in
// ascending order. Backfill mode iterates these.
func DaysOf(buckets map[string][]domain.Deal) []string {
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
