package domain

// DealsDetail carries per-field parallel lists for every deal of one
// stage category on one day. These values go verbatim into the report
// prompt, so nothing is aggregated or truncated here.
type DealsDetail struct {
	IDs                  []string  `json:"id"`
	Names                []string  `json:"name"`
	Prices               []float64 `json:"price"`
	CreatedAt            []string  `json:"created_at"`
	UpdatedAt            []string  `json:"updated_at"`
	ResponsibleEmployees []string  `json:"responsible_employee"`
}

// EmployeeActivity summarizes one employee's movement for a day.
type EmployeeActivity struct {
	DealsTaken        int `json:"deals_taken"`
	DealsClosedFailed int `json:"deals_closed_failed"`
}

// DailyAggregate is one entry of the cumulative log, keyed by calendar
// date (YYYY-MM-DD). Every value is already reduced to portable
// scalar/collection types so the entry can be serialized as-is.
type DailyAggregate struct {
	Date                  string                      `json:"date"`
	TotalRevenue          float64                     `json:"total_revenue"`
	Margin                float64                     `json:"margin"`
	RevenuePerEmployee    map[string]float64          `json:"revenue_per_employee"`
	DealStageCounts       map[string]int              `json:"deal_stage_counts"`
	EmployeeActivity      map[string]EmployeeActivity `json:"employee_activity"`
	SuccessfulDealsDetail *DealsDetail                `json:"successful_deals_detail"`
	FailedDealsDetail     *DealsDetail                `json:"failed_deals_detail"`
}

// DailySummary is the per-day payload the OpenAI report generator
// receives. It wraps the aggregate together with the diagnostics the
// pipeline collected while producing it.
type DailySummary struct {
	Date       string          `json:"date"`
	Aggregate  *DailyAggregate `json:"aggregate"`
	Warnings   []string        `json:"warnings,omitempty"`
	Rejections []RowRejection  `json:"rejected_rows,omitempty"`
}
