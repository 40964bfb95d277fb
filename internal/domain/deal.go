package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageCategory is the partition a deal status falls into.
type StageCategory string

const (
	StageSuccessful   StageCategory = "successful"
	StageFailed       StageCategory = "failed"
	StageInProgress   StageCategory = "in_progress"
	StageUnclassified StageCategory = "unclassified"
)

// StageCategories lists the categories in the order they are reported.
var StageCategories = []StageCategory{
	StageSuccessful,
	StageFailed,
	StageInProgress,
	StageUnclassified,
}

// Deal is one canonical sales-deal record produced by the normalizer
// from a raw export row. ClosedAt is nil for open deals; CreatedAt may
// be nil when the export carries an unparsable timestamp.
type Deal struct {
	ID                  string
	Name                string
	Price               decimal.Decimal
	StatusID            string
	ResponsibleEmployee string
	CreatedAt           *time.Time
	UpdatedAt           *time.Time
	ClosedAt            *time.Time
}

// RowRejection is the diagnostic recorded when a raw export row is
// dropped during normalization instead of aborting the whole batch.
type RowRejection struct {
	RowNumber int    `json:"row_number"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Reason    string `json:"reason"`
}
