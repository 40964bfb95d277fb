package normalizing

import (
	"fmt"
	"strings"
	"time"

	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/domain"
	"github.com/promowebkz/deal-report-api/pkg/log"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// Canonical column names produced by the normalizer. Header aliases
// from the export are mapped onto these via configuration.
const (
	ColumnID                  = "id"
	ColumnName                = "name"
	ColumnPrice               = "price"
	ColumnStatusID            = "status_id"
	ColumnResponsibleEmployee = "responsible_employee"
	ColumnCreatedAt           = "created_at"
	ColumnUpdatedAt           = "updated_at"
	ColumnClosedAt            = "closed_at"
)

// Result is the outcome of normalizing one raw export: the canonical
// deal records, the per-row rejection diagnostics and the set of
// canonical columns actually present in the header. Calculators use
// the column set to check their schema preconditions.
type Result struct {
	Deals      []domain.Deal
	Rejections []domain.RowRejection
	Columns    map[string]bool
}

// HasColumn reports whether a canonical column was present in the
// export header.
func (r *Result) HasColumn(name string) bool {
	return r.Columns[name]
}

// Normalizer turns raw tabular rows into canonical deal records.
type Normalizer struct {
	aliases  map[string]string // header alias (lowercased) -> canonical name
	location *time.Location
}

// New builds a normalizer from the configured column aliases and the
// day-bucketing zone.
func New(columns config.Columns, location *time.Location) *Normalizer {
	aliases := make(map[string]string)

	register := func(canonical string, names []string) {
		for _, name := range names {
			aliases[normalizeHeader(name)] = canonical
		}
	}

	register(ColumnID, columns.ID)
	register(ColumnName, columns.Name)
	register(ColumnPrice, columns.Price)
	register(ColumnStatusID, columns.StatusID)
	register(ColumnResponsibleEmployee, columns.ResponsibleEmployee)
	register(ColumnCreatedAt, columns.CreatedAt)
	register(ColumnUpdatedAt, columns.UpdatedAt)
	register(ColumnClosedAt, columns.ClosedAt)

	return &Normalizer{
		aliases:  aliases,
		location: location,
	}
}

// Normalize parses the raw rows (header row first) into deal records.
// Rows with an unparsable price or an unparsable updated_at are dropped
// and collected as diagnostics; every other parsing problem degrades
// the individual field instead of rejecting the row.
func (n *Normalizer) Normalize(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("export contains no rows")
	}

	index, columns := n.mapHeader(rows[0])

	result := &Result{
		Deals:      make([]domain.Deal, 0, len(rows)-1),
		Rejections: make([]domain.RowRejection, 0),
		Columns:    columns,
	}

	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, after the header

		deal, rejection := n.normalizeRow(row, rowNumber, index)
		if rejection != nil {
			log.L.WithFields(log.Fields{
				"row":    rejection.RowNumber,
				"field":  rejection.Field,
				"value":  rejection.Value,
				"reason": rejection.Reason,
			}).Warn("Export row rejected")

			result.Rejections = append(result.Rejections, *rejection)
			continue
		}

		result.Deals = append(result.Deals, *deal)
	}

	return result, nil
}

func (n *Normalizer) normalizeRow(row []string, rowNumber int, index map[string]int) (*domain.Deal, *domain.RowRejection) {
	cell := func(canonical string) string {
		pos, ok := index[canonical]
		if !ok || pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	priceValue := cell(ColumnPrice)
	price, err := utils.ParseLocalizedDecimal(priceValue)
	if err != nil {
		return nil, &domain.RowRejection{
			RowNumber: rowNumber,
			Field:     ColumnPrice,
			Value:     priceValue,
			Reason:    "unparsable price",
		}
	}

	// updated_at is the day-bucketing key; a row without it cannot be
	// attributed to any calendar day.
	updatedValue := cell(ColumnUpdatedAt)
	updatedAt, err := utils.ParseExportTimestamp(updatedValue, n.location)
	if err != nil || updatedAt == nil {
		return nil, &domain.RowRejection{
			RowNumber: rowNumber,
			Field:     ColumnUpdatedAt,
			Value:     updatedValue,
			Reason:    "unparsable updated_at timestamp",
		}
	}

	deal := &domain.Deal{
		ID:                  cell(ColumnID),
		Name:                cell(ColumnName),
		Price:               price,
		StatusID:            cell(ColumnStatusID),
		ResponsibleEmployee: cell(ColumnResponsibleEmployee),
		UpdatedAt:           updatedAt,
	}

	// Secondary timestamps degrade to "unknown time" when unparsable.
	if createdAt, err := utils.ParseExportTimestamp(cell(ColumnCreatedAt), n.location); err == nil {
		deal.CreatedAt = createdAt
	}

	if closedAt, err := utils.ParseExportTimestamp(cell(ColumnClosedAt), n.location); err == nil {
		deal.ClosedAt = closedAt
	}

	return deal, nil
}

// mapHeader resolves the header row against the configured aliases,
// returning the position of each canonical column and the set of
// columns found.
func (n *Normalizer) mapHeader(header []string) (map[string]int, map[string]bool) {
	index := make(map[string]int)
	columns := make(map[string]bool)

	for pos, name := range header {
		canonical, ok := n.aliases[normalizeHeader(name)]
		if !ok {
			continue
		}

		if _, seen := index[canonical]; seen {
			continue
		}

		index[canonical] = pos
		columns[canonical] = true
	}

	return index, columns
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
