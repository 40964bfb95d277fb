package utils

import "time"

// ExportTimestampLayout is the day-month-year format used by the
// amoCRM export for every timestamp column.
const ExportTimestampLayout = "02.01.2006 15:04:05"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseExportTimestamp parses a timestamp cell of the export in the
// configured day-bucketing zone. Empty cells yield nil.
func ParseExportTimestamp(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	ts, err := time.ParseInLocation(ExportTimestampLayout, value, loc)
	if err != nil {
		return nil, err
	}

	return &ts, nil
}

// FormatExportTimestamp renders a timestamp back in the export layout.
// Nil timestamps become the empty string.
func FormatExportTimestamp(ts *time.Time) string {
	if ts == nil {
		return ""
	}

	return ts.Format(ExportTimestampLayout)
}
