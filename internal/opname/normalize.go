package opname

import (
	"sort"
	"strings"

	"github.com/sarkop/opname/internal/domain"
)

// Columns names the reserved columns of the form-submission table. Every
// other non-empty column is an item observation.
type Columns struct {
	Timestamp string
	Email     string
	Staff     string
}

// DefaultColumns matches the production form layout.
func DefaultColumns() Columns {
	return Columns{
		Timestamp: "Timestamp",
		Email:     "Email address",
		Staff:     "PNS yang mengisi:",
	}
}

// IsMeta reports whether a column header is a reserved or auto-generated
// column rather than an item observation. Sheets names unanswered form
// columns "Column N", hence the prefix check.
func (c Columns) IsMeta(key string) bool {
	return key == c.Timestamp || key == c.Email || key == c.Staff ||
		strings.HasPrefix(key, "Column")
}

// Normalize zips a header row and data rows into one StockRecord per row.
// Missing trailing cells map to empty strings, never to absent keys. Tables
// with fewer than two rows (header plus at least one data row) yield an
// empty result. Rows carrying neither a timestamp nor an email value are
// dropped as stray blanks at the end of the sheet.
func Normalize(table domain.Table, cols Columns) []domain.StockRecord {
	if len(table.Header) == 0 || len(table.Rows) == 0 {
		return nil
	}

	records := make([]domain.StockRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(domain.StockRecord, len(table.Header))
		for i, header := range table.Header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[header] = value
		}

		if record[cols.Timestamp] == "" && record[cols.Email] == "" {
			continue
		}
		records = append(records, record)
	}

	return records
}

// CleanLabel strips the bracketed suffix from an item header:
// "Rice [kg]" becomes "Rice". Two headers normalizing to the same label
// denote the same item.
func CleanLabel(header string) string {
	if idx := strings.Index(header, " ["); idx >= 0 {
		return header[:idx]
	}

	return header
}

// ExtractItems pulls the item-label to observed-value pairs out of one
// submission, skipping reserved columns and empty cells and normalizing
// labels through CleanLabel. When two raw headers clean to the same label,
// the header sorting last wins; raw keys are visited in sorted order so the
// outcome does not depend on map iteration.
func ExtractItems(record domain.StockRecord, cols Columns) map[string]string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make(map[string]string)
	for _, key := range keys {
		if cols.IsMeta(key) {
			continue
		}
		value := record[key]
		if strings.TrimSpace(value) == "" {
			continue
		}
		items[CleanLabel(key)] = value
	}

	return items
}
