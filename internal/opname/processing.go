package opname

import (
	"strings"

	"github.com/sarkop/opname/internal/domain"
)

// Processing-table column headers. Matched after trimming, case-insensitive,
// so sheet edits like "par qty " keep working.
const (
	colItem       = "Item"
	colUnit       = "Unit"
	colVendor     = "Vendor"
	colCategory   = "Category"
	colParQty     = "Par Qty"
	colMinRestock = "Min Restock"
	colCurrentQty = "Current Qty"
)

// ParseProcessingTable interprets the inventory processing range into
// current stock items. Quantities parse per ParseQty (non-numeric becomes
// 0); the condition is always recomputed from the quantities, never read
// from the sheet. Rows with an empty item name are dropped.
func ParseProcessingTable(table domain.Table) []domain.CurrentStockItem {
	if len(table.Header) == 0 || len(table.Rows) == 0 {
		return nil
	}

	col := headerIndex(table.Header)

	items := make([]domain.CurrentStockItem, 0, len(table.Rows))
	for _, row := range table.Rows {
		item := domain.CurrentStockItem{
			Item:       cell(row, col, colItem),
			Unit:       cell(row, col, colUnit),
			Vendor:     cell(row, col, colVendor),
			Category:   cell(row, col, colCategory),
			ParQty:     ParseQty(cell(row, col, colParQty)),
			MinRestock: ParseQty(cell(row, col, colMinRestock)),
			CurrentQty: ParseQty(cell(row, col, colCurrentQty)),
		}
		if strings.TrimSpace(item.Item) == "" {
			continue
		}
		item.Condition = EvaluateCondition(item.ParQty, item.CurrentQty, item.MinRestock)
		items = append(items, item)
	}

	return items
}

// Supplier-contact column headers.
const (
	colName  = "Name"
	colMedia = "Media"
	colPhone = "Phone"
	colAlias = "Alias"
)

// ParseSupplierTable interprets the supplier-contact range. Phones are
// normalized to digits only; rows with an empty name are dropped.
func ParseSupplierTable(table domain.Table) []domain.SupplierContact {
	if len(table.Header) == 0 || len(table.Rows) == 0 {
		return nil
	}

	col := headerIndex(table.Header)

	contacts := make([]domain.SupplierContact, 0, len(table.Rows))
	for _, row := range table.Rows {
		contact := domain.SupplierContact{
			Name:  strings.TrimSpace(cell(row, col, colName)),
			Media: strings.TrimSpace(cell(row, col, colMedia)),
			Phone: NormalizePhone(cell(row, col, colPhone)),
			Alias: strings.TrimSpace(cell(row, col, colAlias)),
		}
		if contact.Name == "" {
			continue
		}
		contacts = append(contacts, contact)
	}

	return contacts
}

// NormalizePhone strips everything but digits: "+62 812-3456" -> "628123456".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	return index
}

func cell(row []string, index map[string]int, name string) string {
	i, ok := index[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}

	return row[i]
}
