package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sarkop/opname/internal/domain"
)

const currentStockSheet = "Current Stock"

// CurrentStockXLSX exports the current-stock table as a spreadsheet, urgency
// order preserved from the caller.
func CurrentStockXLSX(items []domain.CurrentStockItem, latest *domain.LatestMeta) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", currentStockSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Item", "Condition", "Current Qty", "Unit", "Min Restock", "Par Qty", "Vendor", "Category"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(currentStockSheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, it := range items {
		values := []interface{}{
			it.Item,
			it.Condition.Label(),
			it.CurrentQty,
			it.Unit,
			it.MinRestock,
			it.ParQty,
			it.Vendor,
			it.Category,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, "", fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(currentStockSheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("write row %d: %w", rowIdx+1, err)
			}
		}
	}

	if latest != nil {
		metaRow := len(items) + 3
		cell, err := excelize.CoordinatesToCellName(1, metaRow)
		if err != nil {
			return nil, "", fmt.Errorf("meta cell: %w", err)
		}
		meta := fmt.Sprintf("Terakhir diperbarui: %s", latest.Timestamp)
		if latest.Staff != "" {
			meta += fmt.Sprintf(" • Oleh: %s", latest.Staff)
		}
		if err := f.SetCellValue(currentStockSheet, cell, meta); err != nil {
			return nil, "", fmt.Errorf("write meta: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("serialize workbook: %w", err)
	}

	return buf, "current-stock-report.xlsx", nil
}
