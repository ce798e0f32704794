package opname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
)

func TestNormalize_ZipsHeaderAndRows(t *testing.T) {
	table := domain.Table{
		Header: []string{"Timestamp", "Email address", "Rice [kg]"},
		Rows: [][]string{
			{"01/06/2024 08:00:00", "a@sarkop.id", "10"},
			{"01/06/2024 09:00:00", "b@sarkop.id"}, // missing trailing cell
		},
	}

	records := opname.Normalize(table, opname.DefaultColumns())
	require.Len(t, records, 2)
	assert.Equal(t, "10", records[0]["Rice [kg]"])
	// missing trailing cells map to empty string, never to an absent key
	value, ok := records[1]["Rice [kg]"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestNormalize_EmptyTables(t *testing.T) {
	cols := opname.DefaultColumns()

	assert.Empty(t, opname.Normalize(domain.Table{}, cols))
	assert.Empty(t, opname.Normalize(domain.Table{Header: []string{"Timestamp"}}, cols))
}

func TestNormalize_DropsStrayBlankRows(t *testing.T) {
	table := domain.Table{
		Header: []string{"Timestamp", "Email address", "Rice"},
		Rows: [][]string{
			{"01/06/2024 08:00:00", "a@sarkop.id", "10"},
			{"", "", ""},           // stray blank row at the sheet's end
			{"", "b@sarkop.id", ""}, // identifier only: kept
		},
	}

	records := opname.Normalize(table, opname.DefaultColumns())
	require.Len(t, records, 2)
	assert.Equal(t, "b@sarkop.id", records[1]["Email address"])
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Rice", opname.CleanLabel("Rice [kg]"))
	assert.Equal(t, "Rice", opname.CleanLabel("Rice"))
	assert.Equal(t, "Minyak Goreng", opname.CleanLabel("Minyak Goreng [liter]"))
}

func TestExtractItems_SkipsMetaAndEmpty(t *testing.T) {
	cols := opname.DefaultColumns()
	record := domain.StockRecord{
		"Timestamp":         "01/06/2024 08:00:00",
		"Email address":     "a@sarkop.id",
		"PNS yang mengisi:": "Budi",
		"Column 12":         "stray",
		"Rice [kg]":         "10",
		"Sugar [kg]":        "   ",
		"Oil":               "Tidak cukup",
	}

	items := opname.ExtractItems(record, cols)
	assert.Equal(t, map[string]string{
		"Rice": "10",
		"Oil":  "Tidak cukup",
	}, items)
}

func TestExtractItems_DuplicateCleanedLabels(t *testing.T) {
	// Two raw headers cleaning to the same label are the same item; the
	// header sorting last wins, deterministically.
	cols := opname.DefaultColumns()
	record := domain.StockRecord{
		"Item A [kg]":   "1",
		"Item A [unit]": "2",
	}

	items := opname.ExtractItems(record, cols)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items["Item A"])
}
