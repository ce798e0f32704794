package opname

import (
	"sort"

	"github.com/sarkop/opname/internal/domain"
)

// Absent is the sentinel shown when an item was not observed in a snapshot.
const Absent = "-"

// BuildRangeRows produces the per-day before/after item tables for the
// inclusive [start, end] window. Each selected day is diffed against the
// nearest earlier day with data, searched over the full snapshot history so
// the "before" day may fall outside the requested range. A window with no
// available days yields an empty map, not an error.
func BuildRangeRows(daily map[domain.DayKey]domain.StockRecord, cols Columns, start, end domain.DayKey) map[domain.DayKey][]domain.ItemRow {
	allDays := SortedDays(daily)

	rowsByDay := make(map[domain.DayKey][]domain.ItemRow)
	for i, day := range allDays {
		if !day.InRange(start, end) {
			continue
		}

		current := ExtractItems(daily[day], cols)

		previous := map[string]string{}
		if i > 0 {
			previous = ExtractItems(daily[allDays[i-1]], cols)
		}

		names := make(map[string]struct{}, len(current)+len(previous))
		for name := range previous {
			names[name] = struct{}{}
		}
		for name := range current {
			names[name] = struct{}{}
		}

		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)

		rows := make([]domain.ItemRow, 0, len(sorted))
		for _, name := range sorted {
			rows = append(rows, domain.ItemRow{
				ItemName: name,
				Before:   valueOrAbsent(previous, name),
				After:    valueOrAbsent(current, name),
			})
		}
		rowsByDay[day] = rows
	}

	return rowsByDay
}

// SortedDays returns the snapshot's day keys in chronological order.
func SortedDays[V any](daily map[domain.DayKey]V) []domain.DayKey {
	days := make([]domain.DayKey, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days
}

func valueOrAbsent(items map[string]string, name string) string {
	if v, ok := items[name]; ok {
		return v
	}

	return Absent
}
