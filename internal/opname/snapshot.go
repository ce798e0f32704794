package opname

import (
	"time"

	"github.com/sarkop/opname/internal/domain"
)

// LatestPerDay collapses timestamped submissions into one snapshot per
// calendar day: for every day, the submission with the largest instant seen
// that day. A strictly later instant replaces the slot; an equal or earlier
// one does not, so ties resolve first-seen-wins. Submissions whose
// timestamps do not parse are excluded.
func LatestPerDay(records []domain.StockRecord, cols Columns) map[domain.DayKey]domain.StockRecord {
	type slot struct {
		record domain.StockRecord
		at     time.Time
	}

	byDay := make(map[domain.DayKey]slot)
	for _, rec := range records {
		at, ok := ParseTimestamp(rec[cols.Timestamp])
		if !ok {
			continue
		}
		key := domain.DayOf(at)
		if existing, seen := byDay[key]; seen && !at.After(existing.at) {
			continue
		}
		byDay[key] = slot{record: rec, at: at}
	}

	daily := make(map[domain.DayKey]domain.StockRecord, len(byDay))
	for key, s := range byDay {
		daily[key] = s.record
	}

	return daily
}

// LatestSubmission finds the chronologically latest parseable submission
// across the full history, regardless of any requested date range. Returns
// nil when no submission parses.
func LatestSubmission(records []domain.StockRecord, cols Columns) *domain.LatestMeta {
	var (
		best   domain.StockRecord
		bestAt time.Time
		found  bool
	)
	for _, rec := range records {
		at, ok := ParseTimestamp(rec[cols.Timestamp])
		if !ok {
			continue
		}
		if !found || at.After(bestAt) {
			best, bestAt, found = rec, at, true
		}
	}
	if !found {
		return nil
	}

	return &domain.LatestMeta{
		Timestamp: best[cols.Timestamp],
		Staff:     best[cols.Staff],
	}
}

// FilterByRange keeps submissions whose instant falls within the inclusive
// [start, end] day window, end extended to the end of its day.
func FilterByRange(records []domain.StockRecord, cols Columns, start, end domain.DayKey) []domain.StockRecord {
	var filtered []domain.StockRecord
	for _, rec := range records {
		at, ok := ParseTimestamp(rec[cols.Timestamp])
		if !ok {
			continue
		}
		if domain.DayOf(at).InRange(start, end) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}
