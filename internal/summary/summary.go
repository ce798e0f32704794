// Package summary turns a window of stock submissions into the report text
// sent to the owner. Two composers exist: a deterministic template and a
// generative-AI backend with the same contract.
package summary

import (
	"context"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
)

// SubmissionDigest is the slice of a submission the composers care about:
// when, who, and the observed items.
type SubmissionDigest struct {
	Timestamp string            `json:"Timestamp"`
	Staff     string            `json:"staff"`
	Items     map[string]string `json:"items"`
}

// Composer produces the report text for a set of submissions in a window.
type Composer interface {
	Summarize(ctx context.Context, digests []SubmissionDigest, startDate, endDate string) (string, error)
}

// Digest extracts the composer-relevant fields from raw submissions,
// normalizing item labels and dropping empty observations.
func Digest(records []domain.StockRecord, cols opname.Columns) []SubmissionDigest {
	digests := make([]SubmissionDigest, 0, len(records))
	for _, rec := range records {
		digests = append(digests, SubmissionDigest{
			Timestamp: rec[cols.Timestamp],
			Staff:     rec[cols.Staff],
			Items:     opname.ExtractItems(rec, cols),
		})
	}

	return digests
}
