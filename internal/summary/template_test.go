package summary_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
	"github.com/sarkop/opname/internal/summary"
)

func TestDigest_ExtractsRelevantFields(t *testing.T) {
	cols := opname.DefaultColumns()
	records := []domain.StockRecord{
		{
			"Timestamp":         "01/06/2024 08:00:00",
			"Email address":     "a@sarkop.id",
			"PNS yang mengisi:": "Budi",
			"Rice [kg]":         "10",
			"Column 9":          "noise",
		},
	}

	digests := summary.Digest(records, cols)
	require.Len(t, digests, 1)
	assert.Equal(t, "01/06/2024 08:00:00", digests[0].Timestamp)
	assert.Equal(t, "Budi", digests[0].Staff)
	assert.Equal(t, map[string]string{"Rice": "10"}, digests[0].Items)
}

func TestTemplateComposer_IsDeterministic(t *testing.T) {
	digests := []summary.SubmissionDigest{
		{
			Timestamp: "01/06/2024 08:00:00",
			Staff:     "Budi",
			Items:     map[string]string{"Rice": "2", "Sugar": "40", "Oil": "Tidak cukup"},
		},
	}

	composer := summary.NewTemplateComposer()
	first, err := composer.Summarize(context.Background(), digests, "2024-06-01", "2024-06-02")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := composer.Summarize(context.Background(), digests, "2024-06-01", "2024-06-02")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTemplateComposer_Content(t *testing.T) {
	digests := []summary.SubmissionDigest{
		{Timestamp: "01/06/2024 08:00:00", Staff: "Budi", Items: map[string]string{"Rice": "2"}},
		{Timestamp: "02/06/2024 09:00:00", Staff: "Sari", Items: map[string]string{"Rice": "1", "Sugar": "40"}},
	}

	composer := summary.NewTemplateComposer()
	text, err := composer.Summarize(context.Background(), digests, "2024-06-01", "2024-06-02")
	require.NoError(t, err)

	assert.Contains(t, text, "Stock Opname Report for 2024-06-01 to 2024-06-02")
	assert.Contains(t, text, "2 staff member(s)")
	assert.Contains(t, text, "Rice: 1")
	assert.Contains(t, text, "restock the priority items")
}
