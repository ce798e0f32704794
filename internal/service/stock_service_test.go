package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/service"
)

type fakeProvider struct {
	tables map[string]domain.Table
	err    error
}

func (f *fakeProvider) ReadRange(_ context.Context, a1Range string) (domain.Table, error) {
	if f.err != nil {
		return domain.Table{}, f.err
	}

	return f.tables[a1Range], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Sheets: config.SheetsConfig{
			FormRange:       "form",
			ProcessingRange: "processing",
			SupplierRange:   "suppliers",
		},
		Columns: config.ColumnsConfig{
			Timestamp: "Timestamp",
			Email:     "Email address",
			Staff:     "PNS yang mengisi:",
		},
		Report: config.ReportConfig{
			FallbackVendor: "Tanpa Vendor",
			WhatsAppTarget: "628126666440",
		},
	}
}

func testProvider() *fakeProvider {
	return &fakeProvider{tables: map[string]domain.Table{
		"form": {
			Header: []string{"Timestamp", "Email address", "PNS yang mengisi:", "Rice [kg]", "Oil [liter]"},
			Rows: [][]string{
				{"01/06/2024 08:00:00", "a@sarkop.id", "Budi", "10", "4"},
				{"01/06/2024 18:00:00", "a@sarkop.id", "Budi", "8", "3"},
				{"02/06/2024 09:00:00", "b@sarkop.id", "Sari", "5", "2"},
			},
		},
		"processing": {
			Header: []string{"Item", "Unit", "Vendor", "Category", "Par Qty", "Min Restock", "Current Qty"},
			Rows: [][]string{
				{"Rice", "kg", "ABC", "Dry", "10", "4", "15"},
				{"Oil", "liter", "ABC", "Dry", "10", "4", "2"},
				{"Sugar", "kg", "", "Dry", "20", "12", "11"},
			},
		},
		"suppliers": {
			Header: []string{"Name", "Media", "Phone", "Alias"},
			Rows: [][]string{
				{"ABC", "Whatsapp", "+62 812-0000", "Pak Agus"},
				{"DEF", "Email", "", ""},
			},
		},
	}}
}

func newTestService(provider *fakeProvider) *service.StockService {
	return service.NewStockService(provider, nil, testConfig(), nil)
}

func TestCurrentStock(t *testing.T) {
	svc := newTestService(testProvider())

	view, err := svc.CurrentStock(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Items, 3)
	// urgency order: Oil (bahaya), Sugar (low), Rice (normal)
	assert.Equal(t, "Oil", view.Items[0].Item)
	assert.Equal(t, domain.ConditionDanger, view.Items[0].Condition)
	assert.Equal(t, "Sugar", view.Items[1].Item)
	assert.Equal(t, domain.ConditionLow, view.Items[1].Condition)
	assert.Equal(t, "Rice", view.Items[2].Item)

	assert.Equal(t, 1, view.DangerCount)
	assert.Equal(t, 1, view.LowCount)

	require.NotNil(t, view.Latest)
	assert.Equal(t, "02/06/2024 09:00:00", view.Latest.Timestamp)
	assert.Equal(t, "Sari", view.Latest.Staff)
}

func TestVendorMessages(t *testing.T) {
	svc := newTestService(testProvider())

	messages, links, err := svc.VendorMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Len(t, links, 2)

	// Oil (ABC) and Sugar (no vendor) are at or below their thresholds;
	// groups tie at one item each, so grouping order holds
	assert.Equal(t, "ABC", messages[0].Vendor)
	assert.Contains(t, messages[0].Message, "Halo Pak Agus,")
	assert.True(t, strings.HasPrefix(links[0], "https://wa.me/628120000?"))

	assert.Equal(t, "Tanpa Vendor", messages[1].Vendor)
	assert.True(t, strings.HasPrefix(links[1], "https://web.whatsapp.com/send?"))
}

func TestSupplierDirectory(t *testing.T) {
	svc := newTestService(testProvider())

	entries, err := svc.SupplierDirectory(context.Background())
	require.NoError(t, err)

	// only the WhatsApp contact is listed
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "ABC", entry.Contact.Name)
	// of ABC's items only Oil needs attention; Rice sits above par
	require.Len(t, entry.Items, 1)
	assert.Equal(t, "Oil", entry.Items[0].Item)
	assert.Contains(t, entry.Message, "- Oil: 4 (liter)")
	assert.True(t, strings.HasPrefix(entry.WhatsAppURL, "https://wa.me/628120000?"))
}

func TestTrendRows(t *testing.T) {
	svc := newTestService(testProvider())

	start := domain.DayKey{Year: 2024, Month: time.June, Day: 1}
	end := domain.DayKey{Year: 2024, Month: time.June, Day: 2}
	rows, err := svc.TrendRows(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	day2 := rows[end]
	require.Len(t, day2, 2)
	assert.Equal(t, domain.ItemRow{ItemName: "Oil", Before: "3", After: "2"}, day2[0])
	assert.Equal(t, domain.ItemRow{ItemName: "Rice", Before: "8", After: "5"}, day2[1])
}

func TestReport_EmptyWindow(t *testing.T) {
	svc := newTestService(testProvider())

	start := domain.DayKey{Year: 2030, Month: time.January, Day: 1}
	result, err := svc.Report(context.Background(), start, start)
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Contains(t, result.Text, "No stock data found")
	assert.Empty(t, result.WhatsAppURL)
}

func TestReport_ComposesSummaryAndLink(t *testing.T) {
	svc := newTestService(testProvider())

	start := domain.DayKey{Year: 2024, Month: time.June, Day: 1}
	end := domain.DayKey{Year: 2024, Month: time.June, Day: 2}
	result, err := svc.Report(context.Background(), start, end)
	require.NoError(t, err)
	assert.False(t, result.Empty)
	assert.Contains(t, result.Text, "Stock Opname Report for 2024-06-01 to 2024-06-02")
	assert.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/628126666440?"))
}

type spyCache struct {
	tables      map[string]domain.Table
	invalidated bool
}

func (s *spyCache) Get(_ context.Context, a1Range string) (domain.Table, bool, error) {
	table, ok := s.tables[a1Range]
	return table, ok, nil
}

func (s *spyCache) Set(_ context.Context, a1Range string, table domain.Table) error {
	if s.tables == nil {
		s.tables = map[string]domain.Table{}
	}
	s.tables[a1Range] = table
	return nil
}

func (s *spyCache) InvalidateAll(context.Context) error {
	s.invalidated = true
	s.tables = nil
	return nil
}

func TestRefreshCacheDropsCachedTables(t *testing.T) {
	cache := &spyCache{}
	svc := service.NewStockService(testProvider(), cache, testConfig(), nil)

	_, err := svc.CurrentStock(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cache.tables)

	require.NoError(t, svc.RefreshCache(context.Background()))
	assert.True(t, cache.invalidated)
	assert.Empty(t, cache.tables)
}

func TestProviderFailurePropagates(t *testing.T) {
	boom := errors.New("failed to fetch range \"form\", status 403")
	svc := newTestService(&fakeProvider{err: boom})

	_, err := svc.CurrentStock(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
