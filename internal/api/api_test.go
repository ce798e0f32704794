package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkop/opname/internal/api"
	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/service"
)

type fixedProvider struct {
	tables map[string]domain.Table
}

func (f *fixedProvider) ReadRange(_ context.Context, a1Range string) (domain.Table, error) {
	return f.tables[a1Range], nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
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
		Report: config.ReportConfig{FallbackVendor: "Tanpa Vendor"},
	}

	provider := &fixedProvider{tables: map[string]domain.Table{
		"form": {
			Header: []string{"Timestamp", "Email address", "PNS yang mengisi:", "Rice [kg]"},
			Rows: [][]string{
				{"01/06/2024 08:00:00", "a@sarkop.id", "Budi", "10"},
			},
		},
		"processing": {
			Header: []string{"Item", "Unit", "Vendor", "Category", "Par Qty", "Min Restock", "Current Qty"},
			Rows: [][]string{
				{"Rice", "kg", "ABC", "Dry", "10", "4", "2"},
			},
		},
		"suppliers": {
			Header: []string{"Name", "Media", "Phone", "Alias"},
			Rows:   [][]string{{"ABC", "Whatsapp", "628120000", ""}},
		},
	}}

	return api.NewRouter(service.NewStockService(provider, nil, cfg, nil), nil)
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetCurrentStock(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/stock/current")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items       []domain.CurrentStockItem `json:"items"`
		Latest      *domain.LatestMeta        `json:"latest"`
		DangerCount int                       `json:"danger_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, domain.ConditionDanger, view.Items[0].Condition)
	assert.Equal(t, 1, view.DangerCount)
	require.NotNil(t, view.Latest)
	assert.Equal(t, "Budi", view.Latest.Staff)
}

func TestReportRows_WindowValidation(t *testing.T) {
	router := newTestRouter()

	// missing parameters
	rec := doRequest(router, http.MethodGet, "/api/v1/report/rows")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// end before start
	rec = doRequest(router, http.MethodGet, "/api/v1/report/rows?start=2024-06-02&end=2024-06-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed date
	rec = doRequest(router, http.MethodGet, "/api/v1/report/rows?start=01/06/2024&end=2024-06-02")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/report/rows?start=2024-06-01&end=2024-06-02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2024-06-01"`)
}

func TestReportPDF_ServesAttachment(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/report/pdf?start=2024-06-01&end=2024-06-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stock-opname-20240601-20240601.pdf")
}

func TestCacheRefresh(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodPost, "/api/v1/cache/refresh")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"refreshed"}`, rec.Body.String())
}
