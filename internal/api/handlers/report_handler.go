package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/report"
	"github.com/sarkop/opname/internal/service"
)

type ReportHandler struct {
	service *service.StockService
}

func NewReportHandler(svc *service.StockService) *ReportHandler {
	return &ReportHandler{service: svc}
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	result, err := h.service.Report(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReportHandler) GetReportRows(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	rows, err := h.service.TrendRows(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": rows})
}

func (h *ReportHandler) GetReportPDF(c *gin.Context) {
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	rows, err := h.service.TrendRows(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := report.TrendPDF(rows, start.String(), end.String())
	if err != nil {
		respondError(c, err)
		return
	}

	serveAttachment(c, data, filename, "application/pdf")
}

// parseWindow reads the start/end query parameters as YYYY-MM-DD days. On
// failure it writes a 400 and returns ok=false.
func parseWindow(c *gin.Context) (start, end domain.DayKey, ok bool) {
	startStr := strings.TrimSpace(c.Query("start"))
	endStr := strings.TrimSpace(c.Query("end"))
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return domain.DayKey{}, domain.DayKey{}, false
	}

	start, err := domain.ParseDay(startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.DayKey{}, domain.DayKey{}, false
	}
	end, err = domain.ParseDay(endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.DayKey{}, domain.DayKey{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date is before start date"})
		return domain.DayKey{}, domain.DayKey{}, false
	}

	return start, end, true
}
