package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/report"
	"github.com/sarkop/opname/internal/service"
	"github.com/sarkop/opname/internal/sheets"
)

type StockHandler struct {
	service *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{service: svc}
}

func (h *StockHandler) GetCurrentStock(c *gin.Context) {
	view, err := h.service.CurrentStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StockHandler) GetCurrentStockPDF(c *gin.Context) {
	view, err := h.service.CurrentStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := report.CurrentStockPDF(view.Items, view.Latest)
	if err != nil {
		respondError(c, err)
		return
	}

	serveAttachment(c, data, filename, "application/pdf")
}

func (h *StockHandler) GetCurrentStockXLSX(c *gin.Context) {
	view, err := h.service.CurrentStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	buf, filename, err := report.CurrentStockXLSX(view.Items, view.Latest)
	if err != nil {
		respondError(c, err)
		return
	}

	serveAttachment(c, buf.Bytes(), filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

type vendorMessageResponse struct {
	domain.VendorMessage
	WhatsAppURL string `json:"whatsapp_url"`
}

func (h *StockHandler) GetVendorMessages(c *gin.Context) {
	messages, links, err := h.service.VendorMessages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]vendorMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = vendorMessageResponse{VendorMessage: msg, WhatsAppURL: links[i]}
	}

	c.JSON(http.StatusOK, gin.H{"messages": out})
}

func (h *StockHandler) RefreshCache(c *gin.Context) {
	if err := h.service.RefreshCache(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

func (h *StockHandler) GetSuppliers(c *gin.Context) {
	entries, err := h.service.SupplierDirectory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": entries})
}

func serveAttachment(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// respondError maps service failures onto HTTP statuses: provider failures
// become 502 with the provider's status embedded in the message,
// configuration problems and everything else become 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && !errors.Is(err, sheets.ErrNotConfigured) {
		status = http.StatusBadGateway
	}

	log.Error().Err(err).Msg("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
