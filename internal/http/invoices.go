package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/service"
)

type InvoiceResponse struct {
	ID            int64                `json:"id"`
	OrderID       int64                `json:"orderId"`
	InvoiceNumber string               `json:"invoiceNumber"`
	InvoiceDate   string               `json:"invoiceDate"`
	DueDate       *string              `json:"dueDate,omitempty"`
	Subtotal      string               `json:"subtotal"`
	Tax           string               `json:"tax"`
	Discount      string               `json:"discount"`
	Total         string               `json:"total"`
	Notes         string               `json:"notes"`
	Status        domain.InvoiceStatus `json:"status"`
	CreatedAt     string               `json:"createdAt"`
	UpdatedAt     string               `json:"updatedAt"`
}

func invoiceToResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   formatTime(inv.InvoiceDate),
		DueDate:       formatTimePtr(inv.DueDate),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Discount:      inv.Discount,
		Total:         inv.Total,
		Notes:         inv.Notes,
		Status:        inv.Status,
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context(), userFrom(c).ID, pageFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		resp[i] = invoiceToResponse(invoices[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), userFrom(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceToResponse(*invoice))
}

type createInvoiceRequest struct {
	OrderID       int64   `json:"orderId" binding:"required"`
	InvoiceNumber string  `json:"invoiceNumber" binding:"required"`
	Subtotal      string  `json:"subtotal" binding:"required"`
	Tax           string  `json:"tax"`
	Discount      string  `json:"discount"`
	Total         string  `json:"total" binding:"required"`
	Notes         string  `json:"notes"`
	DueDate       *string `json:"dueDate"`
}

func (h *Handler) createInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			abortWithError(c, apperr.New(apperr.KindBadRequest, "dueDate must be RFC 3339"))
			return
		}
		dueDate = &t
	}

	invoice, err := h.invoices.Create(c.Request.Context(), userFrom(c).ID, service.CreateInvoiceInput{
		OrderID:       req.OrderID,
		InvoiceNumber: req.InvoiceNumber,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Total:         req.Total,
		Notes:         req.Notes,
		DueDate:       dueDate,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoiceToResponse(*invoice))
}

type updateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required"`
}

func (h *Handler) updateInvoiceStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	if err := h.invoices.UpdateStatus(c.Request.Context(), userFrom(c).ID, id, req.Status); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
