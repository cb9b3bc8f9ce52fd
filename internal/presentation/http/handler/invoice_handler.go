package handler

import (
	"time"

	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/request"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/response"
	"github.com/agrimarket/agrimarket-api/pkg/money"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	paymentService *service.PaymentService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, paymentService *service.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, paymentService: paymentService}
}

// Create derives an invoice from an order
// @Summary Create invoice
// @Description Derive an invoice from an order with tax and discount
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /admin/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		OrderID:        orderID,
		TaxAmount:      money.FromDecimal(req.TaxAmount),
		DiscountAmount: money.FromDecimal(req.DiscountAmount),
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created", gin.H{"invoice": invoice})
}

// List returns a page of invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseInvoiceStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid invoice status filter")
			return
		}
		params.Status = &status
	}

	if startDate := c.Query("start_date"); startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err == nil {
			params.StartDate = &t
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Invoices retrieved", result)
}

// Get returns one invoice with its order and payment ledger
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", gin.H{"invoice": invoice})
}

// Update edits an invoice
// @Summary Update invoice
// @Description Edit tax, discount, due date, notes or status
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param request body request.UpdateInvoiceRequest true "Invoice fields"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /admin/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateInvoiceInput{
		DueDate: req.DueDate,
		Notes:   req.Notes,
	}
	if req.TaxAmount != nil {
		tax := money.FromDecimal(*req.TaxAmount)
		input.TaxAmount = &tax
	}
	if req.DiscountAmount != nil {
		discount := money.FromDecimal(*req.DiscountAmount)
		input.DiscountAmount = &discount
	}
	if req.Status != nil {
		status, err := enum.ParseInvoiceStatus(*req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid invoice status")
			return
		}
		input.Status = &status
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated", gin.H{"invoice": invoice})
}

// Payments returns the invoice's payment ledger
// @Summary List invoice payments
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id}/payments [get]
func (h *InvoiceHandler) Payments(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListInvoicePayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved", gin.H{"payments": payments})
}

// Delete removes an invoice that has no payments
// @Summary Delete invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 409 {object} response.APIResponse
// @Router /admin/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
