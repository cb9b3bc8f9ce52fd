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

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record admits a payment against an invoice
// @Summary Record payment
// @Description Record a payment against an invoice's remaining balance
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /admin/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	method, err := enum.ParsePaymentMethod(req.Method)
	if err != nil {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		InvoiceID:    invoiceID,
		Amount:       money.FromDecimal(req.Amount),
		Method:       method,
		Reference:    req.Reference,
		CheckNumber:  req.CheckNumber,
		BankName:     req.BankName,
		CardLast4:    req.CardLast4,
		Notes:        req.Notes,
		RecordedByID: *userID,
		PaidAt:       req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded", gin.H{"payment": payment})
}

// List returns a page of payments
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param method query string false "Method filter"
// @Param invoice_id query string false "Invoice filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if methodStr := c.Query("method"); methodStr != "" {
		method, err := enum.ParsePaymentMethod(methodStr)
		if err != nil {
			response.BadRequest(c, "Invalid payment method filter")
			return
		}
		params.Method = &method
	}

	if invoiceIDStr := c.Query("invoice_id"); invoiceIDStr != "" {
		invoiceID, err := uuid.Parse(invoiceIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid invoice ID filter")
			return
		}
		params.InvoiceID = &invoiceID
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

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(payments,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Payments retrieved", result)
}

// Get returns one payment
// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved", gin.H{"payment": payment})
}
