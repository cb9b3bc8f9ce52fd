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

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// orderItemsFromRequest converts request lines to service inputs.
// Unit price overrides are only honored when allowPrices is set;
// storefront checkouts always pay the catalogue price.
func orderItemsFromRequest(items []request.OrderItemRequest, allowPrices bool) ([]service.OrderItemInput, bool) {
	inputs := make([]service.OrderItemInput, 0, len(items))
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, false
		}
		input := service.OrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		}
		if allowPrices && item.UnitPrice != nil {
			cents := money.FromDecimal(*item.UnitPrice)
			input.UnitPrice = &cents
		}
		inputs = append(inputs, input)
	}
	return inputs, true
}

func declaredTotalCents(total *float64) *int64 {
	if total == nil {
		return nil
	}
	cents := money.FromDecimal(*total)
	return &cents
}

// Create handles storefront checkout
// @Summary Create order
// @Description Place an order for the authenticated customer
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateOrderRequest true "Order data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items, ok := orderItemsFromRequest(req.Items, false)
	if !ok {
		response.BadRequest(c, "Invalid product ID in items")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:             *userID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryCity:       req.DeliveryCity,
		DeliveryPostalCode: req.DeliveryPostalCode,
		Notes:              req.Notes,
		TotalAmount:        declaredTotalCents(req.TotalAmount),
		Items:              items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", gin.H{"order": order})
}

// AdminCreate handles back-office order creation on behalf of a customer
// @Summary Create order (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AdminCreateOrderRequest true "Order data"
// @Success 201 {object} response.APIResponse
// @Router /admin/orders [post]
func (h *OrderHandler) AdminCreate(c *gin.Context) {
	var req request.AdminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	items, ok := orderItemsFromRequest(req.Items, true)
	if !ok {
		response.BadRequest(c, "Invalid product ID in items")
		return
	}

	order, err := h.orderService.CreateOrderAsAdmin(c.Request.Context(), &service.CreateOrderInput{
		UserID:             userID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		DeliveryAddress:    req.DeliveryAddress,
		DeliveryCity:       req.DeliveryCity,
		DeliveryPostalCode: req.DeliveryPostalCode,
		Notes:              req.Notes,
		TotalAmount:        declaredTotalCents(req.TotalAmount),
		Items:              items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", gin.H{"order": order})
}

// listParams builds order filter params from the query string
func (h *OrderHandler) listParams(c *gin.Context) (*repository.OrderFilterParams, error) {
	params := &repository.OrderFilterParams{
		Pagination:     parsePagination(c),
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		WithoutInvoice: c.Query("without_invoice") == "true",
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			return nil, err
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

	return params, nil
}

// List returns the authenticated customer's orders
// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	params, err := h.listParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid order status filter")
		return
	}
	params.UserID = userID

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// AdminList returns all orders
// @Summary List orders (admin)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param without_invoice query bool false "Only orders without an invoice"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	params, err := h.listParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid order status filter")
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Get returns one order, restricted to its owner unless admin
// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var err error
	var order interface{}
	if IsAdmin(c) {
		order, err = h.orderService.GetOrder(c.Request.Context(), id)
	} else {
		userID := GetUserID(c)
		if userID == nil {
			response.Unauthorized(c, "Not authenticated")
			return
		}
		order, err = h.orderService.GetOrderForUser(c.Request.Context(), id, *userID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", gin.H{"order": order})
}

// UpdateStatus moves an order along its lifecycle
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body request.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, err := enum.ParseOrderStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid order status")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated", gin.H{"order": order})
}

// Cancel cancels an order that has not shipped
// @Summary Cancel order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if !IsAdmin(c) {
		userID := GetUserID(c)
		if userID == nil {
			response.Unauthorized(c, "Not authenticated")
			return
		}
		if _, err := h.orderService.GetOrderForUser(c.Request.Context(), id, *userID); err != nil {
			response.Error(c, err)
			return
		}
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", gin.H{"order": order})
}

// Delete removes an order that has no invoice
// @Summary Delete order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Router /admin/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
