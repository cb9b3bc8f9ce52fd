package handler

import (
	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/request"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/response"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler handles contact message HTTP requests
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create records a contact form submission
// @Summary Send contact message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body request.CreateMessageRequest true "Message data"
// @Success 201 {object} response.APIResponse
// @Router /contact [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req request.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), &service.CreateMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Message sent", gin.H{"message": message})
}

// List returns a page of messages
// @Summary List messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	params := &repository.MessageFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseMessageStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid message status filter")
			return
		}
		params.Status = &status
	}

	messages, total, err := h.messageService.ListMessages(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(messages,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Messages retrieved", result)
}

// Get returns one message, marking it read on first open
// @Summary Get message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.messageService.GetMessage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Message retrieved", gin.H{"message": message})
}

// UpdateStatus moves a message along its handling lifecycle
// @Summary Update message status
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Param request body request.UpdateMessageStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /admin/messages/{id}/status [patch]
func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid message ID")
		return
	}

	var req request.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, err := enum.ParseMessageStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid message status")
		return
	}

	message, err := h.messageService.UpdateMessageStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Message status updated", gin.H{"message": message})
}

// Delete removes a message
// @Summary Delete message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204
// @Router /admin/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
