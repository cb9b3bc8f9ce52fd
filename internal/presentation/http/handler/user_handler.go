package handler

import (
	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/request"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/response"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles account administration HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a page of users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	params := &repository.UserFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		Role:       c.Query("role"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(users,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Users retrieved", result)
}

// Get returns one user
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved", gin.H{"user": user})
}

// UpdateRole grants or revokes the admin role
// @Summary Update user role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body request.UpdateUserRoleRequest true "New role"
// @Success 200 {object} response.APIResponse
// @Router /admin/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// An admin cannot demote themselves; this keeps at least one
	// admin reachable.
	if currentID := GetUserID(c); currentID != nil && *currentID == id {
		response.BadRequest(c, "Cannot change your own role")
		return
	}

	user, err := h.userService.UpdateUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User role updated", gin.H{"user": user})
}

// Delete removes a user account
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if currentID := GetUserID(c); currentID != nil && *currentID == id {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
