package handler

import (
	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the authenticated user holds the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == entity.RoleAdmin
}

// parsePagination binds page/per_page query parameters
func parsePagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}

// parseUUIDParam parses a UUID path parameter, returning uuid.Nil on
// malformed input
func parseUUIDParam(c *gin.Context, name string) uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}
