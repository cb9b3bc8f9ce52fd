package handler

import (
	"github.com/agrimarket/agrimarket-api/internal/application/service"
	"github.com/agrimarket/agrimarket-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles back-office overview requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the back-office overview figures
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved", gin.H{"stats": stats})
}
