package server

import (
	"net/http"

	dashboarddomain "github.com/GuiTheDevv/shipping-management/internal/dashboard/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetDashboardMetrics(c *gin.Context) {
	ctx := c.Request.Context()
	payload, err := s.dashboardSvc.GetDashboard(ctx, dashboarddomain.Request{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	})
	if err != nil {
		AbortWithError(c, failed("Failed to fetch dashboard data", err))
		return
	}
	s.obsMetrics.RecordDashboardQuery(ctx, "metrics")

	c.JSON(http.StatusOK, payload)
}
