package server

import (
	"fmt"
	"net/http"

	consolidationdomain "github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	"github.com/GuiTheDevv/shipping-management/internal/providers/pdf"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/gin-gonic/gin"
)

func parseConsolidationRequest(c *gin.Context) (consolidationdomain.Request, error) {
	carrier, err := shipmentdomain.ParseCarrier(c.Query("carrier"))
	if err != nil {
		return consolidationdomain.Request{}, err
	}
	mode, err := shipmentdomain.ParseMode(c.Query("mode"))
	if err != nil {
		return consolidationdomain.Request{}, err
	}
	destination, err := shipmentdomain.ParseDestination(c.Query("destination"))
	if err != nil {
		return consolidationdomain.Request{}, err
	}
	minGroupSize, err := parseOptionalInt(c.Query("minGroupSize"))
	if err != nil {
		return consolidationdomain.Request{}, consolidationdomain.ErrInvalidMinGroupSize
	}
	includeDetails, err := parseOptionalBool(c.Query("includeDetails"))
	if err != nil {
		return consolidationdomain.Request{}, newValidationError("includeDetails", "includeDetails must be true or false")
	}
	page, limit, err := parsePagination(c)
	if err != nil {
		return consolidationdomain.Request{}, err
	}

	return consolidationdomain.Request{
		Carrier:        carrier,
		Mode:           mode,
		Destination:    destination,
		MinGroupSize:   minGroupSize,
		Page:           page,
		Limit:          limit,
		IncludeDetails: includeDetails != nil && *includeDetails,
	}, nil
}

func (s *Server) GetConsolidation(c *gin.Context) {
	req, err := parseConsolidationRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := s.consolidation.GetGroups(ctx, req)
	if err != nil {
		AbortWithError(c, failed("Failed to retrieve consolidation data", err))
		return
	}
	s.obsMetrics.RecordDashboardQuery(ctx, "consolidation")

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetConsolidationReport(c *gin.Context) {
	req, err := parseConsolidationRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.IncludeDetails = false

	ctx := c.Request.Context()
	resp, err := s.consolidation.GetGroups(ctx, req)
	if err != nil {
		AbortWithError(c, failed("Failed to retrieve consolidation data", err))
		return
	}

	now := s.clock.Now()
	doc, err := s.pdf.GenerateConsolidationReport(ctx, pdf.ConsolidationReport{
		GeneratedAt: now,
		Groups:      resp,
	})
	if err != nil {
		AbortWithError(c, failed("Failed to render consolidation report", err))
		return
	}
	s.obsMetrics.RecordDashboardQuery(ctx, "consolidation_report")

	fileName := fmt.Sprintf("consolidation-%s.pdf", now.Format("20060102"))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, fileName),
	})
}
