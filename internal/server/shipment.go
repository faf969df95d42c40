package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/GuiTheDevv/shipping-management/internal/observability/logger"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/internal/spreadsheet"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type shipmentFilters struct {
	Status      *shipmentdomain.Status
	Carrier     *shipmentdomain.Carrier
	Destination *shipmentdomain.Destination
	Search      string
}

func parseShipmentFilters(c *gin.Context) (shipmentFilters, error) {
	status, err := shipmentdomain.ParseStatus(c.Query("status"))
	if err != nil {
		return shipmentFilters{}, err
	}
	carrier, err := shipmentdomain.ParseCarrier(c.Query("carrier"))
	if err != nil {
		return shipmentFilters{}, err
	}
	destination, err := shipmentdomain.ParseDestination(c.Query("destination"))
	if err != nil {
		return shipmentFilters{}, err
	}
	return shipmentFilters{
		Status:      status,
		Carrier:     carrier,
		Destination: destination,
		Search:      strings.TrimSpace(c.Query("search")),
	}, nil
}

func (s *Server) ListShipments(c *gin.Context) {
	filters, err := parseShipmentFilters(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	page, limit, err := parsePagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.shipmentSvc.List(c.Request.Context(), shipmentdomain.ListShipmentRequest{
		Status:      filters.Status,
		Carrier:     filters.Carrier,
		Destination: filters.Destination,
		Search:      filters.Search,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		AbortWithError(c, failed("Failed to retrieve shipments", err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetShipment(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		AbortWithError(c, shipmentdomain.ErrInvalidID)
		return
	}

	item, err := s.shipmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, failed("Failed to fetch shipment", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipment": item})
}

func (s *Server) ExportShipments(c *gin.Context) {
	filters, err := parseShipmentFilters(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	format, err := spreadsheet.ParseFormat(c.Query("format"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	contentType, ext := spreadsheet.ContentType(format)
	fileName := fmt.Sprintf("shipments-%s.%s", s.clock.Now().Format("20060102-150405"), ext)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Status(http.StatusOK)

	writer, err := spreadsheet.NewExportWriter(c.Writer, format)
	if err != nil {
		AbortWithError(c, failed("Failed to export shipments", err))
		return
	}

	ctx := c.Request.Context()
	err = s.shipmentSvc.Export(ctx, shipmentdomain.ExportShipmentRequest{
		Status:      filters.Status,
		Carrier:     filters.Carrier,
		Destination: filters.Destination,
		Search:      filters.Search,
	}, writer.Write)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Headers are gone by now; the client sees a truncated file.
		logger.FromContext(ctx).Error("shipment export failed", zap.String("format", string(format)), zap.Error(err))
		AbortWithError(c, failed("Failed to export shipments", err))
	}
}
