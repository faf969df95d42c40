package server

import (
	"errors"
	"fmt"
	"net/http"

	consolidationdomain "github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	dashboarddomain "github.com/GuiTheDevv/shipping-management/internal/dashboard/domain"
	ingestiondomain "github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	obsmetrics "github.com/GuiTheDevv/shipping-management/internal/observability/metrics"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/internal/spreadsheet"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidationError rejects a single request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

// OperationError names the failed operation in a 500 response while
// keeping the cause as details.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// PayloadTooLargeError carries the configured upload limit.
type PayloadTooLargeError struct {
	MaxBytes int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload larger than %d bytes", e.MaxBytes)
}

func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ingestiondomain.ErrPayloadTooLarge
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var (
	ErrNotFound           = errors.New("not_found")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// failed attaches the operation message used when err maps to a 500.
func failed(message string, err error) error {
	return &OperationError{Message: message, Err: err}
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "Internal server error"}
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorResponse{Error: vErr.Message}
	}
	if message, ok := validationMessage(err); ok {
		return http.StatusBadRequest, errorResponse{Error: message}
	}

	var tooLarge *PayloadTooLargeError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("File too large. Max size is %dMB", tooLarge.MaxBytes/(1024*1024)),
		}
	case errors.Is(err, ingestiondomain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "File too large"}
	case errors.Is(err, ingestiondomain.ErrMalformedFile):
		return http.StatusBadRequest, errorResponse{Error: "Failed to process CSV", Details: err.Error()}
	case isNotFoundError(err):
		return http.StatusNotFound, errorResponse{Error: "Shipment not found"}
	case errors.Is(err, ingestiondomain.ErrIngestInProgress):
		return http.StatusConflict, errorResponse{Error: "Another upload is being processed"}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorResponse{Error: "Too many uploads, try again later"}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: "Service unavailable"}
	case errors.Is(err, ingestiondomain.ErrClearFailed):
		return http.StatusInternalServerError, errorResponse{Error: "Failed to clear shipments table", Details: err.Error()}
	}

	var batchErr *ingestiondomain.BatchInsertError
	if errors.As(err, &batchErr) {
		return http.StatusInternalServerError, errorResponse{Error: "Failed to insert shipments", Details: batchErr.Error()}
	}

	var opErr *OperationError
	if errors.As(err, &opErr) {
		return http.StatusInternalServerError, errorResponse{Error: opErr.Message, Details: opErr.Err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "Internal server error", Details: err.Error()}
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ingestiondomain.ErrFileRequired):
		return "CSV file is required", true
	case errors.Is(err, shipmentdomain.ErrInvalidID):
		return "Invalid shipment ID", true
	case errors.Is(err, pagination.ErrInvalidPage):
		return "page must be a positive integer", true
	case errors.Is(err, pagination.ErrInvalidLimit):
		return fmt.Sprintf("limit must be between 1 and %d", pagination.MaxLimit), true
	case errors.Is(err, shipmentdomain.ErrInvalidStatus):
		return "Invalid status filter", true
	case errors.Is(err, shipmentdomain.ErrInvalidCarrier):
		return "Invalid carrier filter", true
	case errors.Is(err, shipmentdomain.ErrInvalidDestination):
		return "Invalid destination filter", true
	case errors.Is(err, shipmentdomain.ErrInvalidMode):
		return "Invalid mode filter", true
	case errors.Is(err, consolidationdomain.ErrInvalidMinGroupSize):
		return "minGroupSize must be a positive integer", true
	case errors.Is(err, dashboarddomain.ErrInvalidDate):
		return "Dates must use the YYYY-MM-DD format", true
	case errors.Is(err, dashboarddomain.ErrInvalidDateRange):
		return "Invalid date range", true
	case errors.Is(err, spreadsheet.ErrInvalidFormat):
		return "format must be csv or xlsx", true
	default:
		return "", false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, shipmentdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog feeds the request logger low-cardinality fields.
func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusBadRequest:
		return "validation_error", rootCode(err)
	case status == http.StatusNotFound:
		return "not_found", "not_found"
	case status == http.StatusRequestEntityTooLarge:
		return "payload_too_large", "payload_too_large"
	case status == http.StatusConflict:
		return "conflict", "ingest_in_progress"
	case status == http.StatusTooManyRequests:
		return "rate_limited", "rate_limited"
	case obsmetrics.IsDBError(err):
		return "store_error", obsmetrics.ClassifyStoreErrorReason(err)
	default:
		return "internal_error", "internal_error"
	}
}

func rootCode(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
