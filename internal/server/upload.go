package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	ingestiondomain "github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	obscontext "github.com/GuiTheDevv/shipping-management/internal/observability/context"
	"github.com/GuiTheDevv/shipping-management/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the form envelope around the file part.
const multipartOverhead = 1 << 20

func (s *Server) UploadShipments(c *gin.Context) {
	maxBytes := s.cfg.Upload.MaxBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			AbortWithError(c, &PayloadTooLargeError{MaxBytes: maxBytes})
			return
		}
		AbortWithError(c, ingestiondomain.ErrFileRequired)
		return
	}
	if header.Size > maxBytes {
		AbortWithError(c, &PayloadTooLargeError{MaxBytes: maxBytes})
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, failed("Failed to process CSV", err))
		return
	}
	defer file.Close()

	fileName := strings.TrimSpace(header.Filename)
	c.Set("upload_file", fileName)
	c.Set("upload_format", string(spreadsheet.FormatFromFileName(fileName)))
	ctx := obscontext.WithUploadFile(c.Request.Context(), fileName)

	report, err := s.ingestionSvc.Ingest(ctx, ingestiondomain.IngestRequest{
		Reader:   file,
		FileName: fileName,
		Size:     header.Size,
	})
	if err != nil {
		if errors.Is(err, ingestiondomain.ErrPayloadTooLarge) {
			err = &PayloadTooLargeError{MaxBytes: maxBytes}
		}
		AbortWithError(c, failed("Failed to process CSV", err))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) GetUploadTemplate(c *gin.Context) {
	format, err := spreadsheet.ParseFormat(c.Query("format"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	contentType, ext := spreadsheet.ContentType(format)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="shipments-template.%s"`, ext))
	c.Status(http.StatusOK)

	if err := spreadsheet.WriteTemplate(c.Writer, format); err != nil {
		AbortWithError(c, failed("Failed to build template", err))
	}
}

func (s *Server) ListUploads(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || (limit != nil && *limit < 1) {
		AbortWithError(c, newValidationError("limit", "limit must be a positive integer"))
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	runs, err := s.ingestionSvc.ListRuns(c.Request.Context(), n)
	if err != nil {
		AbortWithError(c, failed("Failed to retrieve uploads", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": runs})
}
