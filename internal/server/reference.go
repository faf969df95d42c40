package server

import (
	"context"
	"net/http"

	referencedomain "github.com/GuiTheDevv/shipping-management/internal/reference/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListDestinations(c *gin.Context) {
	s.listReference(c, s.refrepo.ListDestinations)
}

func (s *Server) ListCarriers(c *gin.Context) {
	s.listReference(c, s.refrepo.ListCarriers)
}

func (s *Server) ListModes(c *gin.Context) {
	s.listReference(c, s.refrepo.ListModes)
}

func (s *Server) ListStatuses(c *gin.Context) {
	s.listReference(c, s.refrepo.ListStatuses)
}

func (s *Server) listReference(c *gin.Context, list func(context.Context) ([]referencedomain.Option, error)) {
	items, err := list(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}
