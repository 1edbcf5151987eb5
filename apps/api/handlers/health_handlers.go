package handlers

import (
	"net/http"

	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/types/api/responses"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	catalog interfaces.RulesCatalog
}

// NewHealthHandler creates a health handler. catalog may be nil.
func NewHealthHandler(catalog interfaces.RulesCatalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// Use types from the centralized packages
type HealthResponse = responses.HealthResponse

// Health godoc
// @Summary Check the health of the server
// @Description Returns "ok" and the version of the loaded rules catalog
// @Tags health
// @Produce json
// @Success 200 {object} responses.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{Status: "ok"}
	if h.catalog != nil {
		response.CatalogVersion = h.catalog.Version()
	}
	c.JSON(http.StatusOK, response)
}
