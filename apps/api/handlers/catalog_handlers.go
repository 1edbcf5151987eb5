package handlers

import (
	"net/http"
	"strings"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/types/api/responses"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the rules catalog
type CatalogHandler struct {
	common *CommonServices
}

// NewCatalogHandler creates a new CatalogHandler instance
func NewCatalogHandler(common *CommonServices) *CatalogHandler {
	return &CatalogHandler{common: common}
}

// ListJurisdictions godoc
// @Summary List jurisdictions
// @Description Lists every catalog jurisdiction with its implemented flag
// @Tags jurisdictions
// @Produce json
// @Success 200 {object} responses.JurisdictionListResponse
// @Router /jurisdictions [get]
func (h *CatalogHandler) ListJurisdictions(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.JurisdictionListResponse{
		Object:         "list",
		CatalogVersion: h.common.Catalog.Version(),
		Data:           h.common.Catalog.List(),
	})
}

// GetJurisdiction godoc
// @Summary Get jurisdiction rules
// @Description Returns the rules configuration for one jurisdiction code, matched case-insensitively
// @Tags jurisdictions
// @Produce json
// @Param code path string true "Jurisdiction code"
// @Success 200 {object} responses.JurisdictionResponse
// @Failure 404 {object} ErrorResponse
// @Router /jurisdictions/{code} [get]
func (h *CatalogHandler) GetJurisdiction(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		h.common.sendError(c, http.StatusBadRequest, constants.MissingJurisdiction, nil)
		return
	}

	rules, err := h.common.Catalog.GetRules(code)
	if err != nil {
		h.common.handleServiceError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.JurisdictionResponse{
		Code:        rules.JurisdictionCode,
		Implemented: h.common.Catalog.IsImplemented(code),
		Rules:       rules,
	})
}
