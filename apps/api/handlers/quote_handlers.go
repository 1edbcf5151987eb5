package handlers

import (
	"net/http"
	"strings"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/middleware"
	"github.com/cyphera/cyphera-autotax/types/api/requests"
	"github.com/cyphera/cyphera-autotax/types/api/responses"
	"github.com/cyphera/cyphera-autotax/types/business"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteHandler prices deals
type QuoteHandler struct {
	common *CommonServices
}

// NewQuoteHandler creates a new QuoteHandler instance
func NewQuoteHandler(common *CommonServices) *QuoteHandler {
	return &QuoteHandler{common: common}
}

// CreateQuote godoc
// @Summary Quote vehicle tax
// @Description Prices one transaction. Rules come from the catalog entry for the transaction's jurisdiction unless rulesOverride is set.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body requests.QuoteRequest true "Transaction and optional rules override"
// @Success 200 {object} responses.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req requests.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.common.sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}

	code := strings.TrimSpace(req.Transaction.JurisdictionCode)

	var (
		rules       business.RulesConfig
		implemented bool
	)
	switch {
	case req.RulesOverride != nil:
		rules = *req.RulesOverride
		if rules.JurisdictionCode == "" {
			rules.JurisdictionCode = code
		}
		implemented = true
	case code == "":
		h.common.sendError(c, http.StatusBadRequest, constants.MissingJurisdiction, nil)
		return
	default:
		found, err := h.common.Catalog.GetRules(code)
		if err != nil {
			h.common.handleServiceError(c, err)
			return
		}
		rules = *found
		implemented = h.common.Catalog.IsImplemented(code)
	}

	result, err := h.common.Engine.CalculateTax(c.Request.Context(), req.Transaction, rules)
	if err != nil {
		h.common.handleServiceError(c, err)
		return
	}

	calculationID := uuid.New().String()
	middleware.LogWithCorrelationID(c.Request.Context()).Info("Quote calculated",
		zap.String("calculation_id", calculationID),
		zap.String("jurisdiction", result.JurisdictionCode),
		zap.String("scheme", string(result.Scheme)),
		zap.Bool("implemented", implemented),
		zap.String("tax_due", result.TaxDue.String()))

	sendSuccess(c, http.StatusOK, responses.QuoteResponse{
		CalculationID: calculationID,
		Implemented:   implemented,
		Result:        result,
	})
}
