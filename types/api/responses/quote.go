package responses

import "github.com/cyphera/cyphera-autotax/types/business"

// QuoteResponse wraps one calculation result
type QuoteResponse struct {
	CalculationID string                      `json:"calculationId"`
	Implemented   bool                        `json:"implemented"`
	Result        *business.CalculationResult `json:"result"`
}

// JurisdictionListResponse lists the catalog
type JurisdictionListResponse struct {
	Object         string                         `json:"object"`
	CatalogVersion string                         `json:"catalogVersion"`
	Data           []business.JurisdictionSummary `json:"data"`
}

// JurisdictionResponse is one catalog entry with its rules
type JurisdictionResponse struct {
	Code        string                `json:"code"`
	Implemented bool                  `json:"implemented"`
	Rules       *business.RulesConfig `json:"rules"`
}
