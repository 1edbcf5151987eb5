package requests

import "github.com/cyphera/cyphera-autotax/types/business"

// QuoteRequest represents the request body for pricing one deal
type QuoteRequest struct {
	Transaction business.TransactionInput `json:"transaction"`
	// RulesOverride replaces the catalog entry for the transaction's jurisdiction.
	RulesOverride *business.RulesConfig `json:"rulesOverride,omitempty"`
}
