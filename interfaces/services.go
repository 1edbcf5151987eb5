//go:generate mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks

package interfaces

import (
	"context"

	"github.com/cyphera/cyphera-autotax/types/business"
)

// TaxEngine computes vehicle sales and lease tax
type TaxEngine interface {
	CalculateTax(ctx context.Context, input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error)
}

// RulesCatalog looks up per-jurisdiction rules
type RulesCatalog interface {
	GetRules(jurisdictionCode string) (*business.RulesConfig, error)
	IsImplemented(jurisdictionCode string) bool
	List() []business.JurisdictionSummary
	Version() string
}

// CatalogSource fetches raw rules catalog documents
type CatalogSource interface {
	Documents(ctx context.Context) ([]business.CatalogDocument, error)
	Describe() string
}
