package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockTaxEngineForTest creates a new mock TaxEngine for testing
func NewMockTaxEngineForTest(t *testing.T) *MockTaxEngine {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTaxEngine(ctrl)
}

// NewMockRulesCatalogForTest creates a new mock RulesCatalog for testing
func NewMockRulesCatalogForTest(t *testing.T) *MockRulesCatalog {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockRulesCatalog(ctrl)
}

// NewMockCatalogSourceForTest creates a new mock CatalogSource for testing
func NewMockCatalogSourceForTest(t *testing.T) *MockCatalogSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockCatalogSource(ctrl)
}
