package services

import (
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// calculateRetail taxes a one-time purchase under the generic scheme.
func calculateRetail(input business.TransactionInput, rules business.RulesConfig) *business.CalculationResult {
	assembled := assembleBases(input, retailBasePolicy(input, rules))

	result := newResult(input, rules, business.SchemeGeneric)
	result.Bases = assembled.bases
	result.Taxes = ApplyRates(assembled.bases.Total, applicableRates(rules, input.RateComponents))
	result.Debug = assembled.debug

	settle(result, input, rules, assembled.bases.Total, nil)
	return result
}

// newResult starts a result for the given scheme.
func newResult(input business.TransactionInput, rules business.RulesConfig, scheme business.VehicleTaxScheme) *business.CalculationResult {
	code := rules.JurisdictionCode
	if code == "" {
		code = input.JurisdictionCode
	}
	return &business.CalculationResult{
		Mode:             input.DealType,
		Scheme:           scheme,
		JurisdictionCode: code,
	}
}

// settle applies the reciprocity credit and fills in tax due and balance.
// taxableBase is the base the credit basis is measured against.
func settle(result *business.CalculationResult, input business.TransactionInput, rules business.RulesConfig, taxableBase decimal.Decimal, windowDays *int) {
	outcome := EvaluateReciprocity(ReciprocityRequest{
		DealType:       input.DealType,
		Jurisdiction:   result.JurisdictionCode,
		EvaluationDate: input.EvaluationDate,
		Origin:         input.OriginTax,
		LocalTax:       result.Taxes.TotalTax,
		TaxableBase:    taxableBase,
		WindowDays:     windowDays,
	}, rules.Reciprocity)

	collected := helpers.ClampZero(input.TaxAlreadyCollected)
	result.Debug.ReciprocityCredit = outcome.Credit
	result.Debug.ReciprocityReason = outcome.Reason
	result.Debug.TaxAlreadyCollected = collected
	result.TaxDue = helpers.ClampZero(result.Taxes.TotalTax.Sub(outcome.Credit))
	result.TaxBalance = helpers.ClampZero(result.TaxDue.Sub(collected))
}
