package services

import (
	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/types/business"
)

// calculateHighwayUse applies the highway-use tax: a flat rate on the price
// net of trade-in credit and non-taxable rebates, plus the doc fee when the
// extras ask for it. Leases are taxed once at signing on the agreed value.
func calculateHighwayUse(input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	extras := rules.Extras.HighwayUse
	if extras == nil {
		return nil, newConfigError(rules, business.SchemeHighwayUse, ErrMissingHighwayUseConfig)
	}

	taxable, nonTaxable := splitRetailRebates(input, rules)
	assembled := assembleBases(input, basePolicy{
		vehicleAmount:     input.AgreedValue(),
		tradeInCredit:     TradeInCredit(rules.TradeInPolicy, input.TradeInValue),
		taxableRebates:    taxable,
		nonTaxableRebates: nonTaxable,
		includeDocFee:     extras.IncludeDocFee,
		// Statutory: the highway-use tax always reaches service contracts.
		// rules.TaxOnServiceContracts is deliberately not consulted here.
		includeService: true,
	})

	result := newResult(input, rules, business.SchemeHighwayUse)
	result.Bases = assembled.bases
	result.Taxes = ApplyRates(assembled.bases.Total, singleRate(constants.HighwayUseRateLabel, extras.Rate))
	result.Debug = assembled.debug
	result.Debug.AppliedRate = extras.Rate
	if input.DealType == business.DealTypeLease {
		upfrontLease(result, input)
	}

	window := extras.ReciprocityWindowDays
	settle(result, input, rules, assembled.bases.Total, &window)
	return result, nil
}
