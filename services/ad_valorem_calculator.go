package services

import (
	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// calculateAdValorem applies a one-time title ad-valorem tax. Doc fee, service
// contracts and GAP never enter the base, and rebates never reduce it. A lease
// is taxed once on its agreed value.
func calculateAdValorem(input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	extras := rules.Extras.AdValorem
	if extras == nil {
		return nil, newConfigError(rules, business.SchemeAdValorem, ErrMissingAdValoremConfig)
	}

	lease := input.DealType == business.DealTypeLease
	price := helpers.ClampZero(input.VehiclePrice)
	if lease {
		price = helpers.ClampZero(input.AgreedValue())
	}

	credit := decimal.Zero
	if !lease && extras.AllowTradeInCredit && extras.TradeInAppliesTo != business.TradeInAppliesToNone {
		credit = helpers.ClampZero(input.TradeInValue)
	}
	applied := helpers.MinDecimal(credit, price)

	vehicle := price.Sub(applied)
	if !lease && extras.IncludeNegativeEquity {
		vehicle = vehicle.Add(helpers.ClampZero(input.NegativeEquity))
	}

	result := newResult(input, rules, business.SchemeAdValorem)
	result.Bases = business.TaxBases{Vehicle: vehicle, Fees: decimal.Zero, Products: decimal.Zero, Total: vehicle}
	result.Taxes = ApplyRates(vehicle, singleRate(constants.AdValoremRateLabel, extras.Rate))
	result.Debug = business.CalculationDebug{
		TradeInCreditAllowed:   credit,
		AppliedTradeIn:         applied,
		TaxableRebates:         helpers.ClampZero(input.ManufacturerRebate).Add(helpers.ClampZero(input.DealerRebate)),
		NonTaxableRebates:      decimal.Zero,
		TaxableDocFee:          decimal.Zero,
		TaxableServiceContract: decimal.Zero,
		TaxableGap:             decimal.Zero,
		TaxableOtherFees:       []business.Fee{},
		AppliedRate:            extras.Rate,
	}
	if lease {
		upfrontLease(result, input)
	}

	settle(result, input, rules, vehicle, nil)
	return result, nil
}

// singleRate is the one-component rate list used by the special schemes.
func singleRate(label string, rate decimal.Decimal) []business.RateComponent {
	return []business.RateComponent{{Label: label, Rate: rate}}
}
