package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// calculatePrivilegeTax applies the class-rated privilege tax. Doc fee,
// service contracts and GAP are in the base unless the extras exclude them.
// Leases are taxed once at signing on the agreed value.
func calculatePrivilegeTax(input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	extras := rules.Extras.Privilege
	if extras == nil {
		return nil, newConfigError(rules, business.SchemePrivilege, ErrMissingPrivilegeTaxConfig)
	}

	// The generic trade-in policy does not apply; the extras alone decide.
	credit := decimal.Zero
	if extras.AllowTradeInCredit {
		credit = helpers.ClampZero(input.TradeInValue)
	}
	taxable, nonTaxable := splitRetailRebates(input, rules)
	assembled := assembleBases(input, basePolicy{
		vehicleAmount:      input.AgreedValue(),
		includeAccessories: true,
		tradeInCredit:      credit,
		taxableRebates:     taxable,
		nonTaxableRebates:  nonTaxable,
		includeNegEquity:   extras.IncludeNegativeEquity,
		includeDocFee:      !extras.ExcludeDocFee,
		feeLookup:          retailFeeLookup(rules),
		includeService:     !extras.ExcludeServiceContracts,
		includeGap:         !extras.ExcludeGap,
	})

	rate, known := ClassRate(extras, input.VehicleClass)
	result := newResult(input, rules, business.SchemePrivilege)
	result.Bases = assembled.bases
	result.Taxes = ApplyRates(assembled.bases.Total, singleRate(constants.PrivilegeRateLabel, rate))
	result.Debug = assembled.debug
	result.Debug.AppliedRate = rate
	if !known && input.VehicleClass != "" {
		result.Debug.Notes = append(result.Debug.Notes, fmt.Sprintf("%s %s", NoteUnknownVehicleClass, input.VehicleClass))
	}
	if input.DealType == business.DealTypeLease {
		upfrontLease(result, input)
	}

	settle(result, input, rules, assembled.bases.Total, nil)
	return result, nil
}

// ClassRate returns the rate for class, matched case-insensitively, or the
// base rate when the class is empty or has no entry.
func ClassRate(extras *business.PrivilegeExtras, class string) (decimal.Decimal, bool) {
	if class == "" {
		return extras.BaseRate, false
	}
	if rate, ok := extras.ClassRates[class]; ok {
		return rate, true
	}
	keys := make([]string, 0, len(extras.ClassRates))
	for k := range extras.ClassRates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, class) {
			return extras.ClassRates[k], true
		}
	}
	return extras.BaseRate, false
}
