package services

import (
	"fmt"
	"strings"

	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// Note prefixes recorded in CalculationDebug.Notes for normalised inputs.
const (
	NoteUnknownFeeCode      = "fee code without a taxability rule treated as non-taxable:"
	NoteUnknownVehicleClass = "vehicle class without a class rate uses the base rate:"
)

// basePolicy is the resolved set of switches the assembler works from. Retail
// and lease callers fill it from their own policy surfaces. feeLookup reports
// whether an other-fee code is taxable and whether any rule matched it; a nil
// lookup excludes every other fee.
type basePolicy struct {
	vehicleAmount      decimal.Decimal
	includeAccessories bool
	tradeInCredit      decimal.Decimal
	taxableRebates     decimal.Decimal
	nonTaxableRebates  decimal.Decimal
	includeNegEquity   bool
	includeDocFee      bool
	feeLookup          func(code string) (taxable, found bool)
	includeService     bool
	includeGap         bool
}

// assembledBases is the Base Assembler output with the decisions behind it.
type assembledBases struct {
	bases business.TaxBases
	debug business.CalculationDebug
}

// TradeInCredit turns a trade-in value into a credit under policy. The result
// is not yet capped by the vehicle amount.
func TradeInCredit(policy business.TradeInPolicy, value decimal.Decimal) decimal.Decimal {
	value = helpers.ClampZero(value)
	switch policy.Type {
	case business.TradeInFull:
		return value
	case business.TradeInCapped:
		return helpers.MinDecimal(value, helpers.ClampZero(policy.Cap))
	case business.TradeInPercent:
		return helpers.ClampZero(value.Mul(policy.Percent))
	default:
		return decimal.Zero
	}
}

// FeeCodeTaxable looks code up in rules, case-insensitively. A code with no
// rule is not taxable.
func FeeCodeTaxable(rules []business.FeeTaxRule, code string) bool {
	taxable, _ := lookupFeeRule(code, rules)
	return taxable
}

// lookupFeeRule searches each list in order and reports whether any rule
// matched at all.
func lookupFeeRule(code string, lists ...[]business.FeeTaxRule) (taxable, found bool) {
	for _, list := range lists {
		for _, r := range list {
			if strings.EqualFold(r.Code, code) {
				return r.Taxable, true
			}
		}
	}
	return false, false
}

// rebateTaxable reports the retail rule for source. Sources without a rule
// are taxable, so the rebate leaves the base untouched.
func rebateTaxable(rules []business.RebateRule, source business.RebateSource) bool {
	for _, r := range rules {
		if r.Source == source {
			return r.Taxable
		}
	}
	return true
}

// splitRetailRebates classifies the transaction's rebates with the retail rules.
func splitRetailRebates(input business.TransactionInput, rules business.RulesConfig) (taxable, nonTaxable decimal.Decimal) {
	taxable, nonTaxable = decimal.Zero, decimal.Zero
	for _, r := range []struct {
		source business.RebateSource
		amount decimal.Decimal
	}{
		{business.RebateManufacturer, input.ManufacturerRebate},
		{business.RebateDealer, input.DealerRebate},
	} {
		amount := helpers.ClampZero(r.amount)
		if rebateTaxable(rules.RebateRules, r.source) {
			taxable = taxable.Add(amount)
		} else {
			nonTaxable = nonTaxable.Add(amount)
		}
	}
	return taxable, nonTaxable
}

// leaseRebateTaxable applies the lease rebate behavior to one source. atSigning
// marks rebates taken as a cap-cost reduction.
func leaseRebateTaxable(rules business.RulesConfig, source business.RebateSource, atSigning bool) bool {
	switch rules.LeaseRules.RebateBehavior {
	case business.LeaseRebateAlwaysTaxable:
		return true
	case business.LeaseRebateAlwaysNonTaxable:
		return false
	case business.LeaseRebateNonTaxableIfAtSigning:
		if atSigning {
			return false
		}
	}
	return rebateTaxable(rules.RebateRules, source)
}

// splitLeaseRebates classifies lease rebates under the lease rebate behavior.
// Cap-reduction rebates are the ones applied at signing.
func splitLeaseRebates(input business.TransactionInput, rules business.RulesConfig) (taxable, nonTaxable decimal.Decimal) {
	terms := input.LeaseTermsOrZero()
	taxable, nonTaxable = decimal.Zero, decimal.Zero
	for _, r := range []struct {
		source    business.RebateSource
		atSigning decimal.Decimal
		later     decimal.Decimal
	}{
		{business.RebateManufacturer, terms.CapReductionManufacturerRebate, input.ManufacturerRebate},
		{business.RebateDealer, terms.CapReductionDealerRebate, input.DealerRebate},
	} {
		for _, part := range []struct {
			amount    decimal.Decimal
			atSigning bool
		}{{r.atSigning, true}, {r.later, false}} {
			amount := helpers.ClampZero(part.amount)
			if leaseRebateTaxable(rules, r.source, part.atSigning) {
				taxable = taxable.Add(amount)
			} else {
				nonTaxable = nonTaxable.Add(amount)
			}
		}
	}
	return taxable, nonTaxable
}

// leaseTradeInCredit resolves the lease trade-in credit mode.
func leaseTradeInCredit(input business.TransactionInput, rules business.RulesConfig) decimal.Decimal {
	terms := input.LeaseTermsOrZero()
	switch rules.LeaseRules.TradeInCredit {
	case business.LeaseTradeInFull:
		return helpers.ClampZero(input.TradeInValue)
	case business.LeaseTradeInNone:
		return decimal.Zero
	case business.LeaseTradeInCapCostOnly:
		return helpers.ClampZero(terms.CapReductionTradeIn)
	default:
		return TradeInCredit(rules.TradeInPolicy, input.TradeInValue)
	}
}

// leaseDocFeeTaxable resolves the lease doc fee mode; upfront reports whether
// the fee must be taxed at signing regardless of taxFeesUpfront.
func leaseDocFeeTaxable(rules business.RulesConfig) (taxable, upfront bool) {
	switch rules.LeaseRules.DocFeeTaxability {
	case business.LeaseDocFeeAlways:
		return true, false
	case business.LeaseDocFeeNever:
		return false, false
	case business.LeaseDocFeeOnlyUpfront:
		return true, true
	default:
		return rules.DocFeeTaxable, false
	}
}

// retailFeeLookup checks the retail fee rules.
func retailFeeLookup(rules business.RulesConfig) func(string) (bool, bool) {
	return func(code string) (bool, bool) {
		return lookupFeeRule(code, rules.FeeTaxRules)
	}
}

// leaseFeeLookup checks the lease fee rules, then the lease title-fee rules.
func leaseFeeLookup(rules business.RulesConfig) func(string) (bool, bool) {
	return func(code string) (bool, bool) {
		return lookupFeeRule(code, rules.LeaseRules.FeeTaxRules, rules.LeaseRules.TitleFeeRules)
	}
}

// retailBasePolicy resolves the retail policy surface.
func retailBasePolicy(input business.TransactionInput, rules business.RulesConfig) basePolicy {
	taxable, nonTaxable := splitRetailRebates(input, rules)
	return basePolicy{
		vehicleAmount:      input.VehiclePrice,
		includeAccessories: rules.TaxOnAccessories,
		tradeInCredit:      TradeInCredit(rules.TradeInPolicy, input.TradeInValue),
		taxableRebates:     taxable,
		nonTaxableRebates:  nonTaxable,
		includeNegEquity:   rules.TaxOnNegativeEquity,
		includeDocFee:      rules.DocFeeTaxable,
		feeLookup:          retailFeeLookup(rules),
		includeService:     rules.TaxOnServiceContracts,
		includeGap:         rules.TaxOnGap,
	}
}

// leaseBasePolicy resolves the lease policy surface. Products follow the lease
// fee rules, never the retail product flags.
func leaseBasePolicy(input business.TransactionInput, rules business.RulesConfig) basePolicy {
	taxable, nonTaxable := splitLeaseRebates(input, rules)
	docFee, _ := leaseDocFeeTaxable(rules)
	lookup := leaseFeeLookup(rules)
	service, _ := lookup(business.FeeCodeServiceContract)
	gap, _ := lookup(business.FeeCodeGap)
	return basePolicy{
		vehicleAmount:      input.AgreedValue(),
		includeAccessories: rules.TaxOnAccessories,
		tradeInCredit:      leaseTradeInCredit(input, rules),
		taxableRebates:     taxable,
		nonTaxableRebates:  nonTaxable,
		includeNegEquity:   rules.LeaseRules.NegativeEquityTaxable,
		includeDocFee:      docFee,
		feeLookup:          lookup,
		includeService:     service,
		includeGap:         gap,
	}
}

// assembleBases computes the vehicle, fee and product bases. Only the vehicle
// base can go negative before clamping; the others sum non-negative inputs.
func assembleBases(input business.TransactionInput, p basePolicy) assembledBases {
	out := assembledBases{}

	offsetable := helpers.ClampZero(p.vehicleAmount)
	if p.includeAccessories {
		offsetable = offsetable.Add(helpers.ClampZero(input.Accessories))
	}
	if p.includeNegEquity {
		offsetable = offsetable.Add(helpers.ClampZero(input.NegativeEquity))
	}
	offsetable = helpers.ClampZero(offsetable.Sub(p.nonTaxableRebates))

	applied := helpers.MinDecimal(p.tradeInCredit, offsetable)
	vehicle := offsetable.Sub(applied)

	fees := decimal.Zero
	taxableDocFee := decimal.Zero
	if p.includeDocFee {
		taxableDocFee = helpers.ClampZero(input.DocFee)
		fees = fees.Add(taxableDocFee)
	}
	taxableOther := make([]business.Fee, 0, len(input.OtherFees))
	var notes []string
	for _, f := range input.OtherFees {
		if p.feeLookup == nil {
			continue
		}
		taxable, found := p.feeLookup(f.Code)
		if !found {
			notes = append(notes, fmt.Sprintf("%s %s", NoteUnknownFeeCode, f.Code))
			continue
		}
		if taxable {
			amount := helpers.ClampZero(f.Amount)
			taxableOther = append(taxableOther, business.Fee{Code: f.Code, Amount: amount})
			fees = fees.Add(amount)
		}
	}

	products := decimal.Zero
	taxableService := decimal.Zero
	taxableGap := decimal.Zero
	if p.includeService {
		taxableService = helpers.ClampZero(input.ServiceContractPrice)
		products = products.Add(taxableService)
	}
	if p.includeGap {
		taxableGap = helpers.ClampZero(input.GapPrice)
		products = products.Add(taxableGap)
	}

	out.bases = business.TaxBases{
		Vehicle:  vehicle,
		Fees:     fees,
		Products: products,
		Total:    vehicle.Add(fees).Add(products),
	}
	out.debug = business.CalculationDebug{
		TradeInCreditAllowed:   p.tradeInCredit,
		AppliedTradeIn:         applied,
		TaxableRebates:         p.taxableRebates,
		NonTaxableRebates:      p.nonTaxableRebates,
		TaxableDocFee:          taxableDocFee,
		TaxableServiceContract: taxableService,
		TaxableGap:             taxableGap,
		TaxableOtherFees:       taxableOther,
		Notes:                  notes,
	}
	return out
}

// AssembleRetailBases runs the assembler with the retail policy surface.
func AssembleRetailBases(input business.TransactionInput, rules business.RulesConfig) business.TaxBases {
	return assembleBases(input, retailBasePolicy(input, rules)).bases
}

// AssembleLeaseBases runs the assembler with the lease policy surface.
func AssembleLeaseBases(input business.TransactionInput, rules business.RulesConfig) business.TaxBases {
	return assembleBases(input, leaseBasePolicy(input, rules)).bases
}
