package services

import (
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// leaseMethod resolves the timing method. An unset method is MONTHLY.
func leaseMethod(rules business.RulesConfig) (business.LeaseMethod, error) {
	switch rules.LeaseRules.Method {
	case "":
		return business.LeaseMethodMonthly, nil
	case business.LeaseMethodMonthly, business.LeaseMethodFullUpfront, business.LeaseMethodHybrid:
		return rules.LeaseRules.Method, nil
	}
	return "", newConfigError(rules, business.SchemeGeneric, ErrUnknownLeaseMethod)
}

// taxableCapReduction is the part of the cap-cost reduction taxed at signing:
// cash, trade-in equity beyond the trade-in credit, and the at-signing rebates
// the lease rebate behavior leaves taxable.
func taxableCapReduction(input business.TransactionInput, rules business.RulesConfig, tradeInCredit decimal.Decimal) decimal.Decimal {
	terms := input.LeaseTermsOrZero()
	total := helpers.ClampZero(terms.CapReductionCash)
	total = total.Add(helpers.ClampZero(helpers.ClampZero(terms.CapReductionTradeIn).Sub(tradeInCredit)))
	if leaseRebateTaxable(rules, business.RebateManufacturer, true) {
		total = total.Add(helpers.ClampZero(terms.CapReductionManufacturerRebate))
	}
	if leaseRebateTaxable(rules, business.RebateDealer, true) {
		total = total.Add(helpers.ClampZero(terms.CapReductionDealerRebate))
	}
	return total
}

// calculateLease taxes a lease under the generic scheme. Taxes in the result
// are totals over the term; the lease breakdown carries the upfront and
// per-payment split.
func calculateLease(input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	method, err := leaseMethod(rules)
	if err != nil {
		return nil, err
	}

	policy := leaseBasePolicy(input, rules)
	assembled := assembleBases(input, policy)
	rates := applicableRates(rules, input.RateComponents)
	terms := input.LeaseTermsOrZero()
	payments := terms.PaymentCount
	if payments < 0 {
		payments = 0
	}

	result := newResult(input, rules, business.SchemeGeneric)
	result.Debug = assembled.debug

	var upfront, perPayment business.TaxBases
	switch method {
	case business.LeaseMethodFullUpfront:
		upfront = assembled.bases
		perPayment = business.TaxBases{Vehicle: decimal.Zero, Fees: decimal.Zero, Products: decimal.Zero, Total: decimal.Zero}
	default:
		// HYBRID taxes the cap reduction at signing whatever taxCapReduction says.
		capReduction := decimal.Zero
		if rules.LeaseRules.TaxCapReduction || method == business.LeaseMethodHybrid {
			capReduction = taxableCapReduction(input, rules, policy.tradeInCredit)
		}
		result.Debug.TaxableCapReduction = capReduction

		fees, products := decimal.Zero, decimal.Zero
		if rules.LeaseRules.TaxFeesUpfront {
			fees = assembled.bases.Fees
			products = assembled.bases.Products
		} else if _, onlyUpfront := leaseDocFeeTaxable(rules); onlyUpfront {
			fees = assembled.debug.TaxableDocFee
		}
		upfront = business.TaxBases{
			Vehicle:  capReduction,
			Fees:     fees,
			Products: products,
			Total:    capReduction.Add(fees).Add(products),
		}
		payment := helpers.ClampZero(terms.BasePayment)
		perPayment = business.TaxBases{Vehicle: payment, Fees: decimal.Zero, Products: decimal.Zero, Total: payment}
	}

	upfrontTaxes := ApplyRates(upfront.Total, rates)
	paymentTaxes := ApplyRates(perPayment.Total, rates)
	count := decimal.NewFromInt(int64(payments))

	result.Bases = upfront
	result.Taxes = addTaxes(upfrontTaxes, scaleTaxes(paymentTaxes, count))
	result.Lease = &business.LeaseBreakdown{
		Method:             method,
		UpfrontTaxableBase: upfront.Total,
		UpfrontTax:         upfrontTaxes.TotalTax,
		PaymentTaxableBase: perPayment.Total,
		PaymentTax:         paymentTaxes.TotalTax,
		PaymentCount:       payments,
		TotalTaxOverTerm:   result.Taxes.TotalTax,
	}

	settle(result, input, rules, upfront.Total.Add(perPayment.Total.Mul(count)), nil)
	return result, nil
}

// upfrontLease wraps a one-time scheme computation as a lease taxed entirely
// at signing.
func upfrontLease(result *business.CalculationResult, input business.TransactionInput) {
	payments := input.LeaseTermsOrZero().PaymentCount
	if payments < 0 {
		payments = 0
	}
	result.Lease = &business.LeaseBreakdown{
		Method:             business.LeaseMethodFullUpfront,
		UpfrontTaxableBase: result.Bases.Total,
		UpfrontTax:         result.Taxes.TotalTax,
		PaymentTaxableBase: decimal.Zero,
		PaymentTax:         decimal.Zero,
		PaymentCount:       payments,
		TotalTaxOverTerm:   result.Taxes.TotalTax,
	}
}
