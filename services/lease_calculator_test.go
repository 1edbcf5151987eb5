package services_test

import (
	"errors"
	"testing"

	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_Lease(t *testing.T) {
	t.Run("monthly lease taxes each payment", func(t *testing.T) {
		input := leaseInput("40000", "500", 36)
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, genericRules())
		require.NoError(t, err)
		require.NotNil(t, result.Lease)
		assert.Equal(t, business.DealTypeLease, result.Mode)
		assert.Equal(t, business.LeaseMethodMonthly, result.Lease.Method)
		assertDecimal(t, "36.25", result.Lease.PaymentTax)
		assertDecimal(t, "500", result.Lease.PaymentTaxableBase)
		assertDecimal(t, "0", result.Lease.UpfrontTax)
		assertDecimal(t, "1305", result.Lease.TotalTaxOverTerm)
		assertDecimal(t, "1305", result.Taxes.TotalTax)
		assertDecimal(t, "1305", result.Taxes.Components[0].Amount)
		assert.Equal(t, 36, result.Lease.PaymentCount)
	})

	t.Run("monthly lease taxes cap reduction and fees upfront when flagged", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.TaxCapReduction = true
		rules.LeaseRules.TaxFeesUpfront = true
		rules.LeaseRules.TradeInCredit = business.LeaseTradeInNone

		input := leaseInput("40000", "500", 36)
		input.TradeInValue = dec("4000")
		input.Lease.CapReductionCash = dec("3000")
		input.Lease.CapReductionTradeIn = dec("4000")
		input.DocFee = dec("500")
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "7000", result.Debug.TaxableCapReduction)
		assertDecimal(t, "7500", result.Lease.UpfrontTaxableBase)
		assertDecimal(t, "543.75", result.Lease.UpfrontTax)
		assertDecimal(t, "1848.75", result.Lease.TotalTaxOverTerm)
	})

	t.Run("cap cost only trade-in credit leaves no taxable trade-in", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.TaxCapReduction = true
		rules.LeaseRules.TaxFeesUpfront = true
		rules.LeaseRules.TradeInCredit = business.LeaseTradeInCapCostOnly

		input := leaseInput("40000", "500", 36)
		input.TradeInValue = dec("4000")
		input.Lease.CapReductionCash = dec("3000")
		input.Lease.CapReductionTradeIn = dec("4000")
		input.DocFee = dec("500")
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "3000", result.Debug.TaxableCapReduction)
		assertDecimal(t, "3500", result.Lease.UpfrontTaxableBase)
	})

	t.Run("cap reduction untaxed when flag is off", func(t *testing.T) {
		input := leaseInput("40000", "500", 36)
		input.Lease.CapReductionCash = dec("3000")
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, genericRules())
		require.NoError(t, err)
		assertDecimal(t, "0", result.Lease.UpfrontTaxableBase)
	})

	t.Run("hybrid taxes cap reduction and payments even with taxCapReduction off", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.Method = business.LeaseMethodHybrid
		rules.LeaseRules.TaxCapReduction = false

		input := leaseInput("40000", "500", 36)
		input.Lease.CapReductionCash = dec("2000")
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "2000", result.Debug.TaxableCapReduction)
		assertDecimal(t, "145", result.Lease.UpfrontTax)
		assertDecimal(t, "36.25", result.Lease.PaymentTax)
		assertDecimal(t, "1450", result.Lease.TotalTaxOverTerm)
	})

	t.Run("full upfront taxes the whole base at signing", func(t *testing.T) {
		rules := genericRules()
		rules.TaxOnGap = true
		rules.LeaseRules.Method = business.LeaseMethodFullUpfront
		rules.LeaseRules.TradeInCredit = business.LeaseTradeInFull
		rules.LeaseRules.DocFeeTaxability = business.LeaseDocFeeAlways
		rules.LeaseRules.FeeTaxRules = []business.FeeTaxRule{{Code: business.FeeCodeServiceContract, Taxable: true}}

		input := leaseInput("30000", "450", 36)
		input.TradeInValue = dec("5000")
		input.DocFee = dec("400")
		input.ServiceContractPrice = dec("1500")
		input.GapPrice = dec("700")
		input.RateComponents = singleRate("0.06")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "25000", result.Bases.Vehicle)
		assertDecimal(t, "400", result.Bases.Fees)
		assertDecimal(t, "1500", result.Bases.Products)
		assertDecimal(t, "26900", result.Bases.Total)
		assertDecimal(t, "1614", result.Lease.UpfrontTax)
		assertDecimal(t, "0", result.Lease.PaymentTax)
		assertDecimal(t, "1614", result.Lease.TotalTaxOverTerm)
	})

	t.Run("rebates at signing are exempt under NON_TAXABLE_IF_AT_SIGNING", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.Method = business.LeaseMethodFullUpfront
		rules.LeaseRules.RebateBehavior = business.LeaseRebateNonTaxableIfAtSigning

		input := leaseInput("30000", "450", 36)
		input.Lease.CapReductionManufacturerRebate = dec("1000")
		input.ManufacturerRebate = dec("500")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "1000", result.Debug.NonTaxableRebates)
		assertDecimal(t, "500", result.Debug.TaxableRebates)
		assertDecimal(t, "29000", result.Bases.Vehicle)
	})

	t.Run("doc fee only upfront", func(t *testing.T) {
		rules := genericRules()
		rules.DocFeeTaxable = false
		rules.LeaseRules.DocFeeTaxability = business.LeaseDocFeeOnlyUpfront

		input := leaseInput("40000", "500", 36)
		input.DocFee = dec("300")
		input.RateComponents = singleRate("0.0725")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "300", result.Lease.UpfrontTaxableBase)
		assertDecimal(t, "21.75", result.Lease.UpfrontTax)
	})

	t.Run("unknown lease method is a configuration error", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.Method = "WEEKLY"

		_, err := services.Calculate(leaseInput("40000", "500", 36), rules)
		assert.True(t, errors.Is(err, services.ErrUnknownLeaseMethod))
		assert.True(t, errors.Is(err, services.ErrInvalidRulesConfig))
	})

	t.Run("lease exception denies reciprocity", func(t *testing.T) {
		rules := genericRules()
		rules.Reciprocity = business.Reciprocity{
			Enabled:           true,
			Scope:             business.ReciprocityBoth,
			HomeStateBehavior: business.HomeStateCreditFull,
			HasLeaseException: true,
		}
		input := leaseInput("40000", "500", 36)
		input.RateComponents = singleRate("0.0725")
		input.OriginTax = &business.OriginTax{Jurisdiction: "OS", Amount: dec("200")}

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "0", result.Debug.ReciprocityCredit)
		assert.Equal(t, services.ReciprocityReasonLeaseException, result.Debug.ReciprocityReason)
		assertDecimal(t, "1305", result.TaxDue)
	})
}

func TestCalculate_PolicyIndependence(t *testing.T) {
	t.Run("retail product flags do not touch leases", func(t *testing.T) {
		rules := genericRules()
		rules.LeaseRules.Method = business.LeaseMethodFullUpfront
		rules.LeaseRules.FeeTaxRules = []business.FeeTaxRule{{Code: business.FeeCodeServiceContract, Taxable: false}}

		input := leaseInput("30000", "450", 36)
		input.ServiceContractPrice = dec("2000")
		input.GapPrice = dec("600")
		input.RateComponents = singleRate("0.06")

		rules.TaxOnServiceContracts = false
		rules.TaxOnGap = false
		off, err := services.Calculate(input, rules)
		require.NoError(t, err)

		rules.TaxOnServiceContracts = true
		rules.TaxOnGap = true
		on, err := services.Calculate(input, rules)
		require.NoError(t, err)

		assert.Equal(t, off, on)
		assertDecimal(t, "0", on.Bases.Products)
	})

	t.Run("lease fee rules do not touch retail", func(t *testing.T) {
		rules := genericRules()
		rules.TaxOnServiceContracts = true

		input := retailInput("30000")
		input.ServiceContractPrice = dec("2000")
		input.RateComponents = singleRate("0.06")

		before, err := services.Calculate(input, rules)
		require.NoError(t, err)

		rules.LeaseRules.FeeTaxRules = []business.FeeTaxRule{{Code: business.FeeCodeServiceContract, Taxable: false}}
		rules.LeaseRules.NegativeEquityTaxable = true
		after, err := services.Calculate(input, rules)
		require.NoError(t, err)

		assert.Equal(t, before, after)
		assertDecimal(t, "2000", after.Bases.Products)
	})
}
