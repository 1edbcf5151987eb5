package services_test

import (
	"testing"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adValoremRules() business.RulesConfig {
	rules := genericRules()
	rules.Scheme = business.SchemeAdValorem
	rules.TaxOnServiceContracts = true
	rules.TaxOnGap = true
	rules.Extras.AdValorem = &business.AdValoremExtras{
		Rate:                  dec("0.07"),
		AllowTradeInCredit:    true,
		TradeInAppliesTo:      business.TradeInAppliesToVehiclePrice,
		IncludeNegativeEquity: true,
	}
	return rules
}

func TestCalculate_AdValorem(t *testing.T) {
	t.Run("flat rate on price net of trade-in plus negative equity", func(t *testing.T) {
		input := retailInput("30000")
		input.TradeInValue = dec("10000")
		input.NegativeEquity = dec("2000")
		input.DocFee = dec("500")
		input.ServiceContractPrice = dec("1000")
		input.GapPrice = dec("400")
		input.ManufacturerRebate = dec("2000")
		input.RateComponents = singleRate("0.09")

		result, err := services.Calculate(input, adValoremRules())
		require.NoError(t, err)
		assert.Equal(t, business.SchemeAdValorem, result.Scheme)
		assertDecimal(t, "22000", result.Bases.Vehicle)
		assertDecimal(t, "0", result.Bases.Fees)
		assertDecimal(t, "0", result.Bases.Products)
		assertDecimal(t, "1540", result.Taxes.TotalTax)
		require.Len(t, result.Taxes.Components, 1)
		assert.Equal(t, constants.AdValoremRateLabel, result.Taxes.Components[0].Label)
		assertDecimal(t, "2000", result.Debug.TaxableRebates)
		assertDecimal(t, "0.07", result.Debug.AppliedRate)
	})

	t.Run("trade-in credit is capped at vehicle price", func(t *testing.T) {
		input := retailInput("20000")
		input.TradeInValue = dec("25000")
		input.NegativeEquity = dec("3000")

		result, err := services.Calculate(input, adValoremRules())
		require.NoError(t, err)
		assertDecimal(t, "20000", result.Debug.AppliedTradeIn)
		assertDecimal(t, "3000", result.Bases.Total)
		assertDecimal(t, "210", result.Taxes.TotalTax)
	})

	t.Run("trade-in that applies to nothing", func(t *testing.T) {
		rules := adValoremRules()
		rules.Extras.AdValorem.TradeInAppliesTo = business.TradeInAppliesToNone
		input := retailInput("30000")
		input.TradeInValue = dec("10000")
		input.NegativeEquity = dec("2000")

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "32000", result.Bases.Total)
	})

	t.Run("lease taxes agreed value upfront", func(t *testing.T) {
		input := leaseInput("35000", "450", 36)
		input.TradeInValue = dec("10000")

		result, err := services.Calculate(input, adValoremRules())
		require.NoError(t, err)
		require.NotNil(t, result.Lease)
		assertDecimal(t, "2450", result.Lease.UpfrontTax)
		assertDecimal(t, "0", result.Lease.PaymentTax)
		assertDecimal(t, "2450", result.Lease.TotalTaxOverTerm)
		assert.Equal(t, business.LeaseMethodFullUpfront, result.Lease.Method)
	})
}

func highwayUseRules() business.RulesConfig {
	rules := genericRules()
	rules.Scheme = business.SchemeHighwayUse
	rules.TaxOnServiceContracts = false
	rules.FeeTaxRules = []business.FeeTaxRule{{Code: "DEALER_PREP", Taxable: true}}
	rules.Reciprocity = business.Reciprocity{
		Enabled:            true,
		Scope:              business.ReciprocityBoth,
		HomeStateBehavior:  business.HomeStateCreditUpToStateTax,
		Basis:              business.BasisTaxPaid,
		CapAtThisStatesTax: true,
	}
	rules.Extras.HighwayUse = &business.HighwayUseExtras{
		Rate:                  dec("0.03"),
		IncludeDocFee:         true,
		ReciprocityWindowDays: 90,
	}
	return rules
}

func TestCalculate_HighwayUse(t *testing.T) {
	newInput := func() business.TransactionInput {
		input := retailInput("30000")
		input.TradeInValue = dec("5000")
		input.DocFee = dec("500")
		input.ServiceContractPrice = dec("2000")
		input.GapPrice = dec("800")
		input.OtherFees = []business.Fee{{Code: "DEALER_PREP", Amount: dec("300")}}
		return input
	}

	t.Run("service contract is always taxed", func(t *testing.T) {
		result, err := services.Calculate(newInput(), highwayUseRules())
		require.NoError(t, err)
		assertDecimal(t, "25000", result.Bases.Vehicle)
		assertDecimal(t, "500", result.Bases.Fees)
		assertDecimal(t, "2000", result.Bases.Products)
		assertDecimal(t, "2000", result.Debug.TaxableServiceContract)
		assertDecimal(t, "0", result.Debug.TaxableGap)
		assertDecimal(t, "825", result.Taxes.TotalTax)
		assert.Equal(t, constants.HighwayUseRateLabel, result.Taxes.Components[0].Label)
	})

	t.Run("doc fee follows extras", func(t *testing.T) {
		rules := highwayUseRules()
		rules.Extras.HighwayUse.IncludeDocFee = false
		result, err := services.Calculate(newInput(), rules)
		require.NoError(t, err)
		assertDecimal(t, "0", result.Bases.Fees)
	})

	t.Run("reciprocity window boundary is inclusive", func(t *testing.T) {
		input := newInput()
		input.OriginTax = &business.OriginTax{Jurisdiction: "OS", Amount: dec("500"), DatePaid: evaluationDate.AddDate(0, 0, -90)}

		result, err := services.Calculate(input, highwayUseRules())
		require.NoError(t, err)
		assertDecimal(t, "500", result.Debug.ReciprocityCredit)
		assertDecimal(t, "325", result.TaxDue)

		input.OriginTax.DatePaid = evaluationDate.AddDate(0, 0, -91)
		result, err = services.Calculate(input, highwayUseRules())
		require.NoError(t, err)
		assertDecimal(t, "0", result.Debug.ReciprocityCredit)
		assert.Equal(t, services.ReciprocityReasonWindowExpired, result.Debug.ReciprocityReason)
		assertDecimal(t, "825", result.TaxDue)
	})

	t.Run("zero-day window accepts only same-day payment", func(t *testing.T) {
		rules := highwayUseRules()
		rules.Extras.HighwayUse.ReciprocityWindowDays = 0
		input := newInput()
		input.OriginTax = &business.OriginTax{Jurisdiction: "OS", Amount: dec("500"), DatePaid: evaluationDate}

		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "500", result.Debug.ReciprocityCredit)

		input.OriginTax.DatePaid = evaluationDate.AddDate(0, 0, -1)
		result, err = services.Calculate(input, rules)
		require.NoError(t, err)
		assert.Equal(t, services.ReciprocityReasonWindowExpired, result.Debug.ReciprocityReason)
	})

	t.Run("lease taxed upfront on gross cap cost", func(t *testing.T) {
		input := leaseInput("40000", "500", 36)
		input.DocFee = dec("500")

		result, err := services.Calculate(input, highwayUseRules())
		require.NoError(t, err)
		assertDecimal(t, "40500", result.Lease.UpfrontTaxableBase)
		assertDecimal(t, "1215", result.Lease.UpfrontTax)
		assertDecimal(t, "0", result.Lease.PaymentTax)
	})
}

func privilegeRules() business.RulesConfig {
	rules := genericRules()
	rules.Scheme = business.SchemePrivilege
	rules.Extras.Privilege = &business.PrivilegeExtras{
		BaseRate:           dec("0.05"),
		ClassRates:         map[string]decimal.Decimal{"SUV": dec("0.06")},
		ExcludeDocFee:      true,
		AllowTradeInCredit: true,
	}
	return rules
}

func TestCalculate_PrivilegeTax(t *testing.T) {
	newInput := func(class string) business.TransactionInput {
		input := retailInput("30000")
		input.Accessories = dec("1000")
		input.DocFee = dec("500")
		input.ServiceContractPrice = dec("1000")
		input.GapPrice = dec("500")
		input.TradeInValue = dec("5000")
		input.VehicleClass = class
		return input
	}

	tests := []struct {
		name        string
		class       string
		rate        string
		tax         string
		expectNotes bool
	}{
		{"class rate matched case-insensitively", "suv", "0.06", "1650", false},
		{"unknown class falls back to base rate", "BOAT", "0.05", "1375", true},
		{"no class uses base rate", "", "0.05", "1375", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := services.Calculate(newInput(tt.class), privilegeRules())
			require.NoError(t, err)
			assertDecimal(t, "26000", result.Bases.Vehicle)
			assertDecimal(t, "0", result.Bases.Fees)
			assertDecimal(t, "1500", result.Bases.Products)
			assertDecimal(t, tt.rate, result.Debug.AppliedRate)
			assertDecimal(t, tt.tax, result.Taxes.TotalTax)
			assert.Equal(t, constants.PrivilegeRateLabel, result.Taxes.Components[0].Label)
			if tt.expectNotes {
				require.Len(t, result.Debug.Notes, 1)
				assert.Contains(t, result.Debug.Notes[0], tt.class)
			} else {
				assert.Empty(t, result.Debug.Notes)
			}
		})
	}

	t.Run("trade-in credit follows extras", func(t *testing.T) {
		rules := privilegeRules()
		rules.Extras.Privilege.AllowTradeInCredit = false
		result, err := services.Calculate(newInput(""), rules)
		require.NoError(t, err)
		assertDecimal(t, "31000", result.Bases.Vehicle)
		assertDecimal(t, "32500", result.Bases.Total)
	})

	policies := []struct {
		name   string
		policy business.TradeInPolicy
	}{
		{"full", business.FullTradeIn()},
		{"none", business.NoTradeIn()},
		{"capped", business.CappedTradeIn(dec("1000"))},
		{"percent", business.PercentTradeIn(dec("0.5"))},
	}
	for _, p := range policies {
		t.Run("generic "+p.name+" trade-in policy is ignored", func(t *testing.T) {
			rules := privilegeRules()
			rules.TradeInPolicy = p.policy
			input := retailInput("30000")
			input.TradeInValue = dec("5000")

			result, err := services.Calculate(input, rules)
			require.NoError(t, err)
			assertDecimal(t, "5000", result.Debug.TradeInCreditAllowed)
			assertDecimal(t, "5000", result.Debug.AppliedTradeIn)
			assertDecimal(t, "25000", result.Bases.Vehicle)
			assertDecimal(t, "1250", result.Taxes.TotalTax)
		})
	}

	t.Run("exclusions remove products", func(t *testing.T) {
		rules := privilegeRules()
		rules.Extras.Privilege.ExcludeServiceContracts = true
		rules.Extras.Privilege.ExcludeGap = true
		rules.Extras.Privilege.ExcludeDocFee = false
		result, err := services.Calculate(newInput(""), rules)
		require.NoError(t, err)
		assertDecimal(t, "500", result.Bases.Fees)
		assertDecimal(t, "0", result.Bases.Products)
	})

	t.Run("class rate lookup", func(t *testing.T) {
		extras := privilegeRules().Extras.Privilege
		rate, known := services.ClassRate(extras, "SUV")
		assert.True(t, known)
		assertDecimal(t, "0.06", rate)

		rate, known = services.ClassRate(extras, "TRUCK")
		assert.False(t, known)
		assertDecimal(t, "0.05", rate)
	})
}
