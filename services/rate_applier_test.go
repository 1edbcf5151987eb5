package services_test

import (
	"testing"

	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRates(t *testing.T) {
	t.Run("components are taxed in order and summed", func(t *testing.T) {
		taxes := services.ApplyRates(dec("20000"), []business.RateComponent{
			{Label: "STATE", Rate: dec("0.06")},
			{Label: "COUNTY", Rate: dec("0.0125")},
			{Label: "CITY", Rate: dec("0")},
		})

		require.Len(t, taxes.Components, 3)
		assert.Equal(t, "STATE", taxes.Components[0].Label)
		assertDecimal(t, "1200", taxes.Components[0].Amount)
		assert.Equal(t, "COUNTY", taxes.Components[1].Label)
		assertDecimal(t, "250", taxes.Components[1].Amount)
		assertDecimal(t, "0", taxes.Components[2].Amount)
		assertDecimal(t, "1450", taxes.TotalTax)
	})

	t.Run("empty rate list yields zero tax", func(t *testing.T) {
		taxes := services.ApplyRates(dec("20000"), nil)
		assert.Empty(t, taxes.Components)
		assertDecimal(t, "0", taxes.TotalTax)
	})

	t.Run("no rounding is applied", func(t *testing.T) {
		taxes := services.ApplyRates(dec("333.33"), singleRate("0.0725"))
		assertDecimal(t, "24.166425", taxes.TotalTax)
	})
}

func TestCalculate_LocalTaxApplicability(t *testing.T) {
	rules := genericRules()
	input := retailInput("10000")
	input.RateComponents = []business.RateComponent{
		{Label: "STATE", Rate: dec("0.06")},
		{Label: "LOCAL", Rate: dec("0.02")},
	}

	t.Run("local components apply", func(t *testing.T) {
		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		assertDecimal(t, "800", result.Taxes.TotalTax)
	})

	t.Run("only the jurisdiction rate applies when local tax is off", func(t *testing.T) {
		rules.LocalTaxApplies = false
		result, err := services.Calculate(input, rules)
		require.NoError(t, err)
		require.Len(t, result.Taxes.Components, 2)
		assertDecimal(t, "600", result.Taxes.Components[0].Amount)
		assertDecimal(t, "0", result.Taxes.Components[1].Amount)
		assertDecimal(t, "600", result.Taxes.TotalTax)
	})
}
