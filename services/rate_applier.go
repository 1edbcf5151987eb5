package services

import (
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// ApplyRates taxes base with each component in order. The total is the sum of
// the component amounts; nothing is rounded.
func ApplyRates(base decimal.Decimal, components []business.RateComponent) business.TaxAmounts {
	result := business.TaxAmounts{
		Components: make([]business.ComponentTax, 0, len(components)),
		TotalTax:   decimal.Zero,
	}
	for _, c := range components {
		amount := base.Mul(c.Rate)
		result.Components = append(result.Components, business.ComponentTax{
			Label:  c.Label,
			Rate:   c.Rate,
			Amount: amount,
		})
		result.TotalTax = result.TotalTax.Add(amount)
	}
	return result
}

// applicableRates drops every component after the first when local taxes do
// not apply to vehicles. Dropped components stay in the list at a zero rate so
// the breakdown still names them.
func applicableRates(rules business.RulesConfig, components []business.RateComponent) []business.RateComponent {
	if rules.LocalTaxApplies || len(components) <= 1 {
		return components
	}
	out := make([]business.RateComponent, len(components))
	copy(out, components)
	for i := 1; i < len(out); i++ {
		out[i].Rate = decimal.Zero
	}
	return out
}

// scaleTaxes multiplies every component amount by n.
func scaleTaxes(t business.TaxAmounts, n decimal.Decimal) business.TaxAmounts {
	out := business.TaxAmounts{
		Components: make([]business.ComponentTax, len(t.Components)),
		TotalTax:   decimal.Zero,
	}
	for i, c := range t.Components {
		c.Amount = c.Amount.Mul(n)
		out.Components[i] = c
		out.TotalTax = out.TotalTax.Add(c.Amount)
	}
	return out
}

// addTaxes sums two breakdowns computed from the same component list.
func addTaxes(a, b business.TaxAmounts) business.TaxAmounts {
	out := business.TaxAmounts{
		Components: make([]business.ComponentTax, len(a.Components)),
		TotalTax:   decimal.Zero,
	}
	for i, c := range a.Components {
		if i < len(b.Components) {
			c.Amount = c.Amount.Add(b.Components[i].Amount)
		}
		out.Components[i] = c
		out.TotalTax = out.TotalTax.Add(c.Amount)
	}
	return out
}
