package services_test

import (
	"testing"
	"time"

	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.InitLogger("test")
}

var evaluationDate = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares by value so "1809.9" and "1809.90" are equal.
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func singleRate(rate string) []business.RateComponent {
	return []business.RateComponent{{Label: "STATE", Rate: dec(rate)}}
}

// genericRules is a plain sales-tax jurisdiction: full trade-in credit,
// taxable doc fee, nothing else special.
func genericRules() business.RulesConfig {
	return business.RulesConfig{
		JurisdictionCode: "TS",
		Name:             "Test State",
		TradeInPolicy:    business.FullTradeIn(),
		RebateRules: []business.RebateRule{
			{Source: business.RebateManufacturer, Taxable: true},
			{Source: business.RebateDealer, Taxable: true},
		},
		DocFeeTaxable:   true,
		Scheme:          business.SchemeGeneric,
		LocalTaxApplies: true,
		LeaseRules: business.LeaseRules{
			Method:           business.LeaseMethodMonthly,
			RebateBehavior:   business.LeaseRebateFollowRetail,
			DocFeeTaxability: business.LeaseDocFeeFollowRetail,
			TradeInCredit:    business.LeaseTradeInFollowRetail,
		},
	}
}

func retailInput(price string) business.TransactionInput {
	return business.TransactionInput{
		JurisdictionCode: "TS",
		EvaluationDate:   evaluationDate,
		DealType:         business.DealTypeRetail,
		VehiclePrice:     dec(price),
	}
}

func leaseInput(grossCapCost, payment string, count int) business.TransactionInput {
	input := retailInput(grossCapCost)
	input.DealType = business.DealTypeLease
	input.Lease = &business.LeaseTerms{
		GrossCapCost: dec(grossCapCost),
		BasePayment:  dec(payment),
		PaymentCount: count,
	}
	return input
}
