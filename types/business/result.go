package business

import "github.com/shopspring/decimal"

// CalculationResult is the engine output. It is a pure function of the
// transaction and the rules it was computed from.
type CalculationResult struct {
	Mode             DealType         `json:"mode"`
	Scheme           VehicleTaxScheme `json:"scheme"`
	JurisdictionCode string           `json:"jurisdictionCode"`
	Bases            TaxBases         `json:"bases"`
	Taxes            TaxAmounts       `json:"taxes"`
	// TaxDue is Taxes.TotalTax less the reciprocity credit, floored at zero.
	TaxDue decimal.Decimal `json:"taxDue"`
	// TaxBalance is TaxDue less tax already collected, floored at zero.
	TaxBalance decimal.Decimal  `json:"taxBalance"`
	Debug      CalculationDebug `json:"debug"`
	Lease      *LeaseBreakdown  `json:"lease,omitempty"`
}

// TaxBases are the taxable amounts. Total is always the sum of the parts.
type TaxBases struct {
	Vehicle  decimal.Decimal `json:"vehicle"`
	Fees     decimal.Decimal `json:"fees"`
	Products decimal.Decimal `json:"products"`
	Total    decimal.Decimal `json:"total"`
}

// ComponentTax is the tax attributed to one rate component.
type ComponentTax struct {
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxAmounts is the per-component breakdown; TotalTax is their sum.
type TaxAmounts struct {
	Components []ComponentTax  `json:"components"`
	TotalTax   decimal.Decimal `json:"totalTax"`
}

// CalculationDebug exposes every intermediate decision.
type CalculationDebug struct {
	TradeInCreditAllowed   decimal.Decimal `json:"tradeInCreditAllowed"`
	AppliedTradeIn         decimal.Decimal `json:"appliedTradeIn"`
	TaxableRebates         decimal.Decimal `json:"taxableRebates"`
	NonTaxableRebates      decimal.Decimal `json:"nonTaxableRebates"`
	TaxableDocFee          decimal.Decimal `json:"taxableDocFee"`
	TaxableServiceContract decimal.Decimal `json:"taxableServiceContract"`
	TaxableGap             decimal.Decimal `json:"taxableGap"`
	TaxableOtherFees       []Fee           `json:"taxableOtherFees"`
	TaxableCapReduction    decimal.Decimal `json:"taxableCapReduction,omitempty"`
	AppliedRate            decimal.Decimal `json:"appliedRate,omitempty"`
	ReciprocityCredit      decimal.Decimal `json:"reciprocityCredit"`
	ReciprocityReason      string          `json:"reciprocityReason,omitempty"`
	TaxAlreadyCollected    decimal.Decimal `json:"taxAlreadyCollected"`
	Notes                  []string        `json:"notes,omitempty"`
}

// LeaseBreakdown splits lease tax between signing and each payment.
type LeaseBreakdown struct {
	Method             LeaseMethod     `json:"method"`
	UpfrontTaxableBase decimal.Decimal `json:"upfrontTaxableBase"`
	UpfrontTax         decimal.Decimal `json:"upfrontTax"`
	PaymentTaxableBase decimal.Decimal `json:"paymentTaxableBase"`
	PaymentTax         decimal.Decimal `json:"paymentTax"`
	PaymentCount       int             `json:"paymentCount"`
	TotalTaxOverTerm   decimal.Decimal `json:"totalTaxOverTerm"`
}
