package business

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionInput describes one deal. Monetary fields are non-negative as
// supplied; derived values are clamped by the engine.
type TransactionInput struct {
	JurisdictionCode string          `json:"jurisdictionCode"`
	EvaluationDate   time.Time       `json:"evaluationDate"`
	DealType         DealType        `json:"dealType"`
	VehiclePrice     decimal.Decimal `json:"vehiclePrice"`
	Accessories      decimal.Decimal `json:"accessories"`
	TradeInValue     decimal.Decimal `json:"tradeInValue"`

	ManufacturerRebate decimal.Decimal `json:"manufacturerRebate"`
	DealerRebate       decimal.Decimal `json:"dealerRebate"`

	DocFee    decimal.Decimal `json:"docFee"`
	OtherFees []Fee           `json:"otherFees,omitempty"`

	ServiceContractPrice decimal.Decimal `json:"serviceContractPrice"`
	GapPrice             decimal.Decimal `json:"gapPrice"`
	NegativeEquity       decimal.Decimal `json:"negativeEquity"`
	TaxAlreadyCollected  decimal.Decimal `json:"taxAlreadyCollected"`

	RateComponents []RateComponent `json:"rateComponents,omitempty"`
	OriginTax      *OriginTax      `json:"originTax,omitempty"`
	VehicleClass   string          `json:"vehicleClass,omitempty"`

	Lease *LeaseTerms `json:"lease,omitempty"`
}

// Fee is a named fee other than the document fee.
type Fee struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// RateComponent is one labelled rate (state, county, city, district...).
// Components are applied in order; the first is the jurisdiction-level rate.
type RateComponent struct {
	Label string          `json:"label"`
	Rate  decimal.Decimal `json:"rate"`
}

// OriginTax records tax already paid to another jurisdiction.
type OriginTax struct {
	Jurisdiction  string          `json:"jurisdiction"`
	Amount        decimal.Decimal `json:"amount"`
	DatePaid      time.Time       `json:"datePaid"`
	ProofProvided bool            `json:"proofProvided"`
	// Rate is only read when the reciprocity basis is TAX_DUE_AT_ORIGIN_RATE.
	Rate decimal.Decimal `json:"rate,omitempty"`
}

// LeaseTerms is the lease-only extension of a transaction.
type LeaseTerms struct {
	GrossCapCost                   decimal.Decimal `json:"grossCapCost"`
	CapReductionCash               decimal.Decimal `json:"capReductionCash"`
	CapReductionTradeIn            decimal.Decimal `json:"capReductionTradeIn"`
	CapReductionManufacturerRebate decimal.Decimal `json:"capReductionManufacturerRebate"`
	CapReductionDealerRebate       decimal.Decimal `json:"capReductionDealerRebate"`
	BasePayment                    decimal.Decimal `json:"basePayment"`
	PaymentCount                   int             `json:"paymentCount"`
}

// AgreedValue is the gross capitalized cost, or the vehicle price when no cap
// cost was supplied.
func (t TransactionInput) AgreedValue() decimal.Decimal {
	if t.Lease != nil && t.Lease.GrossCapCost.IsPositive() {
		return t.Lease.GrossCapCost
	}
	return t.VehiclePrice
}

// LeaseTermsOrZero returns the lease extension, or zero terms for retail deals.
func (t TransactionInput) LeaseTermsOrZero() LeaseTerms {
	if t.Lease == nil {
		return LeaseTerms{}
	}
	return *t.Lease
}
