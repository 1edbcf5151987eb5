package business

import "github.com/shopspring/decimal"

// DealType distinguishes one-time purchases from leases.
type DealType string

const (
	DealTypeRetail DealType = "RETAIL"
	DealTypeLease  DealType = "LEASE"
)

// IsValid reports whether the deal type is one the engine can price.
func (d DealType) IsValid() bool {
	switch d {
	case DealTypeRetail, DealTypeLease:
		return true
	}
	return false
}

// TradeInPolicyType selects how trade-in value turns into a credit.
type TradeInPolicyType string

const (
	TradeInFull    TradeInPolicyType = "FULL"
	TradeInCapped  TradeInPolicyType = "CAPPED"
	TradeInPercent TradeInPolicyType = "PERCENT"
	TradeInNone    TradeInPolicyType = "NONE"
)

// TradeInPolicy is a closed variant: Cap is only read for CAPPED and Percent
// only for PERCENT.
type TradeInPolicy struct {
	Type    TradeInPolicyType `json:"type"`
	Cap     decimal.Decimal   `json:"cap,omitempty"`
	Percent decimal.Decimal   `json:"percent,omitempty"`
}

// FullTradeIn credits the whole trade-in value.
func FullTradeIn() TradeInPolicy { return TradeInPolicy{Type: TradeInFull} }

// CappedTradeIn credits the trade-in value up to cap.
func CappedTradeIn(cap decimal.Decimal) TradeInPolicy {
	return TradeInPolicy{Type: TradeInCapped, Cap: cap}
}

// PercentTradeIn credits pct (0..1) of the trade-in value.
func PercentTradeIn(pct decimal.Decimal) TradeInPolicy {
	return TradeInPolicy{Type: TradeInPercent, Percent: pct}
}

// NoTradeIn gives no trade-in credit.
func NoTradeIn() TradeInPolicy { return TradeInPolicy{Type: TradeInNone} }

// RebateSource identifies who funds a rebate.
type RebateSource string

const (
	RebateManufacturer RebateSource = "MANUFACTURER"
	RebateDealer       RebateSource = "DEALER"
)

// RebateRule marks one rebate source as taxable or not. A taxable rebate does
// not reduce the taxable base.
type RebateRule struct {
	Source  RebateSource `json:"source"`
	Taxable bool         `json:"taxable"`
}

// FeeTaxRule marks a fee code as taxable. Codes without a rule are not taxed.
type FeeTaxRule struct {
	Code    string `json:"code"`
	Taxable bool   `json:"taxable"`
}

// Product fee codes used in lease fee-rule lists.
const (
	FeeCodeServiceContract = "SERVICE_CONTRACT"
	FeeCodeGap             = "GAP"
	FeeCodeDocFee          = "DOC_FEE"
)

// LeaseMethod selects when lease tax is collected.
type LeaseMethod string

const (
	LeaseMethodMonthly     LeaseMethod = "MONTHLY"
	LeaseMethodFullUpfront LeaseMethod = "FULL_UPFRONT"
	LeaseMethodHybrid      LeaseMethod = "HYBRID"
)

// LeaseRebateBehavior overrides retail rebate taxability for leases.
type LeaseRebateBehavior string

const (
	LeaseRebateFollowRetail          LeaseRebateBehavior = "FOLLOW_RETAIL_RULE"
	LeaseRebateAlwaysTaxable         LeaseRebateBehavior = "ALWAYS_TAXABLE"
	LeaseRebateAlwaysNonTaxable      LeaseRebateBehavior = "ALWAYS_NON_TAXABLE"
	LeaseRebateNonTaxableIfAtSigning LeaseRebateBehavior = "NON_TAXABLE_IF_AT_SIGNING"
)

// LeaseDocFeeTaxability controls the document fee on leases.
type LeaseDocFeeTaxability string

const (
	LeaseDocFeeAlways       LeaseDocFeeTaxability = "ALWAYS"
	LeaseDocFeeNever        LeaseDocFeeTaxability = "NEVER"
	LeaseDocFeeFollowRetail LeaseDocFeeTaxability = "FOLLOW_RETAIL_RULE"
	LeaseDocFeeOnlyUpfront  LeaseDocFeeTaxability = "ONLY_UPFRONT"
)

// LeaseTradeInCredit controls trade-in credit on leases.
type LeaseTradeInCredit string

const (
	LeaseTradeInFull         LeaseTradeInCredit = "FULL"
	LeaseTradeInNone         LeaseTradeInCredit = "NONE"
	LeaseTradeInCapCostOnly  LeaseTradeInCredit = "CAP_COST_ONLY"
	LeaseTradeInFollowRetail LeaseTradeInCredit = "FOLLOW_RETAIL_RULE"
)

// VehicleTaxScheme selects the calculator the dispatcher routes to.
type VehicleTaxScheme string

const (
	SchemeGeneric    VehicleTaxScheme = "GENERIC"
	SchemeAdValorem  VehicleTaxScheme = "AD_VALOREM_TITLE_TAX"
	SchemeHighwayUse VehicleTaxScheme = "HIGHWAY_USE_TAX"
	SchemePrivilege  VehicleTaxScheme = "PRIVILEGE_TAX"
)

// ReciprocityScope limits which deal types can earn a credit.
type ReciprocityScope string

const (
	ReciprocityRetailOnly ReciprocityScope = "RETAIL_ONLY"
	ReciprocityLeaseOnly  ReciprocityScope = "LEASE_ONLY"
	ReciprocityBoth       ReciprocityScope = "BOTH"
)

// Covers reports whether the scope includes the deal type.
func (s ReciprocityScope) Covers(d DealType) bool {
	switch s {
	case ReciprocityBoth:
		return true
	case ReciprocityRetailOnly:
		return d == DealTypeRetail
	case ReciprocityLeaseOnly:
		return d == DealTypeLease
	}
	return false
}

// HomeStateBehavior decides how much of the origin tax is credited.
type HomeStateBehavior string

const (
	HomeStateCreditFull         HomeStateBehavior = "CREDIT_FULL"
	HomeStateCreditUpToStateTax HomeStateBehavior = "CREDIT_UP_TO_STATE_RATE"
	HomeStateNoCredit           HomeStateBehavior = "NONE"
)

// ReciprocityBasis selects which origin amount the credit starts from.
type ReciprocityBasis string

const (
	BasisTaxPaid            ReciprocityBasis = "TAX_PAID"
	BasisTaxDueAtOriginRate ReciprocityBasis = "TAX_DUE_AT_ORIGIN_RATE"
)
