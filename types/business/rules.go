package business

import "github.com/shopspring/decimal"

// RulesConfig is one jurisdiction's complete tax policy. The engine only reads
// it, so a single instance can be shared by concurrent calculations.
type RulesConfig struct {
	JurisdictionCode string `json:"jurisdictionCode"`
	Name             string `json:"name,omitempty"`

	TradeInPolicy         TradeInPolicy `json:"tradeInPolicy"`
	RebateRules           []RebateRule  `json:"rebateRules,omitempty"`
	DocFeeTaxable         bool          `json:"docFeeTaxable"`
	FeeTaxRules           []FeeTaxRule  `json:"feeTaxRules,omitempty"`
	TaxOnAccessories      bool          `json:"taxOnAccessories"`
	TaxOnNegativeEquity   bool          `json:"taxOnNegativeEquity"`
	TaxOnServiceContracts bool          `json:"taxOnServiceContracts"`
	TaxOnGap              bool          `json:"taxOnGap"`

	Scheme          VehicleTaxScheme `json:"scheme,omitempty"`
	LocalTaxApplies bool             `json:"localTaxApplies"`

	LeaseRules  LeaseRules  `json:"leaseRules"`
	Reciprocity Reciprocity `json:"reciprocity"`
	Extras      RulesExtras `json:"extras,omitempty"`
}

// LeaseRules holds the lease-side policy surface. It is independent of the
// retail fields except where a mode explicitly delegates to them.
type LeaseRules struct {
	Method                LeaseMethod           `json:"method"`
	TaxCapReduction       bool                  `json:"taxCapReduction"`
	RebateBehavior        LeaseRebateBehavior   `json:"rebateBehavior,omitempty"`
	DocFeeTaxability      LeaseDocFeeTaxability `json:"docFeeTaxability,omitempty"`
	TradeInCredit         LeaseTradeInCredit    `json:"tradeInCredit,omitempty"`
	NegativeEquityTaxable bool                  `json:"negativeEquityTaxable"`
	FeeTaxRules           []FeeTaxRule          `json:"feeTaxRules,omitempty"`
	TitleFeeRules         []FeeTaxRule          `json:"titleFeeRules,omitempty"`
	TaxFeesUpfront        bool                  `json:"taxFeesUpfront"`
	SpecialScheme         VehicleTaxScheme      `json:"specialScheme,omitempty"`
}

// Reciprocity describes credit for tax already paid in another jurisdiction.
type Reciprocity struct {
	Enabled               bool                  `json:"enabled"`
	Scope                 ReciprocityScope      `json:"scope,omitempty"`
	HomeStateBehavior     HomeStateBehavior     `json:"homeStateBehavior,omitempty"`
	RequireProofOfTaxPaid bool                  `json:"requireProofOfTaxPaid"`
	Basis                 ReciprocityBasis      `json:"basis,omitempty"`
	CapAtThisStatesTax    bool                  `json:"capAtThisStatesTax"`
	HasLeaseException     bool                  `json:"hasLeaseException"`
	Overrides             []ReciprocityOverride `json:"overrides,omitempty"`
}

// ReciprocityOverride adjusts the credit for one origin jurisdiction.
type ReciprocityOverride struct {
	OriginJurisdiction     string `json:"originJurisdiction"`
	Disallow               bool   `json:"disallow"`
	MaxAgeDaysSinceTaxPaid *int   `json:"maxAgeDaysSinceTaxPaid,omitempty"`
}

// RulesExtras carries scheme-specific parameters. The sub-structure matching
// the selected scheme must be present.
type RulesExtras struct {
	AdValorem  *AdValoremExtras  `json:"adValorem,omitempty"`
	HighwayUse *HighwayUseExtras `json:"highwayUse,omitempty"`
	Privilege  *PrivilegeExtras  `json:"privilege,omitempty"`
}

// TradeInAppliesTo says what an ad-valorem trade-in credit may reduce.
type TradeInAppliesTo string

const (
	TradeInAppliesToVehiclePrice TradeInAppliesTo = "VEHICLE_PRICE"
	TradeInAppliesToNone         TradeInAppliesTo = "NONE"
)

// AdValoremExtras parameterises the one-time title ad-valorem tax.
type AdValoremExtras struct {
	Rate                  decimal.Decimal  `json:"rate"`
	AllowTradeInCredit    bool             `json:"allowTradeInCredit"`
	TradeInAppliesTo      TradeInAppliesTo `json:"tradeInAppliesTo,omitempty"`
	IncludeNegativeEquity bool             `json:"includeNegativeEquity"`
}

// HighwayUseExtras parameterises the highway-use tax.
type HighwayUseExtras struct {
	Rate                  decimal.Decimal `json:"rate"`
	IncludeDocFee         bool            `json:"includeDocFee"`
	ReciprocityWindowDays int             `json:"reciprocityWindowDays"`
}

// PrivilegeExtras parameterises the class-rated privilege tax.
type PrivilegeExtras struct {
	BaseRate                decimal.Decimal            `json:"baseRate"`
	ClassRates              map[string]decimal.Decimal `json:"classRates,omitempty"`
	ExcludeDocFee           bool                       `json:"excludeDocFee"`
	ExcludeServiceContracts bool                       `json:"excludeServiceContracts"`
	ExcludeGap              bool                       `json:"excludeGap"`
	AllowTradeInCredit      bool                       `json:"allowTradeInCredit"`
	IncludeNegativeEquity   bool                       `json:"includeNegativeEquity"`
}
