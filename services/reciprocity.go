package services

import (
	"strings"
	"time"

	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/types/business"
	"github.com/shopspring/decimal"
)

// Reasons reported in CalculationDebug.ReciprocityReason.
const (
	ReciprocityReasonApplied            = "CREDIT_APPLIED"
	ReciprocityReasonDisabled           = "RECIPROCITY_DISABLED"
	ReciprocityReasonNoOrigin           = "NO_ORIGIN_TAX"
	ReciprocityReasonScope              = "SCOPE_NOT_COVERED"
	ReciprocityReasonLeaseException     = "LEASE_EXCEPTION"
	ReciprocityReasonSameJurisdiction   = "SAME_JURISDICTION"
	ReciprocityReasonDisallowed         = "ORIGIN_DISALLOWED"
	ReciprocityReasonProofRequired      = "PROOF_REQUIRED"
	ReciprocityReasonWindowExpired      = "WINDOW_EXPIRED"
	ReciprocityReasonWindowUnverifiable = "WINDOW_UNVERIFIABLE"
	ReciprocityReasonNoCredit           = "NO_CREDIT_BEHAVIOR"
)

// ReciprocityRequest is everything the evaluator reads from a calculation.
type ReciprocityRequest struct {
	DealType       business.DealType
	Jurisdiction   string
	EvaluationDate time.Time
	Origin         *business.OriginTax
	// LocalTax is the tax computed before any credit.
	LocalTax decimal.Decimal
	// TaxableBase is used by the TAX_DUE_AT_ORIGIN_RATE basis.
	TaxableBase decimal.Decimal
	// WindowDays is a scheme-imposed eligibility window; nil when none.
	WindowDays *int
}

// ReciprocityOutcome is the credit granted and why.
type ReciprocityOutcome struct {
	Credit decimal.Decimal
	Reason string
}

// EvaluateReciprocity computes the credit for tax already paid elsewhere. The
// credit is never negative. It exceeds the local tax only under CREDIT_FULL
// without capAtThisStatesTax; tax due is floored at zero either way.
func EvaluateReciprocity(req ReciprocityRequest, rules business.Reciprocity) ReciprocityOutcome {
	deny := func(reason string) ReciprocityOutcome {
		return ReciprocityOutcome{Credit: decimal.Zero, Reason: reason}
	}

	if !rules.Enabled {
		return deny(ReciprocityReasonDisabled)
	}
	if req.Origin == nil || !req.Origin.Amount.IsPositive() {
		return deny(ReciprocityReasonNoOrigin)
	}
	if !rules.Scope.Covers(req.DealType) {
		return deny(ReciprocityReasonScope)
	}
	if req.DealType == business.DealTypeLease && rules.HasLeaseException {
		return deny(ReciprocityReasonLeaseException)
	}
	if req.Origin.Jurisdiction != "" && strings.EqualFold(req.Origin.Jurisdiction, req.Jurisdiction) {
		return deny(ReciprocityReasonSameJurisdiction)
	}
	if rules.RequireProofOfTaxPaid && !req.Origin.ProofProvided {
		return deny(ReciprocityReasonProofRequired)
	}

	window := req.WindowDays
	if o := findOverride(rules.Overrides, req.Origin.Jurisdiction); o != nil {
		if o.Disallow {
			return deny(ReciprocityReasonDisallowed)
		}
		if o.MaxAgeDaysSinceTaxPaid != nil && (window == nil || *o.MaxAgeDaysSinceTaxPaid < *window) {
			window = o.MaxAgeDaysSinceTaxPaid
		}
	}
	if window != nil {
		if req.Origin.DatePaid.IsZero() || req.EvaluationDate.IsZero() {
			return deny(ReciprocityReasonWindowUnverifiable)
		}
		if CalendarDaysBetween(req.Origin.DatePaid, req.EvaluationDate) > *window {
			return deny(ReciprocityReasonWindowExpired)
		}
	}

	origin := req.Origin.Amount
	if rules.Basis == business.BasisTaxDueAtOriginRate {
		origin = helpers.MinDecimal(origin, helpers.ClampZero(req.Origin.Rate.Mul(req.TaxableBase)))
	}

	localTax := helpers.ClampZero(req.LocalTax)
	var credit decimal.Decimal
	switch rules.HomeStateBehavior {
	case business.HomeStateCreditFull:
		credit = origin
		if rules.CapAtThisStatesTax {
			credit = helpers.MinDecimal(credit, localTax)
		}
	case business.HomeStateCreditUpToStateTax:
		credit = helpers.MinDecimal(origin, localTax)
	default:
		return deny(ReciprocityReasonNoCredit)
	}

	return ReciprocityOutcome{Credit: helpers.ClampZero(credit), Reason: ReciprocityReasonApplied}
}

func findOverride(overrides []business.ReciprocityOverride, origin string) *business.ReciprocityOverride {
	for i := range overrides {
		if strings.EqualFold(overrides[i].OriginJurisdiction, origin) {
			return &overrides[i]
		}
	}
	return nil
}

// CalendarDaysBetween returns the number of UTC calendar days from start to
// end. Times of day are ignored and a negative span counts as zero.
func CalendarDaysBetween(start, end time.Time) int {
	s := start.UTC()
	e := end.UTC()
	s = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	e = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}
