package services

import (
	"context"
	"fmt"

	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/business"
	"go.uber.org/zap"
)

// TaxEngine is the logging entry point around Calculate. It holds no state
// besides its logger and is safe for concurrent use.
type TaxEngine struct {
	logger *zap.Logger
}

// NewTaxEngine creates a new tax engine
func NewTaxEngine() *TaxEngine {
	return &TaxEngine{
		logger: logger.Component("engine"),
	}
}

// CalculateTax computes the tax for one transaction under rules.
func (e *TaxEngine) CalculateTax(ctx context.Context, input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scheme := EffectiveScheme(input.DealType, rules)
	e.logger.Debug("Calculating vehicle tax",
		zap.String("jurisdiction", rules.JurisdictionCode),
		zap.String("deal_type", string(input.DealType)),
		zap.String("scheme", string(scheme)))

	result, err := Calculate(input, rules)
	if err != nil {
		e.logger.Error("Vehicle tax calculation failed",
			zap.String("jurisdiction", rules.JurisdictionCode),
			zap.String("scheme", string(scheme)),
			zap.Error(err))
		return nil, err
	}

	for _, note := range result.Debug.Notes {
		e.logger.Warn("Normalised transaction input",
			zap.String("jurisdiction", result.JurisdictionCode),
			zap.String("note", note))
	}
	e.logger.Debug("Vehicle tax calculated",
		zap.String("jurisdiction", result.JurisdictionCode),
		zap.String("total_tax", result.Taxes.TotalTax.String()),
		zap.String("tax_due", result.TaxDue.String()))

	return result, nil
}

// EffectiveScheme is the scheme a deal is routed to. A lease-specific scheme
// tag takes precedence for leases; an unset scheme is GENERIC.
func EffectiveScheme(dealType business.DealType, rules business.RulesConfig) business.VehicleTaxScheme {
	scheme := rules.Scheme
	if dealType == business.DealTypeLease && rules.LeaseRules.SpecialScheme != "" {
		scheme = rules.LeaseRules.SpecialScheme
	}
	if scheme == "" {
		return business.SchemeGeneric
	}
	return scheme
}

// Calculate routes a transaction to exactly one calculator. It is a pure
// function of its arguments. A special scheme without its extras is a
// *ConfigError, never a fallback to the generic calculator.
func Calculate(input business.TransactionInput, rules business.RulesConfig) (*business.CalculationResult, error) {
	if !input.DealType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDealType, input.DealType)
	}

	switch scheme := EffectiveScheme(input.DealType, rules); scheme {
	case business.SchemeGeneric:
		if input.DealType == business.DealTypeLease {
			return calculateLease(input, rules)
		}
		return calculateRetail(input, rules), nil
	case business.SchemeAdValorem:
		return calculateAdValorem(input, rules)
	case business.SchemeHighwayUse:
		return calculateHighwayUse(input, rules)
	case business.SchemePrivilege:
		return calculatePrivilegeTax(input, rules)
	default:
		return nil, newConfigError(rules, scheme, ErrUnknownScheme)
	}
}

// ValidateRules reports the configuration error Calculate would raise for
// rules, for either deal type, without pricing anything.
func ValidateRules(rules business.RulesConfig) error {
	for _, scheme := range []business.VehicleTaxScheme{
		EffectiveScheme(business.DealTypeRetail, rules),
		EffectiveScheme(business.DealTypeLease, rules),
	} {
		var missing error
		switch scheme {
		case business.SchemeGeneric:
		case business.SchemeAdValorem:
			if rules.Extras.AdValorem == nil {
				missing = ErrMissingAdValoremConfig
			}
		case business.SchemeHighwayUse:
			if rules.Extras.HighwayUse == nil {
				missing = ErrMissingHighwayUseConfig
			}
		case business.SchemePrivilege:
			if rules.Extras.Privilege == nil {
				missing = ErrMissingPrivilegeTaxConfig
			}
		default:
			missing = ErrUnknownScheme
		}
		if missing != nil {
			return newConfigError(rules, scheme, missing)
		}
	}
	if _, err := leaseMethod(rules); err != nil {
		return err
	}
	return nil
}
