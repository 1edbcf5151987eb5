package services

import (
	"errors"
	"fmt"

	"github.com/cyphera/cyphera-autotax/types/business"
)

// Configuration errors. Each special scheme has its own sentinel so a failure
// can be traced to the misconfigured jurisdiction.
var (
	ErrInvalidRulesConfig        = errors.New("invalid rules configuration")
	ErrMissingAdValoremConfig    = errors.New("ad valorem scheme selected without adValorem extras")
	ErrMissingHighwayUseConfig   = errors.New("highway use scheme selected without highwayUse extras")
	ErrMissingPrivilegeTaxConfig = errors.New("privilege tax scheme selected without privilege extras")
	ErrUnknownScheme             = errors.New("unknown vehicle tax scheme")
	ErrUnknownDealType           = errors.New("unknown deal type")
	ErrUnknownLeaseMethod        = errors.New("unknown lease taxation method")
)

// Catalog errors.
var (
	ErrJurisdictionNotFound = errors.New("jurisdiction not found")
	ErrCatalogVersion       = errors.New("catalog version not accepted")
	ErrCatalogDocument      = errors.New("invalid catalog document")
)

// ConfigError ties a configuration fault to a jurisdiction and scheme.
type ConfigError struct {
	Jurisdiction string
	Scheme       business.VehicleTaxScheme
	Err          error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rules config %s (scheme %s): %v", e.Jurisdiction, e.Scheme, e.Err)
}

// Unwrap exposes both the specific cause and ErrInvalidRulesConfig.
func (e *ConfigError) Unwrap() []error {
	return []error{e.Err, ErrInvalidRulesConfig}
}

func newConfigError(rules business.RulesConfig, scheme business.VehicleTaxScheme, err error) *ConfigError {
	return &ConfigError{Jurisdiction: rules.JurisdictionCode, Scheme: scheme, Err: err}
}
