package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Service name attached to structured logs
	ServiceName = "cyphera-autotax"

	// Rate component labels produced by the special-scheme calculators
	AdValoremRateLabel  = "AD_VALOREM_TITLE_TAX"
	HighwayUseRateLabel = "HIGHWAY_USE_TAX"
	PrivilegeRateLabel  = "PRIVILEGE_TAX"

	// Catalog defaults
	DefaultRulesCatalogDir          = "configs/rules"
	DefaultCatalogVersionConstraint = ">= 1.0.0"
	DefaultAPIPort                  = "8000"

	// Rate limiter defaults per client
	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 100

	// Largest accepted quote request body
	MaxQuoteBodyBytes = 1 << 20
)
