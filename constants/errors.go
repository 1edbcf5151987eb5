package constants

// Error messages used throughout the API handlers
const (
	JurisdictionNotFound = "jurisdiction not found"
	InvalidRequestBody   = "invalid request body"
	InvalidRulesConfig   = "invalid rules configuration"
	CalculationFailed    = "tax calculation failed"
	MissingJurisdiction  = "jurisdiction code is required"
	RateLimitExceeded    = "rate limit exceeded"
)
