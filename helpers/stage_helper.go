package helpers

import (
	"os"

	"github.com/cyphera/cyphera-autotax/constants"
)

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = "dev"
	StageLocal = "local"
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	default:
		return false
	}
}

// StageFromEnv reads STAGE, falling back to local for unset or unknown values.
func StageFromEnv() string {
	stage := os.Getenv("STAGE")
	if !IsValidStage(stage) {
		return StageLocal
	}
	return stage
}

// GetEnvWithDefault returns environment variable value or default
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
