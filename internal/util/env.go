package util

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// GetEnv returns the ENV variable as string, defaulting to defaultVal if unset.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the ENV variable parsed as int, defaulting to defaultVal
// if unset or unparsable.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	if strVal != "" {
		log.Warn().Str("key", key).Str("value", strVal).Msg("Failed to parse ENV variable as int, using default")
	}

	return defaultVal
}

// GetEnvAsBool returns the ENV variable parsed as bool, defaulting to
// defaultVal if unset or unparsable.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	if strVal != "" {
		log.Warn().Str("key", key).Str("value", strVal).Msg("Failed to parse ENV variable as bool, using default")
	}

	return defaultVal
}
