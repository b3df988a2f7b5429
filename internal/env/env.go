// Package env reads configuration values from the process environment.
// Values from a .env file are loaded into the environment by the caller before any lookup.
package env

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v = newReader()

func newReader() *viper.Viper {
	reader := viper.New()
	reader.AutomaticEnv()
	return reader
}

func GetString(key string, defaultValue string) string {
	if !v.IsSet(key) {
		return defaultValue
	}

	return v.GetString(key)
}

func GetInt(key string, defaultValue int) int {
	if !v.IsSet(key) {
		return defaultValue
	}

	return v.GetInt(key)
}

func GetFloat(key string, defaultValue float64) float64 {
	if !v.IsSet(key) {
		return defaultValue
	}

	return v.GetFloat64(key)
}

func GetBool(key string, defaultValue bool) bool {
	if !v.IsSet(key) {
		return defaultValue
	}

	return v.GetBool(key)
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if !v.IsSet(key) {
		return defaultValue
	}

	return v.GetDuration(key)
}

// GetStrings splits a comma separated value, dropping empty items.
func GetStrings(key string, defaultValue []string) []string {
	if !v.IsSet(key) {
		return defaultValue
	}

	var values []string
	for _, item := range strings.Split(v.GetString(key), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			values = append(values, item)
		}
	}

	return values
}
