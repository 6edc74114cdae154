package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return v
}

func getEnvAsBool(key string, defaultVal bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return v
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvAsStringSlice(key string, defaults []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaults
	}
	parts := strings.Split(value, ",")
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return defaults
	}
	return filtered
}
