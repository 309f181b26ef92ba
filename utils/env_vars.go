package utils

import (
	"log"
	"os"
	"strconv"
	"time"
)

type envValue interface {
	string | bool | int | time.Duration
}

func parseEnv[T envValue](name, raw string) T {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			log.Fatalf("environment variable %s is not a valid bool: %q", name, raw)
		}
		*ptr = value
	case *int:
		value, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("environment variable %s is not a valid integer: %q", name, raw)
		}
		*ptr = value
	case *time.Duration:
		value, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("environment variable %s is not a valid duration: %q", name, raw)
		}
		*ptr = value
	}
	return out
}

// GetEnv reads an environment variable, falling back to the provided default
// when unset or empty. The type is inferred from the default.
func GetEnv[T envValue](name string, fallback T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return fallback
	}
	return parseEnv[T](name, raw)
}

// GetRequiredEnv exits the process when the variable is unset or empty.
func GetRequiredEnv[T envValue](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	return parseEnv[T](name, raw)
}
