package ai

import (
	"os"
	"strings"
)

// ResolveAPIKey reads the credential from primary, then from the fallback
// variables in order. An empty result means demo mode.
func ResolveAPIKey(primary string, fallbacks ...string) string {
	if primary != "" {
		if value := strings.TrimSpace(os.Getenv(primary)); value != "" {
			return value
		}
	}
	for _, name := range fallbacks {
		if name == "" || name == primary {
			continue
		}
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}

func valueOrDefaultFloat(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}
