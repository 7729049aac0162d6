package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// AspectRatio returns the configured default ratio.
func (c Config) AspectRatio() AspectRatio {
	return ParseAspectRatio(c.Preferences.DefaultAspectRatio)
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// BatchLimit returns the configured batch concurrency, at least 1.
func (c Config) BatchLimit() int {
	if c.Preferences.BatchConcurrency <= 0 {
		return DefaultBatchConcurrency
	}
	return c.Preferences.BatchConcurrency
}

type configField struct {
	get func(*Config) string
	set func(*Config, string) error
}

var configFields = map[string]configField{
	"preferences.default_aspect_ratio": {
		get: func(c *Config) string { return c.Preferences.DefaultAspectRatio },
		set: func(c *Config, v string) error {
			r := AspectRatio(strings.TrimSpace(v))
			if !r.Valid() {
				return fmt.Errorf("unsupported aspect ratio %q", v)
			}
			c.Preferences.DefaultAspectRatio = string(r)
			return nil
		},
	},
	"preferences.timeout": {
		get: func(c *Config) string { return strconv.Itoa(c.Preferences.TimeoutSeconds) },
		set: func(c *Config, v string) error { return setPositiveInt(&c.Preferences.TimeoutSeconds, v) },
	},
	"preferences.batch_concurrency": {
		get: func(c *Config) string { return strconv.Itoa(c.Preferences.BatchConcurrency) },
		set: func(c *Config, v string) error { return setPositiveInt(&c.Preferences.BatchConcurrency, v) },
	},
	"gemini.endpoint": {
		get: func(c *Config) string { return c.Gemini.Endpoint },
		set: func(c *Config, v string) error { c.Gemini.Endpoint = strings.TrimRight(v, "/"); return nil },
	},
	"gemini.model_id": {
		get: func(c *Config) string { return c.Gemini.ModelID },
		set: func(c *Config, v string) error { c.Gemini.ModelID = v; return nil },
	},
	"gemini.auth_env_var": {
		get: func(c *Config) string { return c.Gemini.AuthEnvVar },
		set: func(c *Config, v string) error { c.Gemini.AuthEnvVar = v; return nil },
	},
	"gemini.temperature": {
		get: func(c *Config) string { return formatFloat(c.Gemini.Temperature) },
		set: func(c *Config, v string) error { return setFloat(&c.Gemini.Temperature, v) },
	},
	"gemini.top_p": {
		get: func(c *Config) string { return formatFloat(c.Gemini.TopP) },
		set: func(c *Config, v string) error { return setFloat(&c.Gemini.TopP, v) },
	},
	"gemini.top_k": {
		get: func(c *Config) string { return formatInt(c.Gemini.TopK) },
		set: func(c *Config, v string) error { return setInt(&c.Gemini.TopK, v) },
	},
	"gemini.max_output_tokens": {
		get: func(c *Config) string { return formatInt(c.Gemini.MaxOutputTokens) },
		set: func(c *Config, v string) error { return setInt(&c.Gemini.MaxOutputTokens, v) },
	},
	"history.backend": {
		get: func(c *Config) string { return c.History.Backend },
		set: func(c *Config, v string) error {
			switch backend := NormalizeBackend(v); backend {
			case HistoryBackendJSON, HistoryBackendSQLite:
				c.History.Backend = backend
				return nil
			}
			return fmt.Errorf("unsupported history backend %q", v)
		},
	},
	"history.path": {
		get: func(c *Config) string { return c.History.Path },
		set: func(c *Config, v string) error { c.History.Path = v; return nil },
	},
}

// ConfigKeys lists the keys accepted by GetValue and SetValue.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configFields))
	for key := range configFields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetValue reads a dotted configuration key.
func (c *Config) GetValue(key string) (string, error) {
	field, ok := configFields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return field.get(c), nil
}

// SetValue writes a dotted configuration key after validating the value.
func (c *Config) SetValue(key, value string) error {
	field, ok := configFields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	return field.set(c, value)
}

func setPositiveInt(dst *int, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("expected integer, got %q", value)
	}
	if n <= 0 {
		return fmt.Errorf("value must be > 0, got %d", n)
	}
	*dst = n
	return nil
}

// setFloat stores an explicit value, or clears the field when value is empty.
func setFloat(dst **float64, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = nil
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", value)
	}
	*dst = &f
	return nil
}

func setInt(dst **int, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", value)
	}
	*dst = &n
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
