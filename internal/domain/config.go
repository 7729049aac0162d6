package domain

// Config mirrors ~/.imagegen/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences"`
	Gemini              GeminiSettings  `yaml:"gemini"`
	History             HistorySettings `yaml:"history"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultAspectRatio string `yaml:"default_aspect_ratio"`
	TimeoutSeconds     int    `yaml:"timeout"`
	BatchConcurrency   int    `yaml:"batch_concurrency"`
}

// GeminiSettings configures the remote generation endpoint.
// A nil sampling field is unset and falls back to the built-in default;
// an explicit zero is sent as zero.
type GeminiSettings struct {
	Endpoint        string   `yaml:"endpoint"`
	ModelID         string   `yaml:"model_id"`
	AuthEnvVar      string   `yaml:"auth_env_var"`
	Temperature     *float64 `yaml:"temperature,omitempty"`
	TopK            *int     `yaml:"top_k,omitempty"`
	TopP            *float64 `yaml:"top_p,omitempty"`
	MaxOutputTokens *int     `yaml:"max_output_tokens,omitempty"`
	SafetyThreshold string   `yaml:"safety_threshold"`
}

// HistorySettings selects and locates the history backend.
type HistorySettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}
