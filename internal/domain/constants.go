package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for history and exported files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Gemini defaults
const (
	DefaultGeminiEndpoint  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel     = "gemini-2.0-flash-preview-image-generation"
	DefaultAuthEnvVar      = "GEMINI_API_KEY"
	LegacyAuthEnvVar       = "VITE_GEMINI_API_KEY"
	DefaultTemperature     = 0.8
	DefaultTopK            = 40
	DefaultTopP            = 0.9
	DefaultMaxOutputTokens = 8192
	DefaultSafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
)

// Image constants
const (
	// DefaultImageMimeType is assumed when inline data omits its MIME type
	DefaultImageMimeType = "image/jpeg"
	// PlaceholderMimeType is the MIME type of synthesized placeholders
	PlaceholderMimeType = "image/svg+xml"
)

// History constants
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
	// HistorySlotName is the storage slot holding the serialized record array
	HistorySlotName = "generatedImages"
)

// Batch constants
const (
	// DefaultBatchConcurrency bounds concurrent requests in batch mode
	DefaultBatchConcurrency = 4
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
