package commands

// History listing defaults
const (
	DefaultHistoryLimit = 20
	TimestampFormat     = "2006-01-02 15:04:05"
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrGenerateUnavailable      = "generate service unavailable"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgClearCancelled           = "Clear cancelled."
)
