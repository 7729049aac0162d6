// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The image generator and the history store are
// independent adapters: neither knows about the other, and only the application
// layer combines them.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ImageGenerator, HistoryRepository)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/imagegen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.imagegen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ImageGenerator turns a request into a displayable image artifact.
// Generate never fails: every provider or transport failure is absorbed into
// a fallback result whose Reason describes what went wrong.
type ImageGenerator interface {
	Generate(context.Context, domain.GenerationRequest) domain.GenerationResult
}

// HistoryRepository is the local, append-only list of generated images.
// Load must be called once before any other operation.
type HistoryRepository interface {
	Load(context.Context) error
	Append(domain.HistoryRecord) error
	List(filter string) ([]domain.HistoryRecord, error)
	Remove(id string) error
	Clear() error
	Path() string
}

// Clipboard copies text to the system clipboard. Enabled reports whether a
// copy can be attempted at all on this machine.
type Clipboard interface {
	Enabled() bool
	Copy(text string) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
