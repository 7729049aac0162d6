package history

import (
	"fmt"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/filesystem"
	"github.com/doeshing/imagegen/internal/ports"
)

// New selects the backend named in settings. The returned store is not loaded.
func New(settings domain.HistorySettings, log ports.Logger) (ports.HistoryRepository, error) {
	path := filesystem.ExpandPath(settings.Path)
	switch domain.NormalizeBackend(settings.Backend) {
	case domain.HistoryBackendJSON:
		return NewJSONStore(path, log), nil
	case domain.HistoryBackendSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", settings.Backend)
	}
}
