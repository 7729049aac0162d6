package helpers

import (
	"context"
	"fmt"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/ports"
)

// LoadedHistory returns the container's history store after loading it.
func LoadedHistory(ctx context.Context, container *app.Container) (ports.HistoryRepository, error) {
	store := container.HistoryStore
	if store == nil {
		return nil, fmt.Errorf("history store unavailable")
	}
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load history from %s: %w", store.Path(), err)
	}
	return store, nil
}
