package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/logger"
	"github.com/doeshing/imagegen/internal/ports"
)

// Service drives the chat flow: validate the prompt, generate, record.
type Service struct {
	Generator ports.ImageGenerator
	History   ports.HistoryRepository
	Logger    ports.Logger

	// Now and NewID are replaceable in tests.
	Now   func() time.Time
	NewID func() string
}

// Outcome is one finished generation together with the record it produced.
type Outcome struct {
	Result domain.GenerationResult
	Record domain.HistoryRecord
}

// BatchItem is a single prompt in a batch run.
type BatchItem struct {
	Prompt      string
	AspectRatio string
}

// BatchOutcome pairs an item with its outcome or the error that stopped it.
type BatchOutcome struct {
	Item BatchItem
	Outcome
	Err error
}

// Run generates one image and appends it to history. The history store must
// already be loaded.
func (s *Service) Run(ctx context.Context, prompt, ratio string) (Outcome, error) {
	if s.Generator == nil || s.History == nil {
		return Outcome{}, errors.New("generate.Service dependencies not satisfied")
	}

	req, err := domain.NewGenerationRequest(prompt, ratio)
	if err != nil {
		return Outcome{}, err
	}

	result := s.Generator.Generate(ctx, req)
	if result.IsFallback() {
		s.log().Warn("generation fell back to placeholder", map[string]interface{}{
			"kind":   string(result.Reason.Kind),
			"status": result.Reason.Status,
		})
	}

	record := domain.HistoryRecord{
		ID:          s.newID(),
		Content:     Caption(req.Prompt),
		ImageURL:    result.ImageURL,
		Timestamp:   s.now(),
		AspectRatio: result.AspectRatio,
		Fallback:    result.IsFallback(),
	}
	if err := s.History.Append(record); err != nil {
		return Outcome{Result: result}, fmt.Errorf("append history: %w", err)
	}

	s.log().Info("generation recorded", map[string]interface{}{
		"id":       record.ID,
		"fallback": record.Fallback,
	})
	return Outcome{Result: result, Record: record}, nil
}

// RunBatch generates every item with at most limit requests in flight.
// Outcomes keep input order. A failing item does not stop the others.
func (s *Service) RunBatch(ctx context.Context, items []BatchItem, limit int) []BatchOutcome {
	if limit <= 0 {
		limit = domain.DefaultBatchConcurrency
	}
	outcomes := make([]BatchOutcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			outcome, err := s.Run(gctx, item.Prompt, item.AspectRatio)
			outcomes[i] = BatchOutcome{Item: item, Outcome: outcome, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// Caption is the history content recorded for prompt.
func Caption(prompt string) string {
	return fmt.Sprintf(`Generated image for: "%s"`, prompt)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Service) log() ports.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.NewNop()
}
