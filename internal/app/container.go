package app

import (
	"context"
	"net/http"

	"github.com/doeshing/imagegen/internal/application/doctor"
	"github.com/doeshing/imagegen/internal/application/generate"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/ai"
	"github.com/doeshing/imagegen/internal/infrastructure/clipboard"
	"github.com/doeshing/imagegen/internal/infrastructure/config"
	"github.com/doeshing/imagegen/internal/infrastructure/history"
	"github.com/doeshing/imagegen/internal/pkg/logger"
	"github.com/doeshing/imagegen/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigLoader    *config.FileLoader
	Generator       *ai.GeminiClient
	HistoryStore    ports.HistoryRepository
	Clipboard       ports.Clipboard
	GenerateService *generate.Service
	DoctorService   *doctor.Service
	Logger          *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. The history store is
// returned unloaded; callers Load it before use.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(verbose)
	if err != nil {
		log = logger.NewNop()
	}

	apiKey := ai.ResolveAPIKey(cfg.Gemini.AuthEnvVar, domain.DefaultAuthEnvVar, domain.LegacyAuthEnvVar)
	if apiKey == "" {
		log.Warn("no Gemini credential found, running in demo mode", map[string]interface{}{
			"env_var": cfg.Gemini.AuthEnvVar,
		})
	}

	generator := ai.NewGeminiClient(cfg.Gemini, apiKey, &http.Client{Timeout: cfg.Timeout()}, log)

	historyStore, err := history.New(cfg.History, log)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Generator:    generator,
		HistoryStore: historyStore,
		Clipboard:    clipboard.New(),
		GenerateService: &generate.Service{
			Generator: generator,
			History:   historyStore,
			Logger:    log,
		},
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			HistoryStore:   historyStore,
			APIKey:         apiKey,
		},
		Logger: log,
	}, nil
}

// Close flushes the logger and releases store handles.
func (c *Container) Close() error {
	c.Logger.Sync()
	if closer, ok := c.HistoryStore.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
