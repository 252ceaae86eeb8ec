package container

import (
	"fmt"
	"net/http"

	"go-alttext-generator/internal/config"
	"go-alttext-generator/internal/generator"
	"go-alttext-generator/internal/logger"
	"go-alttext-generator/internal/observer"
	"go-alttext-generator/internal/prompt"
	"go-alttext-generator/internal/provider"
	"go-alttext-generator/internal/repository"
	"go-alttext-generator/internal/storage"
	"go-alttext-generator/internal/transport"
	pkgconfig "go-alttext-generator/pkg/config"
	"go-alttext-generator/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	pipeline          *pkgconfig.Pipeline
	imageRepository   repository.ImageRepository
	providerRegistry  *provider.Registry
	generationService generator.GenerationService
	publisher         observer.Subject
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	pipeline, err := pkgconfig.LoadPipeline(cfg.PipelineConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	fragments, err := prompt.LoadFragments(pipeline.Prompts.Dir, pipeline.Prompts.Files)
	if err != nil {
		return nil, err
	}
	assembler, err := prompt.NewAssembler(fragments, pipeline.Prompts.MergeSeparator)
	if err != nil {
		return nil, err
	}

	// Azure fetcher is optional; without credentials blob references are
	// rejected at resolution time.
	var azureFetcher storage.ImageFetcher
	if cfg.AzureStorageAccount != "" && cfg.AzureStorageKey != "" {
		azureFetcher, err = storage.NewAzureImageFetcher(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.ImageFetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize azure storage: %w", err)
		}
	}

	imageRepository := repository.NewImageRepository(
		storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout),
		azureFetcher,
		storage.NewLocalImageFetcher(),
	)

	registry := provider.NewRegistry(cfg)

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())

	generationService := generator.NewGenerationService(
		pipeline,
		registry,
		imageRepository,
		assembler,
		validation.NewRequestValidator(),
		publisher,
		cfg.ProviderTimeout,
	)

	handler := transport.NewHandler(generationService, cfg)

	return &Container{
		config:            cfg,
		pipeline:          pipeline,
		imageRepository:   imageRepository,
		providerRegistry:  registry,
		generationService: generationService,
		publisher:         publisher,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// GenerationService returns the generation service, used by the CLI entry
// point which bypasses HTTP transport.
func (c *Container) GenerationService() generator.GenerationService {
	return c.generationService
}
