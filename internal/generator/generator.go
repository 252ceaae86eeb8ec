package generator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/internal/normalizer"
	"go-alttext-generator/internal/observer"
	"go-alttext-generator/internal/prompt"
	"go-alttext-generator/internal/provider"
	"go-alttext-generator/internal/repository"
	"go-alttext-generator/internal/storage"
	"go-alttext-generator/internal/strategy"
	pkgconfig "go-alttext-generator/pkg/config"
	"go-alttext-generator/pkg/models"
	"go-alttext-generator/pkg/validation"
)

// GenerationService defines the interface for multilingual alt text
// generation
type GenerationService interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationRecord, error)
}

// generationService implements GenerationService over the provider registry
type generationService struct {
	imageRepo       repository.ImageRepository
	registry        *provider.Registry
	caps            provider.Capabilities
	assembler       *prompt.Assembler
	norm            *normalizer.Normalizer
	validator       *validation.RequestValidator
	publisher       observer.Subject
	defaults        pkgconfig.Defaults
	retries         int
	providerTimeout time.Duration
}

// NewGenerationService creates a new generation service. providerTimeout
// bounds every single provider call; zero disables the per-call deadline.
func NewGenerationService(
	pipeline *pkgconfig.Pipeline,
	registry *provider.Registry,
	imageRepo repository.ImageRepository,
	assembler *prompt.Assembler,
	validator *validation.RequestValidator,
	publisher observer.Subject,
	providerTimeout time.Duration,
) GenerationService {
	return &generationService{
		imageRepo:       imageRepo,
		registry:        registry,
		caps:            provider.DefaultCapabilities().MergeOverrides(pipeline.Capabilities),
		assembler:       assembler,
		norm:            normalizer.New(),
		validator:       validator,
		publisher:       publisher,
		defaults:        pipeline.Default,
		retries:         pipeline.RetryBudget(),
		providerTimeout: providerTimeout,
	}
}

// Generate runs one full generation: validate, resolve providers, resolve
// the image, execute the translation strategy and assemble the record.
func (s *generationService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationRecord, error) {
	started := time.Now()

	if err := s.validator.ValidateGenerationRequest(&req); err != nil {
		return nil, err
	}
	mode := req.EffectiveMode()

	selection, bound, err := s.resolveProviders(req.Overrides, mode)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, observer.GenerationEvent{
		EventType:      observer.GenerationStarted,
		Timestamp:      started,
		ImageReference: req.ImageReference,
		Languages:      req.TargetLanguages,
		Mode:           string(mode),
	})

	img, err := s.imageRepo.ResolveImage(ctx, req.ImageReference)
	if err != nil {
		err = wrapResolveError(err)
		s.notifyFailure(ctx, observer.ImageResolveFailed, req, mode, started, err)
		s.notifyFailure(ctx, observer.GenerationFailed, req, mode, started, err)
		return nil, err
	}
	s.notify(ctx, observer.GenerationEvent{
		EventType:      observer.ImageResolved,
		Timestamp:      time.Now(),
		ImageReference: req.ImageReference,
		Success:        true,
		Metadata:       map[string]interface{}{"mime_type": img.MIME, "bytes": len(img.Bytes)},
	})

	exec := strategy.NewExecutor(bound, s.assembler, s.norm, s.retries)
	outputs, err := exec.Run(ctx, strategy.Request{
		Image:       img,
		ContextText: req.ContextText,
		Languages:   req.TargetLanguages,
		GeoBoost:    req.GeoBoost,
	}, mode)
	if err != nil {
		s.notifyFailure(ctx, observer.GenerationFailed, req, mode, started, err)
		return nil, err
	}

	fullySucceeded := true
	for _, out := range outputs {
		if !out.Succeeded {
			fullySucceeded = false
			s.notify(ctx, observer.GenerationEvent{
				EventType:      observer.LanguageFailed,
				Timestamp:      time.Now(),
				ImageReference: req.ImageReference,
				Languages:      []string{out.LanguageCode},
				Mode:           string(mode),
				ErrorMessage:   out.Reasoning,
			})
		}
	}

	record := &models.GenerationRecord{
		ID:                    uuid.NewString(),
		ImageReference:        req.ImageReference,
		Source:                req.Source,
		ImageContext:          req.ContextText,
		Languages:             req.TargetLanguages,
		LocalizedOutputs:      outputs,
		AIModel:               selection,
		TranslationMethod:     mode,
		ProcessingTimeSeconds: time.Since(started).Seconds(),
		GeoBoostApplied:       req.GeoBoost,
		FullySucceeded:        fullySucceeded,
		Timestamp:             started.UTC(),
	}

	s.notify(ctx, observer.GenerationEvent{
		EventType:      observer.GenerationCompleted,
		Timestamp:      time.Now(),
		ImageReference: req.ImageReference,
		Languages:      req.TargetLanguages,
		Mode:           string(mode),
		ProcessingTime: time.Since(started),
		Success:        fullySucceeded,
	})

	return record, nil
}

// resolveProviders merges request overrides over configured defaults and
// validates every selection against the capability table before any
// external call is made.
func (s *generationService) resolveProviders(overrides models.ProviderOverrides, mode models.TranslationMode) (models.ModelSelection, strategy.StageInvoker, error) {
	selection := models.ModelSelection{
		Vision:      resolveStage(overrides.Vision, s.defaults.Vision),
		Processing:  resolveStage(overrides.Processing, s.defaults.Processing),
		Translation: resolveStage(overrides.Translation, s.defaults.Translation),
	}

	bindings := make(map[provider.Stage]stageBinding, 3)
	stages := []struct {
		stage provider.Stage
		sel   models.StageSelection
	}{
		{provider.StageVision, selection.Vision},
		{provider.StageProcessing, selection.Processing},
		{provider.StageTranslation, selection.Translation},
	}
	for _, st := range stages {
		// The translation stage is only exercised in fast mode; skip its
		// validation in accurate mode so an unused misconfiguration does
		// not block the run.
		if st.stage == provider.StageTranslation && mode == models.TranslationModeAccurate {
			continue
		}
		kind := provider.Kind(st.sel.Provider)
		if err := s.caps.Validate(kind, st.stage, st.sel.Model); err != nil {
			return models.ModelSelection{}, nil, err
		}
		inv, err := s.registry.Get(kind)
		if err != nil {
			return models.ModelSelection{}, nil, err
		}
		bindings[st.stage] = stageBinding{invoker: inv, model: st.sel.Model}
	}

	if mode == models.TranslationModeAccurate {
		selection.Translation = models.StageSelection{}
	}

	return selection, &boundInvoker{bindings: bindings, timeout: s.providerTimeout}, nil
}

func resolveStage(override *models.StageSelection, def pkgconfig.StageDefaults) models.StageSelection {
	if override != nil {
		sel := *override
		if sel.Provider == "" {
			sel.Provider = def.Provider
		}
		if sel.Model == "" {
			sel.Model = def.Model
		}
		return sel
	}
	return models.StageSelection{Provider: def.Provider, Model: def.Model}
}

// stageBinding pairs a provider adapter with the model chosen for a stage
type stageBinding struct {
	invoker provider.Invoker
	model   string
}

// boundInvoker adapts the resolved per-stage bindings to the strategy's
// single-call interface. Every call carries its own deadline so one hung
// provider cannot stall a whole run.
type boundInvoker struct {
	bindings map[provider.Stage]stageBinding
	timeout  time.Duration
}

func (b *boundInvoker) Invoke(ctx context.Context, stage provider.Stage, promptText string, image *storage.ImageData) (string, error) {
	binding, ok := b.bindings[stage]
	if !ok {
		return "", apperrors.NewConfigurationError(
			"no provider bound for stage "+string(stage), nil)
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	return binding.invoker.Invoke(ctx, provider.InvokeRequest{
		Stage:  stage,
		Model:  binding.model,
		Prompt: promptText,
		Image:  image,
	})
}

// wrapResolveError maps repository sentinels onto the application error
// taxonomy; errors that already carry a type pass through.
func wrapResolveError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrInvalidImageReference),
		errors.Is(err, repository.ErrUnsupportedScheme):
		return apperrors.NewValidationError("invalid image reference", err)
	case errors.Is(err, repository.ErrImageNotFound):
		return apperrors.NewValidationError("image not found", err)
	default:
		return apperrors.NewInternalError("failed to resolve image", err)
	}
}

func (s *generationService) notify(ctx context.Context, event observer.GenerationEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

func (s *generationService) notifyFailure(ctx context.Context, eventType observer.EventType, req models.GenerationRequest, mode models.TranslationMode, started time.Time, err error) {
	s.notify(ctx, observer.GenerationEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		ImageReference: req.ImageReference,
		Languages:      req.TargetLanguages,
		Mode:           string(mode),
		ProcessingTime: time.Since(started),
		ErrorMessage:   err.Error(),
	})
}
