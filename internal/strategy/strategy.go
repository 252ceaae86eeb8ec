package strategy

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/internal/logger"
	"go-alttext-generator/internal/normalizer"
	"go-alttext-generator/internal/provider"
	"go-alttext-generator/internal/storage"
	"go-alttext-generator/pkg/models"
)

// StageInvoker executes one provider call for a pipeline stage. The
// orchestrator binds it to the resolved provider/model selections so the
// strategy never sees provider plumbing.
type StageInvoker interface {
	Invoke(ctx context.Context, stage provider.Stage, prompt string, image *storage.ImageData) (string, error)
}

// PromptBuilder builds the per-stage, per-language prompts
type PromptBuilder interface {
	Vision(langCode string, geoBoost bool, contextText string) (string, error)
	Processing(visionOutput, langCode string) (string, error)
	Translation(altText, reasoning, langCode string) (string, error)
}

// Request carries everything one strategy run needs
type Request struct {
	Image       *storage.ImageData
	ContextText string
	Languages   []string
	GeoBoost    bool
}

// Executor runs the fast or accurate multilingual generation strategy.
// Languages are processed strictly in request order; output order always
// matches input order.
type Executor struct {
	invoker        StageInvoker
	prompts        PromptBuilder
	norm           *normalizer.Normalizer
	primaryRetries int
}

// NewExecutor creates a strategy executor. primaryRetries bounds transient
// retries on the first-language generation only.
func NewExecutor(invoker StageInvoker, prompts PromptBuilder, norm *normalizer.Normalizer, primaryRetries int) *Executor {
	if primaryRetries < 0 {
		primaryRetries = 0
	}
	return &Executor{
		invoker:        invoker,
		prompts:        prompts,
		norm:           norm,
		primaryRetries: primaryRetries,
	}
}

// Run executes the strategy for all requested languages. The primary
// (first) language is fail-fast: a permanent error or exhausted retries
// abort the whole run with no partial output. Failures on languages 2..N
// are captured in the returned slice and do not abort the batch.
func (e *Executor) Run(ctx context.Context, req Request, mode models.TranslationMode) ([]models.LocalizedOutput, error) {
	if len(req.Languages) == 0 {
		return nil, apperrors.NewValidationError("no target languages", nil)
	}

	primaryLang := req.Languages[0]
	primaryResult, err := e.generatePrimary(ctx, req, primaryLang)
	if err != nil {
		return nil, err
	}

	outputs := make([]models.LocalizedOutput, 0, len(req.Languages))
	outputs = append(outputs, localize(primaryLang, primaryResult))

	// Single language: both modes degenerate to the primary call alone
	for _, lang := range req.Languages[1:] {
		// Honor cancellation between calls; nothing is started once the
		// caller aborts.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var out models.LocalizedOutput
		switch mode {
		case models.TranslationModeAccurate:
			result, genErr := e.generate(ctx, req, lang)
			if genErr != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				out = failedOutput(lang, primaryResult.ImageType, genErr)
			} else {
				out = localize(lang, result)
			}
		default:
			out = e.translate(ctx, primaryResult, lang)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}

// generatePrimary runs the first-language pipeline with bounded retries on
// transient failures
func (e *Executor) generatePrimary(ctx context.Context, req Request, lang string) (models.AnalysisResult, error) {
	var lastErr error
	for attempt := 0; attempt <= e.primaryRetries; attempt++ {
		result, err := e.generate(ctx, req, lang)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !apperrors.IsTransient(err) || ctx.Err() != nil {
			return models.AnalysisResult{}, err
		}
		if attempt < e.primaryRetries {
			logger.WithError(err).WithFields(logrus.Fields{
				"language": lang,
				"attempt":  attempt + 1,
			}).Warn("Primary generation failed transiently, retrying")
			time.Sleep(time.Duration(200*(attempt+1)) * time.Millisecond)
		}
	}
	return models.AnalysisResult{}, lastErr
}

// generate runs the full vision+processing pipeline for one language:
// exactly two provider calls.
func (e *Executor) generate(ctx context.Context, req Request, lang string) (models.AnalysisResult, error) {
	visionPrompt, err := e.prompts.Vision(lang, req.GeoBoost, req.ContextText)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	visionOut, err := e.invoker.Invoke(ctx, provider.StageVision, visionPrompt, req.Image)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	processingPrompt, err := e.prompts.Processing(visionOut, lang)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	processingOut, err := e.invoker.Invoke(ctx, provider.StageProcessing, processingPrompt, nil)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	return e.norm.Normalize(processingOut)
}

// translate issues one translation-stage call carrying the primary result
// into another language. The classification is copied, never regenerated.
func (e *Executor) translate(ctx context.Context, primary models.AnalysisResult, lang string) models.LocalizedOutput {
	prompt, err := e.prompts.Translation(primary.AltText, primary.Reasoning, lang)
	if err != nil {
		return failedOutput(lang, primary.ImageType, err)
	}

	raw, err := e.invoker.Invoke(ctx, provider.StageTranslation, prompt, nil)
	if err != nil {
		return failedOutput(lang, primary.ImageType, err)
	}

	tr, err := e.norm.NormalizeTranslation(raw, primary.AltText)
	if err != nil {
		return failedOutput(lang, primary.ImageType, err)
	}

	altText := tr.AltText
	if primary.ImageType == models.ImageTypeDecorative {
		altText = ""
	}

	return models.LocalizedOutput{
		LanguageCode:    lang,
		AltText:         altText,
		Reasoning:       tr.Reasoning,
		ImageType:       primary.ImageType,
		CharacterCount:  characterCount(altText),
		Succeeded:       true,
		OverLengthLimit: normalizer.ExceedsCharacterLimit(altText),
	}
}

func localize(lang string, result models.AnalysisResult) models.LocalizedOutput {
	return models.LocalizedOutput{
		LanguageCode:    lang,
		AltText:         result.AltText,
		Reasoning:       result.Reasoning,
		ImageType:       result.ImageType,
		CharacterCount:  characterCount(result.AltText),
		Succeeded:       true,
		OverLengthLimit: normalizer.ExceedsCharacterLimit(result.AltText),
	}
}

// failedOutput captures a secondary-language failure without dropping the
// entry; the batch keeps going.
func failedOutput(lang string, imageType models.ImageType, err error) models.LocalizedOutput {
	return models.LocalizedOutput{
		LanguageCode: lang,
		AltText:      "",
		Reasoning:    fmt.Sprintf("Generation error: %v", err),
		ImageType:    imageType,
		Succeeded:    false,
	}
}

func characterCount(s string) int {
	return utf8.RuneCountInString(s)
}
