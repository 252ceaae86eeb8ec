package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-alttext-generator/internal/config"
	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/internal/generator"
	"go-alttext-generator/internal/languages"
	"go-alttext-generator/internal/logger"
	"go-alttext-generator/pkg/models"
)

// NewHandler wires the HTTP routes over the generation service
func NewHandler(svc generator.GenerationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/languages", listLanguages)
	r.POST("/generate", generateAltText(svc, cfg))

	return r
}

func generateAltText(svc generator.GenerationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing alt text generation request")

		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		record, err := svc.Generate(ctx, models.GenerationRequest{
			ImageReference:      req.ImageURL,
			ContextText:         req.Context,
			TargetLanguages:     req.Languages,
			TranslationMode:     models.TranslationMode(req.TranslationMode),
			FullTranslationMode: req.FullTranslationMode,
			GeoBoost:            req.GeoBoost,
			Overrides:           req.Overrides,
			Source:              req.Source,
		})
		if err != nil {
			statusCode := determineStatusCode(err)
			logger.WithError(err).WithFields(logrus.Fields{
				"image_url": req.ImageURL,
				"languages": req.Languages,
				"ip":        c.ClientIP(),
			}).Error("Alt text generation failed")
			respondError(c, statusCode, "alt text generation failed", err)
			return
		}

		duration := time.Since(startTime)
		logger.WithFields(logrus.Fields{
			"image_url":          req.ImageURL,
			"languages":          record.Languages,
			"translation_method": record.TranslationMethod,
			"fully_succeeded":    record.FullySucceeded,
			"processing_time_ms": duration.Milliseconds(),
		}).Info("Alt text generation completed")

		c.JSON(http.StatusOK, record)
	}
}

func listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, models.LanguagesResponse{
		Languages: languages.All(),
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
