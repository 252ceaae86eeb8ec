package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// GenerationEvent represents a generation lifecycle event
type GenerationEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	ImageReference string                 `json:"image_reference"`
	Languages      []string               `json:"languages,omitempty"`
	Mode           string                 `json:"mode,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of generation event
type EventType string

const (
	// GenerationStarted when a generation run begins
	GenerationStarted EventType = "generation_started"
	// GenerationCompleted when a run finishes with a record
	GenerationCompleted EventType = "generation_completed"
	// GenerationFailed when a run aborts without a record
	GenerationFailed EventType = "generation_failed"
	// ImageResolved when the image bytes are successfully resolved
	ImageResolved EventType = "image_resolved"
	// ImageResolveFailed when image resolution fails
	ImageResolveFailed EventType = "image_resolve_failed"
	// LanguageFailed when a secondary language fails inside a run that
	// still completes
	LanguageFailed EventType = "language_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event GenerationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event GenerationEvent)
}

// LoggingObserver logs generation events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles generation events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event GenerationEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"image_reference": event.ImageReference,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if len(event.Languages) > 0 {
		fields["languages"] = event.Languages
	}
	if event.Mode != "" {
		fields["mode"] = event.Mode
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	if event.Metadata != nil {
		for k, v := range event.Metadata {
			fields[k] = v
		}
	}

	switch event.EventType {
	case GenerationStarted:
		o.logger.WithFields(fields).Info("Alt text generation started")
	case GenerationCompleted:
		o.logger.WithFields(fields).Info("Alt text generation completed")
	case GenerationFailed:
		o.logger.WithFields(fields).Error("Alt text generation failed")
	case ImageResolved:
		o.logger.WithFields(fields).Debug("Image resolved successfully")
	case ImageResolveFailed:
		o.logger.WithFields(fields).Error("Image resolution failed")
	case LanguageFailed:
		o.logger.WithFields(fields).Warn("Language generation failed, batch continues")
	default:
		o.logger.WithFields(fields).Info("Generation event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from generation events
type MetricsObserver struct {
	mu                    sync.RWMutex
	totalGenerations      int64
	successfulGenerations int64
	failedGenerations     int64
	languageFailures      int64
	totalProcessingTime   time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() Observer {
	return &MetricsObserver{}
}

// OnEvent handles generation events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event GenerationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case GenerationStarted:
		o.totalGenerations++
	case GenerationCompleted:
		o.successfulGenerations++
		o.totalProcessingTime += event.ProcessingTime
	case GenerationFailed:
		o.failedGenerations++
	case LanguageFailed:
		o.languageFailures++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulGenerations > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulGenerations)
	}

	return map[string]interface{}{
		"total_generations":      o.totalGenerations,
		"successful_generations": o.successfulGenerations,
		"failed_generations":     o.failedGenerations,
		"language_failures":      o.languageFailures,
		"total_processing_time":  o.totalProcessingTime,
		"avg_processing_time":    avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event GenerationEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
