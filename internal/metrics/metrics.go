// Package metrics exposes Prometheus counters for chatbot classification.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cinebot"

// Recorder holds the chatbot metrics. All methods are safe on a nil Recorder.
type Recorder struct {
	intents      *prometheus.CounterVec
	contexts     *prometheus.CounterVec
	emotions     *prometheus.CounterVec
	personas     *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	reloads      *prometheus.CounterVec
	responderErr prometheus.Counter
	catalogSize  prometheus.Gauge
}

// NewRecorder registers the chatbot metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		intents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Classified intents by intent and language.",
		}, []string{"intent", "language"}),
		contexts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contexts_total",
			Help:      "Detected conversation contexts.",
		}, []string{"context"}),
		emotions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emotions_total",
			Help:      "Detected emotions.",
		}, []string{"emotion"}),
		personas: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "personas_matched_total",
			Help:      "Personas selected by the matcher.",
		}, []string{"persona"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_responses_total",
			Help:      "Canned fallback responses served, by category.",
		}, []string{"category"}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Persona catalog reload attempts by outcome.",
		}, []string{"outcome"}),
		responderErr: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responder_failures_total",
			Help:      "AI responder calls that failed and fell back.",
		}),
		catalogSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_personas",
			Help:      "Number of personas in the active catalog.",
		}),
	}
}

var (
	defaultRecorder *Recorder
	defaultOnce     sync.Once
)

// Default returns the recorder registered with the global Prometheus registry.
func Default() *Recorder {
	defaultOnce.Do(func() {
		defaultRecorder = NewRecorder(prometheus.DefaultRegisterer)
	})
	return defaultRecorder
}

// Handler serves the global registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func (r *Recorder) RecordClassification(intent, language, context, emotion, persona string) {
	if r == nil {
		return
	}
	if intent != "" {
		r.intents.WithLabelValues(intent, language).Inc()
	}
	r.contexts.WithLabelValues(context).Inc()
	r.emotions.WithLabelValues(emotion).Inc()
	r.personas.WithLabelValues(persona).Inc()
}

func (r *Recorder) RecordFallback(category string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(category).Inc()
}

func (r *Recorder) RecordResponderFailure() {
	if r == nil {
		return
	}
	r.responderErr.Inc()
}

// RecordReload counts a reload attempt and, on success, updates the size gauge.
func (r *Recorder) RecordReload(size int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.reloads.WithLabelValues("rejected").Inc()
		return
	}
	r.reloads.WithLabelValues("applied").Inc()
	r.catalogSize.Set(float64(size))
}

func (r *Recorder) SetCatalogSize(size int) {
	if r == nil {
		return
	}
	r.catalogSize.Set(float64(size))
}
