package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.RecordClassification("info", "en", "horror", "friendly", "horror_host")
	r.RecordClassification("info", "en", "horror", "happy", "horror_host")
	r.RecordClassification("", "", "general", "friendly", "friendly_guide")
	r.RecordFallback("default")
	r.RecordResponderFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(r.intents.WithLabelValues("info", "en")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.contexts.WithLabelValues("horror")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.emotions.WithLabelValues("friendly")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.personas.WithLabelValues("horror_host")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.fallbacks.WithLabelValues("default")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.responderErr))
	assert.Equal(t, 1, testutil.CollectAndCount(r.intents))
}

func TestRecordReload(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.RecordReload(51, nil)
	r.RecordReload(0, errors.New("invalid"))

	assert.Equal(t, float64(1), testutil.ToFloat64(r.reloads.WithLabelValues("applied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.reloads.WithLabelValues("rejected")))
	assert.Equal(t, float64(51), testutil.ToFloat64(r.catalogSize))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordClassification("info", "en", "horror", "friendly", "horror_host")
		r.RecordFallback("default")
		r.RecordReload(1, nil)
		r.SetCatalogSize(3)
		r.RecordResponderFailure()
	})
}

func TestDefault_IsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
