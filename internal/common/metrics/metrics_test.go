package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(reg, "test")

	rec.ObserveInvocation("recommendPortfolio", "DialogCodeHook", "elicit", 2*time.Millisecond)
	rec.ObserveInvocation("recommendPortfolio", "DialogCodeHook", "elicit", time.Millisecond)
	rec.ValidationFailed("recommendPortfolio", "age")
	rec.PublishFailed("recommendPortfolio")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.Invocations.WithLabelValues("recommendPortfolio", "DialogCodeHook", "elicit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ValidationFailures.WithLabelValues("recommendPortfolio", "age")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.PublishFailures.WithLabelValues("recommendPortfolio")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.InvocationDuration))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	// Two recorders must not collide: each gets its own registry.
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry(), "a")
		New(prometheus.NewRegistry(), "a")
	})
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObserveInvocation("i", "s", "o", time.Second)
		rec.ValidationFailed("i", "age")
		rec.PublishFailed("i")
	})
}
