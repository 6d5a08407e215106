package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"intent": "recommendPortfolio"}).
		WithError(errors.New("boom"))

	log.Debug("validated", map[string]interface{}{"slot": "age", "cause": errors.New("bad age")})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "validated", entries[0].Message)
		assert.Equal(t, "recommendPortfolio", ctx["intent"])
		assert.Equal(t, "boom", ctx["error"])
		assert.Equal(t, "bad age", ctx["cause"])
		assert.Equal(t, "age", ctx["slot"])
	}
}

func TestNew_FormatSelectsEncoder(t *testing.T) {
	assert.NotNil(t, New("debug", "json"))
	assert.NotNil(t, New("info", "console"))
	assert.NotNil(t, NewStructured("warn", "json"))
	NewNoOpLogger().Info("discarded", nil)
}

func TestForInvocation(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := NewZapAdapter(zap.New(core))

	ForInvocation(base, "req-1", "4bf92f3577b34da6a3ce929d0e0e4736").Info("traced", nil)
	ForInvocation(base, "req-2", "").Info("untraced", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	traced := entries[0].ContextMap()
	assert.Equal(t, "req-1", traced["requestId"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traced["traceId"])

	untraced := entries[1].ContextMap()
	assert.Equal(t, "req-2", untraced["requestId"])
	assert.NotContains(t, untraced, "traceId")
}
