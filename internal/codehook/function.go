// Package codehook is the entry point Lex invokes: it checks the raw event
// envelope, decodes it, dispatches it and records what happened.
package codehook

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "robo-advisor/internal/common/errors"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/metrics"
	"robo-advisor/internal/common/observability"
	"robo-advisor/internal/common/validation"
	"robo-advisor/internal/dispatcher"
	"robo-advisor/internal/lex"
)

var eventSchema = validation.MustCompile(lex.EventSchema)

type requestIDKey struct{}

// ContextWithRequestID attaches a caller-supplied request id, used when the
// function is not running inside Lambda.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext prefers the Lambda request id, then an id set with
// ContextWithRequestID, then a fresh UUID.
func RequestIDFromContext(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

type Options struct {
	Dispatcher    *dispatcher.Dispatcher
	Logger        logger.Logger
	Metrics       *metrics.Recorder
	Observability *observability.Observability
}

type Function struct {
	dispatcher *dispatcher.Dispatcher
	logger     logger.Logger
	metrics    *metrics.Recorder
	obs        *observability.Observability
}

func New(opts Options) *Function {
	f := &Function{
		dispatcher: opts.Dispatcher,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		obs:        opts.Observability,
	}
	if f.logger == nil {
		f.logger = logger.NewNoOpLogger()
	}
	if f.obs == nil {
		f.obs = observability.NewNoop()
	}
	return f
}

// Invoke is the Lambda handler: one raw Lex event in, one response out.
func (f *Function) Invoke(ctx context.Context, payload json.RawMessage) (*lex.Response, error) {
	start := time.Now()
	requestID := RequestIDFromContext(ctx)

	ctx, span := f.obs.StartInvocation(ctx, requestID)
	defer span.End()

	var traceID string
	if sc := span.SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}
	log := logger.ForInvocation(f.logger, requestID, traceID)

	event, err := decode(payload)
	if err != nil {
		f.finish(ctx, log, span, "", "", nil, err, time.Since(start))
		return nil, err
	}

	log.Debug("event.bot.name", map[string]interface{}{"botName": event.Bot.Name})
	log.Debug("inbound event", map[string]interface{}{"event": event})

	span.SetAttributes(
		attribute.String("lex.intent", event.CurrentIntent.Name),
		attribute.String("lex.invocation_source", event.InvocationSource),
		attribute.String("lex.bot", event.Bot.Name),
	)

	resp, err := f.dispatcher.Dispatch(ctx, event)
	f.finish(ctx, log, span, event.CurrentIntent.Name, event.InvocationSource, resp, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func decode(payload []byte) (*lex.Event, error) {
	result, err := eventSchema.ValidateJSON(payload)
	if err != nil {
		return nil, apperrors.NewInvalidRequestError("event is not valid JSON", err)
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidRequestError(result.Summary(), nil)
	}

	var event lex.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, apperrors.NewInvalidRequestError("event could not be decoded", err)
	}
	return &event, nil
}

func (f *Function) finish(ctx context.Context, log logger.Logger, span trace.Span, intent, source string, resp *lex.Response, err error, elapsed time.Duration) {
	if intent == "" || apperrors.HasCode(err, apperrors.ErrCodeUnsupportedIntent) {
		intent = "unsupported"
	}
	switch _, perr := lex.ParseInvocationSource(source); {
	case source == "":
		source = "unknown"
	case perr != nil:
		source = "invalid"
	}

	var outcome string
	if err != nil {
		stdErr := apperrors.Normalize(err)
		outcome = strings.ToLower(string(stdErr.Code))

		span.RecordError(err)
		span.SetStatus(codes.Error, stdErr.Message)
		log.Error("code hook invocation failed", map[string]interface{}{
			"errorCode":     string(stdErr.Code),
			"errorCategory": apperrors.GetErrorCategory(stdErr.Code),
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"durationMs":    elapsed.Milliseconds(),
		})
	} else {
		outcome = strings.ToLower(string(resp.DialogAction.Type))

		span.SetStatus(codes.Ok, "")
		log.Info("code hook invocation completed", map[string]interface{}{
			"intent":     intent,
			"source":     source,
			"dialogType": string(resp.DialogAction.Type),
			"durationMs": elapsed.Milliseconds(),
		})
	}

	span.SetAttributes(attribute.String("codehook.outcome", outcome))
	f.metrics.ObserveInvocation(intent, source, outcome, elapsed)
	f.obs.RecordInvocation(ctx, intent, source, outcome, elapsed)
}
