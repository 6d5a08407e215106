// Package dispatcher routes Lex code hook events to the handler registered
// for the event's intent.
package dispatcher

import (
	"context"
	"fmt"

	apperrors "robo-advisor/internal/common/errors"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/lex"
)

// IntentHandler serves one Lex intent.
type IntentHandler interface {
	Handle(ctx context.Context, source lex.InvocationSource, event *lex.Event) (*lex.Response, error)
}

// HandlerFunc adapts a plain function to IntentHandler.
type HandlerFunc func(ctx context.Context, source lex.InvocationSource, event *lex.Event) (*lex.Response, error)

func (f HandlerFunc) Handle(ctx context.Context, source lex.InvocationSource, event *lex.Event) (*lex.Response, error) {
	return f(ctx, source, event)
}

// Dispatcher is immutable once built and safe for concurrent use.
type Dispatcher struct {
	handlers map[string]IntentHandler
	logger   logger.Logger
}

// New copies handlers so later changes to the caller's map have no effect.
func New(handlers map[string]IntentHandler, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	table := make(map[string]IntentHandler, len(handlers))
	for name, h := range handlers {
		table[name] = h
	}
	return &Dispatcher{handlers: table, logger: log}
}

// Intents lists the registered intent names.
func (d *Dispatcher) Intents() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch routes the event by intent name. An unregistered intent is a
// wiring bug in the bot, so it surfaces as an error rather than a response.
func (d *Dispatcher) Dispatch(ctx context.Context, event *lex.Event) (*lex.Response, error) {
	intentName := event.CurrentIntent.Name

	handler, ok := d.handlers[intentName]
	if !ok {
		d.logger.Debug("unsupported intent", map[string]interface{}{
			"intentName": intentName,
			"botName":    event.Bot.Name,
		})
		return nil, apperrors.NewUnsupportedIntentError(intentName)
	}

	source, err := lex.ParseInvocationSource(event.InvocationSource)
	if err != nil {
		return nil, apperrors.NewInvalidInvocationSourceError(event.InvocationSource)
	}

	resp, err := handler.Handle(ctx, source, event)
	if err != nil {
		return nil, fmt.Errorf("intent %s: %w", intentName, err)
	}
	return resp, nil
}
