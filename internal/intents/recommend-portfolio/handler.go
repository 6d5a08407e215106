// internal/intents/recommend-portfolio/handler.go
package recommendportfolio

import (
	"context"
	"fmt"
	"time"

	apperrors "robo-advisor/internal/common/errors"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/metrics"
	"robo-advisor/internal/lex"
	"robo-advisor/internal/models"

	"github.com/google/uuid"
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	metrics   *metrics.Recorder
	publisher Publisher
}

func NewHandler(config *Config, deps Dependencies) (*Handler, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", IntentName, err)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"intent": IntentName}),
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
	}, nil
}

// Handle performs dialog management and fulfillment for recommending a portfolio.
func (h *Handler) Handle(ctx context.Context, source lex.InvocationSource, event *lex.Event) (*lex.Response, error) {
	slots := SlotsFromMap(event.CurrentIntent.Slots)

	switch source {
	case lex.DialogCodeHook:
		return h.validateSlots(event, slots), nil
	case lex.FulfillmentCodeHook:
		return h.fulfill(ctx, event, slots), nil
	default:
		return nil, apperrors.NewInvalidInvocationSourceError(string(source))
	}
}

func (h *Handler) validateSlots(event *lex.Event, slots Slots) *lex.Response {
	result := Validate(slots)
	if result.IsValid {
		h.logger.Debug("slots valid, delegating", nil)
		return lex.Delegate(event.SessionAttributes, h.currentSlots(event, slots))
	}

	h.metrics.ValidationFailed(IntentName, result.ViolatedSlot)
	h.logger.Info("slot validation failed", map[string]interface{}{
		"violatedSlot": result.ViolatedSlot,
	})

	cleared := h.currentSlots(event, slots)
	cleared[result.ViolatedSlot] = nil

	return lex.ElicitSlot(
		event.SessionAttributes,
		event.CurrentIntent.Name,
		cleared,
		result.ViolatedSlot,
		*result.Message,
	)
}

func (h *Handler) fulfill(ctx context.Context, event *lex.Event, slots Slots) *lex.Response {
	riskLevel := deref(slots.RiskLevel)
	firstName := deref(slots.FirstName)

	allocation := Recommend(riskLevel)
	if allocation == "" {
		h.logger.Warn("no allocation for risk level", map[string]interface{}{
			"riskLevel": riskLevel,
		})
	}

	h.publish(ctx, event, firstName, riskLevel, allocation)

	content := fmt.Sprintf(
		"Given your risk level - %s. We recommend this investment: %s. Thank you, %s, for using %s.",
		riskLevel, allocation, firstName, h.config.ServiceName,
	)
	return lex.Close(event.SessionAttributes, lex.Fulfilled, lex.PlainText(content))
}

// publish never fails the invocation; Lex has no use for a publisher error.
func (h *Handler) publish(ctx context.Context, event *lex.Event, firstName, riskLevel, allocation string) {
	if h.publisher == nil || !h.config.PublishFulfillments {
		return
	}

	n := models.RecommendationNotification{
		ID:         uuid.NewString(),
		Type:       models.NotificationTypeRecommendationFulfilled,
		Intent:     IntentName,
		BotName:    event.Bot.Name,
		UserID:     event.UserID,
		FirstName:  firstName,
		RiskLevel:  riskLevel,
		Allocation: allocation,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.publisher.PublishRecommendation(ctx, n); err != nil {
		stdErr := apperrors.NewNotificationSendFailedError("recommendation", err)
		h.metrics.PublishFailed(IntentName)
		h.logger.Error("recommendation publish failed", map[string]interface{}{
			"errorCode":      string(stdErr.Code),
			"details":        stdErr.Details,
			"notificationId": n.ID,
		})
		return
	}

	h.logger.Debug("recommendation published", map[string]interface{}{
		"notificationId": n.ID,
	})
}

// currentSlots returns a copy of the slot map exactly as Lex sent it, falling
// back to the typed view when the event carried no map at all.
func (h *Handler) currentSlots(event *lex.Event, slots Slots) map[string]*string {
	if event.CurrentIntent.Slots == nil {
		return slots.ToMap()
	}
	return lex.CopySlots(event.CurrentIntent.Slots)
}
