// internal/lex/builders.go
package lex

// PlainText wraps content in a plain-text Lex message.
func PlainText(content string) Message {
	return Message{ContentType: PlainTextContent, Content: content}
}

// NewValidationResult builds a ValidationResult. A valid result never carries
// a slot or a message, whatever the caller passed.
func NewValidationResult(isValid bool, violatedSlot, messageContent string) ValidationResult {
	if isValid {
		return ValidationResult{IsValid: true}
	}
	msg := PlainText(messageContent)
	return ValidationResult{
		IsValid:      false,
		ViolatedSlot: violatedSlot,
		Message:      &msg,
	}
}

// ElicitSlot asks Lex to re-prompt the user for slotToElicit.
func ElicitSlot(sessionAttributes map[string]string, intentName string, slots map[string]*string, slotToElicit string, message Message) *Response {
	return &Response{
		SessionAttributes: nonNilAttributes(sessionAttributes),
		DialogAction: DialogAction{
			Type:         ElicitSlotAction,
			IntentName:   intentName,
			Slots:        nonNilSlots(slots),
			SlotToElicit: slotToElicit,
			Message:      &message,
		},
	}
}

// Delegate hands control back to Lex's own slot collection.
func Delegate(sessionAttributes map[string]string, slots map[string]*string) *Response {
	return &Response{
		SessionAttributes: nonNilAttributes(sessionAttributes),
		DialogAction: DialogAction{
			Type:  DelegateAction,
			Slots: nonNilSlots(slots),
		},
	}
}

// Close ends the conversation for the intent.
func Close(sessionAttributes map[string]string, fulfillmentState FulfillmentState, message Message) *Response {
	return &Response{
		SessionAttributes: nonNilAttributes(sessionAttributes),
		DialogAction: DialogAction{
			Type:             CloseAction,
			FulfillmentState: fulfillmentState,
			Message:          &message,
		},
	}
}

// CopySlots returns a shallow copy safe to modify without touching the event.
func CopySlots(slots map[string]*string) map[string]*string {
	out := make(map[string]*string, len(slots))
	for k, v := range slots {
		out[k] = v
	}
	return out
}

func nonNilAttributes(attrs map[string]string) map[string]string {
	if attrs == nil {
		return map[string]string{}
	}
	return attrs
}

func nonNilSlots(slots map[string]*string) map[string]*string {
	if slots == nil {
		return map[string]*string{}
	}
	return slots
}
