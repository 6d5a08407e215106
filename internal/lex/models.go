// internal/lex/models.go
package lex

import (
	"fmt"
)

// InvocationSource tells the code hook whether Lex is still collecting slots
// or is ready to fulfill the intent.
type InvocationSource string

const (
	DialogCodeHook      InvocationSource = "DialogCodeHook"
	FulfillmentCodeHook InvocationSource = "FulfillmentCodeHook"
)

// ParseInvocationSource accepts exactly the two values Lex sends.
func ParseInvocationSource(s string) (InvocationSource, error) {
	switch InvocationSource(s) {
	case DialogCodeHook, FulfillmentCodeHook:
		return InvocationSource(s), nil
	default:
		return "", fmt.Errorf("unrecognized invocation source %q", s)
	}
}

type DialogActionType string

const (
	ElicitSlotAction DialogActionType = "ElicitSlot"
	DelegateAction   DialogActionType = "Delegate"
	CloseAction      DialogActionType = "Close"
)

type FulfillmentState string

const Fulfilled FulfillmentState = "Fulfilled"

const PlainTextContent = "PlainText"

type Bot struct {
	Name    string `json:"name"`
	Alias   string `json:"alias,omitempty"`
	Version string `json:"version,omitempty"`
}

type SlotDetail struct {
	Resolutions   []map[string]string `json:"resolutions,omitempty"`
	OriginalValue *string             `json:"originalValue,omitempty"`
}

// CurrentIntent carries the slot values collected so far. A nil slot value
// means Lex has not collected it yet.
type CurrentIntent struct {
	Name               string                `json:"name"`
	Slots              map[string]*string    `json:"slots"`
	SlotDetails        map[string]SlotDetail `json:"slotDetails,omitempty"`
	ConfirmationStatus string                `json:"confirmationStatus,omitempty"`
}

// Event is the Lex V1 code hook input event.
type Event struct {
	MessageVersion    string            `json:"messageVersion,omitempty"`
	InvocationSource  string            `json:"invocationSource"`
	UserID            string            `json:"userId,omitempty"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
	Bot               Bot               `json:"bot"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type DialogAction struct {
	Type             DialogActionType   `json:"type"`
	IntentName       string             `json:"intentName,omitempty"`
	Slots            map[string]*string `json:"slots,omitempty"`
	SlotToElicit     string             `json:"slotToElicit,omitempty"`
	FulfillmentState FulfillmentState   `json:"fulfillmentState,omitempty"`
	Message          *Message           `json:"message,omitempty"`
}

// Response is the single value returned to Lex per invocation.
type Response struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// ValidationResult is the outcome of checking slot values against business
// rules. When IsValid is true ViolatedSlot is empty and Message is nil.
type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	ViolatedSlot string   `json:"violatedSlot,omitempty"`
	Message      *Message `json:"message,omitempty"`
}
