// internal/lex/schema.go
package lex

// EventSchema describes the envelope fields the code hook relies on. Slot
// semantics are checked later by the intent's own validator.
const EventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["invocationSource", "currentIntent"],
  "properties": {
    "messageVersion": {"type": "string"},
    "invocationSource": {"type": "string", "minLength": 1},
    "userId": {"type": "string"},
    "inputTranscript": {"type": "string"},
    "sessionAttributes": {
      "type": ["object", "null"],
      "additionalProperties": {"type": "string"}
    },
    "requestAttributes": {
      "type": ["object", "null"],
      "additionalProperties": {"type": "string"}
    },
    "bot": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "alias": {"type": ["string", "null"]},
        "version": {"type": ["string", "null"]}
      }
    },
    "currentIntent": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "slots": {
          "type": ["object", "null"],
          "additionalProperties": {"type": ["string", "null"]}
        },
        "confirmationStatus": {"type": "string"}
      }
    }
  }
}`
