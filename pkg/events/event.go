package events

import "time"

// Event is anything that can go out on the external bus.
type Event interface {
	// EventType is the subject suffix, e.g. "DOCUMENT_CREATED".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentEvent builds the event for a document write. Empty fields are omitted from the payload.
func NewDocumentEvent(eventType, organizationId, documentId string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"document_id":     documentId,
		"organization_id": organizationId,
	}
	for k, v := range extra {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
