package services

// EventPublisher is the outbound event channel for storefront events.
// pkg/rabbitmq.Client satisfies it; services treat a nil publisher as
// "eventing disabled" and log instead.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}
