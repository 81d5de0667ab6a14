package services

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
)

// amqpNotifier publishes account events to the notification queue.
type amqpNotifier struct {
	client *amqp.Client
}

// NewAMQPNotifier creates a Notifier backed by the RabbitMQ client.
func NewAMQPNotifier(client *amqp.Client) Notifier {
	return &amqpNotifier{client: client}
}

func (n *amqpNotifier) Notify(ctx context.Context, kind, email, name string) error {
	switch amqp.NotificationKind(kind) {
	case amqp.NotificationUserCreated, amqp.NotificationPasswordChanged:
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}
	msg := amqp.NewNotificationMessage(amqp.NotificationKind(kind), email, name)
	return n.client.PublishNotification(ctx, msg)
}

// noopNotifier drops all notifications. Used in tests and when AMQP is
// not configured.
type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that discards every event.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Notify(context.Context, string, string, string) error { return nil }
