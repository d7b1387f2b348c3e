// Package rabbit publishes notifications to RabbitMQ for delivery to user
// devices. The engine only hands the notification to the broker; fan-out to
// push channels is owned by a downstream consumer.
//
// Publishing is best effort by contract: callers treat a failed publish as a
// degraded response, never as a failed business operation.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resale/internal/core/domain/model/notification"

	amqp "github.com/rabbitmq/amqp091-go"
)

// notificationEnvelope is the JSON wire form placed on the queue.
type notificationEnvelope struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	RecipientID string    `json:"recipientId"`
	OrderNumber string    `json:"orderNumber"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newEnvelope(n *notification.Notification) notificationEnvelope {
	return notificationEnvelope{
		ID:          n.ID().String(),
		Kind:        n.Kind().String(),
		RecipientID: n.RecipientID().String(),
		OrderNumber: n.OrderNumber().String(),
		Title:       n.Title(),
		Body:        n.Body(),
		Link:        n.Link(),
		CreatedAt:   n.CreatedAt(),
	}
}

// AmqpNotificationPublisher implements NotificationPublisher over a RabbitMQ
// connection. Messages go to a durable queue on the default exchange and are
// marked persistent so they survive broker restarts.
type AmqpNotificationPublisher struct {
	conn      *amqp.Connection
	queueName string
}

// NewAmqpNotificationPublisher connects to the broker and declares the
// notification queue. Queue declaration is idempotent, so concurrent
// instances can share a queue name safely.
func NewAmqpNotificationPublisher(url, queueName string) (*AmqpNotificationPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return &AmqpNotificationPublisher{
		conn:      conn,
		queueName: queueName,
	}, nil
}

// Publish sends one notification to the queue as a persistent JSON message.
func (p *AmqpNotificationPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(newEnvelope(n))
	if err != nil {
		return fmt.Errorf("failed to marshal notification %s: %w", n.ID().String(), err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	err = ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID().String(),
			Timestamp:    n.CreatedAt(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.ID().String(), err)
	}

	return nil
}

// Close releases the broker connection.
func (p *AmqpNotificationPublisher) Close() error {
	return p.conn.Close()
}
