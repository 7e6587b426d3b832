package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}

	err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{channel: ch, exchange: exchange}, nil
}

func (p *Publisher) publish(ctx context.Context, routingKey string, msg []byte) error {
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}

// EventPublisher emits sampling-run lifecycle events for downstream
// consumers (dashboards, librarians of the frame store).
type EventPublisher struct {
	pub *Publisher
}

func NewEventPublisher(pub *Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (ep *EventPublisher) PublishCompleted(ctx context.Context, msg []byte) error {
	return ep.pub.publish(ctx, "sampling.completed", msg)
}

func (ep *EventPublisher) PublishFailed(ctx context.Context, msg []byte) error {
	return ep.pub.publish(ctx, "sampling.failed", msg)
}
