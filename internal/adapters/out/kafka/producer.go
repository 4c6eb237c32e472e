// Package kafka publishes durable order events to the message broker. The
// outbox relay job is its only caller; delivery is at-least-once and
// consumers are expected to dedupe on the message id.
package kafka

import (
	"context"

	"deliveryhub/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

// OrderEventProducer writes outbox messages to a single order-events
// topic, keyed by order id so events for one order stay in partition
// order.
type OrderEventProducer struct {
	writer *kafkago.Writer
}

// NewOrderEventProducer creates a producer for the given broker and topic.
func NewOrderEventProducer(brokerAddress, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokerAddress),
			Topic:    topic,
			Balancer: &kafkago.Hash{},
		},
	}
}

// Send publishes the batch in one write. Headers carry the event name and
// the outbox message id for consumer-side dedupe.
func (p *OrderEventProducer) Send(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	records := make([]kafkago.Message, 0, len(messages))
	for _, message := range messages {
		records = append(records, kafkago.Message{
			Key:   []byte(message.OrderID.String()),
			Value: message.Payload,
			Headers: []kafkago.Header{
				{Key: "event-name", Value: []byte(message.EventName)},
				{Key: "message-id", Value: []byte(message.ID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, records...)
}

// Close releases the underlying writer.
func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
