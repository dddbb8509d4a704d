// Package kafka publishes outbox messages to Kafka. Each event name maps to
// its own topic; messages are keyed by aggregate id so events of one order
// keep their order within a partition.
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "x-event-type"
	HeaderEventID   = "x-event-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher with a synchronous kafka.Writer,
// so a nil error means every message was acknowledged.
type Publisher struct {
	writer      messageWriter
	topicPrefix string
}

// NewPublisher builds a writer for brokers, a comma separated list.
func NewPublisher(brokers string, topicPrefix string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(brokers)...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}, topicPrefix)
}

func NewPublisherWithWriter(writer messageWriter, topicPrefix string) *Publisher {
	return &Publisher{writer: writer, topicPrefix: strings.TrimSuffix(topicPrefix, ".")}
}

func (p *Publisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Topic: p.Topic(m.EventName),
			Key:   []byte(m.AggregateID),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: HeaderEventType, Value: []byte(m.EventName)},
				{Key: HeaderEventID, Value: []byte(m.ID)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish %d messages: %w", len(batch), err)
	}
	return nil
}

// Topic returns "<prefix>.<event name>", or the bare event name without a prefix.
func (p *Publisher) Topic(eventName string) string {
	if p.topicPrefix == "" {
		return eventName
	}
	return p.topicPrefix + "." + eventName
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func SplitBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
