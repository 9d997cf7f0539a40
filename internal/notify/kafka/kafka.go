package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roombooker/internal/models"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher writes booking status events keyed by booking id, so every event of one
// booking lands on the same partition in order.
type Publisher struct {
	writer *kafka.Writer
}

func New(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
			BatchTimeout: 10 * time.Millisecond,
		},
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev models.BookingEvent) error {
	const op = "notify.kafka.Publish"

	msg, err := newMessage(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(ev models.BookingEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(ev.BookingID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}, nil
}
