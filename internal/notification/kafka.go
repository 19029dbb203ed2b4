package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockwatch/internal/clock"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer used by the Kafka notifier.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes every notification as a JSON Event keyed by product name.
type KafkaNotifier struct {
	writer MessageWriter
	clock  clock.Clock
	logger zerolog.Logger
}

// NewKafkaWriter creates a writer for topic on brokers. Messages with the same
// key land on the same partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier creates a notifier publishing through writer.
func NewKafkaNotifier(writer MessageWriter, clk clock.Clock, logger zerolog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: writer,
		clock:  clk,
		logger: logger.With().Str("notifier", "kafka").Logger(),
	}
}

func (n *KafkaNotifier) SendDelayNotification(ctx context.Context, leadTime int, productName string) error {
	return n.publish(ctx, Event{Kind: KindDelay, ProductName: productName, LeadTime: &leadTime})
}

func (n *KafkaNotifier) SendOutOfStockNotification(ctx context.Context, productName string) error {
	return n.publish(ctx, Event{Kind: KindOutOfStock, ProductName: productName})
}

func (n *KafkaNotifier) SendExpirationNotification(ctx context.Context, productName string, expiryDate time.Time) error {
	return n.publish(ctx, Event{Kind: KindExpiration, ProductName: productName, ExpiryDate: &expiryDate})
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, event Event) error {
	event.OccurredAt = n.clock.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s notification: %w", event.Kind, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductName),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.Error().
			Err(err).
			Str("kind", string(event.Kind)).
			Str("product", event.ProductName).
			Msg("failed to publish notification")
		return fmt.Errorf("failed to publish %s notification for %q: %w", event.Kind, event.ProductName, err)
	}

	n.logger.Debug().
		Str("kind", string(event.Kind)).
		Str("product", event.ProductName).
		Msg("notification published")

	return nil
}
