package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON messages keyed by aggregate id.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing to cfg.Topic.
func NewKafkaPublisher(cfg config.KafkaConfig, logger zerolog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}
	return newKafkaPublisher(w, cfg.WriteTimeout, logger)
}

func newKafkaPublisher(w messageWriter, timeout time.Duration, logger zerolog.Logger) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaPublisher{
		writer:  w,
		timeout: timeout,
		logger:  logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish writes every event in one batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", e.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.Key),
			Value: data,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(e.Type)},
			},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error().Err(err).Int("count", len(msgs)).Msg("failed to publish events")
		return fmt.Errorf("failed to publish events: %w", err)
	}

	p.logger.Debug().Int("count", len(msgs)).Msg("events published")
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewPublisher returns a Kafka publisher when cfg enables it and a
// discarding one otherwise.
func NewPublisher(cfg config.KafkaConfig, logger zerolog.Logger) Publisher {
	if !cfg.Enabled {
		logger.Info().Msg("kafka disabled, change events are discarded")
		return NewNopPublisher()
	}
	logger.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("publishing change events to kafka")
	return NewKafkaPublisher(cfg, logger)
}
