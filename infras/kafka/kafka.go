package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"mariachi/config"
	"mariachi/infras/otel"
	"mariachi/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

// Event is a booking lifecycle notification keyed by the aggregate id.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (e *Event) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("type", e.Type).Msg("Failed to marshal event to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(e.Key),
		Value: value,
		Headers: []kafkaGo.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type kafkaPublisher struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
}

type noopPublisher struct{}

// New returns a kafka-backed publisher, or a no-op one when KAFKA_ENABLE is false.
func New(config *config.Config, otl otel.Otel) Publisher {
	if !config.Kafka.Enable || len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("Kafka disabled, booking events will not be published")

		return &noopPublisher{}
	}

	transport := &kafkaGo.Transport{}
	if config.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Str("topic", config.Kafka.Topic).Msg("Kafka publisher initialized")

	return &kafkaPublisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
			Topic:                  config.Kafka.Topic,
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           writeTimeout,
		},
		otel: otl,
	}
}

func (k *kafkaPublisher) Publish(ctx context.Context, events ...Event) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msgs := make([]kafkaGo.Message, 0, len(events))

	for _, event := range events {
		msg, err := event.ToKafkaMessage()
		if err != nil {
			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", k.writer.Topic).Msg("Failed to send events to Kafka.")

		return fmt.Errorf("failed to send events to Kafka: %w", err)
	}

	log.Info().Str("topic", k.writer.Topic).Int("events", len(msgs)).Msg("Sent events successfully.")

	return nil
}

func (n *noopPublisher) Publish(_ context.Context, events ...Event) error {
	for _, event := range events {
		log.Debug().Str("type", event.Type).Str("key", event.Key).Msg("Skipping event publish, kafka disabled")
	}

	return nil
}
