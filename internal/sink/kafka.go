package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/pkg/config"
	"github.com/wonny/ideagen/pkg/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes the payload of each run to a topic
type KafkaSink struct {
	writer messageWriter
	topic  string
	logger *logger.Logger
}

var _ contracts.Sink = (*KafkaSink)(nil)

// NewKafkaSink creates a producer for cfg.Brokers/cfg.Topic
func NewKafkaSink(cfg config.KafkaConfig, log *logger.Logger) (*KafkaSink, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Gzip,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
	}

	return &KafkaSink{writer: writer, topic: cfg.Topic, logger: log.WithStage(contracts.StageEmit)}, nil
}

// WriteOHLC is a no-op; chart artifacts are file-only
func (k *KafkaSink) WriteOHLC(context.Context, string, []contracts.OHLCPoint) error {
	return nil
}

// WritePayload publishes the payload keyed by run id
func (k *KafkaSink) WritePayload(ctx context.Context, payload *contracts.Payload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.RunID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "config_hash", Value: []byte(payload.ConfigHash)},
			{Key: "generated_at", Value: []byte(payload.GeneratedAt)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish payload to %s: %w", k.topic, err)
	}

	k.logger.WithFields(map[string]interface{}{
		"topic":  k.topic,
		"run_id": payload.RunID,
		"ideas":  len(payload.Ideas),
	}).Info("Payload published")
	return nil
}

// Close flushes and closes the producer
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
