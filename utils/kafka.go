package utils

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sandeshm/portfolio-backend/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka creates the writer for the email queue topic. Kafka is
// optional: without KAFKA_BROKERS the mail queue runs in-process.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, email queue runs in-process")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("✅ Kafka writer ready (topic %s)", cfg.KafkaTopic)
}

// KafkaEnabled reports whether the queue is backed by Kafka
func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishMessage writes one message to the email queue topic
func PublishMessage(ctx context.Context, key string, value []byte) error {
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// NewQueueReader builds a consumer for the email queue topic
func NewQueueReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		Topic:    cfg.KafkaTopic,
		GroupID:  "portfolio-mailer",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// CloseKafka flushes and closes the writer on shutdown
func CloseKafka() {
	if kafkaWriter == nil {
		return
	}
	if err := kafkaWriter.Close(); err != nil {
		log.Printf("⚠️ Kafka writer close: %v", err)
	}
	kafkaWriter = nil
}
