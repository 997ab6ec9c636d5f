package repository

import (
	"context"

	"astroengine/pkg/kafka"
)

// KafkaPublisher adapts the kafka producer to the domain Publisher
// interface.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (k *KafkaPublisher) Publish(ctx context.Context, topic string, key []byte, value interface{}) error {
	return k.producer.Publish(ctx, topic, key, value)
}

func (k *KafkaPublisher) Close() error {
	return k.producer.Close()
}
