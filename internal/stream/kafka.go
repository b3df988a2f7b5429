package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const flushTimeoutMs = 5000

// Publisher sends domain events. Handlers depend on this instead of the Kafka client.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
	Close()
}

type KafkaStream struct {
	kafkaServers string
	producer     *kafka.Producer
	logger       *slog.Logger
}

// New connects a producer that lives as long as the application.
// Delivery reports are drained in the background and failures are logged.
func New(kafkaServers string, logger *slog.Logger) (*KafkaStream, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": kafkaServers,
		"acks":              "all",
	})
	if err != nil {
		return nil, err
	}

	st := &KafkaStream{
		kafkaServers: kafkaServers,
		producer:     producer,
		logger:       logger,
	}

	go st.drainEvents()

	return st, nil
}

func (st *KafkaStream) drainEvents() {
	for e := range st.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				st.logger.Error("event delivery failed", "topic", *ev.TopicPartition.Topic, "error", ev.TopicPartition.Error)
			}
		case kafka.Error:
			st.logger.Error("kafka producer error", "error", ev)
		}
	}
}

func (st *KafkaStream) Publish(ctx context.Context, topic string, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	err = st.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}, nil)
	if err != nil {
		return fmt.Errorf("produce %s event: %w", topic, err)
	}

	return nil
}

// Close waits for queued events to be delivered and releases the producer.
func (st *KafkaStream) Close() {
	if remaining := st.producer.Flush(flushTimeoutMs); remaining > 0 {
		st.logger.Warn("events not delivered before shutdown", "count", remaining)
	}

	st.producer.Close()
}

type StreamConsumer struct {
	GroupId string
	Topic   string
}

func (st *KafkaStream) CreateConsumer(consumerStruct *StreamConsumer) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": st.kafkaServers,
		"group.id":          consumerStruct.GroupId,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(consumerStruct.Topic, nil); err != nil {
		consumer.Close()
		return nil, err
	}

	return consumer, nil
}

// NoopPublisher drops every event. It is used when no Kafka servers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, key string, payload any) error {
	return nil
}

func (NoopPublisher) Close() {}
