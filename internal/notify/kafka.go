package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"payproof/internal/models"

	"github.com/IBM/sarama"
)

const EventPaymentSubmitted = "payment.submitted"

// Event is the JSON value published for every stored payment.
type Event struct {
	EventType string         `json:"event_type"`
	Data      models.Payment `json:"data"`
	Summary   string         `json:"summary"`
}

// KafkaNotifier publishes payment events to a topic.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	location *time.Location
}

// NewKafkaProducer builds a sync producer that waits for all in-sync replicas.
// timeout bounds each network call and the broker ack.
func NewKafkaProducer(brokers []string, timeout time.Duration) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to kafka: %w", err)
	}
	return producer, nil
}

// ProducerConfig is the sarama config used by NewKafkaProducer.
func ProducerConfig(timeout time.Duration) *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	if timeout > 0 {
		config.Net.DialTimeout = timeout
		config.Net.ReadTimeout = timeout
		config.Net.WriteTimeout = timeout
		config.Producer.Timeout = timeout
		config.Producer.Retry.Backoff = timeout / 10
	}
	return config
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string, loc *time.Location) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, location: loc}
}

func (n *KafkaNotifier) Send(ctx context.Context, p models.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := Render(p, n.location)
	if err != nil {
		return err
	}

	value, err := json.Marshal(Event{
		EventType: EventPaymentSubmitted,
		Data:      p,
		Summary:   msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(p.ID), 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish payment event: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
