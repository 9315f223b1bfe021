package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"eventify/internal/logger"
	"eventify/internal/models"
)

// TopicBookingConfirmed carries booking confirmation triggers from the
// booking gateway to the notification consumer.
const TopicBookingConfirmed = "booking-confirmed"

type Producer struct {
	producer sarama.SyncProducer
	mockMode bool
	log      *logger.Logger
}

func NewProducer(brokers []string, mockMode bool, log *logger.Logger) (*Producer, error) {
	if mockMode {
		log.LogKafka("MOCK_MODE", "producer", "Running in mock mode - no actual Kafka connection")
		return &Producer{
			producer: nil,
			mockMode: true,
			log:      log,
		}, nil
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	log.LogKafka("CONNECTED", "producer", fmt.Sprintf("Connected to Kafka brokers: %v", brokers))
	return &Producer{
		producer: producer,
		mockMode: false,
		log:      log,
	}, nil
}

// PublishBookingConfirmed is fire-and-forget from the gateway's perspective:
// the caller logs a returned error but never fails the booking on it.
func (p *Producer) PublishBookingConfirmed(event *models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.mockMode {
		p.log.LogKafka("MOCK_PUBLISH", TopicBookingConfirmed, fmt.Sprintf("Mock publishing confirmation for booking %d", event.BookingID))
		p.log.LogKafka("MOCK_DATA", TopicBookingConfirmed, string(data))
		return nil
	}

	msg := &sarama.ProducerMessage{
		Topic: TopicBookingConfirmed,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.BookingID, 10)),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error("KAFKA", fmt.Sprintf("Failed to send message to topic %s: %v", TopicBookingConfirmed, err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.log.LogKafka("PUBLISHED", TopicBookingConfirmed, fmt.Sprintf("Message sent to partition %d at offset %d for booking %d", partition, offset, event.BookingID))
	return nil
}

func (p *Producer) Close() error {
	if p.mockMode {
		p.log.LogKafka("MOCK_CLOSE", "producer", "Mock producer closed")
		return nil
	}

	if p.producer != nil {
		p.log.LogKafka("CLOSING", "producer", "Closing Kafka producer connection")
		return p.producer.Close()
	}
	return nil
}
