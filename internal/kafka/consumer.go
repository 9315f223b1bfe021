package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"eventify/internal/logger"
	"eventify/internal/models"
)

type Consumer struct {
	consumer sarama.ConsumerGroup
	topics   []string
	log      *logger.Logger
}

func NewBookingConsumer(brokers []string, groupID string, log *logger.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumer: consumer,
		topics:   []string{TopicBookingConfirmed},
		log:      log,
	}, nil
}

// ConsumeBookings blocks and feeds booking confirmations to handler until the
// context is cancelled. Handler failures never stop consumption.
func (c *Consumer) ConsumeBookings(ctx context.Context, handler func(*models.BookingEvent) error) error {
	consumerHandler := &BookingConsumerHandler{Handler: handler, Log: c.log}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := c.consumer.Consume(ctx, c.topics, consumerHandler); err != nil {
				c.log.Error("KAFKA", fmt.Sprintf("Error consuming messages: %v", err))
				return err
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}

// BookingConsumerHandler is exported for testing purposes.
type BookingConsumerHandler struct {
	Handler func(*models.BookingEvent) error
	Log     *logger.Logger
}

func (h *BookingConsumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *BookingConsumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks every message consumed as soon as it is received and
// only then hands it to the handler. A crash mid-send is therefore not
// redelivered: at-most-once, with the outcome recorded in the audit log
// rather than enforced by the broker.
func (h *BookingConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		session.MarkMessage(message, "")

		var event models.BookingEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			h.Log.Error("KAFKA", fmt.Sprintf("Failed to unmarshal message: %v", err))
			continue
		}

		if err := h.Handler(&event); err != nil {
			h.Log.Error("KAFKA", fmt.Sprintf("Failed to handle booking confirmation %d: %v", event.BookingID, err))
			continue
		}
	}

	return nil
}
