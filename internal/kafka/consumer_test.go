package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventify/internal/kafka"
	"eventify/internal/logger"
	"eventify/internal/models"
)

func newTestMessage(t *testing.T, event *models.BookingEvent) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic:     kafka.TopicBookingConfirmed,
		Partition: 0,
		Offset:    0,
		Value:     payload,
	}
}

func TestConsumeClaimMarksBeforeHandling(t *testing.T) {
	event := &models.BookingEvent{
		BookingID: 42,
		UserEmail: "alice@example.com",
		Status:    "CONFIRMED",
		Timestamp: time.Now(),
	}
	msg := newTestMessage(t, event)

	// Record the order in which the session mark and the handler fire. The
	// offset must be committed first, so a crash inside the handler never
	// causes a redelivery.
	var calls []string

	mockSession := &MockConsumerGroupSession{}
	mockSession.On("MarkMessage", msg, "").Run(func(args mock.Arguments) {
		calls = append(calls, "mark")
	}).Return()

	msgChan := make(chan *sarama.ConsumerMessage, 1)
	msgChan <- msg
	close(msgChan)

	mockClaim := &MockConsumerGroupClaim{}
	mockClaim.On("Messages").Return(msgChan)

	var received *models.BookingEvent
	handler := &kafka.BookingConsumerHandler{
		Handler: func(e *models.BookingEvent) error {
			calls = append(calls, "handle")
			received = e
			return nil
		},
		Log: logger.NewLogger(),
	}

	err := handler.ConsumeClaim(mockSession, mockClaim)
	require.NoError(t, err)

	require.NotNil(t, received)
	assert.Equal(t, int64(42), received.BookingID)
	assert.Equal(t, "alice@example.com", received.UserEmail)
	assert.Equal(t, []string{"mark", "handle"}, calls)
	mockSession.AssertExpectations(t)
	mockClaim.AssertExpectations(t)
}

func TestConsumeClaimHandlerErrorDoesNotStopConsumption(t *testing.T) {
	first := newTestMessage(t, &models.BookingEvent{BookingID: 1, UserEmail: "a@example.com", Status: "CONFIRMED"})
	second := newTestMessage(t, &models.BookingEvent{BookingID: 2, UserEmail: "b@example.com", Status: "CONFIRMED"})

	mockSession := &MockConsumerGroupSession{}
	mockSession.On("MarkMessage", mock.Anything, "").Return()

	msgChan := make(chan *sarama.ConsumerMessage, 2)
	msgChan <- first
	msgChan <- second
	close(msgChan)

	mockClaim := &MockConsumerGroupClaim{}
	mockClaim.On("Messages").Return(msgChan)

	var handled []int64
	handler := &kafka.BookingConsumerHandler{
		Handler: func(e *models.BookingEvent) error {
			handled = append(handled, e.BookingID)
			if e.BookingID == 1 {
				return errors.New("smtp is down")
			}
			return nil
		},
		Log: logger.NewLogger(),
	}

	err := handler.ConsumeClaim(mockSession, mockClaim)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, handled, "a failing handler must not stop the claim loop")
	mockSession.AssertNumberOfCalls(t, "MarkMessage", 2)
}

func TestConsumeClaimSkipsMalformedMessages(t *testing.T) {
	garbage := &sarama.ConsumerMessage{
		Topic: kafka.TopicBookingConfirmed,
		Value: []byte("not json"),
	}
	valid := newTestMessage(t, &models.BookingEvent{BookingID: 7, UserEmail: "c@example.com", Status: "CONFIRMED"})

	mockSession := &MockConsumerGroupSession{}
	mockSession.On("MarkMessage", mock.Anything, "").Return()

	msgChan := make(chan *sarama.ConsumerMessage, 2)
	msgChan <- garbage
	msgChan <- valid
	close(msgChan)

	mockClaim := &MockConsumerGroupClaim{}
	mockClaim.On("Messages").Return(msgChan)

	var handled []int64
	handler := &kafka.BookingConsumerHandler{
		Handler: func(e *models.BookingEvent) error {
			handled = append(handled, e.BookingID)
			return nil
		},
		Log: logger.NewLogger(),
	}

	err := handler.ConsumeClaim(mockSession, mockClaim)
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, handled)
	// The garbage message is still acknowledged; there is no retry path.
	mockSession.AssertNumberOfCalls(t, "MarkMessage", 2)
}

// Mock implementations for Sarama interfaces
type MockConsumerGroupSession struct {
	mock.Mock
}

func (m *MockConsumerGroupSession) Claims() map[string][]int32 {
	args := m.Called()
	return args.Get(0).(map[string][]int32)
}

func (m *MockConsumerGroupSession) MemberID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConsumerGroupSession) GenerationID() int32 {
	args := m.Called()
	return int32(args.Int(0))
}

func (m *MockConsumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
	m.Called(topic, partition, offset, metadata)
}

func (m *MockConsumerGroupSession) Commit() {
	m.Called()
}

func (m *MockConsumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
	m.Called(topic, partition, offset, metadata)
}

func (m *MockConsumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	m.Called(msg, metadata)
}

func (m *MockConsumerGroupSession) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

type MockConsumerGroupClaim struct {
	mock.Mock
}

func (m *MockConsumerGroupClaim) Topic() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConsumerGroupClaim) Partition() int32 {
	args := m.Called()
	return int32(args.Int(0))
}

func (m *MockConsumerGroupClaim) InitialOffset() int64 {
	args := m.Called()
	return int64(args.Int(0))
}

func (m *MockConsumerGroupClaim) HighWaterMarkOffset() int64 {
	args := m.Called()
	return int64(args.Int(0))
}

func (m *MockConsumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	args := m.Called()
	return args.Get(0).(chan *sarama.ConsumerMessage)
}
