package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []dto.PublishWelcomeEmailMessage
}

func (m *fakeMailer) SendWelcome(toEmail, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, dto.PublishWelcomeEmailMessage{Email: toEmail, Name: name})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestConsumerService_SendsWelcomeEmail(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mail := &fakeMailer{}
	consumer := NewConsumerService(pubSub, "welcome", mail, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("welcome", pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	payload, err := json.Marshal(dto.PublishWelcomeEmailMessage{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool { return mail.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "ada@example.com", mail.sent[0].Email)
}
