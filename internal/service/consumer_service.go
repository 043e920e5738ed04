package service

import (
	"context"
	"encoding/json"

	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	// Consume subscribes and returns; messages are handled in the background
	// until ctx is cancelled.
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		log:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks. Mail is best effort and a failed send is
// only logged.
func (cs *consumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishWelcomeEmailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	if err := cs.emailService.SendWelcome(payload.Email, payload.Name); err != nil {
		cs.log.Warn("CONSUMER", "Welcome email not delivered", map[string]interface{}{
			"email": payload.Email,
			"error": err.Error(),
		})
	}
}
