package service

import (
	"context"
	"encoding/json"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// mailConsumerService delivers OTP emails off the request path: the auth
// service publishes to the mail topic, this worker performs the send.
type IMailConsumerService interface {
	Consume(ctx context.Context) error
}

type mailConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewMailConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IMailConsumerService {
	return &mailConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (cs *mailConsumerService) Consume(ctx context.Context) error {
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

func (cs *mailConsumerService) processMessage(msg *message.Message) {
	var payload dto.SendOTPMailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("MailConsumer", "Failed to unmarshal mail message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.emailService.SendOTP(payload.Email, payload.OTP); err != nil {
		cs.logger.Error("MailConsumer", "Failed to send OTP mail", map[string]interface{}{
			"error": err.Error(),
			"email": payload.Email,
		})
	}

	msg.Ack()
}
