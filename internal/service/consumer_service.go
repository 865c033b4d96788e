package service

import (
	"context"
	"encoding/json"
	"fmt"

	"finance-manager-be/internal/pkg/logger"
	"finance-manager-be/internal/pkg/mailer"
	"finance-manager-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns subscription lifecycle events into email
// notifications. It is the only subscriber on the topic.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
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
		logger:       log,
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

func (cs *consumerService) processMessage(msg *message.Message) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite redelivery.
		msg.Ack()
		return
	}

	if err := cs.dispatch(&env); err != nil {
		cs.logger.Error("CONSUMER", "Failed to handle event", map[string]interface{}{
			"type":  env.Type,
			"error": err.Error(),
		})
		// Notifications are best-effort; no retry.
	}
	msg.Ack()
}

func (cs *consumerService) dispatch(env *events.Envelope) error {
	email, _ := env.Data["email"].(string)
	if email == "" && env.Type != events.TypeConfigChanged {
		return fmt.Errorf("event %s carries no email", env.Type)
	}

	switch env.Type {
	case events.TypeTrialStarted:
		days := 0
		if v, ok := env.Data["trial_days"].(float64); ok {
			days = int(v)
		}
		return cs.emailService.SendTrialStarted(email, days)

	case events.TypeSubscriptionActivated:
		planName, _ := env.Data["plan_name"].(string)
		return cs.emailService.SendSubscriptionActivated(email, planName)

	case events.TypeSubscriptionCancelled:
		accessUntil, _ := env.Data["access_until"].(string)
		return cs.emailService.SendSubscriptionCancelled(email, accessUntil)

	case events.TypePaymentFailed:
		reason, _ := env.Data["reason"].(string)
		return cs.emailService.SendPaymentFailed(email, reason)

	case events.TypeConfigChanged:
		// Audit trail lives in storage; just log.
		cs.logger.Info("CONSUMER", "Configuration changed", map[string]interface{}{
			"key":        env.Data["key"],
			"updated_by": env.Data["updated_by"],
		})
		return nil
	}

	cs.logger.Debug("CONSUMER", "Ignoring unknown event type", map[string]interface{}{
		"type": env.Type,
	})
	return nil
}
