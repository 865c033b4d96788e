package events

import (
	"context"
	"encoding/json"
	"time"

	"finance-manager-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher abstracts event publishing so services never depend on the
// broker directly. Publishing is best-effort: a nil publisher is a no-op.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Envelope is the wire form of an Event.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// WatermillPublisher publishes events on an in-process go-channel topic.
type WatermillPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.ILogger
}

func NewWatermillPublisher(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *WatermillPublisher {
	return &WatermillPublisher{
		pubSub: pubSub,
		topic:  topic,
		logger: log,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(Envelope{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
		return err
	}

	return nil
}
