// Package events publishes order and washup activity for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	OrderCreated        Type = "order.created"
	OrderDeleted        Type = "order.deleted"
	MenuItemChanged     Type = "menu_item.changed"
	WashupStepCompleted Type = "washup.step_completed"
)

type Event struct {
	Type      Type      `json:"type"`
	Key       string    `json:"key"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(t Type, key string, payload any) Event {
	return Event{Type: t, Key: key, Payload: payload, Timestamp: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

type KafkaPublisher struct {
	Writer *kafka.Writer
}

// NewKafkaWriter builds an async writer; delivery failures are logged, never returned to callers
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("events: failed to deliver %d message(s): %v", len(messages), err)
			}
		},
	}
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Key),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}
