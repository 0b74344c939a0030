// Package events notifies downstream consumers about recorded activities.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

const ActivityCreatedType = "activity.created"

// ActivityCreated is published once an activity is persisted.
type ActivityCreated struct {
	ActivityID  string    `json:"activity_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type Publisher interface {
	PublishActivityCreated(ctx context.Context, ev ActivityCreated) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishActivityCreated(context.Context, ActivityCreated) error { return nil }

func (NopPublisher) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// PublishActivityCreated keys messages by user id so one user's events stay ordered.
func (p *KafkaPublisher) PublishActivityCreated(ctx context.Context, ev ActivityCreated) error {
	payload, err := sonic.Marshal(ev)
	if err != nil {
		return errors.New("encoding activity event error: " + err.Error())
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ActivityCreatedType)},
		},
	})
	if err != nil {
		return errors.New("writing activity event error: " + err.Error())
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
