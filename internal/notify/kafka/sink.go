package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Sink publishes notification events to a kafka topic.
type Sink struct {
	writer *kafka.Writer
	topic  string
}

func NewSink(brokers []string, topic string) *Sink {
	return &Sink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		topic: topic,
	}
}

type event struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

func (s *Sink) Notify(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(event{Title: title, Body: body, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: s.topic,
		Key:   []byte(title),
		Value: payload,
	})
}

func (s *Sink) Close() error { return s.writer.Close() }
