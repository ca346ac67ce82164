// Package eventsink forwards stored security events to downstream consumers.
package eventsink

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Publisher delivers one event downstream.
type Publisher interface {
	Publish(ctx context.Context, e secevents.Event) error
	Close() error
}

// Writer is the subset of kafka.Writer used by KafkaPublisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by event type.
type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	})
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e secevents.Event) error {
	value, err := Encode(e)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(e.Type),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Encode renders e as protojson of a google.protobuf.Struct.
func Encode(e secevents.Event) ([]byte, error) {
	fields := map[string]any{
		"id":         e.ID,
		"event_type": string(e.Type),
		"timestamp":  e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if e.ActorID != nil {
		fields["user_id"] = *e.ActorID
	}
	if len(e.Metadata) > 0 {
		fields["metadata"] = e.Metadata
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	return protojson.Marshal(s)
}

// NopPublisher discards events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, secevents.Event) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
