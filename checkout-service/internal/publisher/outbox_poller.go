package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultTick  = time.Second
	DefaultBatch = 100
)

// Writer is the part of *kafka.Writer the poller needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
}

// OutboxPoller moves outbox events to Kafka. An event that fails to
// publish stays in the outbox and is retried on the next tick.
type OutboxPoller struct {
	tick   time.Duration
	batch  int
	outbox *Outbox
	writer Writer
	log    *slog.Logger
}

func NewOutboxPoller(outbox *Outbox, writer Writer, log *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		tick:   DefaultTick,
		batch:  DefaultBatch,
		outbox: outbox,
		writer: writer,
		log:    log,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Flush publishes whatever is pending right now. It is used on shutdown.
func (p *OutboxPoller) Flush(ctx context.Context) int {
	return p.processUnpublishedEvents(ctx)
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) int {
	published := 0
	for _, event := range p.outbox.Pending(p.batch) {
		if err := p.publishToKafka(ctx, event); err != nil {
			p.log.Error("failed to publish event", "event_id", event.ID, "event_type", event.EventType, "error", err)
			continue
		}

		if err := p.outbox.MarkPublished(event.ID); err != nil {
			p.log.Error("failed to mark event as published", "event_id", event.ID, "error", err)
			continue
		}
		published++
	}
	return published
}

func (p *OutboxPoller) publishToKafka(ctx context.Context, event *OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // booking reference for ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
		Time: event.CreatedAt,
	}
	return p.writer.WriteMessages(ctx, msg)
}
