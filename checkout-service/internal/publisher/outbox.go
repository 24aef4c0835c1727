package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrEventNotFound = errors.New("outbox event not found")

// OutboxEvent is a pending message. AggregateID becomes the Kafka key so
// events of one booking stay ordered.
type OutboxEvent struct {
	ID          string
	AggregateID string
	EventType   string
	Payload     json.RawMessage
	CreatedAt   time.Time
}

// Outbox is an in-memory FIFO of events waiting to be published. Events
// leave it only through MarkPublished.
type Outbox struct {
	mu     sync.Mutex
	events []*OutboxEvent
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

// Add marshals payload and appends it as a new event.
func (o *Outbox) Add(eventType, aggregateID string, payload any) (*OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload failed: %w", eventType, err)
	}
	ev := &OutboxEvent{
		ID:          uuid.NewString(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     body,
		CreatedAt:   time.Now().UTC(),
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
	return ev, nil
}

// Pending returns up to limit of the oldest unpublished events.
func (o *Outbox) Pending(limit int) []*OutboxEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if limit <= 0 || limit > len(o.events) {
		limit = len(o.events)
	}
	out := make([]*OutboxEvent, limit)
	copy(out, o.events[:limit])
	return out
}

func (o *Outbox) MarkPublished(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, ev := range o.events {
		if ev.ID == id {
			o.events = append(o.events[:i], o.events[i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}

func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}
