package publisher

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"
)

// MockWriter records written messages and fails while Err is set.
type MockWriter struct {
	mu       sync.Mutex
	Err      error
	Messages []kafka.Message
	Calls    int
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) written() []kafka.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kafka.Message(nil), m.Messages...)
}
