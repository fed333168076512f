// Package eventbus is the in-memory publish/subscribe channel between the
// failover orchestrator and observers (the audit recorder). Events are
// fire-and-forget: publishing never blocks the request path, and a slow
// subscriber loses events rather than stalling a chat completion.
package eventbus

import "sync"

// Topic names.
const (
	// TopicProviderAttempt carries one ProviderAttempt per provider tried.
	TopicProviderAttempt = "assist.provider_attempt"
)

// Attempt outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeFailure       = "failure"
	OutcomeNotConfigured = "not_configured"
	OutcomeRejected      = "rejected" // provider succeeded but its result was unusable
)

// ProviderAttempt describes one provider invocation within a request.
type ProviderAttempt struct {
	UserID   string
	Endpoint string
	Provider string
	Outcome  string
	Detail   string // error text for failures; empty on success
}

// Event is a single published message.
type Event struct {
	Topic   string
	Payload ProviderAttempt
}

// Bus is a buffered in-memory event bus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
}

const subscriberBuffer = 100

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]chan Event)}
}

// Subscribe registers a subscriber for topic and returns its channel.
// The caller owns the consumption loop and must drain it.
func (b *Bus) Subscribe(topic string) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers attempt to every subscriber of topic. When a subscriber's
// buffer is full the event is dropped.
func (b *Bus) Publish(topic string, attempt ProviderAttempt) {
	evt := Event{Topic: topic, Payload: attempt}
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			// buffer full — drop
		}
	}
}
