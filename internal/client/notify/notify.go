package notify

import (
	"sync"
	"time"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

type Message struct {
	Text     string
	Severity Severity
	posted   time.Time
}

// Bus carries user-facing notifications from producers to a single
// subscriber registered at startup. Messages also accumulate in a
// queue whose entries expire after a fixed duration, so the queue is
// bounded in lifetime rather than growing forever.
type Bus struct {
	mu         sync.Mutex
	ttl        time.Duration
	queue      []Message
	subscriber func(Message)
	now        func() time.Time
}

func NewBus(ttl time.Duration) *Bus {
	return &Bus{ttl: ttl, now: time.Now}
}

// Subscribe registers the single consumer. A later call replaces an
// earlier one.
func (b *Bus) Subscribe(fn func(Message)) {
	b.mu.Lock()
	b.subscriber = fn
	b.mu.Unlock()
}

func (b *Bus) Publish(severity Severity, text string) {
	b.mu.Lock()
	msg := Message{Text: text, Severity: severity, posted: b.now()}
	b.pruneLocked()
	b.queue = append(b.queue, msg)
	subscriber := b.subscriber
	b.mu.Unlock()

	if subscriber != nil {
		subscriber(msg)
	}
}

// Active returns the not-yet-expired messages, oldest first.
func (b *Bus) Active() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	out := make([]Message, len(b.queue))
	copy(out, b.queue)
	return out
}

func (b *Bus) pruneLocked() {
	cutoff := b.now().Add(-b.ttl)
	i := 0
	for ; i < len(b.queue); i++ {
		if b.queue[i].posted.After(cutoff) {
			break
		}
	}
	b.queue = b.queue[i:]
}
