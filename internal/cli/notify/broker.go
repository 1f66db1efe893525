package notify

import "sync"

// Broker is a Notifier that fans notifications out to subscribers.
//
// Delivery never blocks the publisher: a subscriber whose buffer is full
// misses the notification.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Notification
	nextID int
	buffer int
	closed bool
}

// NewBroker creates a broker whose subscriber channels hold buffer items.
func NewBroker(buffer int) *Broker {
	if buffer < 1 {
		buffer = 1
	}
	return &Broker{
		subs:   make(map[int]chan Notification),
		buffer: buffer,
	}
}

// Subscribe returns a receive channel and a cancel function.
// The channel is closed by cancel or by Close.
func (b *Broker) Subscribe() (<-chan Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Notification, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Notify publishes n to all current subscribers.
func (b *Broker) Notify(n Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Close closes all subscriber channels. Later Notify calls are no-ops.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
