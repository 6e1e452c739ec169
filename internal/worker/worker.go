package worker

import (
	"sync"

	"wikiarea-backend/internal/domain"

	"github.com/rs/zerolog/log"
)

// AuditPool drains committed domain events to the structured audit log.
// Events have no other consumer: nothing subscribes to them, they exist for
// audit and tests. Logging happens off the request path so a slow sink
// never delays a response.
type AuditPool struct {
	queue chan domain.Event
	wg    sync.WaitGroup

	// mu serializes Publish against Shutdown so nothing can send on the
	// queue after it is closed.
	mu     sync.Mutex
	closed bool
}

func NewAuditPool(size int) *AuditPool {
	p := &AuditPool{
		queue: make(chan domain.Event, 1000), // Buffer for 1000 pending events
	}

	// Start the workers
	for i := 0; i < size; i++ {
		p.wg.Add(1) // add to WaitGroup
		go p.startWorker()
	}

	return p
}

func (p *AuditPool) startWorker() {
	defer p.wg.Done() // signal when worker finished
	for event := range p.queue {
		log.Info().
			Str("event", event.EventName()).
			Interface("payload", event).
			Msg("domain event")
	}
}

// Publish enqueues events recorded on an entity after a successful commit.
// Safe to call concurrently with Shutdown; late events are dropped.
func (p *AuditPool) Publish(events ...domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		log.Warn().Msg("event published during shutdown, dropping")
		return
	}
	for _, event := range events {
		select {
		case p.queue <- event:
		default:
			log.Warn().Str("event", event.EventName()).Msg("audit queue full, dropping event")
		}
	}
}

// Shutdown closes the queue and waits for workers to finish. Idempotent.
func (p *AuditPool) Shutdown() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue) // Stop accepting new events
	}
	p.mu.Unlock()

	p.wg.Wait() // Wait for all active workers to finish
}
