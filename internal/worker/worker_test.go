package worker

import (
	"fmt"
	"sync"
	"testing"

	"wikiarea-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAuditPool_PublishAndShutdown(t *testing.T) {
	pool := NewAuditPool(2)

	pool.Publish(domain.PageCreated{PageID: "p1", Title: "T", Slug: "t"})
	pool.Shutdown()

	// A publish after shutdown is dropped instead of panicking.
	assert.NotPanics(t, func() {
		pool.Publish(domain.PagePublished{PageID: "p1"})
	})
}

func TestAuditPool_ShutdownIsIdempotent(t *testing.T) {
	pool := NewAuditPool(1)

	assert.NotPanics(t, func() {
		pool.Shutdown()
		pool.Shutdown()
	})
}

func TestAuditPool_ConcurrentPublishDuringShutdown(t *testing.T) {
	pool := NewAuditPool(2)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pool.Publish(domain.PageCreated{PageID: fmt.Sprintf("p%d", n)})
		}(i)
	}
	pool.Shutdown()
	wg.Wait()
}
