package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressProgress(ctx))
	assert.False(t, shouldRefresh(ctx))
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := WithRefresh(WithSuppressProgress(context.Background()), true)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.True(t, shouldSuppressProgress(ctx), "Goroutine %d: progress should be suppressed", id)
			assert.True(t, shouldRefresh(ctx), "Goroutine %d: refresh should be set", id)
		}(i)
	}
	wg.Wait()
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	base := context.Background()
	quiet := WithSuppressProgress(base)
	noRefresh := WithRefresh(base, false)

	assert.True(t, shouldSuppressProgress(quiet))
	assert.False(t, shouldRefresh(quiet))
	assert.False(t, shouldSuppressProgress(noRefresh))
	assert.False(t, shouldRefresh(noRefresh))
	assert.False(t, shouldSuppressProgress(base))
}
