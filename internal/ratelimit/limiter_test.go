package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_Ceiling(t *testing.T) {
	t.Parallel()

	l := New(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4", "/api/products"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4", "/api/products"), "request over the ceiling should be rejected")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)
	defer l.Stop()

	assert.True(t, l.Allow("1.2.3.4", "/api/products"))
	assert.False(t, l.Allow("1.2.3.4", "/api/products"))

	// a different client and a different operation each get a fresh counter
	assert.True(t, l.Allow("5.6.7.8", "/api/products"))
	assert.True(t, l.Allow("1.2.3.4", "/api/orders"))
}

func TestAllow_WindowReset(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("1.2.3.4", "/api/products"))
	assert.False(t, l.Allow("1.2.3.4", "/api/products"))

	current = current.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("1.2.3.4", "/api/products"), "expired window should reset the counter")
	assert.False(t, l.Allow("1.2.3.4", "/api/products"))
}

func TestSweep_DropsExpiredEntries(t *testing.T) {
	t.Parallel()

	l := New(5, time.Minute)
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Allow("1.2.3.4", "/api/products")
	l.Allow("5.6.7.8", "/api/orders")

	current = current.Add(2 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}

func TestStop_Idempotent(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)
	l.Stop()
	l.Stop()
}
