package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_ExpiraAposTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return now }

	c.Set("dashboard:kpis", 42, 30*time.Second)
	v, ok := c.Get("dashboard:kpis")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(30 * time.Second)
	_, ok = c.Get("dashboard:kpis")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestTTLCache_TTLZeroNaoArmazena(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_Delete(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", time.Minute)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}
