// Package cache guarda em memória as respostas do painel por um TTL curto.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache cache chave/valor com expiração por item. Seguro para uso concorrente.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewTTLCache cria um cache vazio.
func NewTTLCache() *TTLCache {
	return &TTLCache{items: make(map[string]entry), now: time.Now}
}

// Get devolve o valor se existir e não estiver expirado.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.items[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set grava o valor; ttl <= 0 não armazena nada.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete remove a chave.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len quantidade de itens guardados (inclui expirados ainda não removidos).
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
