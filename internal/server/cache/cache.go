// Package cache keeps rendered payloads (mini-chart SVG, month lists, heat
// GeoJSON) so repeated requests for the same month skip re-rendering.
// Timeline data never changes after load, so entries only expire by TTL.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with byte payload helpers.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache. cleanupInterval is how often expired items are
// removed from memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Payload is a rendered response body with its content type.
type Payload struct {
	ContentType string
	Body        []byte
}

// Get returns a cached payload.
func (c *Cache) Get(key string) (Payload, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return Payload{}, false
	}
	p, ok := v.(Payload)
	return p, ok
}

// Set stores a payload with the default TTL.
func (c *Cache) Set(key string, p Payload) {
	c.store.Set(key, p, gocache.DefaultExpiration)
}

// GetOrRender returns the cached payload for key or renders and stores it.
// Render errors are returned and nothing is cached.
func (c *Cache) GetOrRender(key string, render func() (Payload, error)) (Payload, error) {
	if p, ok := c.Get(key); ok {
		return p, nil
	}
	p, err := render()
	if err != nil {
		return Payload{}, err
	}
	c.Set(key, p)
	return p, nil
}

// Clear removes all items.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items, including expired ones not yet
// cleaned up.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// ChartKey is the key of the mini-chart SVG with bar active highlighted.
func ChartKey(active int) string {
	return fmt.Sprintf("chart:%d", active)
}

// ListKey is the key of the HTML event list for month i.
func ListKey(i int) string {
	return fmt.Sprintf("list:%d", i)
}

// HeatKey is the key of the heat GeoJSON for month i.
func HeatKey(i int) string {
	return fmt.Sprintf("heat:%d", i)
}

// MonthKey is the key of the JSON month payload for month i.
func MonthKey(i int) string {
	return fmt.Sprintf("month:%d", i)
}
