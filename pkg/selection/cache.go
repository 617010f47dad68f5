package selection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
)

// DefaultTTL is how long a selection is remembered when no TTL is configured.
const DefaultTTL = 30 * time.Minute

// Cache remembers the category each user last picked in a panel dropdown until they press the create button.
//
// Entries are not durable: a restart, or the TTL passing, means the user gets the default category.
type Cache struct {
	// mut makes take a single read-and-clear step per user.
	mut sync.Mutex

	// store holds the selections keyed by user ID.
	store *bigcache.BigCache
}

// NewCache creates a selection cache whose entries expire after ttl.
func NewCache(ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = time.Minute
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 10 * 60 * 64
	cfg.Verbose = false

	store, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating selection store: %w", err)
	}

	return &Cache{
		store: store,
	}, nil
}

// Set records the user's selection, replacing any previous one.
func (c *Cache) Set(userID, category string) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.store.Set(userID, []byte(category)); err != nil {
		return fmt.Errorf("error saving selection: %w", err)
	}
	return nil
}

// TakeOrDefault returns the user's selection and forgets it. If there is no selection, def is returned.
func (c *Cache) TakeOrDefault(userID, def string) string {
	c.mut.Lock()
	defer c.mut.Unlock()

	b, err := c.store.Get(userID)
	if err != nil {
		// A miss and a store failure both mean the user gets the default.
		return def
	}

	if err := c.store.Delete(userID); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return def
	}

	if len(b) == 0 {
		return def
	}
	return string(b)
}

// Len returns the number of selections held.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Close stops the cache's background cleanup.
func (c *Cache) Close() error {
	return c.store.Close()
}
