// ABOUTME: Read-through lookup cache in front of an assessment store
// ABOUTME: Coalesces concurrent lookups for the same server with singleflight

package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/migration-assessor/cache"
	"github.com/markalston/migration-assessor/models"
)

// CachingStore wraps a Store with a TTL cache for found items. Misses are
// not cached so a record written elsewhere is visible on the next lookup.
type CachingStore struct {
	next    Store
	cache   *cache.Cache[models.MigrationAssessment]
	sfGroup singleflight.Group
}

// NewCachingStore wraps next. A ttl <= 0 disables caching but keeps
// lookup coalescing.
func NewCachingStore(next Store, ttl time.Duration) *CachingStore {
	return &CachingStore{
		next:  next,
		cache: cache.New[models.MigrationAssessment](ttl),
	}
}

// Close stops the cache sweeper
func (c *CachingStore) Close() {
	c.cache.Close()
}

func (c *CachingStore) PutItem(ctx context.Context, item models.MigrationAssessment) error {
	if err := c.next.PutItem(ctx, item); err != nil {
		c.cache.Clear(item.ServerName)
		return err
	}
	c.cache.Set(item.ServerName, item)
	return nil
}

type lookupResult struct {
	item  *models.MigrationAssessment
	found bool
}

func (c *CachingStore) GetItem(ctx context.Context, serverName string) (*models.MigrationAssessment, bool, error) {
	if item, ok := c.cache.Get(serverName); ok {
		return &item, true, nil
	}

	v, err, shared := c.sfGroup.Do(serverName, func() (interface{}, error) {
		item, found, err := c.next.GetItem(ctx, serverName)
		if err != nil {
			return nil, err
		}
		if found {
			c.cache.Set(serverName, *item)
		}
		return lookupResult{item: item, found: found}, nil
	})
	if err != nil {
		return nil, false, err
	}
	if shared {
		slog.Debug("Lookup coalesced", "server_name", serverName)
	}

	res := v.(lookupResult)
	if !res.found {
		return nil, false, nil
	}
	item := *res.item
	return &item, true, nil
}
