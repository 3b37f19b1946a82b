package cache

import (
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/ports"

	gocache "github.com/patrickmn/go-cache"
)

// StatusCache memoizes claim-status lookups for a short TTL. The command side
// invalidates entries on claim and reset, so staleness is bounded to reads
// that race an in-flight mutation.
type StatusCache struct {
	cache *gocache.Cache
}

func NewStatusCache(ttl time.Duration, cleanupInterval time.Duration) *StatusCache {
	return &StatusCache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (c *StatusCache) Get(account entities.Address) (bool, bool) {
	if value, found := c.cache.Get(account.String()); found {
		claimed, ok := value.(bool)
		return claimed, ok
	}
	return false, false
}

func (c *StatusCache) Set(account entities.Address, claimed bool) {
	c.cache.SetDefault(account.String(), claimed)
}

func (c *StatusCache) Invalidate(account entities.Address) {
	c.cache.Delete(account.String())
}

var _ ports.StatusCache = (*StatusCache)(nil)
