// evictor.go houses the eviction loop for Cache.  Every EvictInterval it
// scans the map and removes:
//
//   - matches idle longer than idleTTL
//   - least-recently-used matches when map size exceeds maxEntries
//
// Each eviction event is logged and updates Prometheus counters.
package domain

import (
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/metrics"
)

func (c *Cache) evictLoop() {
	for range c.evictTicker.C {
		now := time.Now().UnixNano()
		var count int

		// ----------------------------------------------------------------
		// Idle eviction pass
		// ----------------------------------------------------------------
		c.m.Range(func(key, value any) bool {
			count++
			ent := value.(*entry)
			idle := time.Duration(now-atomic.LoadInt64(&ent.lastSeen)) * time.Nanosecond
			if idle > c.idleTTL {
				c.m.Delete(key)
				zap.S().Infow("domain match evicted",
					"host", key, "idle", idle.Truncate(time.Second))
				metrics.DomainEvictTotal.Inc()
				metrics.ActiveDomains.Dec()
			}
			return true
		})

		// ----------------------------------------------------------------
		// LRU eviction pass
		// ----------------------------------------------------------------
		if c.maxEntries > 0 && count > c.maxEntries {
			type kv struct {
				key string
				at  int64
			}
			var all []kv
			c.m.Range(func(key, value any) bool {
				ent := value.(*entry)
				all = append(all, kv{key: key.(string), at: ent.lastSeen})
				return true
			})
			sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
			for i := 0; i < count-c.maxEntries; i++ {
				if _, ok := c.m.Load(all[i].key); ok {
					c.m.Delete(all[i].key)
					zap.S().Infow("domain match evicted (LRU pressure)",
						"host", all[i].key)
					metrics.DomainEvictTotal.Inc()
					metrics.ActiveDomains.Dec()
				}
			}
		}
	}
}
