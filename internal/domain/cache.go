package domain

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/metrics"
)

// Static defaults.  Override via the config package if desired.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 1000
	EvictInterval = 5 * time.Minute
)

// ErrNoDomain is returned when no active domain row serves a host.
var ErrNoDomain = errors.New("no domain matches host")

// Cache lazily resolves host → domain, stores matches in a sync.Map, and
// evicts them on idle TTL or LRU pressure.
type Cache struct {
	db          *sqlx.DB
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

type entry struct {
	dom      *Record
	lastSeen int64 // UnixNano
}

// NewCache constructs a Cache and starts the background evictor.
func NewCache(db *sqlx.DB, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the matched domain for host, resolving it on demand.
func (c *Cache) Get(ctx context.Context, host string) (*Record, error) {
	if v, ok := c.m.Load(host); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.dom, nil
	}

	v, err, _ := c.sfg.Do(host, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(host); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.dom, nil
		}
		rows, err := CandidatesForHost(ctx, c.db, host)
		if err != nil {
			metrics.DomainMatchErrorsTotal.Inc()
			return nil, err
		}
		dom := Match(host, rows)
		if dom == nil {
			metrics.DomainMatchErrorsTotal.Inc()
			return nil, ErrNoDomain
		}
		ent := &entry{
			dom:      dom,
			lastSeen: time.Now().UnixNano(),
		}
		c.m.Store(host, ent)
		metrics.DomainMatchTotal.Inc()
		metrics.ActiveDomains.Inc()
		return dom, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}
