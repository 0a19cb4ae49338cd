package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"change-detector/core/dataset"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Snapshots holds the two loaded datasets of a pipeline.
type Snapshots struct {
	// Export is the snapshot produced by the ETL workspace.
	Export *dataset.Table

	// Database is the snapshot read from the system-of-record.
	Database *dataset.Table

	// Loaded is the timestamp when the snapshots were read.
	Loaded time.Time

	// TTL is the time-to-live for these snapshots.
	TTL time.Duration
}

// IsExpired returns true if the snapshots have expired based on their TTL.
func (s *Snapshots) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Loaded) > s.TTL
}

// LoadSnapshots loads the export and database snapshots concurrently.
// This function does NOT store the result; use Cache.GetOrLoad for that.
func LoadSnapshots(ctx context.Context, spec *Spec) (*Snapshots, error) {
	if spec.Source == nil {
		return nil, fmt.Errorf("spec %s has no snapshot source", spec.Adapter.Name())
	}

	var export, database *dataset.Table
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		export, err = spec.Source.LoadExport(gctx)
		if err != nil {
			return fmt.Errorf("failed to load %s export: %w", spec.Adapter.Name(), err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		database, err = spec.Source.LoadDatabase(gctx)
		if err != nil {
			return fmt.Errorf("failed to load %s database snapshot: %w", spec.Adapter.Name(), err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshots{
		Export:   export,
		Database: database,
		Loaded:   time.Now(),
		TTL:      spec.CacheTTL,
	}, nil
}

// Cache holds loaded snapshots keyed by spec cache key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Snapshots
	sf      singleflight.Group
}

// NewCache creates an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Snapshots)}
}

// GetOrLoad retrieves the snapshots for the given spec from the cache,
// or loads them if they don't exist or have expired.
// Uses singleflight to prevent concurrent reloads of the same spec.
func (c *Cache) GetOrLoad(ctx context.Context, spec *Spec) (*Snapshots, error) {
	key := spec.CacheKey()

	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	snaps, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !snaps.IsExpired() {
		return snaps, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		snaps, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !snaps.IsExpired() {
			return snaps, nil
		}

		loaded, err := LoadSnapshots(ctx, spec)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = loaded
		c.mu.Unlock()

		return loaded, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Snapshots), nil
}

// Invalidate removes the snapshots for the given spec from the cache.
func (c *Cache) Invalidate(spec *Spec) {
	c.mu.Lock()
	delete(c.entries, spec.CacheKey())
	c.mu.Unlock()
}
