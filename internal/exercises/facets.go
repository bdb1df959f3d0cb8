package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	FacetMuscles    = "muscles"
	FacetCategories = "categories"
	FacetEquipment  = "equipment"

	minFacetCacheSize = 512 * 1024
)

// DistinctMuscles returns the sorted union of primary and secondary muscles.
func DistinctMuscles(all []Exercise) []string {
	return distinct(all, func(e Exercise) []string {
		muscles := make([]string, 0, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
		muscles = append(muscles, e.PrimaryMuscles...)
		return append(muscles, e.SecondaryMuscles...)
	})
}

func DistinctCategories(all []Exercise) []string {
	return distinct(all, func(e Exercise) []string { return []string{e.Category} })
}

func DistinctEquipment(all []Exercise) []string {
	return distinct(all, func(e Exercise) []string { return []string{e.Equipment} })
}

// distinct de-duplicates values as stored (case-sensitive) and skips blank ones.
func distinct(all []Exercise, values func(Exercise) []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range all {
		for _, v := range values(e) {
			if strings.TrimSpace(v) == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// FacetCache memoizes facet enumerations for a fixed TTL.
type FacetCache struct {
	cache          *freecache.Cache
	ttl            time.Duration
	metricsManager *metrics.Manager
}

func NewFacetCache(sizeBytes int, ttl time.Duration, metricsManager *metrics.Manager) *FacetCache {
	if sizeBytes < minFacetCacheSize {
		sizeBytes = minFacetCacheSize
	}
	return &FacetCache{
		cache:          freecache.NewCache(sizeBytes),
		ttl:            ttl,
		metricsManager: metricsManager,
	}
}

func newFacetCacheWithTimer(ttl time.Duration, timer freecache.Timer) *FacetCache {
	return &FacetCache{
		cache: freecache.NewCacheCustomTimer(minFacetCacheSize, timer),
		ttl:   ttl,
	}
}

// GetOrLoad returns the cached values of the facet, or calls load and caches its
// result when there is no live entry. Load errors are not cached.
func (c *FacetCache) GetOrLoad(
	ctx context.Context,
	facet string,
	load func(ctx context.Context) ([]string, error),
) ([]string, error) {
	key := []byte(facet)
	if cached, err := c.cache.Get(key); err == nil {
		var values []string
		if err := json.Unmarshal(cached, &values); err == nil {
			c.observe(facet, "hit")
			return values, nil
		}
		log.Warnf("facet cache: corrupted entry for [%s], reloading", facet)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("facet cache get [%s]: %s", facet, err)
	}
	c.observe(facet, "miss")

	values, err := load(ctx)
	if err != nil {
		return nil, err
	}

	valuesJson, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal facet values: %w", err)
	}
	if err := c.cache.Set(key, valuesJson, c.ttlSeconds()); err != nil {
		log.Errorf("facet cache set [%s]: %s", facet, err)
	}

	return values, nil
}

// Invalidate drops all cached facets.
func (c *FacetCache) Invalidate() {
	c.cache.Clear()
}

func (c *FacetCache) ttlSeconds() int {
	secs := int(c.ttl / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func (c *FacetCache) observe(facet, result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterFacetCache.WithLabelValues(facet, result).Inc()
	}
}
