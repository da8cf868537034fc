// Package catalog holds the purchasable plan set behind a time-bounded
// cache. The plan definitions are a static mirror of the on-chain program's,
// so a refresh repopulates from the authoritative in-code definition and a
// read can never fail.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/model"
)

// DefaultTTL is the plan cache lifetime. The plan set is fixed, so the TTL
// is long.
const DefaultTTL = time.Hour

// Catalog caches the plan set with a TTL. Reads within the TTL return the
// cached entries unchanged; a read past expiry refreshes first. The entry
// slice is replaced atomically on refresh, never mutated in place, so
// concurrent readers holding the previous slice stay consistent.
type Catalog struct {
	mu        sync.RWMutex
	plans     []model.Plan
	fetchedAt time.Time

	ttl time.Duration
	now func() time.Time
}

// New creates a catalog with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Catalog{
		ttl: ttl,
		now: time.Now,
	}
}

// Plans returns the current plan set. It never fails: on expiry or first use
// the cache is repopulated from the static authoritative definition. The
// returned slice is shared and must be treated as read-only.
func (c *Catalog) Plans() []model.Plan {
	c.mu.RLock()
	if c.fresh() {
		plans := c.plans
		c.mu.RUnlock()
		return plans
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have refreshed while we waited for the write lock.
	if !c.fresh() {
		c.plans = model.AvailablePlans()
		c.fetchedAt = c.now()
		zap.L().Debug("Plan catalog refreshed", zap.Int("plans", len(c.plans)))
	}
	return c.plans
}

// Validate looks up a plan by id in the current catalog. It returns
// model.ErrPlanNotFound when the id is absent.
func (c *Catalog) Validate(planID uint64) (model.Plan, error) {
	for _, plan := range c.Plans() {
		if plan.ID == planID {
			return plan, nil
		}
	}
	return model.Plan{}, fmt.Errorf("%w: plan %d", model.ErrPlanNotFound, planID)
}

// FetchedAt returns the timestamp of the last refresh, for observability.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// fresh reports whether the cached entries are still within their TTL.
// Callers must hold at least the read lock.
func (c *Catalog) fresh() bool {
	return c.plans != nil && c.now().Sub(c.fetchedAt) < c.ttl
}
