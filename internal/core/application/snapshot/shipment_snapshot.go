// Package snapshot keeps a read-side cache of shipment aggregates so that
// staleness-tolerant readers do not hit the database on every request.
//
// Mutating handlers return the authoritative post-write aggregate; callers
// prime the snapshot with that return value, which keeps the cache and the
// write path consistent without any read-after-write polling. A scheduled
// job re-primes the active working set on an interval, and entries expire on
// their own if neither happens.
package snapshot

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// ShipmentSnapshot is an expiring LRU cache of shipment aggregates keyed by
// shipment identifier. Safe for concurrent use.
type ShipmentSnapshot struct {
	cache *expirable.LRU[string, *shipment.Shipment]
}

// NewShipmentSnapshot creates a snapshot holding at most size shipments,
// each expiring ttl after it was last primed.
func NewShipmentSnapshot(size int, ttl time.Duration) *ShipmentSnapshot {
	return &ShipmentSnapshot{
		cache: expirable.NewLRU[string, *shipment.Shipment](size, nil, ttl),
	}
}

// Get returns the cached shipment, if present and not expired.
func (s *ShipmentSnapshot) Get(shipmentID kernel.UUID) (*shipment.Shipment, bool) {
	return s.cache.Get(shipmentID.String())
}

// Prime stores a fresh aggregate, replacing any cached state for it.
func (s *ShipmentSnapshot) Prime(aggregate *shipment.Shipment) {
	if aggregate == nil {
		return
	}
	s.cache.Add(aggregate.ID().String(), aggregate)
}

// PrimeAll stores a batch of fresh aggregates, typically the active working
// set loaded by the refresh job.
func (s *ShipmentSnapshot) PrimeAll(aggregates []*shipment.Shipment) {
	for _, aggregate := range aggregates {
		s.Prime(aggregate)
	}
}

// Invalidate drops the cached state of one shipment, if any.
func (s *ShipmentSnapshot) Invalidate(shipmentID kernel.UUID) {
	s.cache.Remove(shipmentID.String())
}

// Len reports how many shipments are currently cached.
func (s *ShipmentSnapshot) Len() int {
	return s.cache.Len()
}
