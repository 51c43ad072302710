package market

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// ErrInvalidSample is returned by Upsert when a sample fails validation.
// The store is left unchanged in that case.
var ErrInvalidSample = errors.New("invalid price sample")

// PriceSample is one region's market observation for one item.
type PriceSample struct {
	ItemName   string    `json:"item_name"`
	Region     string    `json:"region"`
	Price      float64   `json:"price"`
	Volume     int64     `json:"volume"`
	ObservedAt time.Time `json:"observed_at"`
}

// Validate checks a sample for the invariants the store enforces on ingest.
func (s PriceSample) Validate() error {
	if s.ItemName == "" {
		return fmt.Errorf("%w: empty item name", ErrInvalidSample)
	}
	if s.Region == "" {
		return fmt.Errorf("%w: empty region", ErrInvalidSample)
	}
	if s.Price < 0 || math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		return fmt.Errorf("%w: price %v for %s in %s", ErrInvalidSample, s.Price, s.ItemName, s.Region)
	}
	if s.Volume < 0 {
		return fmt.Errorf("%w: volume %d for %s in %s", ErrInvalidSample, s.Volume, s.ItemName, s.Region)
	}
	return nil
}

type sampleKey struct {
	item   string
	region string
}

// Store holds the current set of price samples, at most one per (item, region).
// Writers call Upsert; scans read through Snapshot so they never observe a
// partial write.
type Store struct {
	mu      sync.RWMutex
	samples map[sampleKey]PriceSample
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{samples: make(map[sampleKey]PriceSample)}
}

// Upsert stores a sample, replacing any existing sample for the same
// (item, region) key. Malformed samples are rejected and the store is untouched.
func (st *Store) Upsert(s PriceSample) error {
	if err := s.Validate(); err != nil {
		return err
	}
	st.mu.Lock()
	st.samples[sampleKey{s.ItemName, s.Region}] = s
	st.mu.Unlock()
	return nil
}

// SamplesFor returns all current samples for an item. Unknown items yield an
// empty slice, not an error.
func (st *Store) SamplesFor(itemName string) []PriceSample {
	st.mu.RLock()
	defer st.mu.RUnlock()

	var out []PriceSample
	for k, s := range st.samples {
		if k.item == itemName {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of live samples.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.samples)
}

// Snapshot is a point-in-time copy of the store contents, grouped by item.
// It is never mutated after creation.
type Snapshot struct {
	byItem map[string][]PriceSample
	total  int
}

// Snapshot returns an immutable copy of all samples. Concurrent Upserts after
// the copy do not affect it.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	byItem := make(map[string][]PriceSample)
	for k, s := range st.samples {
		byItem[k.item] = append(byItem[k.item], s)
	}
	return &Snapshot{byItem: byItem, total: len(st.samples)}
}

// Items returns the item names in the snapshot, sorted for deterministic scans.
func (sn *Snapshot) Items() []string {
	items := make([]string, 0, len(sn.byItem))
	for item := range sn.byItem {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// SamplesFor returns the snapshot's samples for one item.
func (sn *Snapshot) SamplesFor(itemName string) []PriceSample {
	return sn.byItem[itemName]
}

// Len returns the total number of samples in the snapshot.
func (sn *Snapshot) Len() int {
	return sn.total
}
