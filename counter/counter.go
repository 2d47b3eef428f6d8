// Package counter implements an ordered frequency counter: it counts
// occurrences of comparable keys and iterates them in key order.
package counter

import (
	"cmp"
	"sort"
)

// Entry is a key together with its occurrence count.
type Entry[K cmp.Ordered] struct {
	Key   K
	Count uint64
}

// Counter counts occurrences of keys of type K.
type Counter[K cmp.Ordered] struct {
	counts map[K]uint64
}

// New returns an empty Counter.
func New[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]uint64)}
}

// Of returns a Counter populated from the given items.
func Of[K cmp.Ordered](items ...K) *Counter[K] {
	c := New[K]()
	c.Add(items...)
	return c
}

// Add increments the count of each given item.
func (c *Counter[K]) Add(items ...K) {
	for _, k := range items {
		c.counts[k]++
	}
}

// Count returns the occurrence count of k, or 0 if k was never added.
func (c *Counter[K]) Count(k K) uint64 {
	return c.counts[k]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// Sorted returns all entries ordered by key.
func (c *Counter[K]) Sorted() []Entry[K] {
	ret := make([]Entry[K], 0, len(c.counts))
	for key, count := range c.counts {
		ret = append(ret, Entry[K]{Key: key, Count: count})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Key < ret[j].Key })
	return ret
}

// Equal reports whether both counters hold the same keys with the same
// counts.
func (c *Counter[K]) Equal(other *Counter[K]) bool {
	if len(c.counts) != len(other.counts) {
		return false
	}
	for key, count := range c.counts {
		if other.counts[key] != count {
			return false
		}
	}
	return true
}
