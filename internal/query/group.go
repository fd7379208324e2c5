package query

import (
	"cmp"
	"slices"
)

// Bucket is one group of records sharing an attribute value.
type Bucket[T any] struct {
	Key   string
	Items []T
}

// Buckets is the ordered result of Group.
type Buckets[T any] []Bucket[T]

// Get returns the records of the bucket with the given key.
func (b Buckets[T]) Get(key string) []T {
	for _, bucket := range b {
		if bucket.Key == key {
			return bucket.Items
		}
	}
	return nil
}

// Len returns the number of records across all buckets.
func (b Buckets[T]) Len() int {
	n := 0
	for _, bucket := range b {
		n += len(bucket.Items)
	}
	return n
}

// Keys returns the bucket keys in order.
func (b Buckets[T]) Keys() []string {
	keys := make([]string, len(b))
	for i, bucket := range b {
		keys[i] = bucket.Key
	}
	return keys
}

// Items returns every record bucket by bucket.
func (b Buckets[T]) Items() []T {
	out := make([]T, 0, b.Len())
	for _, bucket := range b {
		out = append(out, bucket.Items...)
	}
	return out
}

// GroupOption configures Group.
type GroupOption[T any] func(*groupConfig[T])

type groupConfig[T any] struct {
	within func(a, b T) int
}

// WithinBucket sorts each bucket with cmp. Ties keep their input order.
func WithinBucket[T any](cmp func(a, b T) int) GroupOption[T] {
	return func(c *groupConfig[T]) {
		c.within = cmp
	}
}

// Group partitions items by attribute value. There is one bucket per key in
// key order, present even when empty. Values not listed in keys get extra
// buckets after the declared ones in first-seen order, and records without
// the attribute land in the bucket keyed "". Every record ends up in exactly
// one bucket.
func Group[T Queryable](items []T, attr string, keys []string, opts ...GroupOption[T]) Buckets[T] {
	var cfg groupConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make(Buckets[T], 0, len(keys))
	pos := make(map[string]int, len(keys))
	for _, k := range keys {
		if _, dup := pos[k]; dup {
			continue
		}
		pos[k] = len(out)
		out = append(out, Bucket[T]{Key: k, Items: []T{}})
	}

	for _, item := range items {
		v, _ := item.Attr(attr)
		i, ok := pos[v]
		if !ok {
			i = len(out)
			pos[v] = i
			out = append(out, Bucket[T]{Key: v})
		}
		out[i].Items = append(out[i].Items, item)
	}

	if cfg.within != nil {
		for i := range out {
			slices.SortStableFunc(out[i].Items, cfg.within)
		}
	}
	return out
}

// SortStable returns a sorted copy of items. Records cmp considers equal are
// ordered by ID so the result does not depend on input order.
func SortStable[T Record](items []T, cmpFn func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := cmpFn(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.RecordID(), b.RecordID())
	})
	return out
}
