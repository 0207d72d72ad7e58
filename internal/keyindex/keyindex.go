// Package keyindex implements the per-kind name index of the object store:
// a chained hash table keyed by one string or by an ordered pair of strings.
//
// Tables are sized up front from the number of objects the configuration
// declares (1.5 buckets per expected element), so during a normal load the
// chains stay short without any rehashing. A table still doubles when the
// average chain grows past maxLoad, which only happens when the caller's
// capacity hint was wrong.
//
// Keys are never copied; the index stores the caller's strings, which in the
// object store are always the entity's own name.
package keyindex

import (
	"errors"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already present.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDestroyed is returned by Insert after Destroy.
	ErrDestroyed = errors.New("index destroyed")
)

const (
	minBuckets = 8
	maxLoad    = 4
)

// keySeparator keeps ("ab","c") and ("a","bc") apart.
var keySeparator = []byte{0}

type entry[V any] struct {
	hash  uint64
	k1    string
	k2    string
	value V
	next  *entry[V]
}

// Index maps (k1, k2) to a value. Single-key kinds pass an empty k2.
//
// NOTE: Index is not safe for concurrent mutation. The object store builds it
// on one goroutine and only reads it afterwards.
type Index[V any] struct {
	buckets   []*entry[V]
	count     int
	destroyed bool
}

// New creates an index sized for capacityHint elements.
func New[V any](capacityHint int) *Index[V] {
	n := capacityHint + capacityHint/2
	if n < minBuckets {
		n = minBuckets
	}
	return &Index[V]{buckets: make([]*entry[V], n)}
}

func hashKey(k1, k2 string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(k1)
	_, _ = d.Write(keySeparator)
	_, _ = d.WriteString(k2)
	return d.Sum64()
}

// Insert adds value under (k1, k2). Existing keys are never overwritten.
func (ix *Index[V]) Insert(k1, k2 string, value V) error {
	if ix == nil || ix.destroyed {
		return ErrDestroyed
	}

	h := hashKey(k1, k2)
	slot := h % uint64(len(ix.buckets))
	for e := ix.buckets[slot]; e != nil; e = e.next {
		if e.hash == h && e.k1 == k1 && e.k2 == k2 {
			return ErrDuplicateKey
		}
	}

	ix.buckets[slot] = &entry[V]{hash: h, k1: k1, k2: k2, value: value, next: ix.buckets[slot]}
	ix.count++

	if ix.count > maxLoad*len(ix.buckets) {
		ix.grow()
	}
	return nil
}

// Lookup returns the value stored under (k1, k2).
// A nil or destroyed index reports every key as absent.
func (ix *Index[V]) Lookup(k1, k2 string) (V, bool) {
	var zero V
	if ix == nil || ix.destroyed {
		return zero, false
	}

	h := hashKey(k1, k2)
	for e := ix.buckets[h%uint64(len(ix.buckets))]; e != nil; e = e.next {
		if e.hash == h && e.k1 == k1 && e.k2 == k2 {
			return e.value, true
		}
	}
	return zero, false
}

// Len returns the number of keys in the index
func (ix *Index[V]) Len() int {
	if ix == nil {
		return 0
	}
	return ix.count
}

// Buckets returns the current bucket count
func (ix *Index[V]) Buckets() int {
	if ix == nil {
		return 0
	}
	return len(ix.buckets)
}

// Destroy releases the table structure. Values are left untouched; they are
// owned by whoever inserted them.
func (ix *Index[V]) Destroy() {
	if ix == nil {
		return
	}
	ix.buckets = nil
	ix.count = 0
	ix.destroyed = true
}

func (ix *Index[V]) grow() {
	next := make([]*entry[V], len(ix.buckets)*2)
	for _, head := range ix.buckets {
		for e := head; e != nil; {
			following := e.next
			slot := e.hash % uint64(len(next))
			e.next = next[slot]
			next[slot] = e
			e = following
		}
	}
	ix.buckets = next
}
