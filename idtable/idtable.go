// Package idtable provides fixed-capacity slot allocators for resource
// handles. One table exists per resource kind; a handle is just the index of
// an in-use slot, reused after destroy. Tables are mutated by a single
// goroutine by contract, so they carry no locks.
package idtable

import (
	"errors"
	"fmt"
	"math"
)

// ErrCapacity is returned by Create when no free slot remains. It signals a
// static sizing problem, not a transient condition: there is no backpressure
// or retry.
var ErrCapacity = errors.New("idtable: capacity exhausted")

// Table allocates handles for one resource kind. The capacity is fixed at
// construction; exceeding it is a configuration error.
type Table struct {
	used  []bool
	count int
}

// New creates a table with the given capacity.
func New(capacity int) *Table {
	if capacity <= 0 || capacity > math.MaxUint16+1 {
		panic(fmt.Sprintf("idtable: invalid capacity %d", capacity))
	}
	return &Table{used: make([]bool, capacity)}
}

// Create allocates the lowest free slot and returns its handle, or
// ErrCapacity when the table is full. A failed Create leaves the table
// unchanged.
func (t *Table) Create() (uint16, error) {
	for i, u := range t.used {
		if !u {
			t.used[i] = true
			t.count++
			return uint16(i), nil
		}
	}
	return 0, fmt.Errorf("%w (capacity %d)", ErrCapacity, len(t.used))
}

// MustCreate is Create that panics on capacity exhaustion.
func (t *Table) MustCreate() uint16 {
	id, err := t.Create()
	if err != nil {
		panic(err.Error())
	}
	return id
}

// Destroy frees the slot of a live handle. Destroying an unknown or already
// destroyed handle is a caller bug and panics.
func (t *Table) Destroy(id uint16) {
	if !t.Has(id) {
		panic(fmt.Sprintf("idtable: destroy of unknown id %d", id))
	}
	t.used[id] = false
	t.count--
}

// Has reports whether id is a live handle. It has no side effects.
func (t *Table) Has(id uint16) bool {
	return int(id) < len(t.used) && t.used[id]
}

// Count returns the number of live handles.
func (t *Table) Count() int { return t.count }

// Capacity returns the fixed slot capacity.
func (t *Table) Capacity() int { return len(t.used) }
