// Package component defines the component records systems read and write and
// the handles they are stored under.
package component

import (
	"errors"
	"fmt"
)

// ErrNotInitialized marks a lazily created resource that was read before the
// system responsible for it ran.
var ErrNotInitialized = errors.New("component: resource not initialized")

// CacheState tracks whether derived data is stale. The zero value is Dirty so
// a fresh component is refreshed on its first update.
type CacheState uint8

const (
	Dirty CacheState = iota
	Clean
)

func (s CacheState) IsDirty() bool { return s == Dirty }

func (s *CacheState) MarkDirty() { *s = Dirty }

// MarkClean is called only by the system that owns the refresh, right after it
// has recomputed and uploaded.
func (s *CacheState) MarkClean() { *s = Clean }

func (s CacheState) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Require returns v, or ErrNotInitialized naming what when v is the zero value.
func Require[T comparable](v T, what string) (T, error) {
	var zero T
	if v == zero {
		return zero, fmt.Errorf("%w: %s", ErrNotInitialized, what)
	}
	return v, nil
}
