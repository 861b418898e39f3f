package ecs

import (
	"math"
	"strconv"
)

// Entity is an opaque identifier. Ids are allocated in increasing order and
// never reused within a manager.
type Entity uint32

// MaxEntity is the highest id a manager hands out or accepts from a snapshot.
// The id above it is reserved so the allocation counter never wraps.
const MaxEntity Entity = math.MaxUint32 - 1

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
