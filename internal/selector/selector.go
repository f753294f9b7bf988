// Package selector orders target snapshots under a selection policy. It is
// a pure function over whatever snapshot slice the caller captured — no
// package-level state, no locking.
package selector

import (
	"sort"

	"github.com/sabouaram/tcplb/internal/target"
)

// Policy chooses how Order ranks snapshots.
type Policy int

const (
	// NoOrder leaves the snapshot slice in its given order.
	NoOrder Policy = iota
	// AscOrder sorts by ascending ConnCount (least-connections).
	AscOrder
	// DescOrder sorts by descending ConnCount.
	DescOrder
)

// Order returns a new slice of snapshots ranked by policy. The input slice
// is not mutated; ties preserve the input's relative order (stable sort).
func Order(snapshots []target.Snapshot, policy Policy) []target.Snapshot {
	out := make([]target.Snapshot, len(snapshots))
	copy(out, snapshots)

	switch policy {
	case AscOrder:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ConnCount < out[j].ConnCount
		})
	case DescOrder:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ConnCount > out[j].ConnCount
		})
	}

	return out
}
