package target

import (
	libatm "github.com/sabouaram/tcplb/atomic"
)

// Snapshot is a Target plus its observed concurrent tunnel count, as
// supplied by the caller's Counter.
type Snapshot struct {
	*Target
	ConnCount uint32
}

// Counter is supplied by the tunnel table so the registry never needs to
// import it; it returns the live tunnel count routed to targetID.
type Counter func(targetID string) uint32

// Registry is the concurrency-safe set of configured targets, keyed by
// target_id. Populated once at startup from config; target_active may be
// toggled concurrently by operators.
type Registry struct {
	targets libatm.MapTyped[string, *Target]
	order   []string
}

// NewRegistry builds a Registry from the given targets, preserving config
// order for stable tie-breaking in AscOrder/DescOrder selection.
func NewRegistry(targets []*Target) *Registry {
	r := &Registry{
		targets: libatm.NewMapTyped[string, *Target](),
		order:   make([]string, 0, len(targets)),
	}

	for _, t := range targets {
		r.targets.Store(t.ID, t)
		r.order = append(r.order, t.ID)
	}

	return r
}

// Lookup returns the target for id, if configured.
func (r *Registry) Lookup(id string) (*Target, bool) {
	return r.targets.Load(id)
}

// Snapshots returns every configured target paired with its live
// connection count from count, in stable config order.
func (r *Registry) Snapshots(count Counter) []Snapshot {
	out := make([]Snapshot, 0, len(r.order))

	for _, id := range r.order {
		t, ok := r.targets.Load(id)
		if !ok {
			continue
		}
		out = append(out, Snapshot{Target: t, ConnCount: count(id)})
	}

	return out
}

// Len returns the number of configured targets.
func (r *Registry) Len() int {
	return len(r.order)
}
