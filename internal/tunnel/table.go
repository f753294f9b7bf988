package tunnel

import (
	libatm "github.com/sabouaram/tcplb/atomic"
)

// Table is the process-wide mapping from tunnel_id to Tunnel. Insert,
// remove, and get are lock-free (backed by the generic atomic map);
// accounting updates go straight to each ConnStats's atomics and never
// touch the table itself, per the design note in the overview.
type Table struct {
	tunnels libatm.MapTyped[string, *Tunnel]
}

// NewTable builds an empty tunnel table.
func NewTable() *Table {
	return &Table{tunnels: libatm.NewMapTyped[string, *Tunnel]()}
}

// Insert installs t, keyed by t.TunnelID.
func (tb *Table) Insert(t *Tunnel) {
	tb.tunnels.Store(t.TunnelID, t)
}

// Remove deletes tunnelID if present. Safe to call more than once for the
// same id (idempotent), as required by a relay task's teardown path.
func (tb *Table) Remove(tunnelID string) {
	tb.tunnels.Delete(tunnelID)
}

// Get looks up a single tunnel by id.
func (tb *Table) Get(tunnelID string) (*Tunnel, bool) {
	return tb.tunnels.Load(tunnelID)
}

// Len returns the current number of live tunnels.
func (tb *Table) Len() int {
	return libatm.Len[string, *Tunnel](tb.tunnels)
}

// Snapshot returns every live tunnel seen by one Range pass over the map,
// usable by the admin surface or the selector without holding up relay
// I/O. Tunnels inserted or removed during the pass may or may not appear.
func (tb *Table) Snapshot() []*Tunnel {
	return libatm.Snapshot[string, *Tunnel](tb.tunnels)
}

// CountForTarget returns the number of live tunnels routed to targetID —
// the derived target_conn_count of invariant I3.
func (tb *Table) CountForTarget(targetID string) uint32 {
	var n uint32
	tb.tunnels.Range(func(_ string, t *Tunnel) bool {
		if t.TargetStats.TargetID == targetID {
			n++
		}
		return true
	})
	return n
}

// ResetWindow resets the named window on every live tunnel's node and
// target stats, as of nowNs. Used by the maintenance ticker.
func (tb *Table) ResetWindow(name string, nowNs int64) {
	tb.tunnels.Range(func(_ string, t *Tunnel) bool {
		t.NodeStats.ResetWindow(name, nowNs)
		t.TargetStats.ResetWindow(name, nowNs)
		return true
	})
}
