package tunnel

// TargetStats is a ConnStats for the target-facing side of a tunnel, with
// the routed target_id attached.
type TargetStats struct {
	*ConnStats
	TargetID string
}

// Tunnel is one live bidirectional relay: a node-facing accounting record
// and a target-facing one, keyed by tunnel_id.
type Tunnel struct {
	TunnelID    string
	NodeStats   *ConnStats
	TargetStats *TargetStats
}
