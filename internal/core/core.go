// Package core wires the tunnel subsystem together: target registry,
// tunnel table, selector, and dialer, shared by the acceptor, the admin
// API, and the maintenance ticker.
package core

import (
	"github.com/sabouaram/tcplb/internal/config"
	"github.com/sabouaram/tcplb/internal/dialer"
	"github.com/sabouaram/tcplb/internal/target"
	"github.com/sabouaram/tcplb/internal/tunnel"
)

// Core is the single shared handle passed into every subsystem, in place
// of process-wide globals.
type Core struct {
	Config   *config.Config
	Registry *target.Registry
	Table    *tunnel.Table
	Dialer   *dialer.Dialer
}

// New builds a Core from a validated Config. Initialization order follows
// the recommended config -> registry -> table -> dialer chain; callers
// spawn the admin, acceptor, and maintenance tasks afterward.
func New(cfg *config.Config) *Core {
	targets := make([]*target.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		targets = append(targets, target.New(t.TargetEndpoint, t.TargetMaxConn, t.TargetTimeout, t.TargetActive))
	}

	return &Core{
		Config:   cfg,
		Registry: target.NewRegistry(targets),
		Table:    tunnel.NewTable(),
		Dialer:   dialer.New(cfg.Node.EnableLocalEndpoints, cfg.Node.LocalEndpoints),
	}
}

// Snapshots returns the registry's targets paired with their live
// tunnel-table connection counts, all derived from one scan of the table.
func (c *Core) Snapshots() []target.Snapshot {
	counts := make(map[string]uint32)
	for _, t := range c.Table.Snapshot() {
		counts[t.TargetStats.TargetID]++
	}
	return c.Registry.Snapshots(func(id string) uint32 { return counts[id] })
}
