// Package target holds the configured backend set: endpoint, capacity,
// admin state, and the registry that serves snapshot queries to the
// selector and the admin API.
package target

import (
	"crypto/md5"
	"encoding/hex"
	"sync/atomic"
)

// ID derives the stable target_id from an endpoint string.
func ID(endpoint string) string {
	sum := md5.Sum([]byte(endpoint))
	return hex.EncodeToString(sum[:])
}

// Target is a configured backend candidate. active and status are plain
// atomic.Bool rather than the generic atomic.Value: their zero value
// (false) is a meaningful state, which the generic Value's
// empty-means-default substitution would otherwise mangle.
type Target struct {
	ID       string
	Endpoint string
	MaxConn  uint32
	Timeout  uint32

	active atomic.Bool
	status atomic.Bool
}

// New builds a Target from its config fields, with target_status true
// (no active health probing in scope) and target_active as configured.
func New(endpoint string, maxConn, timeout uint32, active bool) *Target {
	t := &Target{
		ID:       ID(endpoint),
		Endpoint: endpoint,
		MaxConn:  maxConn,
		Timeout:  timeout,
	}
	t.active.Store(active)
	t.status.Store(true)
	return t
}

// Active reports whether operators have this target enabled.
func (t *Target) Active() bool {
	return t.active.Load()
}

// SetActive flips the administrative enable flag.
func (t *Target) SetActive(v bool) {
	t.active.Store(v)
}

// Status reports the reserved health flag; always true in this build.
func (t *Target) Status() bool {
	return t.status.Load()
}
