// Package dialer opens the outbound socket to a selected target, with an
// optional rotated local bind address and a fixed connect deadline.
package dialer

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/sabouaram/tcplb/internal/target"
)

// connectTimeout is the fixed outbound connect deadline.
const connectTimeout = 5 * time.Second

// Dialer attempts outbound connects to candidate targets in order,
// optionally rotating through a configured set of local bind addresses.
type Dialer struct {
	enableLocal bool
	local       []string

	// selector is NODE_LOCAL_SELECTOR: a process-wide round-robin counter,
	// incremented per outbound dial when local-bind rotation is enabled.
	selector atomic.Uint64
}

// New builds a Dialer. local is the configured rotation set; it is only
// consulted when enableLocal is true and non-empty.
func New(enableLocal bool, local []string) *Dialer {
	return &Dialer{enableLocal: enableLocal, local: local}
}

// Dial attempts candidates in order and returns the first successful
// connection along with the target it reached, or ok=false if every
// candidate was skipped or failed.
func (d *Dialer) Dial(candidates []target.Snapshot) (conn net.Conn, chosen *target.Target, ok bool) {
	for _, c := range candidates {
		if !c.Active() {
			continue
		}
		if c.ConnCount > c.MaxConn {
			continue
		}

		nd := &net.Dialer{Timeout: connectTimeout}

		if d.enableLocal && len(d.local) > 0 {
			idx := d.selector.Add(1) - 1
			laddr, err := net.ResolveTCPAddr("tcp", d.local[idx%uint64(len(d.local))])
			if err != nil {
				// Configuration error: an unparsable local endpoint is fatal,
				// not skippable — it was already validated at startup.
				panic(fmt.Sprintf("dialer: invalid local endpoint %q: %v", d.local[idx%uint64(len(d.local))], err))
			}
			nd.LocalAddr = laddr
		}

		conn, err := nd.Dial("tcp", c.Endpoint)
		if err != nil {
			continue
		}

		return conn, c.Target, true
	}

	return nil, nil, false
}
