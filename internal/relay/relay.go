// Package relay runs the two directional copy tasks of a tunnel: node
// read -> target write, and target read -> node write, each under its
// own per-direction deadlines, with unified once-only teardown.
package relay

import (
	"io"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sabouaram/tcplb/internal/logging"
	"github.com/sabouaram/tcplb/internal/tunnel"
)

// bufSize is the fixed per-read-iteration buffer size.
const bufSize = 1024

// Run starts both directional tasks for an installed tunnel and blocks
// until both have exited.
func Run(log *logrus.Logger, table *tunnel.Table, t *tunnel.Tunnel, node, target net.Conn, nodeTimeout, targetTimeout time.Duration) {
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			table.Remove(t.TunnelID)
			_ = node.Close()
			_ = target.Close()
		})
	}

	base := logging.Tunnel(log, t.TunnelID, t.TargetStats.TargetID, node.RemoteAddr().String())

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		direction(base.WithField("direction", "n2t"), node, target, nodeTimeout, targetTimeout,
			t.NodeStats.AddRead, t.TargetStats.AddWrite, teardown)
	}()

	go func() {
		defer wg.Done()
		direction(base.WithField("direction", "t2n"), target, node, targetTimeout, nodeTimeout,
			t.TargetStats.AddRead, t.NodeStats.AddWrite, teardown)
	}()

	wg.Wait()
}

// direction runs one unidirectional copy loop: read from src with
// readTimeout, then write the same bytes to dst with writeTimeout,
// crediting creditRead/creditWrite on each successful step. It exits (and
// calls teardown) on EOF, any I/O error, or a deadline.
func direction(entry *logrus.Entry, src, dst net.Conn, readTimeout, writeTimeout time.Duration,
	creditRead, creditWrite func(uint64), teardown func()) {
	defer teardown()

	buf := make([]byte, bufSize)

	for {
		if err := src.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			entry.WithError(err).Error("relay: set read deadline")
			return
		}

		n, err := src.Read(buf)
		if n > 0 {
			creditRead(uint64(n))

			if err := dst.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				entry.WithError(err).Error("relay: set write deadline")
				return
			}

			if _, werr := dst.Write(buf[:n]); werr != nil {
				if isTimeout(werr) {
					entry.WithError(werr).Error("relay: write timeout")
				} else {
					entry.WithError(werr).Error("relay: write error")
				}
				return
			}

			creditWrite(uint64(n))
		}

		if err != nil {
			if err == io.EOF {
				entry.Info("relay: peer closed")
			} else if isTimeout(err) {
				entry.WithError(err).Error("relay: read timeout")
			} else {
				entry.WithError(err).Error("relay: read error")
			}
			return
		}
	}
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
