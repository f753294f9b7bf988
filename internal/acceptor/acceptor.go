// Package acceptor runs the inbound accept loop: admission check, target
// selection, dial, and tunnel installation, handing each successfully
// dialed connection off to the relay engine.
package acceptor

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/sirupsen/logrus"

	"github.com/sabouaram/tcplb/internal/core"
	"github.com/sabouaram/tcplb/internal/relay"
	"github.com/sabouaram/tcplb/internal/selector"
	"github.com/sabouaram/tcplb/internal/tunnel"
)

// newID returns 32 lowercase hex characters (a v4 UUID with its dashes
// stripped), matching the node/target/tunnel id format used on the wire.
func newID() (string, error) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id, "-", ""), nil
}

// Run listens on c.Config.Node.Listen and services connections until ctx
// is cancelled. It returns an error only if the initial listen fails;
// accept errors are logged and the loop continues.
func Run(ctx context.Context, log *logrus.Logger, c *core.Core) error {
	ln, err := net.Listen("tcp", c.Config.Node.Listen)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				log.WithError(err).Error("acceptor: accept failed")
				continue
			}
		}

		go handle(log, c, conn)
	}
}

func handle(log *logrus.Logger, c *core.Core, conn net.Conn) {
	if uint32(c.Table.Len()) > c.Config.Node.MaxConn {
		log.WithField("remote", conn.RemoteAddr().String()).Info("acceptor: admission rejected")
		_ = conn.Close()
		return
	}

	candidates := selector.Order(c.Snapshots(), selector.AscOrder)

	outbound, chosen, ok := c.Dialer.Dial(candidates)
	if !ok {
		log.WithField("remote", conn.RemoteAddr().String()).Info("acceptor: no viable target")
		_ = conn.Close()
		return
	}

	tunnelID, err := newID()
	if err != nil {
		log.WithError(err).Error("acceptor: tunnel id generation failed")
		_ = conn.Close()
		_ = outbound.Close()
		return
	}

	nodeConnectID, _ := newID()
	targetConnectID, _ := newID()

	now := time.Now()
	nowNs := now.UnixNano()
	nowMs := now.UnixMilli()

	nodeStats := tunnel.NewConnStats(nodeConnectID, conn.LocalAddr().String(), conn.RemoteAddr().String(), nowMs, nowNs)
	targetStats := &tunnel.TargetStats{
		ConnStats: tunnel.NewConnStats(targetConnectID, outbound.LocalAddr().String(), chosen.Endpoint, nowMs, nowNs),
		TargetID:  chosen.ID,
	}

	t := &tunnel.Tunnel{TunnelID: tunnelID, NodeStats: nodeStats, TargetStats: targetStats}
	c.Table.Insert(t)

	nodeTimeout := time.Duration(c.Config.Node.Timeout) * time.Second
	targetTimeout := time.Duration(chosen.Timeout) * time.Second

	relay.Run(log, c.Table, t, conn, outbound, nodeTimeout, targetTimeout)
}
