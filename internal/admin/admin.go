// Package admin exposes the read-only HTTP admin surface over the shared
// core state: node info, target info, and tunnel info, filterable by
// target_id.
package admin

import (
	"net/http"
	"time"

	ginsdk "github.com/gin-gonic/gin"

	"github.com/sabouaram/tcplb/errors"
	"github.com/sabouaram/tcplb/internal/core"
	"github.com/sabouaram/tcplb/router"
)

// envelope is the {id, result, error} shape every admin response uses.
type envelope struct {
	ID     int         `json:"id"`
	Result interface{} `json:"result"`
	Error  *string     `json:"error"`
}

func ok(c *ginsdk.Context, result interface{}) {
	c.JSON(http.StatusOK, envelope{ID: 1, Result: result})
}

func fail(c *ginsdk.Context, code errors.CodeError, msg string) {
	c.JSON(int(code), envelope{ID: 1, Result: nil, Error: &msg})
}

// NodeInfo is the /api/get_node_info payload.
type NodeInfo struct {
	Listen    string `json:"listen"`
	MaxConn   uint32 `json:"max_conn"`
	Timeout   uint32 `json:"timeout"`
	ConnCount int    `json:"conn_count"`
}

// TargetInfo is one entry of the /api/get_targets_info payload.
type TargetInfo struct {
	TargetID  string `json:"target_id"`
	Endpoint  string `json:"endpoint"`
	MaxConn   uint32 `json:"max_conn"`
	Timeout   uint32 `json:"timeout"`
	ConnCount uint32 `json:"conn_count"`
	Active    bool   `json:"active"`
}

// ConnectionInfo is one side of a tunnel info record.
type ConnectionInfo struct {
	ConnectID      string  `json:"connect_id"`
	LocalEndpoint  string  `json:"local_endpoint"`
	RemoteEndpoint string  `json:"remote_endpoint"`
	CreateTime     int64   `json:"create_time"`
	ReadSpeed1m    float64 `json:"read_speed_1m"`
	ReadSpeed5m    float64 `json:"read_speed_5m"`
	ReadSpeed30m   float64 `json:"read_speed_30m"`
	WriteSpeed1m   float64 `json:"write_speed_1m"`
	WriteSpeed5m   float64 `json:"write_speed_5m"`
	WriteSpeed30m  float64 `json:"write_speed_30m"`
}

// TargetConnectionInfo adds the routed target_id to ConnectionInfo.
type TargetConnectionInfo struct {
	ConnectionInfo
	TargetID string `json:"target_id"`
}

// TunnelInfo is one entry of /api/get_tunnel_info.
type TunnelInfo struct {
	TunnelID         string               `json:"tunnel_id"`
	NodeConnection   ConnectionInfo       `json:"node_connection"`
	TargetConnection TargetConnectionInfo `json:"target_connection"`
}

// Register adds every admin route to rl.
func Register(rl router.RouterList, c *core.Core) {
	rl.Register(http.MethodGet, "/", hello)
	rl.Register(http.MethodPost, "/", hello)

	rl.Register(http.MethodGet, "/api/get_node_info", nodeInfo(c))
	rl.Register(http.MethodPost, "/api/get_node_info", nodeInfo(c))

	rl.Register(http.MethodGet, "/api/get_targets_info", targetsInfo(c))
	rl.Register(http.MethodPost, "/api/get_targets_info", targetsInfo(c))

	rl.Register(http.MethodGet, "/api/get_tunnel_info", tunnelInfo(c))
	rl.Register(http.MethodPost, "/api/get_tunnel_info", tunnelInfo(c))

	rl.Register(http.MethodGet, "/api/get_target_tunnel_info", targetTunnelInfo(c))
	rl.Register(http.MethodPost, "/api/get_target_tunnel_info", targetTunnelInfo(c))
}

func hello(c *ginsdk.Context) {
	c.String(http.StatusOK, "hello")
}

func nodeInfo(core *core.Core) ginsdk.HandlerFunc {
	return func(c *ginsdk.Context) {
		ok(c, NodeInfo{
			Listen:    core.Config.Node.Listen,
			MaxConn:   core.Config.Node.MaxConn,
			Timeout:   core.Config.Node.Timeout,
			ConnCount: core.Table.Len(),
		})
	}
}

func targetsInfo(core *core.Core) ginsdk.HandlerFunc {
	return func(c *ginsdk.Context) {
		snaps := core.Snapshots()
		out := make([]TargetInfo, 0, len(snaps))

		for _, s := range snaps {
			out = append(out, TargetInfo{
				TargetID:  s.ID,
				Endpoint:  s.Endpoint,
				MaxConn:   s.MaxConn,
				Timeout:   s.Timeout,
				ConnCount: s.ConnCount,
				Active:    s.Active(),
			})
		}

		ok(c, out)
	}
}

func tunnelInfo(core *core.Core) ginsdk.HandlerFunc {
	return func(c *ginsdk.Context) {
		ok(c, collectTunnelInfo(core, ""))
	}
}

func targetTunnelInfo(core *core.Core) ginsdk.HandlerFunc {
	return func(c *ginsdk.Context) {
		id := c.Query("target_id")
		if id == "" {
			id = c.PostForm("target_id")
		}
		if id == "" {
			fail(c, errors.CodeAdminRequest, "missing required parameter: target_id")
			return
		}

		ok(c, collectTunnelInfo(core, id))
	}
}

func collectTunnelInfo(core *core.Core, targetIDFilter string) []TunnelInfo {
	now := time.Now().UnixNano()
	tunnels := core.Table.Snapshot()
	out := make([]TunnelInfo, 0, len(tunnels))

	for _, t := range tunnels {
		if targetIDFilter != "" && t.TargetStats.TargetID != targetIDFilter {
			continue
		}

		nodeSpeeds := t.NodeStats.Speeds(now)
		targetSpeeds := t.TargetStats.Speeds(now)

		out = append(out, TunnelInfo{
			TunnelID: t.TunnelID,
			NodeConnection: ConnectionInfo{
				ConnectID:      t.NodeStats.ConnectID,
				LocalEndpoint:  t.NodeStats.LocalEndpoint,
				RemoteEndpoint: t.NodeStats.RemoteEndpoint,
				CreateTime:     t.NodeStats.CreateTimeMs,
				ReadSpeed1m:    nodeSpeeds.ReadSpeed1m,
				ReadSpeed5m:    nodeSpeeds.ReadSpeed5m,
				ReadSpeed30m:   nodeSpeeds.ReadSpeed30m,
				WriteSpeed1m:   nodeSpeeds.WriteSpeed1m,
				WriteSpeed5m:   nodeSpeeds.WriteSpeed5m,
				WriteSpeed30m:  nodeSpeeds.WriteSpeed30m,
			},
			TargetConnection: TargetConnectionInfo{
				ConnectionInfo: ConnectionInfo{
					ConnectID:      t.TargetStats.ConnectID,
					LocalEndpoint:  t.TargetStats.LocalEndpoint,
					RemoteEndpoint: t.TargetStats.RemoteEndpoint,
					CreateTime:     t.TargetStats.CreateTimeMs,
					ReadSpeed1m:    targetSpeeds.ReadSpeed1m,
					ReadSpeed5m:    targetSpeeds.ReadSpeed5m,
					ReadSpeed30m:   targetSpeeds.ReadSpeed30m,
					WriteSpeed1m:   targetSpeeds.WriteSpeed1m,
					WriteSpeed5m:   targetSpeeds.WriteSpeed5m,
					WriteSpeed30m:  targetSpeeds.WriteSpeed30m,
				},
				TargetID: t.TargetStats.TargetID,
			},
		})
	}

	return out
}
