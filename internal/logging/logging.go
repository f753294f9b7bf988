// Package logging wraps a single logrus.Logger as the process-wide sink,
// with the level selected from the config's logger/level.Level.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sabouaram/tcplb/logger/level"
)

// New builds a logrus.Logger writing JSON lines to stderr at lvl.
func New(lvl level.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(lvl.Logrus())
	return l
}

// Tunnel returns a log entry pre-tagged with the fields every tunnel-level
// log line carries.
func Tunnel(l *logrus.Logger, tunnelID, targetID, remote string) *logrus.Entry {
	return l.WithFields(logrus.Fields{
		"tunnel_id": tunnelID,
		"target_id": targetID,
		"remote":    remote,
	})
}
