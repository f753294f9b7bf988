// Package maintenance runs the periodic rolling-window reset over every
// live tunnel.
package maintenance

import (
	"context"
	"time"

	"github.com/sabouaram/tcplb/internal/tunnel"
)

// tick is the ticker period.
const tick = 60 * time.Second

// Run resets the 1m/5m/30m windows on every live tunnel, each on its own
// independent modulus, until ctx is cancelled. Each window resets
// independently (1m every tick, 5m every 5 ticks, 30m every 30 ticks)
// rather than the mutually-exclusive else-if ladder that only ever
// resets the 1m window — the likely-intended behavior per the design
// notes this implementation follows.
func Run(ctx context.Context, table *tunnel.Table) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var k uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k++
			now := time.Now().UnixNano()

			if k%1 == 0 {
				table.ResetWindow("1m", now)
			}
			if k%5 == 0 {
				table.ResetWindow("5m", now)
			}
			if k%30 == 0 {
				table.ResetWindow("30m", now)
			}
		}
	}
}
