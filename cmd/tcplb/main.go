// Command tcplb runs the load balancer: it loads configuration, builds
// the logger and the shared core, then runs the acceptor, the admin API,
// and the maintenance ticker concurrently until signalled.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/tcplb/internal/acceptor"
	"github.com/sabouaram/tcplb/internal/admin"
	"github.com/sabouaram/tcplb/internal/config"
	"github.com/sabouaram/tcplb/internal/core"
	"github.com/sabouaram/tcplb/internal/logging"
	"github.com/sabouaram/tcplb/internal/maintenance"
	"github.com/sabouaram/tcplb/router"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tcplb <config.json>")
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcplb: reading config: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tcplb: loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level())
	c := core.New(cfg)

	rl := router.NewRouterList(router.DefaultGinInit)
	admin.Register(rl, c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return acceptor.Run(gctx, log, c)
	})

	g.Go(func() error {
		maintenance.Run(gctx, c.Table)
		return nil
	})

	g.Go(func() error {
		srv := &http.Server{Addr: cfg.API.Listen, Handler: router.Handler(rl)}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case <-gctx.Done():
			return srv.Close()
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("tcplb: exiting")
		os.Exit(1)
	}
}
