package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tripcal/internal/httpapi"
	"tripcal/internal/logs"
	"tripcal/internal/trips"
)

func newServeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve month grids over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.serve(ctx)
		},
	}
	cmd.Flags().String("listen", "", "Listen address (default from config, 127.0.0.1:8088)")
	return cmd
}

func (o *options) serve(ctx context.Context) error {
	server := httpapi.NewServer(o.cfg, nil, logs.Base())
	server.SetClock(nowFunc)
	if err := server.Reload(); err != nil {
		return err
	}

	maintenance, err := server.ScheduleMaintenance()
	if err != nil {
		return err
	}
	maintenance.Start()
	defer maintenance.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, o.cfg.Listen)
	})
	g.Go(func() error {
		return trips.Watch(ctx, o.cfg.TripsDir, trips.DefaultDebounce, func() {
			if err := server.Reload(); err != nil {
				logs.Logger.Errorw("reload after trip change failed", "error", err)
			}
		})
	})
	return g.Wait()
}
