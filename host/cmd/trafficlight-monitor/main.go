package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"trafficlight/host/monitor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cli monitor.CLI
	kong.Parse(&cli,
		kong.Name("trafficlight-monitor"),
		kong.Description("Check the light controller's console for cycle order and phase timing."),
		kong.Vars{"version": monitor.Version},
	)
	return monitor.Run(ctx, &cli)
}
