package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"trafficlight/host/serial"
)

// Version is stamped at build time with
// -ldflags "-X trafficlight/host/monitor.Version=v1.2.3"
var Version = "dev"

// CLI is the kong command line of trafficlight-monitor
type CLI struct {
	Device    string           `help:"serial device of the light controller" short:"d" default:"/dev/ttyACM0"`
	Baud      int              `help:"baud rate (ignored by USB CDC)" default:"115200"`
	Tolerance time.Duration    `help:"allowed dwell error per phase" short:"t" default:"100ms"`
	Cycles    int              `help:"stop after this many complete cycles (0 = forever)" short:"n" default:"0"`
	FailFast  bool             `help:"exit non-zero on the first violation" name:"fail-fast"`
	Debug     bool             `help:"debug logging"`
	Version   kong.VersionFlag `help:"print version and exit" short:"v"`
}

// Run opens the serial port and checks transitions until done
func Run(ctx context.Context, cli *CLI) error {
	logger := newLogger(cli.Debug)
	logger.Info("trafficlight-monitor", "version", Version, "device", cli.Device)

	cfg := serial.DefaultConfig(cli.Device)
	cfg.Baud = cli.Baud
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", cli.Device, err)
	}

	m := New(Config{
		Tolerance: cli.Tolerance,
		MaxCycles: cli.Cycles,
		FailFast:  cli.FailFast,
		Follow:    true,
	}, logger)

	report, err := m.Run(ctx, port)
	logger.Info("summary",
		"lines", report.Lines,
		"transitions", report.Transitions,
		"cycles", report.Cycles,
		"violations", len(report.Violations),
	)
	if err != nil {
		return err
	}
	if len(report.Violations) > 0 {
		return fmt.Errorf("%d violations observed", len(report.Violations))
	}
	return nil
}

func newLogger(debug bool) *slog.Logger {
	level := new(slog.LevelVar)
	if debug {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
