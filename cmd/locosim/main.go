// Command locosim runs the character controller headless, driven by a
// scenario script, and prints a summary of the run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/milk9111/wallrunner/physics"
	"github.com/sirupsen/logrus"
)

func main() {
	opts := options{}
	flag.StringVar(&opts.level, "level", "", "level name in levels/ (default arena)")
	flag.StringVar(&opts.tuning, "tuning", "", "tuning file in prefabs/ (default tuning.yaml)")
	flag.StringVar(&opts.script, "script", "walk", "scenario script in prefabs/scripts")
	flag.IntVar(&opts.ticks, "ticks", 600, "number of ticks to simulate")
	flag.Float64Var(&opts.hz, "hz", 50, "simulation rate in ticks per second")
	flag.Float64Var(&opts.gravity, "gravity", physics.DefaultGravity, "vertical gravity in m/s², negative pulls down")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "locosim: %v\n", err)
		os.Exit(2)
	}
	logger.SetLevel(lvl)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.WithError(err).Warn("sentry disabled")
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := run(opts, logrus.NewEntry(logger), os.Stdout); err != nil {
		logger.WithError(err).Error("run failed")
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(opts options, log *logrus.Entry, out io.Writer) error {
	defer sentry.Recover()

	sim, err := newSimulation(opts, log)
	if err != nil {
		return err
	}
	report, err := sim.Run()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, report.String())
	return err
}
